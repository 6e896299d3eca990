package foodController

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/models"
)

// GET /admin/menu/export downloads the whole catalog as an Excel file.
func ExportMenuToExcelHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var items []models.FoodItem
		if err := db.Preload("Characteristics").Order("id").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Menu")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Description", "Category", "Price",
			"DailyMenu", "Stock", "Image", "Characteristics", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, item := range items {
			row := sheet.AddRow()

			row.AddCell().SetValue(item.ID)
			row.AddCell().SetValue(item.Name)
			row.AddCell().SetValue(item.Description)
			row.AddCell().SetValue(string(item.Category))
			row.AddCell().SetValue(item.Price)
			row.AddCell().SetValue(item.DailyMenu)
			row.AddCell().SetValue(item.Stock)
			row.AddCell().SetValue(item.Image)

			var names []string
			for _, ch := range item.Characteristics {
				names = append(names, ch.Name)
			}
			row.AddCell().SetValue(strings.Join(names, ","))

			row.AddCell().SetValue(item.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=menu.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write Excel file"})
			return
		}
	}
}
