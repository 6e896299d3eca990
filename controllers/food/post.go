package foodController

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/models"
	"github.com/JEYMISPAUL/master-delivery/storage"
)

// MissingImageWarning is returned alongside a created item when no
// image was uploaded. The item is still created, with an empty image.
const MissingImageWarning = "no image was uploaded, the item was created without one"

type foodForm struct {
	Name        string
	Description string
	Category    models.FoodCategory
	Price       float64
	DailyMenu   bool
	Stock       int
	CharIDs     []uint
}

func parseFoodForm(c *gin.Context) (foodForm, string) {
	var form foodForm

	form.Name = c.PostForm("name")
	priceStr := c.PostForm("price")
	if form.Name == "" || priceStr == "" {
		return form, "name and price are required"
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return form, "invalid price"
	}
	form.Price = price

	category, ok := models.ParseFoodCategory(c.PostForm("category"))
	if !ok {
		return form, "invalid category"
	}
	form.Category = category

	form.Description = c.PostForm("description")
	form.DailyMenu = c.PostForm("daily_menu") == "true"

	if stockStr := c.PostForm("stock"); stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			return form, "invalid stock"
		}
		form.Stock = stock
	}

	ids, ok := parseIDList(c.PostForm("characteristic_ids"))
	if !ok {
		return form, "invalid characteristic_ids format"
	}
	form.CharIDs = ids

	return form, ""
}

func parseIDList(raw string) ([]uint, bool) {
	if raw == "" {
		return nil, true
	}
	var ids []uint
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id64, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, uint(id64))
	}
	return ids, true
}

// POST /admin/menu creates a food item with its characteristic set.
// The image is optional: a missing upload is a soft failure surfaced as
// a warning, not a rejection.
func CreateFoodHandler(db *gorm.DB, store storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, errMsg := parseFoodForm(c)
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}

		var chars []models.Characteristic
		if len(form.CharIDs) > 0 {
			if err := db.Where("id IN ?", form.CharIDs).Find(&chars).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch characteristics"})
				return
			}
		}

		warning := ""
		imageURL := ""
		if file, err := c.FormFile("image"); err == nil {
			imageURL, err = store.Save(file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
				return
			}
		} else {
			warning = MissingImageWarning
		}

		food := models.FoodItem{
			Name:            form.Name,
			Description:     form.Description,
			Category:        form.Category,
			Price:           form.Price,
			DailyMenu:       form.DailyMenu,
			Stock:           form.Stock,
			Image:           imageURL,
			Characteristics: chars,
		}
		if err := db.Create(&food).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create food"})
			return
		}

		resp := gin.H{"food": food}
		if warning != "" {
			resp["warning"] = warning
		}
		c.JSON(http.StatusCreated, resp)
	}
}
