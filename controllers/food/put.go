package foodController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/models"
	"github.com/JEYMISPAUL/master-delivery/storage"
)

// PUT /admin/menu/:foodID edits a food item. The characteristic set
// is replaced wholesale with the supplied id list. When change_image is
// "yes" the new upload replaces the old blob.
func UpdateFoodHandler(db *gorm.DB, store storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("foodID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
			return
		}

		var food models.FoodItem
		if err := db.First(&food, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food"})
			return
		}

		form, errMsg := parseFoodForm(c)
		if errMsg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": errMsg})
			return
		}

		if c.DefaultPostForm("change_image", "no") == "yes" {
			file, err := c.FormFile("image")
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "image is required when change_image is yes"})
				return
			}
			newURL, err := store.Save(file)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
				return
			}
			if err := store.Remove(food.Image); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove old image"})
				return
			}
			food.Image = newURL
		}

		food.Name = form.Name
		food.Description = form.Description
		food.Category = form.Category
		food.Price = form.Price
		food.DailyMenu = form.DailyMenu
		food.Stock = form.Stock

		var chars []models.Characteristic
		if len(form.CharIDs) > 0 {
			if err := db.Where("id IN ?", form.CharIDs).Find(&chars).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch characteristics"})
				return
			}
		}

		if err := db.Save(&food).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update food"})
			return
		}
		if err := db.Model(&food).Association("Characteristics").Replace(chars); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update characteristics"})
			return
		}

		food.Characteristics = chars
		c.JSON(http.StatusOK, food)
	}
}

type updateStockRequest struct {
	Stock int `json:"stock"`
}

// PUT /admin/menu/:foodID/stock
func UpdateStockHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("foodID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
			return
		}

		var req updateStockRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock"})
			return
		}

		res := db.Model(&models.FoodItem{}).Where("id = ?", uint(id)).Update("stock", req.Stock)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update stock"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "stock updated"})
	}
}
