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

// DELETE /admin/menu/:foodID removes the item, its characteristic
// links and its image blob.
func DeleteFoodHandler(db *gorm.DB, store storage.ImageStore) gin.HandlerFunc {
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

		if err := store.Remove(food.Image); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove image"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&food).Association("Characteristics").Clear(); err != nil {
				return err
			}
			if err := tx.Where("food_id = ?", food.ID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&food).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "food deleted"})
	}
}
