package foodController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/models"
)

// IsCharacteristicNameUnique reports whether no characteristic already
// carries the given name. Enforced on create only; editing an existing
// characteristic may keep or reuse any name.
func IsCharacteristicNameUnique(db *gorm.DB, name string) (bool, error) {
	var count int64
	err := db.Model(&models.Characteristic{}).Where("name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

type characteristicRequest struct {
	Name   string  `json:"name" binding:"required"`
	Detail string  `json:"detail"`
	Price  float64 `json:"price"`
}

// -------- Handlers --------

// GET /menu/characteristics
func ListCharacteristicsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var chars []models.Characteristic
		if err := db.Order("id").Find(&chars).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch characteristics"})
			return
		}
		c.JSON(http.StatusOK, chars)
	}
}

// GET /menu/:foodID/characteristics
func GetFoodCharacteristicsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("foodID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
			return
		}

		var food models.FoodItem
		if err := db.Preload("Characteristics").First(&food, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food"})
			return
		}
		c.JSON(http.StatusOK, food.Characteristics)
	}
}

// POST /admin/menu/characteristics
func CreateCharacteristicHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req characteristicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		unique, err := IsCharacteristicNameUnique(db, req.Name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check name"})
			return
		}
		if !unique {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "each characteristic must have a unique name"}})
			return
		}

		char := models.Characteristic{Name: req.Name, Detail: req.Detail, Price: req.Price}
		if err := db.Create(&char).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create characteristic"})
			return
		}
		c.JSON(http.StatusCreated, char)
	}
}

// PUT /admin/menu/characteristics/:charID
func UpdateCharacteristicHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("charID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid characteristic id"})
			return
		}

		var req characteristicRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var char models.Characteristic
		if err := db.First(&char, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "characteristic not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch characteristic"})
			return
		}

		char.Name = req.Name
		char.Detail = req.Detail
		char.Price = req.Price
		if err := db.Save(&char).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update characteristic"})
			return
		}
		c.JSON(http.StatusOK, char)
	}
}

// DELETE /admin/menu/characteristics/:charID
func DeleteCharacteristicHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("charID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid characteristic id"})
			return
		}

		var char models.Characteristic
		if err := db.First(&char, "id = ?", uint(id)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "characteristic not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch characteristic"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM food_characteristics WHERE characteristic_id = ?", char.ID).Error; err != nil {
				return err
			}
			return tx.Delete(&char).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete characteristic"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "the characteristic was deleted"})
	}
}
