package foodController

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
)

type commentRequest struct {
	Content string `json:"content"`
}

// POST /menu/:foodID/comments appends a comment by the current user.
// Comments are never edited or removed individually.
func AddCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("foodID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
			return
		}

		var req commentRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"content": "the comment cannot be empty"}})
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

		comment := models.Comment{
			AuthorID: middleware.CurrentUser(c).ID,
			FoodID:   food.ID,
			Content:  req.Content,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save comment"})
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}
