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

// DefaultPageSize is the menu page size when the client sends none.
const DefaultPageSize = 8

// MenuFilter narrows the menu listing. Role drives visibility: clients
// only see the daily menu, staff see the whole catalog. Search is a
// case-insensitive substring match on the name; Category is exact.
// Filters compose conjunctively.
type MenuFilter struct {
	Role     models.Role
	Search   string
	Category *models.FoodCategory
}

// ListMenu returns the filtered catalog, unpaginated.
func ListMenu(db *gorm.DB, filter MenuFilter) ([]models.FoodItem, error) {
	query := db.Model(&models.FoodItem{}).Preload("Characteristics").Order("id")

	if filter.Role == models.RoleClient {
		query = query.Where("daily_menu = ?", true)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}

	var items []models.FoodItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Paginate slices a listing into pages of pageSize. Total pages is
// ceil(len/pageSize); a page past the end yields an empty page rather
// than an error.
func Paginate(items []models.FoodItem, page, pageSize int) ([]models.FoodItem, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := (len(items) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []models.FoodItem{}, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// -------- Handlers --------

// GET /menu
func GetMenuHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := MenuFilter{
			Role:   middleware.CurrentUser(c).Role,
			Search: c.Query("search"),
		}
		if raw := c.Query("category"); raw != "" {
			category, ok := models.ParseFoodCategory(raw)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
				return
			}
			filter.Category = &category
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))

		items, err := ListMenu(db, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch menu"})
			return
		}

		pageItems, totalPages := Paginate(items, page, pageSize)
		c.JSON(http.StatusOK, gin.H{
			"items":       pageItems,
			"page":        page,
			"total_pages": totalPages,
		})
	}
}

// GET /menu/:foodID is the detail view, including comments with their authors.
func GetFoodHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("foodID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid food id"})
			return
		}

		var food models.FoodItem
		err = db.Preload("Characteristics").Preload("Comments").Preload("Comments.Author").
			First(&food, "id = ?", uint(id)).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch food"})
			return
		}
		c.JSON(http.StatusOK, food)
	}
}

// GET /menu/:foodID/stock
func GetStockHandler(db *gorm.DB) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, gin.H{"stock": food.Stock})
	}
}
