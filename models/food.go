package models

import (
	"time"
)

type FoodCategory string

const (
	CategoryStarter FoodCategory = "starter"
	CategoryMain    FoodCategory = "main"
	CategoryDessert FoodCategory = "dessert"
	CategoryDrink   FoodCategory = "drink"
	CategoryCombo   FoodCategory = "combo"
)

// ParseFoodCategory validates a category coming from a request.
func ParseFoodCategory(s string) (FoodCategory, bool) {
	switch FoodCategory(s) {
	case CategoryStarter, CategoryMain, CategoryDessert, CategoryDrink, CategoryCombo:
		return FoodCategory(s), true
	default:
		return "", false
	}
}

type FoodItem struct {
	ID              uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string           `gorm:"not null" json:"name"`
	Description     string           `json:"description"`
	Category        FoodCategory     `gorm:"type:VARCHAR(20)" json:"category"`
	Price           float64          `gorm:"not null" json:"price"`
	DailyMenu       bool             `json:"daily_menu"`
	Stock           int              `json:"stock"`
	Image           string           `json:"image"`
	Characteristics []Characteristic `gorm:"many2many:food_characteristics;" json:"characteristics,omitempty"`
	Comments        []Comment        `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Characteristic is an attribute a food item can carry (spice level,
// extra topping, ...) with its own price delta. Names are kept unique
// on creation only.
type Characteristic struct {
	ID     uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string  `gorm:"not null" json:"name"`
	Detail string  `json:"detail"`
	Price  float64 `json:"price"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID  uint      `gorm:"not null" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	FoodID    uint      `gorm:"index;not null" json:"food_id"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
