package orderControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrOrderClaimed      = errors.New("this order has already been claimed")
	ErrActiveOrder       = errors.New("you still have an order to finish")
	ErrNotAllowed        = errors.New("you are not allowed to modify this order")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// -------- Request Structs --------

type OrderLine struct {
	FoodID            uint   `json:"food_id" binding:"required"`
	Quantity          int    `json:"quantity" binding:"required"`
	CharacteristicIDs []uint `json:"characteristic_ids"`
}

type AddressRequest struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postal_code"`
	Reference  string `json:"reference"`
}

type PaymentRequest struct {
	Type       string `json:"type" binding:"required"`
	CardNumber string `json:"card_number"`
	HolderName string `json:"holder_name"`
	CVV        string `json:"cvv"`
	Expiry     string `json:"expiry"`
}

type PlaceOrderRequest struct {
	Items   []OrderLine    `json:"items" binding:"required"`
	Total   float64        `json:"total"`
	Address AddressRequest `json:"address" binding:"required"`
	Payment PaymentRequest `json:"payment" binding:"required"`
}

// LoggedItem is one line of the immutable snapshot written at placement.
type LoggedItem struct {
	FoodID          uint                   `json:"food_id"`
	Name            string                 `json:"name"`
	UnitPrice       float64                `json:"unit_price"`
	Quantity        int                    `json:"quantity"`
	Characteristics []LoggedCharacteristic `json:"characteristics,omitempty"`
}

type LoggedCharacteristic struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

// PlaceOrder creates a new order from the client's cart payload. The
// address is persisted as-is; the payment method is deduplicated by
// card number (cash is never stored); each ordered item has its stock
// decremented with a conditional update inside the same transaction.
func PlaceOrder(db *gorm.DB, actor middleware.Principal, req PlaceOrderRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("order has no items")
	}
	paymentType, ok := models.ParsePaymentType(req.Payment.Type)
	if !ok {
		return models.Order{}, errors.New("invalid payment type")
	}
	if paymentType != models.PaymentTypeCash && req.Payment.CardNumber == "" {
		return models.Order{}, errors.New("card number is required for card payments")
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var snapshot []LoggedItem

		for _, line := range req.Items {
			if line.Quantity <= 0 {
				return fmt.Errorf("invalid quantity for food %d", line.FoodID)
			}

			var food models.FoodItem
			if err := tx.First(&food, "id = ?", line.FoodID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: food %d", ErrNotFound, line.FoodID)
				}
				return err
			}

			// Conditional decrement so concurrent orders cannot oversell.
			res := tx.Model(&models.FoodItem{}).
				Where("id = ? AND stock >= ?", line.FoodID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, food.Name)
			}

			logged := LoggedItem{
				FoodID:    food.ID,
				Name:      food.Name,
				UnitPrice: food.Price,
				Quantity:  line.Quantity,
			}
			if len(line.CharacteristicIDs) > 0 {
				var chars []models.Characteristic
				if err := tx.Where("id IN ?", line.CharacteristicIDs).Find(&chars).Error; err != nil {
					return err
				}
				for _, ch := range chars {
					logged.Characteristics = append(logged.Characteristics, LoggedCharacteristic{
						ID:    ch.ID,
						Name:  ch.Name,
						Price: ch.Price,
					})
				}
			}
			snapshot = append(snapshot, logged)
		}

		address := models.Address{
			Country:    req.Address.Country,
			State:      req.Address.State,
			City:       req.Address.City,
			Street:     req.Address.Street,
			PostalCode: req.Address.PostalCode,
			Reference:  req.Address.Reference,
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		paymentID, err := persistPaymentMethod(tx, paymentType, req.Payment)
		if err != nil {
			return err
		}

		order = models.Order{
			Ref:             generateOrderRef(),
			ClientID:        actor.ID,
			ClientName:      actor.FullName(),
			Phone:           actor.Phone,
			AddressID:       address.ID,
			PaymentMethodID: paymentID,
			Total:           req.Total,
			Status:          models.OrderStatusInProgress,
			StartedAt:       time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		raw, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		return tx.Create(&models.OrderLog{OrderID: order.ID, Items: raw}).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	broadcastOrderEvent("order_placed", order)
	return order, nil
}

// persistPaymentMethod applies the dedup-on-reuse rule: cash is never
// stored, a known card number is overwritten in place, anything else is
// inserted. Returns the id to link on the order (nil for cash).
func persistPaymentMethod(tx *gorm.DB, paymentType models.PaymentType, req PaymentRequest) (*uint, error) {
	if paymentType == models.PaymentTypeCash {
		return nil, nil
	}

	var existing models.PaymentMethod
	err := tx.Where("card_number = ?", req.CardNumber).First(&existing).Error
	switch {
	case err == nil:
		existing.HolderName = req.HolderName
		existing.CVV = req.CVV
		existing.Expiry = req.Expiry
		existing.Type = paymentType
		if err := tx.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing.ID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		method := models.PaymentMethod{
			CardNumber: req.CardNumber,
			HolderName: req.HolderName,
			CVV:        req.CVV,
			Expiry:     req.Expiry,
			Type:       paymentType,
		}
		if err := tx.Create(&method).Error; err != nil {
			return nil, err
		}
		return &method.ID, nil
	default:
		return nil, err
	}
}

// ListOrders returns the orders the actor may see: clients only their
// own, couriers and admins everything. Addresses and payment methods
// come back in batched preloads rather than per-order lookups.
func ListOrders(db *gorm.DB, actor middleware.Principal) ([]models.Order, error) {
	query := db.Preload("Address").Preload("PaymentMethod").Order("started_at DESC")
	if actor.Role == models.RoleClient {
		query = query.Where("client_id = ?", actor.ID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order together with its placement snapshot.
func GetOrder(db *gorm.DB, orderID uint) (models.Order, []LoggedItem, error) {
	var order models.Order
	err := db.Preload("Address").Preload("PaymentMethod").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, nil, ErrNotFound
		}
		return models.Order{}, nil, err
	}

	var log models.OrderLog
	var items []LoggedItem
	if err := db.First(&log, "order_id = ?", order.ID).Error; err == nil {
		if err := json.Unmarshal(log.Items, &items); err != nil {
			return models.Order{}, nil, err
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, nil, err
	}
	return order, items, nil
}

// -------- Handlers --------

// POST /orders (client)
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, middleware.CurrentUser(c), req)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, ErrInsufficientStock):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := ListOrders(db, middleware.CurrentUser(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderID
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		order, items, err := GetOrder(db, uint(id))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
	}
}
