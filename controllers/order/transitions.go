package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEYMISPAUL/master-delivery/middleware"
	"github.com/JEYMISPAUL/master-delivery/models"
)

// -------- Core Logic --------

// AcceptOrder claims an unassigned order for a courier. The claim is a
// conditional update (courier_id must still be null) and the
// one-active-order-per-courier check runs inside the same transaction,
// so two couriers cannot take the same order and one courier cannot
// hold two accepted orders at once.
func AcceptOrder(db *gorm.DB, actor middleware.Principal, orderID uint) (models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.CourierID != nil {
			return ErrOrderClaimed
		}

		var active int64
		err := tx.Model(&models.Order{}).
			Where("courier_id = ? AND status = ?", actor.ID, models.OrderStatusAccepted).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return ErrActiveOrder
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND courier_id IS NULL", orderID).
			Updates(map[string]interface{}{
				"courier_id":   actor.ID,
				"courier_name": actor.FullName(),
				"status":       models.OrderStatusAccepted,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost the race to another courier.
			return ErrOrderClaimed
		}

		return tx.First(&order, "id = ?", orderID).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	broadcastOrderEvent("order_accepted", order)
	return order, nil
}

// FinishOrder carries the two-step handoff confirmation: the assigned
// courier moves the order to pending, and the order's client confirms a
// pending order as completed. Both branches are kept exactly as the
// product defines them; anything else is denied without mutation.
func FinishOrder(db *gorm.DB, actor middleware.Principal, orderID uint) (models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	switch {
	case order.ClientID == actor.ID && order.Status == models.OrderStatusPending:
		now := time.Now()
		order.Status = models.OrderStatusCompleted
		order.EndedAt = &now
		if err := db.Model(&order).Updates(map[string]interface{}{
			"status":   models.OrderStatusCompleted,
			"ended_at": now,
		}).Error; err != nil {
			return models.Order{}, err
		}
	case order.CourierID != nil && *order.CourierID == actor.ID:
		order.Status = models.OrderStatusPending
		if err := db.Model(&order).Update("status", models.OrderStatusPending).Error; err != nil {
			return models.Order{}, err
		}
	default:
		return models.Order{}, fmt.Errorf("%w: cannot finish this order", ErrNotAllowed)
	}

	broadcastOrderEvent("order_finished", order)
	return order, nil
}

// CancelOrder marks the order cancelled with the given detail text. A
// courier may cancel any order and gets stamped on it; a client may
// only cancel their own.
func CancelOrder(db *gorm.DB, actor middleware.Principal, orderID uint, detail string) (models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":   models.OrderStatusCancelled,
		"detail":   detail,
		"ended_at": now,
	}

	switch {
	case actor.Role == models.RoleCourier:
		updates["courier_id"] = actor.ID
		updates["courier_name"] = actor.FullName()
		order.CourierID = &actor.ID
		order.CourierName = actor.FullName()
	case order.ClientID == actor.ID:
		// No courier stamp.
	default:
		return models.Order{}, fmt.Errorf("%w: cannot cancel someone else's order", ErrNotAllowed)
	}

	if err := db.Model(&order).Updates(updates).Error; err != nil {
		return models.Order{}, err
	}
	order.Status = models.OrderStatusCancelled
	order.Detail = detail
	order.EndedAt = &now

	broadcastOrderEvent("order_cancelled", order)
	return order, nil
}

// ReleaseOrder lets the assigned courier walk away: courier fields are
// cleared and the order goes back to in progress for someone else.
func ReleaseOrder(db *gorm.DB, actor middleware.Principal, orderID uint) (models.Order, error) {
	var order models.Order
	if err := db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}

	if order.CourierID == nil || *order.CourierID != actor.ID {
		return models.Order{}, fmt.Errorf("%w: you can only release an order you accepted", ErrNotAllowed)
	}

	if err := db.Model(&order).Updates(map[string]interface{}{
		"courier_id":   nil,
		"courier_name": "",
		"status":       models.OrderStatusInProgress,
	}).Error; err != nil {
		return models.Order{}, err
	}
	order.CourierID = nil
	order.CourierName = ""
	order.Status = models.OrderStatusInProgress

	broadcastOrderEvent("order_released", order)
	return order, nil
}

// -------- Handlers --------

func transitionHandler(db *gorm.DB, run func(*gorm.DB, middleware.Principal, uint) (models.Order, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		order, err := run(db, middleware.CurrentUser(c), uint(id))
		if err != nil {
			writeTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrOrderClaimed), errors.Is(err, ErrActiveOrder):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
	}
}

// PUT /orders/:orderID/accept (courier)
func AcceptOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return transitionHandler(db, AcceptOrder)
}

// PUT /orders/:orderID/finish (client or courier)
func FinishOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return transitionHandler(db, FinishOrder)
}

// PUT /orders/:orderID/release (courier)
func ReleaseOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return transitionHandler(db, ReleaseOrder)
}

type cancelOrderRequest struct {
	Detail string `json:"detail"`
}

// PUT /orders/:orderID/cancel (client or courier)
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("orderID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req cancelOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := CancelOrder(db, middleware.CurrentUser(c), uint(id), req.Detail)
		if err != nil {
			writeTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
