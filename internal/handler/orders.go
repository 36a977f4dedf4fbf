package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hos-delivery/internal/orders"
)

// Finalizer is what the order routes need from *orders.Finalizer.
type Finalizer interface {
	Finalize(ctx context.Context, orderID string, in orders.FinalizeInput) (orders.Record, error)
	Get(ctx context.Context, orderID string) (orders.Record, error)
}

// Orders serves the checkout-side delivery routes.
type Orders struct {
	finalizer Finalizer
}

func NewOrders(f Finalizer) *Orders {
	return &Orders{finalizer: f}
}

// Register mounts the routes on r.
func (o *Orders) Register(r gin.IRouter) {
	r.POST("/orders/:id/delivery", o.Finalize)
	r.GET("/orders/:id/delivery", o.Get)
}

// Finalize handles POST /orders/:id/delivery.
func (o *Orders) Finalize(c *gin.Context) {
	var in orders.FinalizeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	rec, err := o.finalizer.Finalize(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		code, msg := classify(err)
		if code == http.StatusInternalServerError {
			log.Printf("order %s delivery: %v", c.Param("id"), err)
		}
		writeError(c, code, msg)
		return
	}
	writeData(c, http.StatusOK, rec)
}

// Get handles GET /orders/:id/delivery.
func (o *Orders) Get(c *gin.Context) {
	rec, err := o.finalizer.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, orders.ErrNotFound) {
			writeError(c, http.StatusNotFound, "Order delivery not found")
			return
		}
		log.Printf("order %s delivery lookup: %v", c.Param("id"), err)
		writeError(c, http.StatusInternalServerError, "Failed to load order delivery")
		return
	}
	writeData(c, http.StatusOK, rec)
}
