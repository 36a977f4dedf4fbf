package orders

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"hos-delivery/internal/delivery"
	"hos-delivery/internal/events"
	"hos-delivery/internal/pricing"
)

// Calculator is the part of the delivery engine finalization needs.
type Calculator interface {
	Calculate(req delivery.Request) (delivery.Quote, error)
}

// FinalizeInput is the shipping data of a placed order.
type FinalizeInput struct {
	State      string  `json:"state"`
	City       string  `json:"city"`
	OrderTotal float64 `json:"orderTotal"`
}

// Finalizer prices delivery for an order at the standard tier and stores the
// result on the order.
type Finalizer struct {
	calc      Calculator
	store     Store
	publisher events.Publisher
	now       func() time.Time
}

func NewFinalizer(calc Calculator, store Store, publisher events.Publisher) *Finalizer {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Finalizer{calc: calc, store: store, publisher: publisher, now: time.Now}
}

// Finalize computes and persists the delivery record. Engine errors are
// returned unchanged so callers can map them. A failed event publish is
// logged and does not fail the call.
func (f *Finalizer) Finalize(ctx context.Context, orderID string, in FinalizeInput) (Record, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Record{}, fmt.Errorf("%w: order id is required", delivery.ErrInvalidInput)
	}
	q, err := f.calc.Calculate(delivery.Request{
		State:       in.State,
		City:        in.City,
		SpeedOption: pricing.Standard,
		OrderTotal:  in.OrderTotal,
	})
	if err != nil {
		return Record{}, err
	}
	now := f.now().UTC()
	rec, err := f.store.Save(ctx, Record{
		ID:                    uuid.NewString(),
		OrderID:               orderID,
		SpeedOption:           q.SpeedOption,
		DeliveryCost:          q.DeliveryCost,
		OriginalCost:          q.OriginalCost,
		IsFreeShipping:        q.IsFreeShipping,
		DeliveryTime:          q.DeliveryTime,
		EstimatedDeliveryDate: q.EstimatedDeliveryDate,
		CustomerLocation: CustomerLocation{
			State:    q.Location.State,
			City:     q.Location.City,
			Distance: q.Location.Distance,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Record{}, err
	}
	if err := f.publisher.Publish(ctx, events.TopicOrderDeliveryFinalized, rec.OrderID, rec); err != nil {
		log.Printf("warn: order %s delivery event: %v", rec.OrderID, err)
	}
	return rec, nil
}

// Get returns the stored delivery record of an order.
func (f *Finalizer) Get(ctx context.Context, orderID string) (Record, error) {
	return f.store.Get(ctx, strings.TrimSpace(orderID))
}
