package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"hos-delivery/internal/delivery"
	"hos-delivery/internal/locations"
	"hos-delivery/internal/pricing"
	"hos-delivery/internal/quotecache"
)

const msgCalculateFailed = "Failed to calculate delivery cost"

// Engine is what the delivery routes need from *delivery.Engine.
type Engine interface {
	Calculate(req delivery.Request) (delivery.Quote, error)
	FreeShipping(subtotal float64) bool
	Table() *locations.Table
	Now() time.Time
}

// Delivery serves the public /delivery routes.
type Delivery struct {
	engine Engine
	cache  quotecache.Cache
}

// NewDelivery wires the handlers. A nil cache disables caching.
func NewDelivery(engine Engine, cache quotecache.Cache) *Delivery {
	if cache == nil {
		cache = quotecache.Nop{}
	}
	return &Delivery{engine: engine, cache: cache}
}

// Register mounts the routes on r.
func (d *Delivery) Register(r gin.IRouter) {
	g := r.Group("/delivery")
	g.POST("/calculate", d.Calculate)
	g.GET("/locations", d.Locations)
	g.GET("/check/:state", d.Check)
	g.GET("/check/:state/:city", d.Check)
}

type calculateRequest struct {
	State       string   `json:"state"`
	City        string   `json:"city"`
	SpeedOption string   `json:"speedOption"`
	OrderTotal  *float64 `json:"orderTotal"`
}

// Calculate handles POST /delivery/calculate.
func (d *Delivery) Calculate(c *gin.Context) {
	var body calculateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(body.State) == "" {
		writeError(c, http.StatusBadRequest, "State is required")
		return
	}
	req := delivery.Request{
		State:       body.State,
		City:        body.City,
		SpeedOption: body.SpeedOption,
	}
	if req.SpeedOption == "" {
		req.SpeedOption = pricing.Standard
	}
	if body.OrderTotal != nil {
		req.OrderTotal = *body.OrderTotal
	}

	key := quotecache.Key(req, d.engine.FreeShipping(req.OrderTotal), d.engine.Now())
	if q, ok := d.cache.Get(c.Request.Context(), key); ok {
		writeData(c, http.StatusOK, echoCity(q, req.City))
		return
	}

	q, err := d.engine.Calculate(req)
	if err != nil {
		code, msg := classify(err)
		if code == http.StatusInternalServerError {
			log.Printf("delivery calculate %s/%s: %v", req.State, req.City, err)
		}
		writeError(c, code, msg)
		return
	}
	d.cache.Set(c.Request.Context(), key, q)
	writeData(c, http.StatusOK, q)
}

// echoCity puts the caller's spelling of the city back on a cached quote.
// The cached value is shared, so Route is copied before it is changed.
func echoCity(q delivery.Quote, city string) delivery.Quote {
	city = strings.TrimSpace(city)
	if city == "" || q.Location.City == city {
		return q
	}
	q.Location.City = city
	q.Route = append([]delivery.Hop(nil), q.Route...)
	if n := len(q.Route); n > 0 {
		q.Route[n-1].Location = city
	}
	return q
}

// Locations handles GET /delivery/locations.
func (d *Delivery) Locations(c *gin.Context) {
	writeData(c, http.StatusOK, d.engine.Table().Summaries())
}

type checkResponse struct {
	Success   bool   `json:"success"`
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Check handles GET /delivery/check/:state/:city?.
func (d *Delivery) Check(c *gin.Context) {
	state := strings.TrimSpace(c.Param("state"))
	city := strings.TrimSpace(c.Param("city"))
	available := d.engine.Table().IsServiceable(state, city)
	c.JSON(http.StatusOK, checkResponse{
		Success:   true,
		Available: available,
		Message:   availabilityMessage(available, state, city),
	})
}

func availabilityMessage(available bool, state, city string) string {
	place := state
	if city != "" {
		place = fmt.Sprintf("%s, %s", city, state)
	}
	if available {
		return fmt.Sprintf("Delivery available to %s", place)
	}
	return fmt.Sprintf("Delivery not available to %s", place)
}

// classify maps engine errors to a status and a client-safe message.
func classify(err error) (int, string) {
	var nf *delivery.LocationNotFoundError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound, nf.Error()
	case errors.Is(err, delivery.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, msgCalculateFailed
	}
}
