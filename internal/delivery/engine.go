package delivery

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"hos-delivery/internal/locations"
	"hos-delivery/internal/pricing"
)

// HubName labels the origin hop of every route summary.
const HubName = "Hub"

// ErrInvalidInput is returned before any lookup when the request is malformed.
var ErrInvalidInput = errors.New("invalid delivery request")

// LocationNotFoundError reports a region unknown to the reference table.
type LocationNotFoundError struct {
	State string
	City  string
}

func (e *LocationNotFoundError) Error() string {
	if e.City != "" {
		return fmt.Sprintf("Location not found: %s, %s", e.State, e.City)
	}
	return fmt.Sprintf("Location not found: %s", e.State)
}

// Request is the input of Calculate.
type Request struct {
	State       string
	City        string
	SpeedOption string
	OrderTotal  float64
}

// Location is the resolved destination.
type Location struct {
	State    string `json:"state"`
	City     string `json:"city"`
	Distance int    `json:"distance"`
}

// TierOption is the cost and timing of one speed tier.
type TierOption struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	Cost         int64  `json:"cost"`
	OriginalCost int64  `json:"originalCost"`
	DeliveryTime string `json:"deliveryTime"`
	DaysMin      int    `json:"daysMin"`
	DaysMax      int    `json:"daysMax"`
	IsDefault    bool   `json:"isDefault"`
}

// TimeEstimate is a day range for a tier and distance.
type TimeEstimate struct {
	DaysMin int    `json:"daysMin"`
	DaysMax int    `json:"daysMax"`
	Text    string `json:"text"`
}

// DateRange is a projected delivery window. Estimated is the pessimistic bound.
type DateRange struct {
	Min       time.Time `json:"min"`
	Max       time.Time `json:"max"`
	Estimated time.Time `json:"estimated"`
}

// Hop is one leg of the route summary with cumulative distance.
type Hop struct {
	Location string `json:"location"`
	Distance int    `json:"distance"`
}

// Quote is the full delivery estimate.
type Quote struct {
	Location              Location     `json:"location"`
	SpeedOption           string       `json:"speedOption"`
	DeliveryCost          int64        `json:"deliveryCost"`
	OriginalCost          int64        `json:"originalCost"`
	IsFreeShipping        bool         `json:"isFreeShipping"`
	DeliveryTime          string       `json:"deliveryTime"`
	DaysMin               int          `json:"daysMin"`
	DaysMax               int          `json:"daysMax"`
	SpeedOptions          []TierOption `json:"speedOptions"`
	EstimatedDeliveryDate time.Time    `json:"estimatedDeliveryDate"`
	MinDeliveryDate       time.Time    `json:"minDeliveryDate"`
	MaxDeliveryDate       time.Time    `json:"maxDeliveryDate"`
	Route                 []Hop        `json:"route"`
}

// Engine computes quotes from a location table and a pricing config. It holds
// no mutable state and is safe for concurrent use.
type Engine struct {
	table *locations.Table
	cfg   pricing.Config
	now   func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New builds an engine. cfg must pass Validate; the engine keeps its own
// copy, so later changes to cfg have no effect.
func New(table *locations.Table, cfg pricing.Config, opts ...Option) (*Engine, error) {
	if table == nil {
		return nil, errors.New("delivery: nil location table")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{table: table, cfg: cfg.Clone(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Table returns the reference table the engine resolves against.
func (e *Engine) Table() *locations.Table { return e.table }

// Now is the engine clock.
func (e *Engine) Now() time.Time { return e.now() }

// BaseCost is the standard-tier cost for a distance, before free shipping.
func (e *Engine) BaseCost(distanceKm int) int64 {
	var cost int64
	zone, ok := e.cfg.ZoneFor(distanceKm)
	switch {
	case !ok:
		cost = int64(float64(distanceKm) * e.cfg.BaseRatePerKm)
	case zone.FlatFee > 0:
		cost = zone.FlatFee
	default:
		cost = int64(float64(distanceKm) * zone.RatePerKm)
	}
	if cost < e.cfg.MinimumFee {
		cost = e.cfg.MinimumFee
	}
	return cost
}

// CostForTier applies the tier multiplier to BaseCost. Unknown tiers price as
// the default tier.
func (e *Engine) CostForTier(distanceKm int, tier string) int64 {
	opt := e.cfg.Tier(tier)
	return int64(math.Round(float64(e.BaseCost(distanceKm)) * opt.CostMultiplier))
}

// FreeShipping reports whether the subtotal meets the free-shipping threshold.
func (e *Engine) FreeShipping(subtotal float64) bool {
	return subtotal >= e.cfg.FreeShippingThreshold
}

// TierOptions lists every configured tier in declared order.
func (e *Engine) TierOptions(distanceKm int, subtotal float64) []TierOption {
	free := e.FreeShipping(subtotal)
	out := make([]TierOption, 0, len(e.cfg.SpeedOptions))
	for _, o := range e.cfg.SpeedOptions {
		original := e.CostForTier(distanceKm, o.Key)
		cost := original
		if free {
			cost = 0
		}
		est := e.EstimateTime(distanceKm, o.Key)
		out = append(out, TierOption{
			Key:          o.Key,
			Name:         o.DisplayName,
			Cost:         cost,
			OriginalCost: original,
			DeliveryTime: est.Text,
			DaysMin:      est.DaysMin,
			DaysMax:      est.DaysMax,
			IsDefault:    o.IsDefault,
		})
	}
	return out
}

// EstimateTime derives the day range from the time band and a fixed per-tier
// adjustment: economy adds 2-3 days, express halves, anything else is
// standard.
func (e *Engine) EstimateTime(distanceKm int, tier string) TimeEstimate {
	base := e.cfg.BandFor(distanceKm).StandardDays
	var lo, hi int
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case pricing.Economy:
		lo, hi = base+2, base+3
	case pricing.Express:
		lo = max(1, base/2)
		hi = max(1, int(math.Ceil(float64(base)/1.5)))
	default:
		lo, hi = base, base+1
	}
	return TimeEstimate{DaysMin: lo, DaysMax: hi, Text: dayRangeText(lo, hi)}
}

// ProjectDates adds calendar days to now.
func (e *Engine) ProjectDates(distanceKm int, tier string, now time.Time) DateRange {
	est := e.EstimateTime(distanceKm, tier)
	maxDate := now.AddDate(0, 0, est.DaysMax)
	return DateRange{
		Min:       now.AddDate(0, 0, est.DaysMin),
		Max:       maxDate,
		Estimated: maxDate,
	}
}

// Calculate resolves the destination and assembles a full quote.
func (e *Engine) Calculate(req Request) (Quote, error) {
	state := strings.TrimSpace(req.State)
	city := strings.TrimSpace(req.City)
	if state == "" {
		return Quote{}, fmt.Errorf("%w: state is required", ErrInvalidInput)
	}
	if req.OrderTotal < 0 || math.IsNaN(req.OrderTotal) {
		return Quote{}, fmt.Errorf("%w: orderTotal must be a non-negative number", ErrInvalidInput)
	}

	resolved, ok := e.table.Resolve(state, city)
	if !ok {
		return Quote{}, &LocationNotFoundError{State: state, City: city}
	}
	distance := resolved.Distance

	options := e.TierOptions(distance, req.OrderTotal)
	selected, found := pickTier(options, req.SpeedOption)
	if !found {
		return Quote{}, fmt.Errorf("delivery: no default speed option configured")
	}
	dates := e.ProjectDates(distance, selected.Key, e.now())

	dest := city
	if dest == "" {
		dest = state
	}
	return Quote{
		Location:              Location{State: state, City: city, Distance: distance},
		SpeedOption:           selected.Key,
		DeliveryCost:          selected.Cost,
		OriginalCost:          selected.OriginalCost,
		IsFreeShipping:        e.FreeShipping(req.OrderTotal),
		DeliveryTime:          selected.DeliveryTime,
		DaysMin:               selected.DaysMin,
		DaysMax:               selected.DaysMax,
		SpeedOptions:          options,
		EstimatedDeliveryDate: dates.Estimated,
		MinDeliveryDate:       dates.Min,
		MaxDeliveryDate:       dates.Max,
		Route: []Hop{
			{Location: HubName, Distance: 0},
			{Location: dest, Distance: distance},
		},
	}, nil
}

func pickTier(options []TierOption, key string) (TierOption, bool) {
	k := strings.ToLower(strings.TrimSpace(key))
	for _, o := range options {
		if strings.ToLower(o.Key) == k {
			return o, true
		}
	}
	for _, o := range options {
		if o.IsDefault {
			return o, true
		}
	}
	return TierOption{}, false
}

func dayRangeText(lo, hi int) string {
	if lo == hi {
		if lo == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", lo)
	}
	return fmt.Sprintf("%d-%d days", lo, hi)
}
