package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"hos-delivery/internal/delivery"
	"hos-delivery/internal/locations"
	"hos-delivery/internal/pricing"
	"hos-delivery/internal/quotecache"
)

func init() { gin.SetMode(gin.TestMode) }

var fixedNow = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newEngine(t *testing.T) *delivery.Engine {
	t.Helper()
	e, err := delivery.New(locations.Nigeria(), pricing.Default(),
		delivery.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

// countingEngine wraps an engine and counts Calculate calls.
type countingEngine struct {
	*delivery.Engine
	calls int
	err   error
}

func (c *countingEngine) Calculate(req delivery.Request) (delivery.Quote, error) {
	c.calls++
	if c.err != nil {
		return delivery.Quote{}, c.err
	}
	return c.Engine.Calculate(req)
}

func newRouter(e Engine, cache quotecache.Cache) *gin.Engine {
	r := gin.New()
	NewDelivery(e, cache).Register(r)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type quoteEnvelope struct {
	Success bool           `json:"success"`
	Data    delivery.Quote `json:"data"`
	Error   string         `json:"error"`
}

func decodeQuote(t *testing.T, rr *httptest.ResponseRecorder) quoteEnvelope {
	t.Helper()
	var got quoteEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v body: %s", err, rr.Body.String())
	}
	return got
}

func TestCalculate_OK(t *testing.T) {
	r := newRouter(newEngine(t), nil)
	rr := do(r, http.MethodPost, "/delivery/calculate", `{"state":"Lagos","city":"Lekki","orderTotal":10000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	got := decodeQuote(t, rr)
	if !got.Success || got.Data.SpeedOption != pricing.Standard {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if got.Data.DeliveryCost != 1500 || got.Data.IsFreeShipping {
		t.Fatalf("unexpected cost: %+v", got.Data)
	}
	if got.Data.Location.Distance != 25 || len(got.Data.SpeedOptions) != 3 {
		t.Fatalf("unexpected quote: %+v", got.Data)
	}
}

func TestCalculate_FreeShippingAndExpress(t *testing.T) {
	r := newRouter(newEngine(t), nil)
	rr := do(r, http.MethodPost, "/delivery/calculate", `{"state":"Kano","speedOption":"express","orderTotal":50000}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	got := decodeQuote(t, rr).Data
	if !got.IsFreeShipping || got.DeliveryCost != 0 || got.OriginalCost != 7560 {
		t.Fatalf("unexpected quote: %+v", got)
	}
}

func TestCalculate_Validation(t *testing.T) {
	r := newRouter(newEngine(t), nil)
	cases := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"malformed", `{"state":`, http.StatusBadRequest, "Invalid request body"},
		{"missing state", `{"city":"Ikeja"}`, http.StatusBadRequest, "State is required"},
		{"blank state", `{"state":"   "}`, http.StatusBadRequest, "State is required"},
		{"negative total", `{"state":"Lagos","orderTotal":-1}`, http.StatusBadRequest, ""},
		{"unknown state", `{"state":"Atlantis","city":"Core"}`, http.StatusNotFound, "Location not found: Atlantis, Core"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(r, http.MethodPost, "/delivery/calculate", tc.body)
			if rr.Code != tc.code {
				t.Fatalf("expected %d, got %d body: %s", tc.code, rr.Code, rr.Body.String())
			}
			got := decodeQuote(t, rr)
			if got.Success {
				t.Fatalf("expected success=false")
			}
			if tc.msg != "" && got.Error != tc.msg {
				t.Fatalf("expected %q, got %q", tc.msg, got.Error)
			}
		})
	}
}

func TestCalculate_InternalErrorIsGeneric(t *testing.T) {
	e := &countingEngine{Engine: newEngine(t), err: errors.New("pricing exploded")}
	rr := do(newRouter(e, nil), http.MethodPost, "/delivery/calculate", `{"state":"Lagos"}`)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	if got := decodeQuote(t, rr); got.Error != "Failed to calculate delivery cost" {
		t.Fatalf("leaked error: %q", got.Error)
	}
}

func TestCalculate_UsesCache(t *testing.T) {
	e := &countingEngine{Engine: newEngine(t)}
	r := newRouter(e, quotecache.NewMemory(16, time.Minute))
	body := `{"state":"Oyo","city":"Ibadan","orderTotal":100}`
	for i := 0; i < 3; i++ {
		if rr := do(r, http.MethodPost, "/delivery/calculate", body); rr.Code != http.StatusOK {
			t.Fatalf("status: %d", rr.Code)
		}
	}
	if e.calls != 1 {
		t.Fatalf("expected 1 engine call, got %d", e.calls)
	}
	// crossing the free-shipping threshold is a different quote
	do(r, http.MethodPost, "/delivery/calculate", `{"state":"Oyo","city":"Ibadan","orderTotal":60000}`)
	if e.calls != 2 {
		t.Fatalf("expected 2 engine calls, got %d", e.calls)
	}
}

func TestCalculate_CacheFoldsCityCase(t *testing.T) {
	e := &countingEngine{Engine: newEngine(t)}
	r := newRouter(e, quotecache.NewMemory(16, time.Minute))
	for _, city := range []string{"Lekki", "lekki", "Lekki"} {
		rr := do(r, http.MethodPost, "/delivery/calculate", `{"state":"Lagos","city":"`+city+`"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("status: %d", rr.Code)
		}
		got := decodeQuote(t, rr).Data
		if got.Location.City != city || got.Route[len(got.Route)-1].Location != city {
			t.Fatalf("city %q not echoed: %+v %+v", city, got.Location, got.Route)
		}
		if got.DeliveryCost != 1500 || got.Location.Distance != 25 {
			t.Fatalf("unexpected quote for %q: %+v", city, got)
		}
	}
	if e.calls != 1 {
		t.Fatalf("expected 1 engine call, got %d", e.calls)
	}
}

func TestCalculate_ErrorsNotCached(t *testing.T) {
	e := &countingEngine{Engine: newEngine(t)}
	cache := quotecache.NewMemory(16, time.Minute)
	r := newRouter(e, cache)
	do(r, http.MethodPost, "/delivery/calculate", `{"state":"Atlantis"}`)
	do(r, http.MethodPost, "/delivery/calculate", `{"state":"Atlantis"}`)
	if e.calls != 2 || cache.Len() != 0 {
		t.Fatalf("calls=%d cached=%d", e.calls, cache.Len())
	}
}

func TestLocations(t *testing.T) {
	rr := do(newRouter(newEngine(t), nil), http.MethodGet, "/delivery/locations", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	var got struct {
		Success bool                      `json:"success"`
		Data    []locations.RegionSummary `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Success || len(got.Data) != len(locations.Nigeria().Regions()) {
		t.Fatalf("unexpected locations: %d", len(got.Data))
	}
	var lagos *locations.RegionSummary
	for i := range got.Data {
		if got.Data[i].State == "Lagos" {
			lagos = &got.Data[i]
		}
	}
	if lagos == nil || len(lagos.Cities) == 0 || lagos.BaseDistance != 0 {
		t.Fatalf("unexpected Lagos row: %+v", lagos)
	}
}

func TestCheck(t *testing.T) {
	r := newRouter(newEngine(t), nil)
	cases := []struct {
		path      string
		available bool
		msg       string
	}{
		{"/delivery/check/Lagos", true, "Delivery available to Lagos"},
		{"/delivery/check/Lagos/Lekki", true, "Delivery available to Lekki, Lagos"},
		{"/delivery/check/Lagos/Nowhere", true, "Delivery available to Nowhere, Lagos"},
		{"/delivery/check/Atlantis", false, "Delivery not available to Atlantis"},
	}
	for _, tc := range cases {
		rr := do(r, http.MethodGet, tc.path, "")
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.path, rr.Code)
		}
		var got checkResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		if !got.Success || got.Available != tc.available || got.Message != tc.msg {
			t.Fatalf("%s: unexpected %+v", tc.path, got)
		}
	}
}

func TestClassify(t *testing.T) {
	wrapped := errors.Join(errors.New("ctx"), &delivery.LocationNotFoundError{State: "X"})
	if code, msg := classify(wrapped); code != http.StatusNotFound || msg != "Location not found: X" {
		t.Fatalf("got %d %q", code, msg)
	}
	if code, _ := classify(context.Canceled); code != http.StatusInternalServerError {
		t.Fatalf("got %d", code)
	}
}
