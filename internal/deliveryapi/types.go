package deliveryapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// CalculateRequest is the body of POST /delivery/calculate. A nil OrderTotal
// is treated as zero by the server.
type CalculateRequest struct {
	State       string   `json:"state"`
	City        string   `json:"city,omitempty"`
	SpeedOption string   `json:"speedOption,omitempty"`
	OrderTotal  *float64 `json:"orderTotal,omitempty"`
}

// Availability is the answer of the serviceability check.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// APIError is a non-success answer from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("delivery service: %s", http.StatusText(e.Status))
	}
	return fmt.Sprintf("delivery service %d: %s", e.Status, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}
