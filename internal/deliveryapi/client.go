package deliveryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"hos-delivery/internal/delivery"
	"hos-delivery/internal/locations"
)

// Client calls a running delivery service. The checkout side uses it to
// quote a cart before the order is placed.
type Client interface {
	Calculate(ctx context.Context, req CalculateRequest) (delivery.Quote, error)
	Locations(ctx context.Context) ([]locations.RegionSummary, error)
	Check(ctx context.Context, state, city string) (Availability, error)
}

type client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *client) Calculate(ctx context.Context, in CalculateRequest) (delivery.Quote, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return delivery.Quote{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/delivery/calculate", bytes.NewReader(body))
	if err != nil {
		return delivery.Quote{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	var q delivery.Quote
	if err := c.do(req, &q); err != nil {
		return delivery.Quote{}, err
	}
	return q, nil
}

func (c *client) Locations(ctx context.Context) ([]locations.RegionSummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/delivery/locations", nil)
	if err != nil {
		return nil, err
	}
	var out []locations.RegionSummary
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Check(ctx context.Context, state, city string) (Availability, error) {
	if strings.TrimSpace(state) == "" {
		return Availability{}, errors.New("state is required")
	}
	path := "/delivery/check/" + url.PathEscape(state)
	if city != "" {
		path += "/" + url.PathEscape(city)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return Availability{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Availability{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Availability{}, fmt.Errorf("check endpoint %d: %s", resp.StatusCode, string(b))
	}
	var a Availability
	if err := json.NewDecoder(resp.Body).Decode(&a); err != nil {
		return Availability{}, err
	}
	return a, nil
}

// do sends req and unpacks the {success, data, error} envelope into out.
func (c *client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: status %d: %w", req.Method, req.URL.Path, resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	return json.Unmarshal(env.Data, out)
}
