package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hos-delivery/internal/config"
	"hos-delivery/internal/delivery"
	"hos-delivery/internal/deliveryapi"
	"hos-delivery/internal/locations"
	"hos-delivery/internal/pricing"
	"hos-delivery/internal/routing"
	"hos-delivery/internal/server"
)

func runServe(ctx context.Context, configPath, port string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if port != "" {
		cfg.Port = port
	}
	return server.Run(ctx, cfg)
}

type quoteOptions struct {
	State       string
	City        string
	Speed       string
	Total       float64
	ServerURL   string
	PricingFile string
}

func runQuote(ctx context.Context, w io.Writer, opts quoteOptions) error {
	if opts.ServerURL != "" {
		c := newAPIClient(opts.ServerURL)
		total := opts.Total
		q, err := c.Calculate(ctx, deliveryapi.CalculateRequest{
			State:       opts.State,
			City:        opts.City,
			SpeedOption: opts.Speed,
			OrderTotal:  &total,
		})
		if err != nil {
			return err
		}
		return printQuote(w, q)
	}

	policy := pricing.Default()
	if opts.PricingFile != "" {
		p, err := pricing.Load(opts.PricingFile)
		if err != nil {
			return err
		}
		policy = p
	}
	engine, err := delivery.New(locations.Nigeria(), policy)
	if err != nil {
		return err
	}
	q, err := engine.Calculate(delivery.Request{
		State:       opts.State,
		City:        opts.City,
		SpeedOption: opts.Speed,
		OrderTotal:  opts.Total,
	})
	if err != nil {
		return err
	}
	return printQuote(w, q)
}

func printQuote(w io.Writer, q delivery.Quote) error {
	place := q.Location.State
	if q.Location.City != "" {
		place = q.Location.City + ", " + place
	}
	fmt.Fprintf(w, "%s (%d km)\n", place, q.Location.Distance)
	for _, o := range q.SpeedOptions {
		marker := " "
		if o.Key == q.SpeedOption {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-16s %s  %s\n", marker, o.Name, formatNaira(o.Cost, o.OriginalCost), o.DeliveryTime)
	}
	fmt.Fprintf(w, "estimated delivery: %s\n", q.EstimatedDeliveryDate.Format("Mon 2 Jan 2006"))
	return nil
}

func formatNaira(cost, original int64) string {
	if cost == 0 && original > 0 {
		return fmt.Sprintf("FREE (was NGN %d)", original)
	}
	return fmt.Sprintf("NGN %d", cost)
}

func runLocations(ctx context.Context, w io.Writer, serverURL string) error {
	rows := locations.Nigeria().Summaries()
	if serverURL != "" {
		var err error
		if rows, err = newAPIClient(serverURL).Locations(ctx); err != nil {
			return err
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func runCheck(ctx context.Context, w io.Writer, serverURL, state, city string) error {
	place := state
	if city != "" {
		place = city + ", " + state
	}
	available := locations.Nigeria().IsServiceable(state, city)
	if serverURL != "" {
		a, err := newAPIClient(serverURL).Check(ctx, state, city)
		if err != nil {
			return err
		}
		available = a.Available
	}
	if available {
		fmt.Fprintf(w, "Delivery available to %s\n", place)
		return nil
	}
	return fmt.Errorf("delivery not available to %s", place)
}

func newAPIClient(serverURL string) deliveryapi.Client {
	return deliveryapi.New(serverURL, &http.Client{Timeout: 8 * time.Second})
}

func runRoute(w io.Writer, graphPath, from, to string) error {
	g, err := routing.LoadGraph(graphPath)
	if err != nil {
		return err
	}
	p := routing.FindShortestPath(from, to, g)
	if !p.Found() {
		return fmt.Errorf("no route from %s to %s", from, to)
	}
	fmt.Fprintf(w, "%s (%g km)\n", strings.Join(p.Nodes, " -> "), p.Distance)
	return nil
}
