package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"hos-delivery/internal/delivery"
	"hos-delivery/internal/handler"
	"hos-delivery/internal/locations"
	"hos-delivery/internal/pricing"
)

func newService(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	e, err := delivery.New(locations.Nigeria(), pricing.Default())
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	handler.NewDelivery(e, nil).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunQuoteLocal(t *testing.T) {
	var out bytes.Buffer
	err := runQuote(context.Background(), &out, quoteOptions{State: "Lagos", City: "Lekki", Speed: "express"})
	if err != nil {
		t.Fatalf("runQuote: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Lekki, Lagos (25 km)") || !strings.Contains(s, "* Express") {
		t.Fatalf("unexpected output:\n%s", s)
	}
	if err := runQuote(context.Background(), &out, quoteOptions{State: "Atlantis"}); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}

func TestRunQuoteRemote(t *testing.T) {
	srv := newService(t)

	var out bytes.Buffer
	err := runQuote(context.Background(), &out, quoteOptions{State: "Kano", Speed: "standard", Total: 60000, ServerURL: srv.URL})
	if err != nil {
		t.Fatalf("runQuote: %v", err)
	}
	if !strings.Contains(out.String(), "FREE (was NGN 4200)") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestRunCheck(t *testing.T) {
	var out bytes.Buffer
	if err := runCheck(context.Background(), &out, "", "Oyo", "Ibadan"); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if strings.TrimSpace(out.String()) != "Delivery available to Ibadan, Oyo" {
		t.Fatalf("got %q", out.String())
	}
	if err := runCheck(context.Background(), &out, "", "Atlantis", ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunRoute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hubs.yaml")
	body := "Lagos:\n  Ibadan: 130\nIbadan:\n  Ilorin: 170\nIlorin:\nKano:\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := runRoute(&out, path, "Lagos", "Ilorin"); err != nil {
		t.Fatalf("runRoute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "Lagos -> Ibadan -> Ilorin (300 km)" {
		t.Fatalf("got %q", out.String())
	}
	if err := runRoute(&out, path, "Lagos", "Kano"); err == nil {
		t.Fatalf("expected no route")
	}
}

func TestRunLocations(t *testing.T) {
	var out bytes.Buffer
	if err := runLocations(context.Background(), &out, ""); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `"state": "Lagos"`) {
		t.Fatalf("missing Lagos in output")
	}
}

func TestRunCheckRemote(t *testing.T) {
	srv := newService(t)
	var out bytes.Buffer
	if err := runCheck(context.Background(), &out, srv.URL, "Akwa Ibom", "Uyo"); err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if strings.TrimSpace(out.String()) != "Delivery available to Uyo, Akwa Ibom" {
		t.Fatalf("got %q", out.String())
	}
	if err := runCheck(context.Background(), &out, srv.URL, "Atlantis", ""); err == nil {
		t.Fatalf("expected error")
	}
	if err := runCheck(context.Background(), &out, "http://127.0.0.1:1", "Lagos", ""); err == nil {
		t.Fatalf("expected error for unreachable server")
	}
}

func TestRunLocationsRemote(t *testing.T) {
	srv := newService(t)
	var out bytes.Buffer
	if err := runLocations(context.Background(), &out, srv.URL); err != nil {
		t.Fatalf("runLocations: %v", err)
	}
	var rows []locations.RegionSummary
	if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != len(locations.Nigeria().Regions()) {
		t.Fatalf("got %d regions", len(rows))
	}
}
