package prober_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"PriceDesk/internal/prober"
)

func okServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestProbeAll_EmptyIdentifierRejectedBeforeIO(t *testing.T) {
	var hits int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt64(&hits, 1)
	}))
	t.Cleanup(ts.Close)

	p := prober.New([]prober.Target{{Name: "A", URLTemplate: ts.URL + "/s?k=%s"}}, zap.NewNop(), nil)

	_, err := p.ProbeAll(context.Background(), "   ")
	if !errors.Is(err, prober.ErrEmptyIdentifier) {
		t.Fatalf("err = %v, want ErrEmptyIdentifier", err)
	}
	if n := atomic.LoadInt64(&hits); n != 0 {
		t.Fatalf("observed %d requests, want 0", n)
	}
}

func TestProbeAll_AllTransportErrors(t *testing.T) {
	// A server that is already closed yields connection-refused for every
	// target.
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	targets := []prober.Target{
		{Name: "A", URLTemplate: dead.URL + "/a?k=%s"},
		{Name: "B", URLTemplate: dead.URL + "/b?k=%s"},
		{Name: "C", URLTemplate: dead.URL + "/c?k=%s"},
	}
	p := prober.New(targets, zap.NewNop(), nil)

	results, err := p.ProbeAll(context.Background(), "W1")
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}
	if len(results) != len(targets) {
		t.Fatalf("len = %d, want %d", len(results), len(targets))
	}
	for i, res := range results {
		if res.Retailer != targets[i].Name {
			t.Errorf("results[%d].Retailer = %q, want %q", i, res.Retailer, targets[i].Name)
		}
		if res.Status != prober.StatusError {
			t.Errorf("results[%d].Status = %q, want error", i, res.Status)
		}
	}
}

func TestProbeAll_PartialFailureIsolated(t *testing.T) {
	fast := okServer(t)
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(slow.Close)

	p := &prober.Prober{
		Targets: []prober.Target{
			{Name: "A", URLTemplate: fast.URL + "/a?k=%s"},
			{Name: "B", URLTemplate: slow.URL + "/b?k=%s"},
			{Name: "C", URLTemplate: fast.URL + "/c?k=%s"},
		},
		Client: &http.Client{Timeout: 100 * time.Millisecond},
		Log:    zap.NewNop(),
	}

	results, err := p.ProbeAll(context.Background(), "W1")
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}

	want := []prober.Status{prober.StatusAvailable, prober.StatusError, prober.StatusAvailable}
	if len(results) != len(want) {
		t.Fatalf("len = %d, want %d", len(results), len(want))
	}
	for i, res := range results {
		if res.Status != want[i] {
			t.Errorf("results[%d].Status = %q, want %q", i, res.Status, want[i])
		}
	}
}

func TestProbeAll_NonSuccessIsUnavailable(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(notFound.Close)

	p := prober.New([]prober.Target{{Name: "A", URLTemplate: notFound.URL + "/s?k=%s"}}, zap.NewNop(), nil)

	results, err := p.ProbeAll(context.Background(), "W1")
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}
	if results[0].Status != prober.StatusUnavailable {
		t.Fatalf("status = %q, want unavailable", results[0].Status)
	}
}

func TestProbeAll_SubmissionOrderDespiteCompletionOrder(t *testing.T) {
	// First target is the slowest; results must still come back in
	// submission order.
	delays := []time.Duration{200 * time.Millisecond, 50 * time.Millisecond, 0}

	var servers []*httptest.Server
	for _, d := range delays {
		d := d
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(d)
		}))
		t.Cleanup(ts.Close)
		servers = append(servers, ts)
	}

	targets := []prober.Target{
		{Name: "slowest", URLTemplate: servers[0].URL + "/s?k=%s"},
		{Name: "slower", URLTemplate: servers[1].URL + "/s?k=%s"},
		{Name: "fastest", URLTemplate: servers[2].URL + "/s?k=%s"},
	}
	p := prober.New(targets, zap.NewNop(), nil)

	results, err := p.ProbeAll(context.Background(), "W1")
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}
	for i, res := range results {
		if res.Retailer != targets[i].Name {
			t.Fatalf("results[%d].Retailer = %q, want %q", i, res.Retailer, targets[i].Name)
		}
		if res.Status != prober.StatusAvailable {
			t.Errorf("results[%d].Status = %q, want available", i, res.Status)
		}
	}
}

func TestProbeAll_SubstitutesAndEscapesIdentifier(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("k")
	}))
	t.Cleanup(ts.Close)

	p := prober.New([]prober.Target{{Name: "A", URLTemplate: ts.URL + "/s?k=%s"}}, zap.NewNop(), nil)

	results, err := p.ProbeAll(context.Background(), "a b&c")
	if err != nil {
		t.Fatalf("ProbeAll: %v", err)
	}
	if gotQuery != "a b&c" {
		t.Errorf("query = %q, want %q", gotQuery, "a b&c")
	}
	if results[0].URL == "" {
		t.Errorf("result URL missing")
	}
}
