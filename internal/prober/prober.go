package prober

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusError       Status = "error"
)

// Target is one retailer search endpoint. URLTemplate has a single %s
// slot for the identifier.
type Target struct {
	Name        string `json:"name"`
	URLTemplate string `json:"url_template"`
}

// Result is the outcome of one probe. Status reflects reachability of the
// search URL, not whether the retailer actually stocks the SKU.
type Result struct {
	Retailer string `json:"retailer"`
	URL      string `json:"url"`
	Status   Status `json:"status"`
}

var ErrEmptyIdentifier = errors.New("identifier required")

const (
	requestTimeout = 10 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Prober struct {
	Targets []Target
	Client  *http.Client
	Log     *zap.Logger
	Metrics *Metrics
}

func New(targets []Target, log *zap.Logger, m *Metrics) *Prober {
	return &Prober{
		Targets: targets,
		Client:  &http.Client{Timeout: requestTimeout},
		Log:     log,
		Metrics: m,
	}
}

// ProbeAll issues one GET per target concurrently and returns one result
// per target in submission order. An empty identifier is rejected before
// any request is dispatched. A failing target never aborts or delays its
// siblings; each probe has its own fixed timeout and there are no retries.
func (p *Prober) ProbeAll(ctx context.Context, identifier string) ([]Result, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrEmptyIdentifier
	}

	results := make([]Result, len(p.Targets))

	var wg sync.WaitGroup
	for i, t := range p.Targets {
		wg.Add(1)
		go func(i int, t Target) {
			defer wg.Done()
			results[i] = p.probe(ctx, t, identifier)
		}(i, t)
	}
	wg.Wait()

	return results, nil
}

func (p *Prober) probe(ctx context.Context, t Target, identifier string) Result {
	u := fmt.Sprintf(t.URLTemplate, url.QueryEscape(identifier))
	res := Result{Retailer: t.Name, URL: u}

	start := time.Now()
	defer func() {
		p.Metrics.observe(t.Name, res.Status, time.Since(start))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		res.Status = StatusError
		return res
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		if p.Log != nil {
			p.Log.Warn("probe failed", zap.String("retailer", t.Name), zap.Error(err))
		}
		res.Status = StatusError
		return res
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		res.Status = StatusAvailable
	} else {
		res.Status = StatusUnavailable
	}
	return res
}
