package httputil

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Transport is an http.RoundTripper that waits on a per-host rate limiter
// and stamps a User-Agent before sending.
//
// Each upstream host gets its own limiter so a burst against one provider
// does not starve the others.
type Transport struct {
	Base      http.RoundTripper
	UserAgent string
	Limit     rate.Limit
	Burst     int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewTransport builds a Transport allowing perSecond requests per host.
func NewTransport(base http.RoundTripper, perSecond float64, burst int) *Transport {
	if burst < 1 {
		burst = 1
	}
	return &Transport{
		Base:      base,
		UserAgent: DefaultUserAgent,
		Limit:     rate.Limit(perSecond),
		Burst:     burst,
		limiters:  make(map[string]*rate.Limiter),
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter(req.URL.Host).Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	// RoundTrippers must not modify the caller's request.
	if t.UserAgent != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.UserAgent)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

func (t *Transport) limiter(host string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.limiters == nil {
		t.limiters = make(map[string]*rate.Limiter)
	}
	l, ok := t.limiters[host]
	if !ok {
		limit := t.Limit
		if limit <= 0 {
			limit = rate.Inf
		}
		l = rate.NewLimiter(limit, t.Burst)
		t.limiters[host] = l
	}
	return l
}
