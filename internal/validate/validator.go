// Package validate probes evidence URLs for accessibility.
//
// This stage is optional: a search result can point at a page that has
// since died, and a dead link makes a weak source for a verdict. When
// enabled, unreachable evidence is flagged so synthesis prefers live
// sources; nothing is removed from the evidence list.
package validate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/veridoc/veridoc/internal/model"
	"github.com/veridoc/veridoc/internal/util"
	"github.com/veridoc/veridoc/internal/worker"
)

const maxRetries = 3

// sleepFunc is the sleep function used between retries (injectable for tests)
var sleepFunc = time.Sleep

// Validator checks evidence links concurrently
type Validator struct {
	httpClient *http.Client
	maxWorkers int
	userAgent  string
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
}

// NewValidator creates a new validator
func NewValidator(timeout time.Duration, maxWorkers int, userAgent string, limiter *worker.Limiter, httpProxy, httpsProxy, noProxy string) *Validator {
	if maxWorkers <= 0 {
		maxWorkers = 10
	}

	return &Validator{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		maxWorkers: maxWorkers,
		userAgent:  userAgent,
		robots:     util.NewRobotsChecker(userAgent, timeout),
		limiter:    limiter,
	}
}

// Annotate probes every evidence URL concurrently and returns a copy of the
// slice with Dead flags set. Order is preserved via indexed slots regardless
// of completion order.
func (v *Validator) Annotate(ctx context.Context, evidence []model.Evidence) []model.Evidence {
	if len(evidence) == 0 {
		return evidence
	}

	annotated := make([]model.Evidence, len(evidence))
	copy(annotated, evidence)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, v.maxWorkers)

	for i := range annotated {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			annotated[idx].Dead = !v.probeWithRetry(ctx, annotated[idx].URL)
		}(i)
	}

	wg.Wait()
	return annotated
}

// probe checks a single URL with a HEAD request.
// Hosts that disallow us via robots.txt are treated as alive: we cannot
// confirm either way and must not punish the source for our etiquette.
func (v *Validator) probe(ctx context.Context, rawURL string) (alive bool, retryable bool) {
	if allowed, err := v.robots.CanFetch(ctx, rawURL); err == nil && !allowed {
		return true, false
	}

	if v.limiter != nil {
		if err := v.limiter.WaitURL(ctx, rawURL); err != nil {
			return true, false
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false, false
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, isRetryableNetworkError(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		return true, false
	case resp.StatusCode == http.StatusTooManyRequests:
		return false, true
	case resp.StatusCode >= 500:
		return false, true
	default:
		return false, false
	}
}

// probeWithRetry retries transient failures with exponential backoff
func (v *Validator) probeWithRetry(ctx context.Context, rawURL string) bool {
	for attempt := 0; attempt < maxRetries; attempt++ {
		alive, retryable := v.probe(ctx, rawURL)
		if alive || !retryable {
			return alive
		}
		if attempt < maxRetries-1 {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			sleepFunc(backoff)
		}
	}
	return false
}

// isRetryableNetworkError checks error strings for transient network failures
func isRetryableNetworkError(errMsg string) bool {
	s := strings.ToLower(errMsg)
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}
