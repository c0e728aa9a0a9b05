// Package fetcher downloads product pages. One request is outstanding at a
// time and each page gets a single attempt; a rate limiter spaces successive
// fetches so a long catalog does not hammer the retailer.
package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const requestTimeout = 30 * time.Second

// Some storefronts refuse the default Go user agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"

// Fetcher downloads pages with a fixed timeout and inter-request pacing.
type Fetcher struct {
	client  *resty.Client
	limiter *rate.Limiter
	log     *logrus.Entry
}

// New returns a Fetcher that waits at least delay between page downloads.
// A non-positive delay disables pacing.
func New(delay time.Duration, log *logrus.Entry) *Fetcher {
	client := resty.New().
		SetTimeout(requestTimeout).
		SetHeader("User-Agent", userAgent)

	return &Fetcher{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
		log:     log,
	}
}

// Fetch downloads url and returns the response body. Non-2xx responses are
// errors; there is no retry.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	f.log.Debugf("fetching %s", url)
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}
