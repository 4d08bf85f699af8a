package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// Ensure HTTPFetcher implements the interface.
var _ driven.DatasetFetcher = (*HTTPFetcher)(nil)

// maxBodySize caps dataset responses at 16 MiB.
const maxBodySize = 16 << 20

// defaultBurst is the limiter burst. The loader issues two requests at once.
const defaultBurst = 2

// HTTPFetcher fetches datasets over HTTP(S).
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher creates a fetcher. requestsPerSecond <= 0 disables rate
// limiting. A nil client uses NewClient(DefaultClientConfig()).
func NewHTTPFetcher(client *http.Client, requestsPerSecond float64) *HTTPFetcher {
	if client == nil {
		client = NewClient(DefaultClientConfig())
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &HTTPFetcher{
		client:  client,
		limiter: rate.NewLimiter(limit, defaultBurst),
	}
}

// Fetch performs a GET request. Non-2xx responses return a LoadError of
// kind LoadErrorHTTP.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	logger.Debug("GET %s: %d", location, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, domain.NewHTTPError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(body) > maxBodySize {
		return nil, domain.NewFormatError("response exceeds 16 MiB", nil)
	}
	return body, nil
}
