package fetch

import (
	"context"
	"strings"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driven"
)

// Ensure Router implements the interface.
var _ driven.DatasetFetcher = (*Router)(nil)

// Router sends http(s) locations to the remote fetcher and everything else
// to the local one.
type Router struct {
	remote driven.DatasetFetcher
	local  driven.DatasetFetcher
}

// NewRouter creates a router. Either fetcher may be nil, in which case
// locations it would serve fail with ErrInvalidInput.
func NewRouter(remote, local driven.DatasetFetcher) *Router {
	return &Router{remote: remote, local: local}
}

// Fetch dispatches by scheme.
func (r *Router) Fetch(ctx context.Context, location string) ([]byte, error) {
	target := r.local
	if IsRemote(location) {
		target = r.remote
	}
	if target == nil {
		return nil, domain.ErrInvalidInput
	}
	return target.Fetch(ctx, location)
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
