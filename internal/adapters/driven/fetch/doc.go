// Package fetch provides driven.DatasetFetcher implementations.
//
// Adapters:
//   - HTTPFetcher: GET over HTTP(S) with a request rate limit
//   - FileFetcher: reads from the local filesystem
//   - Router: dispatches a location to one of the above by scheme
package fetch
