package driven

import "context"

// DatasetFetcher retrieves the raw bytes of a dataset.
// Implementations return *domain.LoadError with kind LoadErrorHTTP for
// unsuccessful responses; any other failure is returned as-is.
type DatasetFetcher interface {
	// Fetch reads the dataset at location (URL or file path).
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// DatasetWatcher reports changes to a dataset location.
type DatasetWatcher interface {
	// Watch sends on the returned channel each time the dataset at
	// location changes. The channel is closed when ctx is cancelled.
	Watch(ctx context.Context, location string) (<-chan struct{}, error)
}
