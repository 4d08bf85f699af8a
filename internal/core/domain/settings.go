package domain

import (
	"path"
	"strings"
	"time"
)

// Default locations used when nothing is configured.
const (
	DefaultDatasetPath = "data/google-cloud-services.json"
	DefaultGroupsPath  = "data/service-groups.json"
)

// Provider describes which dataset to browse and how to label it.
type Provider struct {
	// Key selects the provider's entry in the group definitions.
	Key string

	// Name is the human-readable provider name used in error text.
	Name string

	// DatasetPath is the category dataset location (URL or file path).
	DatasetPath string

	// GroupsPath is the optional group definition location.
	// Empty disables config-driven grouping.
	GroupsPath string
}

// ResolvedKey returns Key, or a key inferred from DatasetPath when Key is
// empty. Inference is a fallback only; configure provider.key explicitly.
func (p Provider) ResolvedKey() string {
	if p.Key != "" {
		return p.Key
	}
	return InferProviderKey(p.DatasetPath)
}

// providerHints maps dataset file name fragments to provider keys,
// checked in order.
var providerHints = []struct {
	fragment string
	key      string
}{
	{"google", "gcp"},
	{"gcp", "gcp"},
	{"aws", "aws"},
	{"amazon", "aws"},
	{"azure", "azure"},
	{"microsoft", "azure"},
	{"oracle", "oci"},
	{"oci", "oci"},
}

// InferProviderKey guesses a provider key from a dataset path by matching
// whole words of its file name, split on '-', '_', '.' and spaces.
// It returns "" when nothing matches.
func InferProviderKey(datasetPath string) string {
	name := strings.ToLower(path.Base(strings.ReplaceAll(datasetPath, "\\", "/")))
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	for _, hint := range providerHints {
		for _, word := range words {
			if word == hint.fragment {
				return hint.key
			}
		}
	}
	return ""
}

// HTTPSettings controls remote dataset fetching.
type HTTPSettings struct {
	// Timeout bounds a whole request. Zero means no client timeout.
	Timeout time.Duration

	// RequestsPerSecond limits outgoing requests. Zero disables limiting.
	RequestsPerSecond float64
}

// CatalogSettings holds all application settings.
type CatalogSettings struct {
	Provider Provider
	HTTP     HTTPSettings

	// Watch reloads a local dataset file when it changes.
	Watch bool
}

// DefaultCatalogSettings returns settings with sensible defaults.
func DefaultCatalogSettings() CatalogSettings {
	return CatalogSettings{
		Provider: Provider{
			Name:        "Google Cloud",
			DatasetPath: DefaultDatasetPath,
			GroupsPath:  DefaultGroupsPath,
		},
		HTTP: HTTPSettings{
			Timeout: 30 * time.Second,
		},
	}
}
