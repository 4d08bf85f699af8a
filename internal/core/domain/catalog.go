package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// OtherServicesTitle is the title given to the bucket of services that no
// named group claimed.
const OtherServicesTitle = "その他のサービス"

// Category is a top-level grouping of related services in a dataset.
type Category struct {
	// ID identifies the category in group definitions. May be empty.
	ID string

	// Name is the display name.
	Name string

	// Description is a short human-readable description.
	Description string

	// Services lists the category's services in dataset order.
	Services []Service

	// Index is the category's position in the dataset.
	// It is assigned by the loader and never read from JSON.
	Index int

	// skipped counts services entries that could not be decoded.
	skipped int
}

// Key returns the identity used to look up group definitions:
// the ID when present, otherwise the positional index.
func (c *Category) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return strconv.Itoa(c.Index)
}

// ServiceCount returns the number of services shown on the category badge.
func (c *Category) ServiceCount() int {
	return len(c.Services)
}

// SkippedServices returns how many services entries were dropped while
// decoding because they were not valid service objects.
func (c *Category) SkippedServices() int {
	return c.skipped
}

// categoryJSON mirrors the dataset shape. Fields that can arrive malformed are
// kept raw and decoded leniently.
type categoryJSON struct {
	ID          json.RawMessage `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Services    json.RawMessage `json:"services"`
}

// UnmarshalJSON decodes a category, accepting a string or numeric id and
// treating a non-array services value as absent. Malformed services
// entries are dropped one by one and counted.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw categoryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	c.ID = rawScalar(raw.ID)
	c.Name = raw.Name
	c.Description = raw.Description
	c.Services = nil
	c.skipped = 0

	var items []json.RawMessage
	if err := json.Unmarshal(raw.Services, &items); err != nil {
		return nil
	}
	for _, item := range items {
		var service Service
		if !isObject(item) || json.Unmarshal(item, &service) != nil {
			c.skipped++
			continue
		}
		c.Services = append(c.Services, service)
	}
	return nil
}

// MarshalJSON encodes the category in dataset shape.
func (c Category) MarshalJSON() ([]byte, error) {
	type out struct {
		ID          string    `json:"id,omitempty"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Services    []Service `json:"services"`
	}
	services := c.Services
	if services == nil {
		services = []Service{}
	}
	return json.Marshal(out{ID: c.ID, Name: c.Name, Description: c.Description, Services: services})
}

// Service is a single catalog entry.
type Service struct {
	// Name is unique within its category and used as a join key.
	Name string `json:"name"`

	// Summary is the short text shown on the tile front.
	Summary string `json:"summary,omitempty"`

	// Details is the paragraph shown on the tile back.
	Details string `json:"details,omitempty"`

	// Features are bullet points shown on the tile back, in order.
	Features []string `json:"features,omitempty"`

	// Link is the outbound URL.
	Link string `json:"link,omitempty"`

	// Group is an optional group label embedded in the data.
	Group string `json:"group,omitempty"`

	// GroupDescription describes the group named by Group.
	GroupDescription string `json:"groupDescription,omitempty"`
}

// UnmarshalJSON decodes a service, ignoring malformed features entries.
func (s *Service) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name             string          `json:"name"`
		Summary          string          `json:"summary"`
		Details          string          `json:"details"`
		Features         json.RawMessage `json:"features"`
		Link             string          `json:"link"`
		Group            json.RawMessage `json:"group"`
		GroupDescription json.RawMessage `json:"groupDescription"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Service{
		Name:             raw.Name,
		Summary:          raw.Summary,
		Details:          raw.Details,
		Link:             raw.Link,
		Group:            rawString(raw.Group),
		GroupDescription: rawString(raw.GroupDescription),
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw.Features, &items); err == nil {
		for _, item := range items {
			var feature string
			if json.Unmarshal(item, &feature) == nil {
				s.Features = append(s.Features, feature)
			}
		}
	}
	return nil
}

// HasGroup reports whether the service carries a non-blank group label.
func (s *Service) HasGroup() bool {
	return strings.TrimSpace(s.Group) != ""
}

// GroupDefinition is one entry of the external group configuration.
type GroupDefinition struct {
	Title       string   `json:"title,omitempty" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Services    []string `json:"services" yaml:"services"`
}

// GroupDefinitions maps provider key -> category key -> ordered definitions.
type GroupDefinitions map[string]map[string][]GroupDefinition

// For returns the definitions for a provider's category, or nil.
func (g GroupDefinitions) For(providerKey, categoryKey string) []GroupDefinition {
	if g == nil {
		return nil
	}
	return g[providerKey][categoryKey]
}

// ResolvedGroup is a cluster of services shown together within a category.
// An empty Title marks the unnamed default group.
type ResolvedGroup struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Services    []Service `json:"services"`
}

// Catalog is the result of a complete load: categories plus whatever group
// definitions could be fetched.
type Catalog struct {
	Categories []Category
	Groups     GroupDefinitions
}

// rawScalar returns a JSON string or number as text. Anything else yields "".
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// rawString returns a JSON string value, or "" for any other type.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// isObject reports whether raw holds a JSON object.
func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
