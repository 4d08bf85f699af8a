package services

import (
	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/core/ports/driving"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// Ensure GroupResolver implements the interface.
var _ driving.GroupResolver = (*GroupResolver)(nil)

// GroupResolver organises services into groups. Config-driven grouping
// takes precedence over the per-service group field; when neither applies
// Resolve returns nil and services are shown flat.
type GroupResolver struct{}

// NewGroupResolver creates a new group resolver.
func NewGroupResolver() *GroupResolver {
	return &GroupResolver{}
}

// Resolve returns the groups for services, or nil for a flat list.
func (r *GroupResolver) Resolve(
	services []domain.Service,
	definitions []domain.GroupDefinition,
) []domain.ResolvedGroup {
	if groups := r.fromDefinitions(services, definitions); groups != nil {
		return groups
	}
	return r.fromServiceFields(services)
}

// fromDefinitions applies config-driven grouping. A service is claimed by
// the first definition that lists it; later references are ignored.
func (r *GroupResolver) fromDefinitions(
	services []domain.Service,
	definitions []domain.GroupDefinition,
) []domain.ResolvedGroup {
	if len(definitions) == 0 {
		return nil
	}

	byName := make(map[string]int, len(services))
	for i := range services {
		if _, exists := byName[services[i].Name]; !exists {
			byName[services[i].Name] = i
		}
	}

	claimed := make([]bool, len(services))
	groups := make([]domain.ResolvedGroup, 0, len(definitions)+1)

	for _, def := range definitions {
		var members []domain.Service
		for _, name := range def.Services {
			idx, ok := byName[name]
			if !ok {
				logger.Debug("group %q references unknown service %q", def.Title, name)
				continue
			}
			if claimed[idx] {
				continue
			}
			claimed[idx] = true
			members = append(members, services[idx])
		}
		if len(members) == 0 {
			continue
		}
		groups = append(groups, domain.ResolvedGroup{
			Title:       def.Title,
			Description: def.Description,
			Services:    members,
		})
	}

	var leftover []domain.Service
	for i := range services {
		if !claimed[i] {
			leftover = append(leftover, services[i])
		}
	}
	if len(leftover) > 0 {
		title := ""
		if anyTitled(groups) {
			title = domain.OtherServicesTitle
		}
		groups = append(groups, domain.ResolvedGroup{Title: title, Services: leftover})
	}

	if !anyTitled(groups) {
		return nil
	}
	return groups
}

// fromServiceFields groups services by their own group label in first-seen
// order. Unlabelled services share one implicit bucket.
func (r *GroupResolver) fromServiceFields(services []domain.Service) []domain.ResolvedGroup {
	const implicit = ""

	var (
		order    []string
		buckets  = make(map[string]*domain.ResolvedGroup)
		labelled bool
	)

	for i := range services {
		svc := services[i]
		label := implicit
		if svc.HasGroup() {
			label = svc.Group
			labelled = true
		}

		bucket, ok := buckets[label]
		if !ok {
			bucket = &domain.ResolvedGroup{Title: label}
			buckets[label] = bucket
			order = append(order, label)
		}
		bucket.Services = append(bucket.Services, svc)
		if bucket.Description == "" && svc.GroupDescription != "" {
			bucket.Description = svc.GroupDescription
		}
	}

	if !labelled {
		return nil
	}

	groups := make([]domain.ResolvedGroup, 0, len(order))
	for _, label := range order {
		bucket := buckets[label]
		if len(bucket.Services) == 0 {
			continue
		}
		if label == implicit {
			bucket.Title = domain.OtherServicesTitle
		}
		groups = append(groups, *bucket)
	}
	return groups
}

func anyTitled(groups []domain.ResolvedGroup) bool {
	for i := range groups {
		if groups[i].Title != "" {
			return true
		}
	}
	return false
}
