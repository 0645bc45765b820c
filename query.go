package minioc

import (
	"reflect"
	"sort"
)

// ServiceInfo contains diagnostic information about a service identity.
type ServiceInfo struct {
	// Name is the identity's type name.
	Name string

	// Implementation is the name of the type answering the identity, empty
	// when the identity is not bound.
	Implementation string

	// Lifetime is "transient", "singleton" or empty when none is recorded.
	Lifetime string

	// Keys lists the keys with a factory entry, sorted; "" is the unkeyed entry.
	Keys []string

	// Cached lists the keys with a cached singleton instance, sorted.
	Cached []string
}

// Inspect returns diagnostic information about identity.
func (c *Container) Inspect(identity reflect.Type) ServiceInfo {
	if identity == nil {
		return ServiceInfo{Name: "<nil>"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inspectLocked(identity)
}

func (c *Container) inspectLocked(identity reflect.Type) ServiceInfo {
	info := ServiceInfo{Name: identity.String()}

	if c.registry.isBound(identity) {
		info.Implementation = c.registry.lookupImplementation(identity).String()
	}
	if lifetime, ok := c.registry.lifetime(identity); ok {
		info.Lifetime = lifetime.String()
	}

	info.Keys = sortedKeys(c.factories[identity])
	info.Cached = sortedKeys(c.instances[identity])

	return info
}

// IsRegistered checks if identity has a binding or a factory entry.
func (c *Container) IsRegistered(identity reflect.Type) bool {
	if identity == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.registry.isBound(identity) || len(c.factories[identity]) > 0
}

// HasInstance checks if a singleton instance of (identity, key) is cached.
func (c *Container) HasInstance(identity reflect.Type, key string) bool {
	if identity == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.instances[identity][key]
	return ok
}

// Services returns the names of all registered identities, sorted.
func (c *Container) Services() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, 0, len(c.factories))
	for _, identity := range c.identitiesLocked() {
		names = append(names, identity.String())
	}

	return names
}

// identitiesLocked returns every identity with a binding or a factory
// entry, sorted by name.
func (c *Container) identitiesLocked() []reflect.Type {
	seen := make(map[reflect.Type]bool)
	var identities []reflect.Type

	for identity := range c.registry.implementations {
		seen[identity] = true
		identities = append(identities, identity)
	}
	for identity, bucket := range c.factories {
		if seen[identity] || len(bucket) == 0 {
			continue
		}
		identities = append(identities, identity)
	}

	sort.Slice(identities, func(i, j int) bool {
		return identities[i].String() < identities[j].String()
	})

	return identities
}

// ServiceQuery defines criteria for querying services.
type ServiceQuery struct {
	// Lifetime filters by lifetime. Empty string matches all lifetimes.
	Lifetime string

	// Cached filters by whether at least one singleton instance is cached.
	// nil matches all services.
	Cached *bool
}

// Query returns detailed information about services matching the query
// criteria, sorted by name.
//
// Example:
//
//	cached := true
//	warm := minioc.Query(c, minioc.ServiceQuery{Lifetime: "singleton", Cached: &cached})
func Query(c *Container, query ServiceQuery) []ServiceInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	var results []ServiceInfo
	for _, identity := range c.identitiesLocked() {
		info := c.inspectLocked(identity)

		if query.Lifetime != "" && info.Lifetime != query.Lifetime {
			continue
		}
		if query.Cached != nil && (len(info.Cached) > 0) != *query.Cached {
			continue
		}

		results = append(results, info)
	}

	return results
}

// FindByLifetime returns all services with a specific lifetime.
func FindByLifetime(c *Container, lifetime Lifetime) []ServiceInfo {
	return Query(c, ServiceQuery{Lifetime: lifetime.String()})
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
