package core

import (
	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	StoreType        string `json:"store_type"`
	SerializedWrites bool   `json:"serialized_writes"`
	NamespaceLocks   int    `json:"namespace_locks"`
	Subscribers      int    `json:"subscribers"`
	SchemaVersion    int    `json:"schema_version"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	storeType := "store"
	if comp, ok := r.store.(introspection.Component); ok {
		storeType = comp.ComponentType()
	}

	r.mu.Lock()
	locks := len(r.locks)
	r.mu.Unlock()

	return RepositoryState{
		StoreType:        storeType,
		SerializedWrites: r.serializeWrites,
		NamespaceLocks:   locks,
		Subscribers:      r.broker.subscriberCount(),
		SchemaVersion:    CurrentSchemaVersion,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
