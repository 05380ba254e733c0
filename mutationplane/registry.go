/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package mutationplane

import (
	"sync"

	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// Registry holds the set of mutators a participant has built, independent
// of whether a mutation-plane connection currently exists. A producer
// typically builds its Registry once at startup, then hands it to a
// Client when a connection becomes available.
type Registry struct {
	mtx      sync.Mutex
	mutators map[wire.MutatorId]Actuator
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{mutators: make(map[wire.MutatorId]Actuator)}
}

// Register adds a under id. ErrDuplicateMutatorId if id is already
// registered.
func (r *Registry) Register(id wire.MutatorId, a Actuator) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, exists := r.mutators[id]; exists {
		return ErrDuplicateMutatorId
	}
	r.mutators[id] = a
	return nil
}

// Deregister removes id, if present. A no-op for an unknown id.
func (r *Registry) Deregister(id wire.MutatorId) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.mutators, id)
}

// Get returns the actuator registered under id, if any.
func (r *Registry) Get(id wire.MutatorId) (Actuator, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	a, ok := r.mutators[id]
	return a, ok
}

// Ids returns every currently registered mutator id, in no particular
// order.
func (r *Registry) Ids() []wire.MutatorId {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	ids := make([]wire.MutatorId, 0, len(r.mutators))
	for id := range r.mutators {
		ids = append(ids, id)
	}
	return ids
}

// ResetAll calls Reset on every registered actuator and reports how many
// were reset. Used on initial connect and on every reconnect, per the
// "reset on reconnect" contract.
func (r *Registry) ResetAll() int {
	r.mtx.Lock()
	snapshot := make([]Actuator, 0, len(r.mutators))
	for _, a := range r.mutators {
		snapshot = append(snapshot, a)
	}
	r.mtx.Unlock()
	for _, a := range snapshot {
		a.Reset()
	}
	return len(snapshot)
}
