/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package mutationplane

import (
	"context"

	"github.com/auxoncorp/auxon-sdk-sub001/mutator"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// Actuator is the capability set a producer implements to expose one
// controllable side effect to the mutation plane. Descriptor is pure and
// idempotent; Inject validates params against the descriptor, applies the
// side effect, and records whatever state is needed to undo it; Reset
// restores the actuator to its initial state regardless of how many
// mutations are currently active.
//
// Implementations are looked up by MutatorId and invoked from the
// Client's dispatch loop one at a time per mutator, so an Actuator does
// not need to protect its own state against concurrent Inject/Reset
// calls for the *same* mutator id, but may still be called concurrently
// with other mutators' methods.
type Actuator interface {
	Descriptor() (mutator.Descriptor, error)
	Inject(ctx context.Context, id wire.MutationId, params map[wire.AttrKey]wire.AttrVal) error
	Reset()
}

// MutationClearer is an optional extension to Actuator: an actuator that
// can reverse a single prior injection without resetting every active
// mutation. Detected via interface assertion, matching the "optional
// clear_mutation" capability.
type MutationClearer interface {
	ClearMutation(id wire.MutationId) error
}

// descriptorToAttrs flattens a mutator.Descriptor into the wire's
// non-interned key/value array form.
func descriptorToAttrs(d mutator.Descriptor) wire.DescriptorAttrs {
	out := make(wire.DescriptorAttrs, 0, len(d))
	for k, v := range d {
		out = append(out, wire.DescriptorAttr{Key: k, Val: v})
	}
	return out
}

// normalizeParamKey accepts either the bare "<param-key>" form or the
// fully-qualified "mutator.params.<param-key>" form and returns the bare
// form, per the dispatch contract's tolerance for both.
func normalizeParamKey(k wire.AttrKey) wire.AttrKey {
	const prefix = "mutator.params."
	s := string(k)
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return wire.AttrKey(s[len(prefix):])
	}
	return k
}

// paramsToMap converts the wire's DescriptorAttrs form of a mutation
// command's parameters into the map Actuator.Inject expects, normalizing
// each key.
func paramsToMap(attrs wire.DescriptorAttrs) map[wire.AttrKey]wire.AttrVal {
	out := make(map[wire.AttrKey]wire.AttrVal, len(attrs))
	for _, kv := range attrs {
		out[normalizeParamKey(kv.Key)] = kv.Val
	}
	return out
}
