/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

// Package mutator models a mutator's metadata as a map of fixed-schema
// attribute keys to values, and validates the parameter-key segment of
// that schema (the one place composite dotted keys are built, which is
// why it owns its own validation rather than going through
// wire.ValidateAttrKeyName).
package mutator

import (
	"errors"
	"fmt"

	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// Fixed schema keys rooted at "mutator.*", per the identity/classification
// and correlation groups.
const (
	KeyId             wire.AttrKey = "mutator.id"
	KeyName           wire.AttrKey = "mutator.name"
	KeyDescription    wire.AttrKey = "mutator.description"
	KeyLayer          wire.AttrKey = "mutator.layer"
	KeyGroup          wire.AttrKey = "mutator.group"
	KeyStatefulness   wire.AttrKey = "mutator.statefulness"
	KeyOperation      wire.AttrKey = "mutator.operation"
	KeySafety         wire.AttrKey = "mutator.safety"
	KeySourceFile     wire.AttrKey = "mutator.source.file"
	KeySourceLine     wire.AttrKey = "mutator.source.line"
	KeyMutationEdgeId wire.AttrKey = "mutator.mutation_edge_id"
	KeyReceiveTime    wire.AttrKey = "mutator.receive_time"
)

// Recognized parameter-key suffixes.
const (
	SuffixName                   = "name"
	SuffixValueType              = "value_type"
	SuffixDescription            = "description"
	SuffixValueMin               = "value_min"
	SuffixValueMax               = "value_max"
	SuffixUnits                  = "units"
	SuffixDefaultValue           = "default_value"
	SuffixLeastEffectValue       = "least_effect_value"
	SuffixValueDistributionKind  = "value_distribution.kind"
	SuffixValueDistributionScale = "value_distribution.scaling"
	SuffixOptionSet              = "value_distribution.option_set"
)

var ErrInvalidParamKey = errors.New("mutator: param key must be ASCII and contain no '.'")

// ParamKey builds the "mutator.params.<param-key>.<suffix>" schema key
// for param, validating that param itself is a legal single segment.
// Unknown suffixes are passed through unvalidated, matching the wire
// format's tolerance for forward-compatible suffixes.
func ParamKey(param string, suffix string) (wire.AttrKey, error) {
	if !wire.IsValidParamKey(param) {
		return "", ErrInvalidParamKey
	}
	return wire.AttrKey(fmt.Sprintf("mutator.params.%s.%s", param, suffix)), nil
}

// ParamOptionSetEntry builds the
// "mutator.params.<param-key>.value_distribution.option_set.<k>" key for
// an individual enumerated choice k.
func ParamOptionSetEntry(param string, k string) (wire.AttrKey, error) {
	base, err := ParamKey(param, SuffixOptionSet)
	if err != nil {
		return "", err
	}
	return wire.AttrKey(string(base) + "." + k), nil
}
