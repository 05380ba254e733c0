/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package mutator

import "github.com/auxoncorp/auxon-sdk-sub001/wire"

// Descriptor is a mutator's full metadata, as a fixed-schema attribute
// map. It is what descriptor() returns and what gets announced to the
// backend.
type Descriptor map[wire.AttrKey]wire.AttrVal

// ParamSpec describes one parameter under the "mutator.params.<key>.*"
// schema. The name entry is always encoded, even when Name is empty; every
// other empty string or nil AttrVal field is omitted from the encoded
// descriptor.
type ParamSpec struct {
	Key               string
	Name              string
	ValueType         string
	Description       string
	ValueMin          *wire.AttrVal
	ValueMax          *wire.AttrVal
	Units             string
	DefaultValue      *wire.AttrVal
	LeastEffectValue  *wire.AttrVal
	DistributionKind  string
	DistributionScale string
	OptionSet         map[string]wire.AttrVal
}

// Builder assembles a Descriptor incrementally.
type Builder struct {
	d   Descriptor
	err error
}

// NewBuilder starts a Descriptor for a mutator identified by id.
func NewBuilder(id wire.MutatorId, name string) *Builder {
	b := &Builder{d: make(Descriptor)}
	// mutator.id is carried as its UUID string form rather than the
	// TimelineId AttrVal variant: MutatorId and TimelineId share a byte
	// shape but are distinct identifier domains, and tag 40002 on the
	// wire means specifically "this is a timeline".
	b.d[KeyId] = wire.StringVal(id.String())
	b.d[KeyName] = wire.StringVal(name)
	return b
}

func (b *Builder) Description(s string) *Builder {
	b.d[KeyDescription] = wire.StringVal(s)
	return b
}

func (b *Builder) Layer(s string) *Builder {
	b.d[KeyLayer] = wire.StringVal(s)
	return b
}

func (b *Builder) Group(s string) *Builder {
	b.d[KeyGroup] = wire.StringVal(s)
	return b
}

func (b *Builder) Statefulness(s string) *Builder {
	b.d[KeyStatefulness] = wire.StringVal(s)
	return b
}

func (b *Builder) Operation(s string) *Builder {
	b.d[KeyOperation] = wire.StringVal(s)
	return b
}

func (b *Builder) Safety(s string) *Builder {
	b.d[KeySafety] = wire.StringVal(s)
	return b
}

func (b *Builder) Source(file string, line int64) *Builder {
	b.d[KeySourceFile] = wire.StringVal(file)
	b.d[KeySourceLine] = wire.IntegerVal(line)
	return b
}

// Param adds the attribute entries for spec to the descriptor under
// construction. A malformed spec.Key is recorded and surfaces from
// Build, matching the builder pattern's usual deferred-error idiom.
func (b *Builder) Param(spec ParamSpec) *Builder {
	if b.err != nil {
		return b
	}
	set := func(suffix string, v wire.AttrVal) {
		k, err := ParamKey(spec.Key, suffix)
		if err != nil {
			b.err = err
			return
		}
		b.d[k] = v
	}
	set(SuffixName, wire.StringVal(spec.Name))
	if spec.ValueType != "" {
		set(SuffixValueType, wire.StringVal(spec.ValueType))
	}
	if spec.Description != "" {
		set(SuffixDescription, wire.StringVal(spec.Description))
	}
	if spec.ValueMin != nil {
		set(SuffixValueMin, *spec.ValueMin)
	}
	if spec.ValueMax != nil {
		set(SuffixValueMax, *spec.ValueMax)
	}
	if spec.Units != "" {
		set(SuffixUnits, wire.StringVal(spec.Units))
	}
	if spec.DefaultValue != nil {
		set(SuffixDefaultValue, *spec.DefaultValue)
	}
	if spec.LeastEffectValue != nil {
		set(SuffixLeastEffectValue, *spec.LeastEffectValue)
	}
	if spec.DistributionKind != "" {
		set(SuffixValueDistributionKind, wire.StringVal(spec.DistributionKind))
	}
	if spec.DistributionScale != "" {
		set(SuffixValueDistributionScale, wire.StringVal(spec.DistributionScale))
	}
	for k, v := range spec.OptionSet {
		if b.err != nil {
			break
		}
		key, err := ParamOptionSetEntry(spec.Key, k)
		if err != nil {
			b.err = err
			break
		}
		b.d[key] = v
	}
	return b
}

// Build returns the assembled Descriptor, or the first error encountered
// while adding a parameter.
func (b *Builder) Build() (Descriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.d, nil
}
