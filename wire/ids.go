/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// TimelineId is a 128-bit identifier allocated by the producer and shared
// across every connection that ever opens the same timeline. It is also
// an AttrVal variant (tag 40002), so it can appear inside packed attribute
// kvs as well as standalone in OpenTimeline.
type TimelineId [16]byte

// MutatorId identifies a registered mutator, stable for the life of the
// participant that registered it.
type MutatorId [16]byte

// MutationId identifies a single invocation of a mutator.
type MutationId [16]byte

// ParticipantId identifies a mutation-plane participant (a producer
// process).
type ParticipantId [16]byte

// NewTimelineId allocates a fresh, globally unique timeline id.
func NewTimelineId() TimelineId { return TimelineId(uuid.New()) }

// NewMutatorId allocates a fresh mutator id.
func NewMutatorId() MutatorId { return MutatorId(uuid.New()) }

// NewMutationId allocates a fresh mutation id.
func NewMutationId() MutationId { return MutationId(uuid.New()) }

// NewParticipantId allocates a fresh participant id.
func NewParticipantId() ParticipantId { return ParticipantId(uuid.New()) }

func (t TimelineId) String() string    { return uuid.UUID(t).String() }
func (m MutatorId) String() string     { return uuid.UUID(m).String() }
func (m MutationId) String() string    { return uuid.UUID(m).String() }
func (p ParticipantId) String() string { return uuid.UUID(p).String() }

// MarshalCBOR encodes the timeline id as tag 40002 wrapping its 16 raw
// bytes, per spec.
func (t TimelineId) MarshalCBOR() ([]byte, error) {
	content, err := cbor.Marshal(t[:])
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(cbor.RawTag{Number: tagTimelineId, Content: cbor.RawMessage(content)})
}

func (t *TimelineId) UnmarshalCBOR(data []byte) error {
	var rt cbor.RawTag
	if err := cbor.Unmarshal(data, &rt); err != nil {
		return err
	}
	if rt.Number != tagTimelineId {
		return ErrUnknownAttrValTag
	}
	var b []byte
	if err := cbor.Unmarshal(rt.Content, &b); err != nil {
		return err
	}
	if len(b) != 16 {
		return ErrInvalidTimelineId
	}
	copy(t[:], b)
	return nil
}

// MutatorId, MutationId, and ParticipantId are transmitted as plain 16-byte
// CBOR byte strings; they are not AttrVal variants so they carry no tag.

func (m MutatorId) MarshalCBOR() ([]byte, error) { return cbor.Marshal([]byte(m[:])) }
func (m *MutatorId) UnmarshalCBOR(data []byte) error {
	return unmarshalFixedBytes(data, m[:])
}

func (m MutationId) MarshalCBOR() ([]byte, error) { return cbor.Marshal([]byte(m[:])) }
func (m *MutationId) UnmarshalCBOR(data []byte) error {
	return unmarshalFixedBytes(data, m[:])
}

func (p ParticipantId) MarshalCBOR() ([]byte, error) { return cbor.Marshal([]byte(p[:])) }
func (p *ParticipantId) UnmarshalCBOR(data []byte) error {
	return unmarshalFixedBytes(data, p[:])
}

func unmarshalFixedBytes(data []byte, dst []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return err
	}
	if len(b) != len(dst) {
		return ErrInvalidId
	}
	copy(dst, b)
	return nil
}
