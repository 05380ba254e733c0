/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// MessageKind is the numeric discriminant carried by every framed message
// (spec.md section 6).
type MessageKind uint16

const (
	KindAuthRequest             MessageKind = 0
	KindAuthResponse            MessageKind = 1
	KindUnauthenticatedResponse MessageKind = 2
	KindIngestStatusRequest     MessageKind = 100
	KindIngestStatusResponse    MessageKind = 101
	KindFlush                   MessageKind = 102
	KindDeclareAttrKey          MessageKind = 110
	KindOpenTimeline            MessageKind = 112
	KindTimelineMetadata        MessageKind = 113
	KindEvent                   MessageKind = 114

	KindRegisterParticipant    MessageKind = 200
	KindRegisterParticipantAck MessageKind = 201
	KindAnnounceMutator        MessageKind = 202
	KindMutationCommand        MessageKind = 203
	KindMutationReply          MessageKind = 204
	KindClearMutation          MessageKind = 205
	KindClearMutationAck       MessageKind = 206
)

// Message is implemented by every wire message payload.
type Message interface {
	Kind() MessageKind
}

type AuthRequest struct {
	Token []byte `cbor:"token"`
}

func (AuthRequest) Kind() MessageKind { return KindAuthRequest }

type AuthResponse struct {
	Ok      bool    `cbor:"ok"`
	Message *string `cbor:"message,omitempty"`
}

func (AuthResponse) Kind() MessageKind { return KindAuthResponse }

type UnauthenticatedResponse struct{}

func (UnauthenticatedResponse) Kind() MessageKind { return KindUnauthenticatedResponse }

type IngestStatusRequest struct{}

func (IngestStatusRequest) Kind() MessageKind { return KindIngestStatusRequest }

type IngestStatusResponse struct {
	CurrentTimeline *TimelineId `cbor:"current_timeline,omitempty"`
	EventsReceived  uint64      `cbor:"events_received"`
	EventsWritten   uint64      `cbor:"events_written"`
	EventsPending   uint64      `cbor:"events_pending"`
	ErrorCount      *uint64     `cbor:"error_count,omitempty"`
}

func (IngestStatusResponse) Kind() MessageKind { return KindIngestStatusResponse }

type Flush struct{}

func (Flush) Kind() MessageKind { return KindFlush }

type DeclareAttrKey struct {
	Name   string          `cbor:"name"`
	WireId InternedAttrKey `cbor:"wire_id"`
}

func (DeclareAttrKey) Kind() MessageKind { return KindDeclareAttrKey }

type OpenTimeline struct {
	Id TimelineId `cbor:"id"`
}

func (OpenTimeline) Kind() MessageKind { return KindOpenTimeline }

type TimelineMetadata struct {
	Attrs PackedAttrKvs `cbor:"attrs"`
}

func (TimelineMetadata) Kind() MessageKind { return KindTimelineMetadata }

type Event struct {
	BeOrdering []byte        `cbor:"be_ordering"`
	Attrs      PackedAttrKvs `cbor:"attrs"`
}

func (Event) Kind() MessageKind { return KindEvent }

// DescriptorAttr is one entry of a DescriptorAttrs: a full (non-interned)
// attribute key paired with its value. Mutator descriptors and mutation
// parameters are exchanged on the mutation plane, a separate connection
// from any ingest session, so there is no per-connection interning table
// to shrink them against; the key travels in full every time.
type DescriptorAttr struct {
	Key AttrKey
	Val AttrVal
}

// DescriptorAttrs is the on-wire shape for a mutator descriptor or a
// mutation's parameters: a CBOR array of alternating string key and
// AttrVal, for the same framing-stability reason PackedAttrKvs avoids a
// CBOR map.
type DescriptorAttrs []DescriptorAttr

func (d DescriptorAttrs) MarshalCBOR() ([]byte, error) {
	items := make([]interface{}, 0, len(d)*2)
	for _, kv := range d {
		items = append(items, string(kv.Key), kv.Val)
	}
	return cbor.Marshal(items)
}

func (d *DescriptorAttrs) UnmarshalCBOR(data []byte) error {
	var items []cbor.RawMessage
	if err := packedDecMode.Unmarshal(data, &items); err != nil {
		return err
	}
	if len(items)%2 != 0 {
		return ErrMalformedPackedKvs
	}
	out := make(DescriptorAttrs, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		var key string
		if err := cbor.Unmarshal(items[i], &key); err != nil {
			return err
		}
		var val AttrVal
		if err := val.UnmarshalCBOR(items[i+1]); err != nil {
			return err
		}
		out = append(out, DescriptorAttr{Key: AttrKey(key), Val: val})
	}
	*d = out
	return nil
}

// RegisterParticipant opens a mutation-plane session, identifying the
// producer process registering mutators.
type RegisterParticipant struct {
	Id ParticipantId `cbor:"id"`
}

func (RegisterParticipant) Kind() MessageKind { return KindRegisterParticipant }

type RegisterParticipantAck struct {
	Ok      bool    `cbor:"ok"`
	Message *string `cbor:"message,omitempty"`
}

func (RegisterParticipantAck) Kind() MessageKind { return KindRegisterParticipantAck }

// AnnounceMutator publishes one mutator's descriptor to the backend.
type AnnounceMutator struct {
	Id         MutatorId       `cbor:"id"`
	Descriptor DescriptorAttrs `cbor:"descriptor"`
}

func (AnnounceMutator) Kind() MessageKind { return KindAnnounceMutator }

// MutationCommand is sent by the backend to request an injection.
type MutationCommand struct {
	MutatorId  MutatorId       `cbor:"mutator_id"`
	MutationId MutationId      `cbor:"mutation_id"`
	Params     DescriptorAttrs `cbor:"params"`
}

func (MutationCommand) Kind() MessageKind { return KindMutationCommand }

// MutationReply is the client's response to a MutationCommand.
type MutationReply struct {
	MutationId MutationId `cbor:"mutation_id"`
	Ok         bool       `cbor:"ok"`
	Message    *string    `cbor:"message,omitempty"`
}

func (MutationReply) Kind() MessageKind { return KindMutationReply }

// ClearMutation asks the client to reverse exactly one prior injection.
type ClearMutation struct {
	MutationId MutationId `cbor:"mutation_id"`
}

func (ClearMutation) Kind() MessageKind { return KindClearMutation }

type ClearMutationAck struct {
	MutationId MutationId `cbor:"mutation_id"`
	Ok         bool       `cbor:"ok"`
	Message    *string    `cbor:"message,omitempty"`
}

func (ClearMutationAck) Kind() MessageKind { return KindClearMutationAck }

// envelope is the 2-element array [kind, payload] every message is wrapped
// in on the wire.
type envelope struct {
	_       struct{} `cbor:",toarray"`
	Kind    MessageKind
	Payload cbor.RawMessage
}

// EncodeMessage wraps m in its envelope and returns the CBOR-encoded
// bytes (unframed; see package transport for length-prefixing).
func EncodeMessage(m Message) ([]byte, error) {
	payload, err := cbor.Marshal(m)
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(envelope{Kind: m.Kind(), Payload: cbor.RawMessage(payload)})
}

// DecodeMessage unwraps the envelope and decodes the payload into the
// concrete Message type matching its discriminant.
func DecodeMessage(data []byte) (Message, error) {
	var env envelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	var m Message
	switch env.Kind {
	case KindAuthRequest:
		var v AuthRequest
		m = &v
	case KindAuthResponse:
		var v AuthResponse
		m = &v
	case KindUnauthenticatedResponse:
		var v UnauthenticatedResponse
		m = &v
	case KindIngestStatusRequest:
		var v IngestStatusRequest
		m = &v
	case KindIngestStatusResponse:
		var v IngestStatusResponse
		m = &v
	case KindFlush:
		var v Flush
		m = &v
	case KindDeclareAttrKey:
		var v DeclareAttrKey
		m = &v
	case KindOpenTimeline:
		var v OpenTimeline
		m = &v
	case KindTimelineMetadata:
		var v TimelineMetadata
		m = &v
	case KindEvent:
		var v Event
		m = &v
	case KindRegisterParticipant:
		var v RegisterParticipant
		m = &v
	case KindRegisterParticipantAck:
		var v RegisterParticipantAck
		m = &v
	case KindAnnounceMutator:
		var v AnnounceMutator
		m = &v
	case KindMutationCommand:
		var v MutationCommand
		m = &v
	case KindMutationReply:
		var v MutationReply
		m = &v
	case KindClearMutation:
		var v ClearMutation
		m = &v
	case KindClearMutationAck:
		var v ClearMutationAck
		m = &v
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessageKind, env.Kind)
	}
	if err := cbor.Unmarshal(env.Payload, m); err != nil {
		return nil, err
	}
	// m is a pointer to the zero value above; deref back to the value type
	// the Message interface methods are defined on so callers get a plain
	// value via a type switch rather than always a pointer.
	return derefMessage(m), nil
}

func derefMessage(m Message) Message {
	switch v := m.(type) {
	case *AuthRequest:
		return *v
	case *AuthResponse:
		return *v
	case *UnauthenticatedResponse:
		return *v
	case *IngestStatusRequest:
		return *v
	case *IngestStatusResponse:
		return *v
	case *Flush:
		return *v
	case *DeclareAttrKey:
		return *v
	case *OpenTimeline:
		return *v
	case *TimelineMetadata:
		return *v
	case *Event:
		return *v
	case *RegisterParticipant:
		return *v
	case *RegisterParticipantAck:
		return *v
	case *AnnounceMutator:
		return *v
	case *MutationCommand:
		return *v
	case *MutationReply:
		return *v
	case *ClearMutation:
		return *v
	case *ClearMutationAck:
		return *v
	default:
		return m
	}
}
