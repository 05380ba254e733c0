/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package mutationplane

import (
	"context"
	"testing"

	"github.com/auxoncorp/auxon-sdk-sub001/mutator"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// fakeConn is an in-memory conn used to drive the client without a real
// socket. Writes are recorded; reads are served from a pre-loaded queue.
type fakeConn struct {
	written []wire.Message
	toRead  []wire.Message
	closed  bool
}

func (f *fakeConn) WriteMessage(m wire.Message) error {
	f.written = append(f.written, m)
	return nil
}

func (f *fakeConn) ReadMessage() (wire.Message, error) {
	if len(f.toRead) == 0 {
		return nil, errEOF{}
	}
	m := f.toRead[0]
	f.toRead = f.toRead[1:]
	return m, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

type errEOF struct{}

func (errEOF) Error() string { return "fake: no more queued messages" }

// offsetActuator is a minimal Actuator used by the tests: it exposes a
// "target" int that injection nudges by a per-param "offset", and it
// remembers enough to reverse each mutation by id.
type offsetActuator struct {
	target   int
	applied  map[wire.MutationId]int
	resets   int
}

func newOffsetActuator() *offsetActuator {
	return &offsetActuator{applied: make(map[wire.MutationId]int)}
}

func (a *offsetActuator) Descriptor() (mutator.Descriptor, error) {
	return mutator.NewBuilder(wire.NewMutatorId(), "offset-injector").
		Param(mutator.ParamSpec{Key: "offset", Name: "offset", ValueType: "integer"}).
		Build()
}

func (a *offsetActuator) Inject(ctx context.Context, id wire.MutationId, params map[wire.AttrKey]wire.AttrVal) error {
	v, ok := params["offset"]
	if !ok {
		return ErrUnknownMutator
	}
	n, ok := v.AsInteger()
	if !ok {
		return ErrProtocolError
	}
	a.target += int(n)
	a.applied[id] = int(n)
	return nil
}

func (a *offsetActuator) Reset() {
	for _, delta := range a.applied {
		a.target -= delta
	}
	a.applied = make(map[wire.MutationId]int)
	a.resets++
}

func (a *offsetActuator) ClearMutation(id wire.MutationId) error {
	delta, ok := a.applied[id]
	if !ok {
		return nil
	}
	a.target -= delta
	delete(a.applied, id)
	return nil
}

func TestRegisterParticipantAnnouncesAndResets(t *testing.T) {
	reg := NewRegistry()
	act := newOffsetActuator()
	mutatorId := wire.NewMutatorId()
	if err := reg.Register(mutatorId, act); err != nil {
		t.Fatalf("Register: %v", err)
	}

	fc := &fakeConn{toRead: []wire.Message{wire.RegisterParticipantAck{Ok: true}}}
	cl := newClient(fc, reg)
	if err := cl.RegisterParticipant(wire.NewParticipantId()); err != nil {
		t.Fatalf("RegisterParticipant: %v", err)
	}

	var announced bool
	for _, m := range fc.written {
		if a, ok := m.(wire.AnnounceMutator); ok && a.Id == mutatorId {
			announced = true
		}
	}
	if !announced {
		t.Errorf("expected an AnnounceMutator frame for the registered mutator")
	}
	if act.resets != 1 {
		t.Errorf("expected exactly 1 reset on initial registration, got %d", act.resets)
	}
}

func TestRegisterParticipantRejected(t *testing.T) {
	reg := NewRegistry()
	fc := &fakeConn{toRead: []wire.Message{wire.RegisterParticipantAck{Ok: false}}}
	cl := newClient(fc, reg)
	if err := cl.RegisterParticipant(wire.NewParticipantId()); err != ErrRegistrationRejected {
		t.Fatalf("expected ErrRegistrationRejected, got %v", err)
	}
}

// TestMutatorInjectionScenario mirrors the documented end-to-end
// scenario: descriptor declares param "offset", inject(m1, {offset:3})
// bumps the target, clear_mutation(m1) reverts it, then inject(m2,
// {offset:7}) followed by reset() reverts that too.
func TestMutatorInjectionScenario(t *testing.T) {
	reg := NewRegistry()
	act := newOffsetActuator()
	mutatorId := wire.NewMutatorId()
	if err := reg.Register(mutatorId, act); err != nil {
		t.Fatalf("Register: %v", err)
	}

	m1 := wire.NewMutationId()
	fc := &fakeConn{}
	cl := newClient(fc, reg)

	cl.dispatchMutation(context.Background(), wire.MutationCommand{
		MutatorId:  mutatorId,
		MutationId: m1,
		Params:     wire.DescriptorAttrs{{Key: "offset", Val: wire.IntegerVal(3)}},
	})
	if act.target != 3 {
		t.Fatalf("expected target 3 after inject, got %d", act.target)
	}

	cl.dispatchClear(wire.ClearMutation{MutationId: m1})
	if act.target != 0 {
		t.Fatalf("expected target 0 after clear_mutation, got %d", act.target)
	}

	m2 := wire.NewMutationId()
	cl.dispatchMutation(context.Background(), wire.MutationCommand{
		MutatorId:  mutatorId,
		MutationId: m2,
		Params:     wire.DescriptorAttrs{{Key: "offset", Val: wire.IntegerVal(7)}},
	})
	if act.target != 7 {
		t.Fatalf("expected target 7 after second inject, got %d", act.target)
	}

	act.Reset()
	if act.target != 0 {
		t.Fatalf("expected target 0 after reset, got %d", act.target)
	}

	var replies, clearAcks int
	for _, m := range fc.written {
		switch m.(type) {
		case wire.MutationReply:
			replies++
		case wire.ClearMutationAck:
			clearAcks++
		}
	}
	if replies != 2 {
		t.Errorf("expected 2 mutation replies, got %d", replies)
	}
	if clearAcks != 1 {
		t.Errorf("expected 1 clear ack, got %d", clearAcks)
	}
}

func TestDispatchMutationUnknownMutatorIsRejected(t *testing.T) {
	reg := NewRegistry()
	fc := &fakeConn{}
	cl := newClient(fc, reg)
	cl.dispatchMutation(context.Background(), wire.MutationCommand{
		MutatorId:  wire.NewMutatorId(),
		MutationId: wire.NewMutationId(),
	})
	rep, ok := fc.written[0].(wire.MutationReply)
	if !ok || rep.Ok {
		t.Fatalf("expected a rejected reply for an unknown mutator, got %+v", fc.written[0])
	}
}

func TestDispatchClearUnknownMutationIsNoOpOk(t *testing.T) {
	reg := NewRegistry()
	fc := &fakeConn{}
	cl := newClient(fc, reg)
	cl.dispatchClear(wire.ClearMutation{MutationId: wire.NewMutationId()})
	ack, ok := fc.written[0].(wire.ClearMutationAck)
	if !ok || !ack.Ok {
		t.Fatalf("expected an ok ack for an unknown mutation id, got %+v", fc.written[0])
	}
}

func TestNormalizeParamKeyAcceptsBothForms(t *testing.T) {
	attrs := wire.DescriptorAttrs{
		{Key: "offset", Val: wire.IntegerVal(1)},
		{Key: "mutator.params.scale", Val: wire.IntegerVal(2)},
	}
	got := paramsToMap(attrs)
	if _, ok := got["offset"]; !ok {
		t.Errorf("expected bare form to pass through unchanged")
	}
	if _, ok := got["scale"]; !ok {
		t.Errorf("expected qualified form to be normalized to its bare segment")
	}
}
