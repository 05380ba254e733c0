/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package mutationplane

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/auxoncorp/auxon-sdk-sub001/log"
	"github.com/auxoncorp/auxon-sdk-sub001/transport"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

var ErrParseMutationEndpoint = fmt.Errorf("mutationplane: could not parse endpoint")

// ParseEndpoint resolves hostport to a transport.Endpoint. Unlike the
// ingest endpoint there is no single well-known default port for the
// mutation plane (spec.md section 6: "the loopback configured port for
// mutation"), so hostport must include one explicitly.
func ParseEndpoint(hostport string) (transport.Endpoint, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return transport.Endpoint{}, ErrParseMutationEndpoint
	}
	var port uint16
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return transport.Endpoint{}, ErrParseMutationEndpoint
	}
	ips, err := net.LookupIP(host)
	if err != nil || len(ips) == 0 {
		return transport.Endpoint{}, ErrParseMutationEndpoint
	}
	return transport.Endpoint{IP: ips[0], Port: port}, nil
}

// conn is the subset of *transport.Conn the client depends on, narrowed
// so tests can substitute an in-memory fake.
type conn interface {
	WriteMessage(wire.Message) error
	ReadMessage() (wire.Message, error)
	Close() error
}

// Client is one connection to the mutation plane: it registers a
// participant, announces the mutators in reg, and runs a dispatch loop
// that routes incoming mutation commands to reg's actuators.
type Client struct {
	conn conn
	reg  *Registry
	lgr  *log.Logger
	self wire.ParticipantId

	mtx    sync.Mutex
	active map[wire.MutationId]wire.MutatorId
}

// Connect dials ep and returns a Client bound to reg, not yet registered
// with the backend.
func Connect(ep transport.Endpoint, mode transport.TLSMode, reg *Registry) (*Client, error) {
	c, err := transport.Dial(ep, mode)
	if err != nil {
		return nil, fmt.Errorf("mutationplane: dial: %w", err)
	}
	return newClient(c, reg), nil
}

func newClient(c conn, reg *Registry) *Client {
	return &Client{conn: c, reg: reg, lgr: log.NewDiscard(), active: make(map[wire.MutationId]wire.MutatorId)}
}

// SetLogger directs diagnostic output (participant registration, the
// reset on (re)connect, unexpected message kinds, failed reply writes) to
// lgr instead of discarding it.
func (cl *Client) SetLogger(lgr *log.Logger) { cl.lgr = lgr }

// Close tears down the underlying connection.
func (cl *Client) Close() error { return cl.conn.Close() }

// RegisterParticipant identifies this process to the backend as id, and
// announces every mutator currently in the client's registry. Per the
// "reset on reconnect" contract, every registered mutator is reset before
// Run begins accepting mutation commands.
func (cl *Client) RegisterParticipant(id wire.ParticipantId) error {
	cl.self = id
	if err := cl.conn.WriteMessage(wire.RegisterParticipant{Id: id}); err != nil {
		return fmt.Errorf("mutationplane: %w", err)
	}
	m, err := cl.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("mutationplane: %w", err)
	}
	ack, ok := m.(wire.RegisterParticipantAck)
	if !ok {
		return ErrProtocolError
	}
	if !ack.Ok {
		cl.lgr.Warnf("mutationplane: registration of participant %s rejected", id)
		return ErrRegistrationRejected
	}
	cl.lgr.Infof("mutationplane: registered participant %s", id)
	for _, id := range cl.reg.Ids() {
		if err := cl.announceMutator(id); err != nil {
			return err
		}
	}
	n := cl.reg.ResetAll()
	cl.lgr.Infof("mutationplane: reset %d mutator(s) on (re)connect", n)
	cl.mtx.Lock()
	cl.active = make(map[wire.MutationId]wire.MutatorId)
	cl.mtx.Unlock()
	return nil
}

func (cl *Client) announceMutator(id wire.MutatorId) error {
	a, ok := cl.reg.Get(id)
	if !ok {
		return ErrUnknownMutator
	}
	d, err := a.Descriptor()
	if err != nil {
		return fmt.Errorf("mutationplane: descriptor for %s: %w", id, err)
	}
	return cl.conn.WriteMessage(wire.AnnounceMutator{Id: id, Descriptor: descriptorToAttrs(d)})
}

// Run reads and dispatches mutation-plane commands until ctx is
// cancelled or the connection fails. Each command is routed to the
// matching actuator and awaited before the client acknowledges it, per
// the dispatch contract; an unknown MutatorId is reported back as a
// rejected reply rather than terminating the loop.
func (cl *Client) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m, err := cl.conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("mutationplane: %w", err)
		}
		switch cmd := m.(type) {
		case wire.MutationCommand:
			cl.dispatchMutation(ctx, cmd)
		case wire.ClearMutation:
			cl.dispatchClear(cmd)
		default:
			cl.lgr.Warnf("mutationplane: unexpected message kind %d", m.Kind())
		}
	}
}

func (cl *Client) dispatchMutation(ctx context.Context, cmd wire.MutationCommand) {
	a, ok := cl.reg.Get(cmd.MutatorId)
	if !ok {
		cl.reply(cmd.MutationId, false, "unknown mutator id")
		return
	}
	if err := a.Inject(ctx, cmd.MutationId, paramsToMap(cmd.Params)); err != nil {
		cl.reply(cmd.MutationId, false, err.Error())
		return
	}
	cl.mtx.Lock()
	cl.active[cmd.MutationId] = cmd.MutatorId
	cl.mtx.Unlock()
	cl.reply(cmd.MutationId, true, "")
}

func (cl *Client) reply(id wire.MutationId, ok bool, message string) {
	rep := wire.MutationReply{MutationId: id, Ok: ok}
	if message != "" {
		rep.Message = &message
	}
	if err := cl.conn.WriteMessage(rep); err != nil {
		cl.lgr.Errorf("mutationplane: writing reply for %s: %v", id, err)
	}
}

func (cl *Client) dispatchClear(cmd wire.ClearMutation) {
	cl.mtx.Lock()
	mutatorId, owned := cl.active[cmd.MutationId]
	cl.mtx.Unlock()
	if !owned {
		// Unknown mutation ids are a no-op, per the clear_mutation
		// contract's idempotence requirement.
		cl.ackClear(cmd.MutationId, true, "")
		return
	}
	a, ok := cl.reg.Get(mutatorId)
	if !ok {
		cl.ackClear(cmd.MutationId, true, "")
		return
	}
	if clearer, ok := a.(MutationClearer); ok {
		if err := clearer.ClearMutation(cmd.MutationId); err != nil {
			cl.ackClear(cmd.MutationId, false, err.Error())
			return
		}
	}
	cl.mtx.Lock()
	delete(cl.active, cmd.MutationId)
	cl.mtx.Unlock()
	cl.ackClear(cmd.MutationId, true, "")
}

func (cl *Client) ackClear(id wire.MutationId, ok bool, message string) {
	ack := wire.ClearMutationAck{MutationId: id, Ok: ok}
	if message != "" {
		ack.Message = &message
	}
	if err := cl.conn.WriteMessage(ack); err != nil {
		cl.lgr.Errorf("mutationplane: writing clear ack for %s: %v", id, err)
	}
}
