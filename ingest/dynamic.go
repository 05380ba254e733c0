/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package ingest

import (
	"math/big"

	"github.com/auxoncorp/auxon-sdk-sub001/log"
	"github.com/auxoncorp/auxon-sdk-sub001/transport"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// Phase is the runtime state of a DynamicSession, mirroring the typed
// client's compile-time phases.
type Phase int

const (
	PhaseUnauthenticated Phase = iota
	PhaseReady
	PhaseBound
)

func (p Phase) String() string {
	switch p {
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseReady:
		return "ready"
	case PhaseBound:
		return "bound"
	}
	return "unknown"
}

// DynamicSession tracks session phase at runtime instead of through the
// Go type system, for callers that can't thread a typed session through
// their own control flow (e.g. a struct field that outlives one function).
type DynamicSession struct {
	core     *core
	phase    Phase
	timeline wire.TimelineId
}

// DynamicConnect dials ep and returns a DynamicSession in the
// Unauthenticated phase.
func DynamicConnect(ep transport.Endpoint, mode transport.TLSMode) (*DynamicSession, error) {
	u, err := Connect(ep, mode)
	if err != nil {
		return nil, err
	}
	return &DynamicSession{core: u.core, phase: PhaseUnauthenticated}, nil
}

// Phase reports the session's current phase.
func (d *DynamicSession) Phase() Phase { return d.phase }

// BoundTimeline reports the currently bound timeline, if any.
func (d *DynamicSession) BoundTimeline() (wire.TimelineId, bool) {
	if d.phase != PhaseBound {
		return wire.TimelineId{}, false
	}
	return d.timeline, true
}

// Authenticate sends an AuthRequest and advances to the Ready phase on
// success.
func (d *DynamicSession) Authenticate(token []byte) error {
	if d.phase != PhaseUnauthenticated {
		return ErrClientNotAuthenticated
	}
	if err := d.core.conn.WriteMessage(wire.AuthRequest{Token: token}); err != nil {
		return wrapIo(err)
	}
	m, err := d.core.conn.ReadMessage()
	if err != nil {
		return wrapIo(err)
	}
	switch resp := m.(type) {
	case wire.AuthResponse:
		if !resp.Ok {
			d.core.lgr.Warnf("ingest: authentication rejected")
			return ErrAuthenticationError
		}
		d.core.lgr.Infof("ingest: authenticated")
		d.phase = PhaseReady
		return nil
	case wire.UnauthenticatedResponse:
		d.core.lgr.Warnf("ingest: authentication rejected")
		return ErrAuthenticationError
	default:
		return ErrProtocolError
	}
}

// SetLogger directs diagnostic output for this session to lgr.
func (d *DynamicSession) SetLogger(lgr *log.Logger) { d.core.lgr = lgr }

// DeclareAttrKey is legal in Ready or Bound.
func (d *DynamicSession) DeclareAttrKey(name string) (wire.InternedAttrKey, error) {
	if d.phase == PhaseUnauthenticated {
		return 0, ErrClientNotAuthenticated
	}
	return d.core.DeclareAttrKey(name)
}

// OpenTimeline is always legal once authenticated; it binds (or rebinds)
// the session to id.
func (d *DynamicSession) OpenTimeline(id wire.TimelineId) error {
	if d.phase == PhaseUnauthenticated {
		return ErrClientNotAuthenticated
	}
	if err := d.core.openTimeline(id); err != nil {
		return err
	}
	d.timeline = id
	d.phase = PhaseBound
	return nil
}

// CloseTimeline unbinds the timeline and returns to the Ready phase. A
// local-only state change; no wire message is sent.
func (d *DynamicSession) CloseTimeline() error {
	if d.phase != PhaseBound {
		return ErrNoBoundTimeline
	}
	d.core.lgr.Infof("ingest: unbound from timeline %s", d.timeline)
	d.phase = PhaseReady
	d.timeline = wire.TimelineId{}
	return nil
}

// TimelineMetadata requires a bound timeline.
func (d *DynamicSession) TimelineMetadata(attrs wire.PackedAttrKvs) error {
	if d.phase != PhaseBound {
		return ErrNoBoundTimeline
	}
	return d.core.timelineMetadata(attrs)
}

// Event requires a bound timeline.
func (d *DynamicSession) Event(ordering *big.Int, attrs wire.PackedAttrKvs) error {
	if d.phase != PhaseBound {
		return ErrNoBoundTimeline
	}
	return d.core.event(ordering, attrs)
}

// Flush is legal in Ready or Bound.
func (d *DynamicSession) Flush() error {
	if d.phase == PhaseUnauthenticated {
		return ErrClientNotAuthenticated
	}
	return d.core.Flush()
}

// Status is legal in Ready or Bound.
func (d *DynamicSession) Status() (IngestStatus, error) {
	if d.phase == PhaseUnauthenticated {
		return IngestStatus{}, ErrClientNotAuthenticated
	}
	return d.core.Status()
}

// Close tears down the underlying connection.
func (d *DynamicSession) Close() error { return d.core.Close() }
