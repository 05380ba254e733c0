/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package ingest

import (
	"math/big"

	"github.com/auxoncorp/auxon-sdk-sub001/log"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// Ready is an authenticated session with no bound timeline. The Go type
// system forbids Event/TimelineMetadata calls until OpenTimeline returns
// a Bound.
type Ready struct {
	*core
}

// OpenTimeline binds the session to id, returning a Bound session.
func (r *Ready) OpenTimeline(id wire.TimelineId) (*Bound, error) {
	if err := r.core.openTimeline(id); err != nil {
		return nil, err
	}
	return &Bound{core: r.core, timeline: id}, nil
}

// Dynamic converts r into a DynamicSession in the Ready phase.
func (r *Ready) Dynamic() *DynamicSession {
	return &DynamicSession{core: r.core, phase: PhaseReady}
}

// SetLogger directs diagnostic output for this session to lgr.
func (r *Ready) SetLogger(lgr *log.Logger) { r.core.lgr = lgr }

// Close tears down the underlying connection.
func (r *Ready) Close() error { return r.core.Close() }

// Bound is an authenticated session bound to a timeline. Event and
// TimelineMetadata are only reachable through this type.
type Bound struct {
	*core
	timeline wire.TimelineId
}

// Timeline reports the currently bound timeline id.
func (b *Bound) Timeline() wire.TimelineId { return b.timeline }

// OpenTimeline rebinds the session to a different timeline.
func (b *Bound) OpenTimeline(id wire.TimelineId) (*Bound, error) {
	if err := b.core.openTimeline(id); err != nil {
		return nil, err
	}
	b.timeline = id
	return b, nil
}

// TimelineMetadata attaches attrs to the bound timeline.
func (b *Bound) TimelineMetadata(attrs wire.PackedAttrKvs) error {
	return b.core.timelineMetadata(attrs)
}

// Event submits one event at the given ordering on the bound timeline.
func (b *Bound) Event(ordering *big.Int, attrs wire.PackedAttrKvs) error {
	return b.core.event(ordering, attrs)
}

// CloseTimeline unbinds the timeline, returning to the Ready phase. This
// is a purely local state change; no wire message is sent.
func (b *Bound) CloseTimeline() *Ready {
	b.core.lgr.Infof("ingest: unbound from timeline %s", b.timeline)
	return &Ready{core: b.core}
}

// Dynamic converts b into a DynamicSession in the Bound phase.
func (b *Bound) Dynamic() *DynamicSession {
	return &DynamicSession{core: b.core, phase: PhaseBound, timeline: b.timeline}
}

// Close tears down the underlying connection.
func (b *Bound) Close() error { return b.core.Close() }

// SetLogger directs diagnostic output for this session to lgr.
func (b *Bound) SetLogger(lgr *log.Logger) { b.core.lgr = lgr }
