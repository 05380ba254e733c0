/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package ingest

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/auxoncorp/auxon-sdk-sub001/log"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// core holds the state shared by every phase of a session: the framed
// connection, the interned-key id allocator, and the logger session
// lifecycle events are reported to. It is never exposed directly; callers
// only ever hold one of the phase wrapper types.
type core struct {
	conn conn
	lgr  *log.Logger

	mtx       sync.Mutex
	nextKeyID wire.InternedAttrKey
}

// conn is the subset of *transport.Conn the session layer depends on,
// narrowed so tests can substitute an in-memory fake.
type conn interface {
	WriteMessage(wire.Message) error
	ReadMessage() (wire.Message, error)
	Close() error
}

func newCore(c conn) *core {
	return &core{conn: c, nextKeyID: 1, lgr: log.NewDiscard()}
}

// Close tears down the underlying transport. Safe to call on any phase.
func (c *core) Close() error {
	return c.conn.Close()
}

// DeclareAttrKey assigns the next unused interned id to name and
// announces the mapping to the server. Duplicate names are permitted and
// receive distinct ids each time, per the documented (if surprising)
// protocol behavior; callers that want name-based caching should use
// package ingest's Facade instead of calling this directly.
func (c *core) DeclareAttrKey(name string) (wire.InternedAttrKey, error) {
	if err := wire.ValidateAttrKeyName(name); err != nil {
		return 0, ErrAttrKeyNaming
	}
	c.mtx.Lock()
	id := c.nextKeyID
	c.nextKeyID++
	c.mtx.Unlock()

	if err := c.conn.WriteMessage(wire.DeclareAttrKey{Name: name, WireId: id}); err != nil {
		return 0, wrapIo(err)
	}
	return id, nil
}

// Flush asks the server to persist pending events. There is no response.
func (c *core) Flush() error {
	if err := c.conn.WriteMessage(wire.Flush{}); err != nil {
		return wrapIo(err)
	}
	return nil
}

// IngestStatus is the decoded, caller-friendly form of
// wire.IngestStatusResponse.
type IngestStatus struct {
	CurrentTimeline *wire.TimelineId
	EventsReceived  uint64
	EventsWritten   uint64
	EventsPending   uint64
	ErrorCount      *uint64
}

// Status sends an IngestStatusRequest and awaits the matching response.
func (c *core) Status() (IngestStatus, error) {
	if err := c.conn.WriteMessage(wire.IngestStatusRequest{}); err != nil {
		return IngestStatus{}, wrapIo(err)
	}
	m, err := c.conn.ReadMessage()
	if err != nil {
		return IngestStatus{}, wrapIo(err)
	}
	resp, ok := m.(wire.IngestStatusResponse)
	if !ok {
		return IngestStatus{}, ErrProtocolError
	}
	return IngestStatus{
		CurrentTimeline: resp.CurrentTimeline,
		EventsReceived:  resp.EventsReceived,
		EventsWritten:   resp.EventsWritten,
		EventsPending:   resp.EventsPending,
		ErrorCount:      resp.ErrorCount,
	}, nil
}

func (c *core) openTimeline(id wire.TimelineId) error {
	if err := c.conn.WriteMessage(wire.OpenTimeline{Id: id}); err != nil {
		c.lgr.Warnf("ingest: bind to timeline %s failed: %v", id, err)
		return wrapIo(err)
	}
	c.lgr.Infof("ingest: bound to timeline %s", id)
	return nil
}

func (c *core) timelineMetadata(attrs wire.PackedAttrKvs) error {
	if err := c.conn.WriteMessage(wire.TimelineMetadata{Attrs: attrs}); err != nil {
		return wrapIo(err)
	}
	return nil
}

func (c *core) event(ordering *big.Int, attrs wire.PackedAttrKvs) error {
	be, err := wire.EncodeOrdering(ordering)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if err := c.conn.WriteMessage(wire.Event{BeOrdering: be, Attrs: attrs}); err != nil {
		return wrapIo(err)
	}
	return nil
}

func wrapIo(err error) error {
	return fmt.Errorf("%w: %v", ErrIo, err)
}
