/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package tracebridge

import (
	"context"
	"math/big"

	"github.com/auxoncorp/auxon-sdk-sub001/ingest"
	"github.com/auxoncorp/auxon-sdk-sub001/log"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
	"golang.org/x/sync/errgroup"
)

// record is one queued event awaiting dispatch to the facade.
type record struct {
	timeline wire.TimelineId
	ordering *big.Int
	attrs    []ingest.Attr
}

// facadeWriter is the subset of *ingest.Facade the dispatcher depends on,
// narrowed so tests can substitute an in-memory fake instead of driving
// a real session.
type facadeWriter interface {
	OpenTimeline(wire.TimelineId) error
	Event(*big.Int, []ingest.Attr) error
	TimelineMetadata([]ingest.Attr) error
}

// Bridge owns a single Ingest Facade connection and fans in events from
// however many per-thread timelines are in play, opening whichever
// timeline a record targets before writing it.
type Bridge struct {
	facade facadeWriter
	queue  *unboundedQueue
	lgr    *log.Logger

	bound *wire.TimelineId
}

// NewBridge wraps facade. The facade's underlying session should already
// be authenticated; Bridge opens and switches timelines on demand as
// records with new timeline ids are dispatched.
func NewBridge(facade *ingest.Facade) *Bridge {
	return &Bridge{
		facade: facade,
		queue:  newUnboundedQueue(),
		lgr:    log.NewDiscard(),
	}
}

// SetLogger directs dispatch-time error reporting to lgr.
func (b *Bridge) SetLogger(lgr *log.Logger) { b.lgr = lgr }

// Record enqueues an event at ordering with attrs, targeting the
// timeline owned by ctx. ErrNoTimeline if ctx was never passed through
// WithTimeline. Record never blocks on the connection: the queue is
// unbounded, so a slow or stalled dispatcher cannot back-pressure the
// calling goroutine.
func (b *Bridge) Record(ctx context.Context, ordering *big.Int, attrs []ingest.Attr) error {
	id, ok := TimelineFromContext(ctx)
	if !ok {
		return ErrNoTimeline
	}
	b.queue.Push(record{timeline: id, ordering: ordering, attrs: attrs})
	return nil
}

// TimelineMetadata enqueues a metadata announcement for the timeline
// owned by ctx. It joins the same FIFO queue as Record, behind anything
// already queued, and does not block on the connection.
func (b *Bridge) TimelineMetadata(ctx context.Context, attrs []ingest.Attr) error {
	id, ok := TimelineFromContext(ctx)
	if !ok {
		return ErrNoTimeline
	}
	b.queue.Push(metadataRecord{timeline: id, attrs: attrs})
	return nil
}

type metadataRecord struct {
	timeline wire.TimelineId
	attrs    []ingest.Attr
}

// Run drains the queue and writes each record to the facade, switching
// the bound timeline whenever a record targets one other than the
// currently-open one, until ctx is cancelled. One goroutine dispatches;
// a second unblocks it by closing the queue when ctx.Done() fires, so
// Run returns promptly instead of waiting on the next Push.
func (b *Bridge) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		b.queue.Close()
		return ctx.Err()
	})
	g.Go(func() error {
		for {
			v, ok := b.queue.Pop()
			if !ok {
				return nil
			}
			if err := b.dispatch(v); err != nil {
				b.lgr.Errorf("tracebridge: dispatch: %v", err)
			}
		}
	})
	return g.Wait()
}

func (b *Bridge) dispatch(v interface{}) error {
	switch r := v.(type) {
	case record:
		if err := b.ensureBound(r.timeline); err != nil {
			return err
		}
		return b.facade.Event(r.ordering, r.attrs)
	case metadataRecord:
		if err := b.ensureBound(r.timeline); err != nil {
			return err
		}
		return b.facade.TimelineMetadata(r.attrs)
	default:
		return nil
	}
}

func (b *Bridge) ensureBound(id wire.TimelineId) error {
	if b.bound != nil && *b.bound == id {
		return nil
	}
	if err := b.facade.OpenTimeline(id); err != nil {
		return err
	}
	b.bound = &id
	return nil
}
