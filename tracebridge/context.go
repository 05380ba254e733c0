/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package tracebridge

import (
	"context"
	"sync"

	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

type contextKey struct{}

// timelineCell is attached to a context exactly once and shared by every
// context derived from it afterward, so the TimelineId it lazily
// allocates is the same for every call site that shares this context
// lineage. This stands in for genuine OS-thread-local storage, which Go
// has no portable way to express; callers should attach one cell per
// goroutine that plays the role of a "thread" in the spec's sense
// (typically once near the top of a worker's main loop) and thread that
// context through, rather than deriving a fresh cell per call.
type timelineCell struct {
	once sync.Once
	id   wire.TimelineId
}

func (c *timelineCell) get() wire.TimelineId {
	c.once.Do(func() { c.id = wire.NewTimelineId() })
	return c.id
}

// WithTimeline attaches a fresh, not-yet-allocated timeline cell to ctx,
// if one is not already present. Call this once per goroutine that will
// originate events, then pass the returned context to Record.
func WithTimeline(ctx context.Context) context.Context {
	if _, ok := ctx.Value(contextKey{}).(*timelineCell); ok {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, &timelineCell{})
}

// TimelineFromContext returns the TimelineId owned by ctx's timeline
// cell, allocating it on first use. ok is false if ctx was never passed
// through WithTimeline.
func TimelineFromContext(ctx context.Context) (wire.TimelineId, bool) {
	cell, ok := ctx.Value(contextKey{}).(*timelineCell)
	if !ok {
		return wire.TimelineId{}, false
	}
	return cell.get(), true
}
