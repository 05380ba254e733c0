/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package tracebridge

import (
	"context"
	"testing"
)

func TestTimelineFromContextWithoutCellFails(t *testing.T) {
	if _, ok := TimelineFromContext(context.Background()); ok {
		t.Fatalf("expected no timeline without WithTimeline")
	}
}

func TestWithTimelineAllocatesLazilyAndStably(t *testing.T) {
	ctx := WithTimeline(context.Background())
	id1, ok := TimelineFromContext(ctx)
	if !ok {
		t.Fatalf("expected a timeline after WithTimeline")
	}
	id2, ok := TimelineFromContext(ctx)
	if !ok || id2 != id1 {
		t.Fatalf("expected the same timeline id on repeated lookups, got %v and %v", id1, id2)
	}
}

func TestWithTimelineIsStableAcrossDerivedContexts(t *testing.T) {
	root := WithTimeline(context.Background())
	id1, _ := TimelineFromContext(root)

	child := context.WithValue(root, struct{ k string }{"unrelated"}, "v")
	id2, ok := TimelineFromContext(child)
	if !ok || id2 != id1 {
		t.Fatalf("expected a context derived from root to share its timeline cell, got %v and %v", id1, id2)
	}
}

func TestWithTimelineIsIdempotent(t *testing.T) {
	ctx := WithTimeline(context.Background())
	again := WithTimeline(ctx)
	id1, _ := TimelineFromContext(ctx)
	id2, _ := TimelineFromContext(again)
	if id1 != id2 {
		t.Fatalf("expected WithTimeline on an already-attached context to be a no-op")
	}
}
