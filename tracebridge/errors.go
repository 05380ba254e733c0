/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

// Package tracebridge demultiplexes events from many goroutine-affined
// "threads", each owning its own lazily-allocated timeline, onto a
// single Ingest Facade connection. Producers never touch the
// connection directly; they push onto an unbounded queue and a single
// dispatcher goroutine drains it, switching the bound timeline as
// needed.
package tracebridge

import "errors"

// ErrNoTimeline is returned by Record when ctx was never passed through
// WithTimeline.
var ErrNoTimeline = errors.New("tracebridge: context carries no timeline cell")
