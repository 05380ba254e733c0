/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package ingest

import (
	"math/big"
	"sync"
	"time"

	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// EventTimestampKey is the attribute name Facade uses for its
// auto-timestamp injection.
const EventTimestampKey = "event.timestamp"

// Facade wraps a DynamicSession with a name-keyed attribute API: callers
// pass plain strings and AttrVals, and the facade declares any
// previously-unseen key the first time it's used, caching the resulting
// interned id for subsequent calls on the same connection.
type Facade struct {
	session *DynamicSession

	mtx           sync.Mutex
	keyCache      map[string]wire.InternedAttrKey
	autoTimestamp bool
}

// NewFacade wraps session. If autoTimestamp is true, Event injects
// EventTimestampKey with the current wall-clock time in nanoseconds
// whenever the caller didn't already supply it.
func NewFacade(session *DynamicSession, autoTimestamp bool) *Facade {
	return &Facade{
		session:       session,
		keyCache:      make(map[string]wire.InternedAttrKey),
		autoTimestamp: autoTimestamp,
	}
}

// Attr is a single name/value pair as the facade's callers supply it,
// before key interning.
type Attr struct {
	Key string
	Val wire.AttrVal
}

func (f *Facade) internedKey(name string) (wire.InternedAttrKey, error) {
	f.mtx.Lock()
	if id, ok := f.keyCache[name]; ok {
		f.mtx.Unlock()
		return id, nil
	}
	f.mtx.Unlock()

	id, err := f.session.DeclareAttrKey(name)
	if err != nil {
		return 0, err
	}

	f.mtx.Lock()
	f.keyCache[name] = id
	f.mtx.Unlock()
	return id, nil
}

func (f *Facade) pack(attrs []Attr) (wire.PackedAttrKvs, error) {
	out := make(wire.PackedAttrKvs, 0, len(attrs))
	for _, a := range attrs {
		id, err := f.internedKey(a.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, wire.AttrKV{Key: id, Val: a.Val})
	}
	return out, nil
}

func hasKey(attrs []Attr, name string) bool {
	for _, a := range attrs {
		if a.Key == name {
			return true
		}
	}
	return false
}

// OpenTimeline binds the session to id.
func (f *Facade) OpenTimeline(id wire.TimelineId) error {
	return f.session.OpenTimeline(id)
}

// TimelineMetadata attaches name-keyed attrs to the bound timeline.
func (f *Facade) TimelineMetadata(attrs []Attr) error {
	packed, err := f.pack(attrs)
	if err != nil {
		return err
	}
	return f.session.TimelineMetadata(packed)
}

// Event submits an event at ordering with name-keyed attrs, injecting
// EventTimestampKey when auto-timestamping is enabled and the caller
// didn't supply it.
func (f *Facade) Event(ordering *big.Int, attrs []Attr) error {
	if f.autoTimestamp && !hasKey(attrs, EventTimestampKey) {
		attrs = append(attrs, Attr{
			Key: EventTimestampKey,
			Val: wire.TimestampVal(uint64(time.Now().UnixNano())),
		})
	}
	packed, err := f.pack(attrs)
	if err != nil {
		return err
	}
	return f.session.Event(ordering, packed)
}

// Flush asks the server to persist pending events.
func (f *Facade) Flush() error { return f.session.Flush() }

// Status queries the server's ingest status.
func (f *Facade) Status() (IngestStatus, error) { return f.session.Status() }

// Close tears down the underlying connection and invalidates the key
// cache; a new Facade is required after reconnecting.
func (f *Facade) Close() error {
	f.mtx.Lock()
	f.keyCache = make(map[string]wire.InternedAttrKey)
	f.mtx.Unlock()
	return f.session.Close()
}
