package ingest

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/auxoncorp/auxon-sdk-sub001/log"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// fakeConn is an in-memory conn used to drive the session state machine
// without a real socket. Writes are recorded; reads are served from a
// pre-loaded queue.
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
		return nil, wrapIo(errEOF{})
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

func newTestUnauthenticated(fc *fakeConn) *Unauthenticated {
	return &Unauthenticated{core: newCore(fc)}
}

func TestTypedHappyPathScenario(t *testing.T) {
	fc := &fakeConn{toRead: []wire.Message{wire.AuthResponse{Ok: true}}}
	u := newTestUnauthenticated(fc)

	ready, err := u.Authenticate([]byte{0xde, 0xad, 0xbe, 0xef})
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	id, err := ready.DeclareAttrKey("k")
	if err != nil {
		t.Fatalf("DeclareAttrKey: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first declared id to be 1, got %d", id)
	}

	tl := wire.NewTimelineId()
	bound, err := ready.OpenTimeline(tl)
	if err != nil {
		t.Fatalf("OpenTimeline: %v", err)
	}

	if err := bound.Event(big.NewInt(5), wire.PackedAttrKvs{{Key: id, Val: wire.IntegerVal(42)}}); err != nil {
		t.Fatalf("Event: %v", err)
	}

	if len(fc.written) != 4 {
		t.Fatalf("expected 4 frames written, got %d", len(fc.written))
	}
	if _, ok := fc.written[0].(wire.AuthRequest); !ok {
		t.Errorf("frame 0 should be AuthRequest, got %T", fc.written[0])
	}
	if _, ok := fc.written[1].(wire.DeclareAttrKey); !ok {
		t.Errorf("frame 1 should be DeclareAttrKey, got %T", fc.written[1])
	}
	if _, ok := fc.written[2].(wire.OpenTimeline); !ok {
		t.Errorf("frame 2 should be OpenTimeline, got %T", fc.written[2])
	}
	ev, ok := fc.written[3].(wire.Event)
	if !ok {
		t.Fatalf("frame 3 should be Event, got %T", fc.written[3])
	}
	if len(ev.BeOrdering) != 1 || ev.BeOrdering[0] != 5 {
		t.Errorf("unexpected be_ordering: %v", ev.BeOrdering)
	}
}

func TestAuthenticationRejected(t *testing.T) {
	fc := &fakeConn{toRead: []wire.Message{wire.AuthResponse{Ok: false}}}
	u := newTestUnauthenticated(fc)
	if _, err := u.Authenticate([]byte("bad")); err != ErrAuthenticationError {
		t.Fatalf("expected ErrAuthenticationError, got %v", err)
	}
}

func TestAuthenticationUnauthenticatedResponse(t *testing.T) {
	fc := &fakeConn{toRead: []wire.Message{wire.UnauthenticatedResponse{}}}
	u := newTestUnauthenticated(fc)
	if _, err := u.Authenticate([]byte("bad")); err != ErrAuthenticationError {
		t.Fatalf("expected ErrAuthenticationError, got %v", err)
	}
}

func TestAuthenticateLogsLifecycleEvents(t *testing.T) {
	var buf bytes.Buffer
	fc := &fakeConn{toRead: []wire.Message{wire.AuthResponse{Ok: true}}}
	u := newTestUnauthenticated(fc)
	u.SetLogger(log.New(&buf))

	if _, err := u.Authenticate([]byte("tok")); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if !strings.Contains(buf.String(), "authenticated") {
		t.Fatalf("expected an authenticated log line, got %q", buf.String())
	}
}

func TestOpenTimelineLogsBindEvent(t *testing.T) {
	var buf bytes.Buffer
	fc := &fakeConn{}
	ready := &Ready{core: newCore(fc)}
	ready.SetLogger(log.New(&buf))

	if _, err := ready.OpenTimeline(wire.NewTimelineId()); err != nil {
		t.Fatalf("OpenTimeline: %v", err)
	}
	if !strings.Contains(buf.String(), "bound to timeline") {
		t.Fatalf("expected a bind log line, got %q", buf.String())
	}
}

func TestDeclareAttrKeyRejectsDottedName(t *testing.T) {
	fc := &fakeConn{}
	ready := &Ready{core: newCore(fc)}
	if _, err := ready.DeclareAttrKey("a.b"); err != ErrAttrKeyNaming {
		t.Fatalf("expected ErrAttrKeyNaming, got %v", err)
	}
	if len(fc.written) != 0 {
		t.Fatalf("expected no frame sent for a rejected declaration, got %d", len(fc.written))
	}
}

func TestDeclareAttrKeyMonotonicIds(t *testing.T) {
	fc := &fakeConn{}
	ready := &Ready{core: newCore(fc)}
	id1, err := ready.DeclareAttrKey("a")
	if err != nil {
		t.Fatalf("DeclareAttrKey: %v", err)
	}
	id2, err := ready.DeclareAttrKey("a")
	if err != nil {
		t.Fatalf("DeclareAttrKey: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct ids for repeated declaration, got %d twice", id1)
	}
	if id2 != id1+1 {
		t.Fatalf("expected strictly increasing ids, got %d then %d", id1, id2)
	}
}

func TestStatusRoundTrip(t *testing.T) {
	errs := uint64(0)
	fc := &fakeConn{toRead: []wire.Message{wire.IngestStatusResponse{
		EventsReceived: 10, EventsWritten: 8, EventsPending: 2, ErrorCount: &errs,
	}}}
	ready := &Ready{core: newCore(fc)}
	st, err := ready.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.CurrentTimeline != nil {
		t.Errorf("expected no current timeline, got %+v", st.CurrentTimeline)
	}
	if st.EventsReceived != 10 || st.EventsWritten != 8 || st.EventsPending != 2 {
		t.Errorf("unexpected status: %+v", st)
	}
}

func TestCloseTimelineThenEventViaDynamic(t *testing.T) {
	fc := &fakeConn{}
	d := &DynamicSession{core: newCore(fc), phase: PhaseBound, timeline: wire.NewTimelineId()}
	if err := d.CloseTimeline(); err != nil {
		t.Fatalf("CloseTimeline: %v", err)
	}
	if err := d.Event(big.NewInt(1), nil); err != ErrNoBoundTimeline {
		t.Fatalf("expected ErrNoBoundTimeline, got %v", err)
	}
}

func TestDynamicEventBeforeOpenTimeline(t *testing.T) {
	fc := &fakeConn{toRead: []wire.Message{wire.AuthResponse{Ok: true}}}
	d := &DynamicSession{core: newCore(fc), phase: PhaseUnauthenticated}
	if err := d.Authenticate([]byte{1}); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if err := d.Event(big.NewInt(1), nil); err != ErrNoBoundTimeline {
		t.Fatalf("expected ErrNoBoundTimeline, got %v", err)
	}
}

func TestDynamicOpenTimelineBeforeAuthFails(t *testing.T) {
	fc := &fakeConn{}
	d := &DynamicSession{core: newCore(fc), phase: PhaseUnauthenticated}
	if err := d.OpenTimeline(wire.NewTimelineId()); err != ErrClientNotAuthenticated {
		t.Fatalf("expected ErrClientNotAuthenticated, got %v", err)
	}
}
