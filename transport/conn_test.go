package transport

import (
	"net"
	"testing"

	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

func pipeConns(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	return newConn(a), newConn(b)
}

func TestConnWriteReadMessageRoundTrip(t *testing.T) {
	client, server := pipeConns(t)
	defer client.Close()
	defer server.Close()

	done := make(chan error, 1)
	go func() {
		done <- client.WriteMessage(wire.AuthRequest{Token: []byte{1, 2, 3, 4}})
	}()

	got, err := server.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	req, ok := got.(wire.AuthRequest)
	if !ok {
		t.Fatalf("expected AuthRequest, got %T", got)
	}
	if len(req.Token) != 4 || req.Token[0] != 1 {
		t.Errorf("unexpected token: %v", req.Token)
	}
}

func TestConnRejectsOversizedFrame(t *testing.T) {
	client, server := pipeConns(t)
	defer client.Close()
	defer server.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- client.writeFrame(make([]byte, MaxFrameSize+1))
	}()
	if err := <-errCh; err != ErrFrameTooLarge {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
	_ = server
}

func TestConnCloseIsIdempotent(t *testing.T) {
	client, _ := pipeConns(t)
	if err := client.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestConnUseAfterCloseReturnsErrClosed(t *testing.T) {
	client, server := pipeConns(t)
	server.Close()
	client.Close()

	if err := client.WriteMessage(wire.AuthRequest{}); err != ErrClosed {
		t.Fatalf("expected ErrClosed from WriteMessage, got %v", err)
	}
	if _, err := client.ReadMessage(); err != ErrClosed {
		t.Fatalf("expected ErrClosed from ReadMessage, got %v", err)
	}
}
