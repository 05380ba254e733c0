/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package ingest

import (
	"errors"
	"fmt"
	"net"

	"github.com/auxoncorp/auxon-sdk-sub001/log"
	"github.com/auxoncorp/auxon-sdk-sub001/transport"
	"github.com/auxoncorp/auxon-sdk-sub001/wire"
)

// DefaultIngestPort is the well-known loopback port for the ingest
// endpoint.
const DefaultIngestPort uint16 = 14182

// ParseEndpoint resolves hostport (host:port, or a bare host defaulting
// to DefaultIngestPort) to a transport.Endpoint, picking the first
// resolved address.
func ParseEndpoint(hostport string) (transport.Endpoint, error) {
	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		host = hostport
		portStr = fmt.Sprintf("%d", DefaultIngestPort)
	}
	var port uint16
	if _, err := fmt.Sscanf(portStr, "%d", &port); err != nil {
		return transport.Endpoint{}, ErrParseIngestEndpoint
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return transport.Endpoint{}, ErrParseIngestEndpoint
	}
	if len(ips) == 0 {
		return transport.Endpoint{}, ErrNoIps
	}
	return transport.Endpoint{IP: ips[0], Port: port}, nil
}

// Unauthenticated is a freshly connected session that has not yet
// completed the auth handshake. The only legal operation is Authenticate.
type Unauthenticated struct {
	core *core
}

// Connect dials ep under the given TLS posture and returns a session in
// the Unauthenticated phase.
func Connect(ep transport.Endpoint, mode transport.TLSMode) (*Unauthenticated, error) {
	c, err := transport.Dial(ep, mode)
	if err != nil {
		return nil, classifyDialError(err, mode)
	}
	core := newCore(c)
	core.lgr.Infof("ingest: connected to %s", ep)
	return &Unauthenticated{core: core}, nil
}

// SetLogger directs diagnostic output for this session, and every phase it
// later advances through, to lgr instead of discarding it.
func (u *Unauthenticated) SetLogger(lgr *log.Logger) { u.core.lgr = lgr }

// classifyDialError maps the underlying net/tls error into one of the
// connection-level sentinels. The distinction between socket-init and
// socket-connection failures is informational only: both are terminal
// and the wrapped error retains the original cause for diagnostics.
func classifyDialError(err error, mode transport.TLSMode) error {
	if errors.Is(err, transport.ErrLocalAddrParse) {
		return fmt.Errorf("%w: %v", ErrClientLocalAddrParse, err)
	}
	if mode != transport.TLSDisabled {
		if _, ok := err.(*net.OpError); !ok {
			return fmt.Errorf("%w: %v", ErrTls, err)
		}
	}
	if _, ok := err.(*net.OpError); ok {
		return fmt.Errorf("%w: %v", ErrSocketConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrSocketInit, err)
}

// Authenticate sends an AuthRequest carrying token and awaits the
// server's response, advancing to the Ready phase on success.
func (u *Unauthenticated) Authenticate(token []byte) (*Ready, error) {
	if err := u.core.conn.WriteMessage(wire.AuthRequest{Token: token}); err != nil {
		return nil, wrapIo(err)
	}
	m, err := u.core.conn.ReadMessage()
	if err != nil {
		return nil, wrapIo(err)
	}
	switch resp := m.(type) {
	case wire.AuthResponse:
		if !resp.Ok {
			u.core.lgr.Warnf("ingest: authentication rejected")
			return nil, ErrAuthenticationError
		}
		u.core.lgr.Infof("ingest: authenticated")
		return &Ready{core: u.core}, nil
	case wire.UnauthenticatedResponse:
		u.core.lgr.Warnf("ingest: authentication rejected")
		return nil, ErrAuthenticationError
	default:
		return nil, ErrProtocolError
	}
}

// Close tears down the underlying connection without authenticating.
func (u *Unauthenticated) Close() error { return u.core.Close() }
