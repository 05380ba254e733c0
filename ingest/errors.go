/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

// Package ingest is the session-state-machine layer: connection
// lifecycle, authentication, attribute-key interning, timeline binding,
// and event submission. It exposes both a typestate client, whose Go
// type changes as the session advances, and a DynamicSession that
// tracks the same phases at runtime for callers that can't thread
// typestate through their own data structures.
package ingest

import "errors"

var (
	// Connection errors, raised by Connect.
	ErrNoIps                = errors.New("ingest: endpoint resolved to no usable IP addresses")
	ErrSocketInit           = errors.New("ingest: failed to initialize socket")
	ErrSocketConnection     = errors.New("ingest: failed to connect to endpoint")
	ErrTls                  = errors.New("ingest: TLS handshake failed")
	ErrClientLocalAddrParse = errors.New("ingest: failed to parse local address of new connection")
	ErrParseIngestEndpoint  = errors.New("ingest: failed to parse ingest endpoint")

	// Protocol errors, raised once a session is live.
	ErrAuthenticationError    = errors.New("ingest: authentication rejected")
	ErrClientNotAuthenticated = errors.New("ingest: operation requires an authenticated session")
	ErrAttrKeyNaming          = errors.New("ingest: attribute key name is empty, non-ASCII, or contains '.'")
	ErrNoBoundTimeline        = errors.New("ingest: operation requires a bound timeline")
	ErrProtocolError          = errors.New("ingest: unexpected message from server")
	ErrTimeout                = errors.New("ingest: operation timed out")
	ErrCborEncode             = errors.New("ingest: failed to encode message")
	ErrCborDecode             = errors.New("ingest: failed to decode message")
	ErrIo                     = errors.New("ingest: transport I/O error")
)
