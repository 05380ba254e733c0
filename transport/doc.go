/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

// Package transport dials the producer-facing socket and frames messages
// on it. It knows the wire message envelope shape (package wire) but
// nothing about session state or authentication; see package ingest for
// that layer.
package transport

import (
	"errors"
	"time"
)

// DialTimeout bounds the initial TCP connect, matching the default
// connect budget used throughout the ecosystem this client is modeled on.
const DialTimeout = 5 * time.Second

// MaxFrameSize bounds a single framed message. The protocol has no
// message anywhere near this size; it exists to keep a misbehaving peer
// from forcing an unbounded allocation.
const MaxFrameSize = 64 * 1024 * 1024

var (
	ErrFrameTooLarge  = errors.New("transport: frame exceeds maximum size")
	ErrShortRead      = errors.New("transport: short read filling frame")
	ErrShortWrite     = errors.New("transport: short write sending frame")
	ErrClosed         = errors.New("transport: connection is closed")
	ErrLocalAddrParse = errors.New("transport: failed to parse local address of new connection")
)

// TLSMode selects the transport security posture for Dial.
type TLSMode uint8

const (
	// TLSDisabled dials a plain TCP connection.
	TLSDisabled TLSMode = iota
	// TLSSecureNativeRoots dials TLS, verifying the peer certificate
	// against the host's native root trust store.
	TLSSecureNativeRoots
	// TLSInsecureAcceptAny dials TLS without verifying the peer
	// certificate at all. Intended for loopback/dev use only.
	TLSInsecureAcceptAny
)
