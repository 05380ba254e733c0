/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

// Package wire defines the attribute value model, identifier types, and
// CBOR wire messages shared by the ingest and mutation-plane clients. It
// has no knowledge of sockets or sessions; see package transport for
// framing and package ingest for the session state machine.
package wire

import "errors"

var (
	ErrAttrKeyNaming       = errors.New("wire: attribute key is empty, non-ASCII, or contains '.'")
	ErrUnknownAttrValTag   = errors.New("wire: unrecognized CBOR tag for attribute value")
	ErrUnexpectedCBORType  = errors.New("wire: unexpected CBOR major type for attribute value")
	ErrInvalidTimelineId   = errors.New("wire: timeline id payload must be exactly 16 bytes")
	ErrInvalidId           = errors.New("wire: id payload must be exactly 16 bytes")
	ErrMalformedPackedKvs  = errors.New("wire: malformed packed attribute kvs (odd array length)")
	ErrOrderingTooLarge    = errors.New("wire: ordering value exceeds 128 bits")
	ErrOrderingNegative    = errors.New("wire: ordering value must be non-negative")
	ErrInvalidOrderingLen  = errors.New("wire: encoded ordering must be 1-16 bytes")
	ErrUnknownMessageKind  = errors.New("wire: unrecognized message discriminant")
	ErrMalformedMessage    = errors.New("wire: malformed message envelope")
)
