/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

import "strings"

// AttrKey is a human-readable attribute name, sent over the wire only at
// declaration time (see DeclareAttrKey in package ingest). Once declared,
// all subsequent references use the InternedAttrKey returned by that call.
type AttrKey string

// InternedAttrKey is a per-connection alias for an AttrKey, assigned by the
// client and announced to the server. It has no meaning outside the
// connection that declared it.
type InternedAttrKey uint32

// ValidateAttrKeyName reports whether name is legal as the argument to
// DeclareAttrKey: non-empty, ASCII, and free of '.' (a declared name is
// always a single segment; composite dotted schema keys, such as the
// mutator descriptor's "mutator.params.<k>.<suffix>" paths, are built by
// package mutator through its own schema-key path and sent un-interned on
// the mutation plane, so they never pass through this generic validator).
func ValidateAttrKeyName(name string) error {
	if name == "" {
		return ErrAttrKeyNaming
	}
	if !isASCII(name) {
		return ErrAttrKeyNaming
	}
	if strings.Contains(name, ".") {
		return ErrAttrKeyNaming
	}
	return nil
}

// IsValidParamKey reports whether s is legal as a <param-key> segment of a
// mutator parameter schema key: ASCII and free of '.'. Unlike
// ValidateAttrKeyName, the empty string is accepted, matching the original
// implementation's single-segment validator.
func IsValidParamKey(s string) bool {
	return isASCII(s) && !strings.Contains(s, ".")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}
