/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

// Reserved CBOR tag numbers for non-primitive AttrVal variants. These are
// registered in the private-use range the backend and every client
// language agree on; they must never change without a protocol version
// bump.
const (
	tagNanoseconds  uint64 = 40000
	tagLogicalTime  uint64 = 40001
	tagTimelineId   uint64 = 40002
	tagPositiveBig  uint64 = 2 // RFC 8949 standard positive bignum
	tagNegativeBig  uint64 = 3 // RFC 8949 standard negative bignum
)
