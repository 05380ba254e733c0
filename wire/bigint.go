/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

import "math/big"

// bigIntTagAndPayload computes the CBOR bignum tag number and minimal
// big-endian payload for n, per RFC 8949 3.4.3: non-negative values use the
// positive-bignum tag with n's own bytes; negative values use the
// negative-bignum tag with the bytes of -1-n.
func bigIntTagAndPayload(n *big.Int) (tag uint64, payload []byte) {
	if n.Sign() < 0 {
		m := new(big.Int).Neg(n)
		m.Sub(m, big.NewInt(1))
		return tagNegativeBig, m.Bytes()
	}
	return tagPositiveBig, n.Bytes()
}

// bigIntFromTagPayload reverses bigIntTagAndPayload.
func bigIntFromTagPayload(tag uint64, payload []byte) *big.Int {
	n := new(big.Int).SetBytes(payload)
	if tag == tagNegativeBig {
		n.Neg(n)
		n.Sub(n, big.NewInt(1))
	}
	return n
}
