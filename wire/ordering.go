/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

import "math/big"

// EncodeOrdering renders n as the minimal-length big-endian unsigned
// sequence used for an Event's be_ordering field. n must be non-negative
// and no wider than 128 bits; n == 0 encodes as a single zero byte.
func EncodeOrdering(n *big.Int) ([]byte, error) {
	if n.Sign() < 0 {
		return nil, ErrOrderingNegative
	}
	if n.BitLen() > 128 {
		return nil, ErrOrderingTooLarge
	}
	b := n.Bytes()
	if len(b) == 0 {
		b = []byte{0}
	}
	return b, nil
}

// EncodeOrderingUint64 is a convenience wrapper for the common case of a
// plain uint64 ordering value.
func EncodeOrderingUint64(n uint64) []byte {
	b, err := EncodeOrdering(new(big.Int).SetUint64(n))
	if err != nil {
		// unreachable: a uint64 never exceeds 128 bits or goes negative.
		panic(err)
	}
	return b
}

// DecodeOrdering parses a be_ordering byte string back into its numeric
// value. It rejects an empty input and any input longer than 16 bytes,
// that is, any ordering wider than 128 bits.
func DecodeOrdering(b []byte) (*big.Int, error) {
	if len(b) == 0 || len(b) > 16 {
		return nil, ErrInvalidOrderingLen
	}
	return new(big.Int).SetBytes(b), nil
}

// CompareOrderingBytes compares two be_ordering encodings numerically by
// left-zero-padding them to equal length before a byte-wise comparison,
// returning -1, 0, or 1.
func CompareOrderingBytes(a, b []byte) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	pa := make([]byte, n)
	pb := make([]byte, n)
	copy(pa[n-len(a):], a)
	copy(pb[n-len(b):], b)
	for i := 0; i < n; i++ {
		if pa[i] != pb[i] {
			if pa[i] < pb[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
