/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

import "github.com/fxamacker/cbor/v2"

// packedDecMode forbids indefinite-length CBOR arrays on decode: the
// protocol requires a definite-length array so the client can validate the
// 2n invariant without buffering the whole stream.
var packedDecMode = func() cbor.DecMode {
	m, err := cbor.DecOptions{IndefLength: cbor.IndefLengthForbidden}.DecMode()
	if err != nil {
		panic(err)
	}
	return m
}()

// AttrKV is one entry of a PackedAttrKvs: an interned key paired with its
// value.
type AttrKV struct {
	Key InternedAttrKey
	Val AttrVal
}

// PackedAttrKvs is the on-wire shape for event and timeline-metadata
// attributes: a CBOR array of alternating u32 interned key and AttrVal,
// never a map. Duplicate keys are legal on the wire (server behavior for
// duplicates is unspecified); callers that want last-wins semantics should
// collapse before encoding.
type PackedAttrKvs []AttrKV

func (p PackedAttrKvs) MarshalCBOR() ([]byte, error) {
	items := make([]interface{}, 0, len(p)*2)
	for _, kv := range p {
		items = append(items, uint32(kv.Key), kv.Val)
	}
	return cbor.Marshal(items)
}

func (p *PackedAttrKvs) UnmarshalCBOR(data []byte) error {
	var items []cbor.RawMessage
	if err := packedDecMode.Unmarshal(data, &items); err != nil {
		return err
	}
	if len(items)%2 != 0 {
		return ErrMalformedPackedKvs
	}
	out := make(PackedAttrKvs, 0, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		var key uint32
		if err := cbor.Unmarshal(items[i], &key); err != nil {
			return err
		}
		var val AttrVal
		if err := val.UnmarshalCBOR(items[i+1]); err != nil {
			return err
		}
		out = append(out, AttrKV{Key: InternedAttrKey(key), Val: val})
	}
	*p = out
	return nil
}

// Collapse returns a copy of p with duplicate keys removed, last value
// wins, placed at the position of each key's first occurrence.
func (p PackedAttrKvs) Collapse() PackedAttrKvs {
	idx := make(map[InternedAttrKey]int, len(p))
	out := make(PackedAttrKvs, 0, len(p))
	for _, kv := range p {
		if pos, ok := idx[kv.Key]; ok {
			out[pos] = kv
			continue
		}
		idx[kv.Key] = len(out)
		out = append(out, kv)
	}
	return out
}
