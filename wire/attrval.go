/*************************************************************************
 * Copyright 2024 Auxon Corporation. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0.
 **************************************************************************/

package wire

import (
	"fmt"
	"math"
	"math/big"

	"github.com/fxamacker/cbor/v2"
)

// AttrValKind discriminates the AttrVal tagged union.
type AttrValKind uint8

const (
	KindString AttrValKind = iota
	KindInteger
	KindBigInt
	KindFloat
	KindBool
	KindTimestamp
	KindLogicalTime
	KindTimelineId
)

// AttrVal is a tagged union of every value an attribute may carry. The
// zero value is the string "".
type AttrVal struct {
	kind AttrValKind
	str  string
	i64  int64
	big  *big.Int
	f64  float64
	b    bool
	ts   uint64
	lt   LogicalTime
	tl   TimelineId
}

func StringVal(s string) AttrVal       { return AttrVal{kind: KindString, str: s} }
func IntegerVal(i int64) AttrVal       { return AttrVal{kind: KindInteger, i64: i} }
func BoolVal(b bool) AttrVal           { return AttrVal{kind: KindBool, b: b} }
func FloatVal(f float64) AttrVal       { return AttrVal{kind: KindFloat, f64: f} }
func TimestampVal(ns uint64) AttrVal   { return AttrVal{kind: KindTimestamp, ts: ns} }
func LogicalTimeVal(lt LogicalTime) AttrVal {
	return AttrVal{kind: KindLogicalTime, lt: lt}
}
func TimelineIdVal(id TimelineId) AttrVal { return AttrVal{kind: KindTimelineId, tl: id} }

// BigIntVal wraps an arbitrary-precision signed integer. n is copied.
func BigIntVal(n *big.Int) AttrVal {
	return AttrVal{kind: KindBigInt, big: new(big.Int).Set(n)}
}

func (v AttrVal) Kind() AttrValKind { return v.kind }

func (v AttrVal) AsString() (string, bool)      { return v.str, v.kind == KindString }
func (v AttrVal) AsInteger() (int64, bool)      { return v.i64, v.kind == KindInteger }
func (v AttrVal) AsBool() (bool, bool)          { return v.b, v.kind == KindBool }
func (v AttrVal) AsFloat() (float64, bool)      { return v.f64, v.kind == KindFloat }
func (v AttrVal) AsTimestamp() (uint64, bool)   { return v.ts, v.kind == KindTimestamp }
func (v AttrVal) AsLogicalTime() (LogicalTime, bool) {
	return v.lt, v.kind == KindLogicalTime
}
func (v AttrVal) AsTimelineId() (TimelineId, bool) { return v.tl, v.kind == KindTimelineId }
func (v AttrVal) AsBigInt() (*big.Int, bool) {
	if v.kind != KindBigInt {
		return nil, false
	}
	return new(big.Int).Set(v.big), true
}

// Equal reports whether v and other carry the same variant and value.
// Floats compare by bit pattern, except that any two NaNs are equal, so NaN
// is equal to itself even though the encoder writes every NaN in one
// canonical form and a round-trip may change its payload bits.
func (v AttrVal) Equal(other AttrVal) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindInteger:
		return v.i64 == other.i64
	case KindBigInt:
		return v.big.Cmp(other.big) == 0
	case KindFloat:
		if math.IsNaN(v.f64) && math.IsNaN(other.f64) {
			return true
		}
		return math.Float64bits(v.f64) == math.Float64bits(other.f64)
	case KindBool:
		return v.b == other.b
	case KindTimestamp:
		return v.ts == other.ts
	case KindLogicalTime:
		return v.lt == other.lt
	case KindTimelineId:
		return v.tl == other.tl
	}
	return false
}

func (v AttrVal) MarshalCBOR() ([]byte, error) {
	switch v.kind {
	case KindString:
		return cbor.Marshal(v.str)
	case KindInteger:
		return cbor.Marshal(v.i64)
	case KindBigInt:
		tag, payload := bigIntTagAndPayload(v.big)
		content, err := cbor.Marshal(payload)
		if err != nil {
			return nil, err
		}
		return cbor.Marshal(cbor.RawTag{Number: tag, Content: cbor.RawMessage(content)})
	case KindFloat:
		return cbor.Marshal(v.f64)
	case KindBool:
		return cbor.Marshal(v.b)
	case KindTimestamp:
		content, err := cbor.Marshal(v.ts)
		if err != nil {
			return nil, err
		}
		return cbor.Marshal(cbor.RawTag{Number: tagNanoseconds, Content: cbor.RawMessage(content)})
	case KindLogicalTime:
		arr := [4]uint64(v.lt)
		content, err := cbor.Marshal(arr)
		if err != nil {
			return nil, err
		}
		return cbor.Marshal(cbor.RawTag{Number: tagLogicalTime, Content: cbor.RawMessage(content)})
	case KindTimelineId:
		return v.tl.MarshalCBOR()
	}
	return nil, fmt.Errorf("wire: unhandled AttrVal kind %d", v.kind)
}

func (v *AttrVal) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return ErrMalformedMessage
	}
	major := data[0] >> 5
	switch major {
	case 0, 1: // unsigned / negative integer
		var i int64
		if err := cbor.Unmarshal(data, &i); err != nil {
			return err
		}
		*v = IntegerVal(i)
		return nil
	case 3: // text string
		var s string
		if err := cbor.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringVal(s)
		return nil
	case 6: // tag
		var rt cbor.RawTag
		if err := cbor.Unmarshal(data, &rt); err != nil {
			return err
		}
		return v.unmarshalTag(rt)
	case 7: // float or bool (simple values)
		var b bool
		if err := cbor.Unmarshal(data, &b); err == nil {
			*v = BoolVal(b)
			return nil
		}
		var f float64
		if err := cbor.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = FloatVal(f)
		return nil
	default:
		return ErrUnexpectedCBORType
	}
}

func (v *AttrVal) unmarshalTag(rt cbor.RawTag) error {
	switch rt.Number {
	case tagPositiveBig, tagNegativeBig:
		var b []byte
		if err := cbor.Unmarshal(rt.Content, &b); err != nil {
			return err
		}
		*v = BigIntVal(bigIntFromTagPayload(rt.Number, b))
		return nil
	case tagNanoseconds:
		var ns uint64
		if err := cbor.Unmarshal(rt.Content, &ns); err != nil {
			return err
		}
		*v = TimestampVal(ns)
		return nil
	case tagLogicalTime:
		var arr [4]uint64
		if err := cbor.Unmarshal(rt.Content, &arr); err != nil {
			return err
		}
		*v = LogicalTimeVal(LogicalTime(arr))
		return nil
	case tagTimelineId:
		var b []byte
		if err := cbor.Unmarshal(rt.Content, &b); err != nil {
			return err
		}
		if len(b) != 16 {
			return ErrInvalidTimelineId
		}
		var id TimelineId
		copy(id[:], b)
		*v = TimelineIdVal(id)
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAttrValTag, rt.Number)
	}
}
