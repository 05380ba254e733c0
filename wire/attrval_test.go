package wire

import (
	"math"
	"math/big"
	"testing"

	"github.com/fxamacker/cbor/v2"
)

func roundTrip(t *testing.T, v AttrVal) AttrVal {
	t.Helper()
	data, err := v.MarshalCBOR()
	if err != nil {
		t.Fatalf("MarshalCBOR: %v", err)
	}
	var out AttrVal
	if err := out.UnmarshalCBOR(data); err != nil {
		t.Fatalf("UnmarshalCBOR: %v", err)
	}
	return out
}

func TestAttrValRoundTrip(t *testing.T) {
	cases := []AttrVal{
		StringVal(""),
		StringVal("hello world"),
		IntegerVal(0),
		IntegerVal(-1),
		IntegerVal(math.MaxInt64),
		IntegerVal(math.MinInt64),
		BoolVal(true),
		BoolVal(false),
		FloatVal(0.0),
		FloatVal(-1.5),
		FloatVal(math.Inf(1)),
		FloatVal(math.Inf(-1)),
		TimestampVal(0),
		TimestampVal(1234567890123),
		LogicalTimeVal(LogicalTime{1, 2, 3, 4}),
		TimelineIdVal(NewTimelineId()),
		BigIntVal(big.NewInt(0)),
		BigIntVal(big.NewInt(-1)),
		BigIntVal(new(big.Int).Lsh(big.NewInt(1), 127)),
		BigIntVal(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))),
	}
	for i, want := range cases {
		got := roundTrip(t, want)
		if !got.Equal(want) {
			t.Errorf("case %d: round-trip mismatch: got %+v, want %+v", i, got, want)
		}
	}
}

func TestAttrValNaNEqualsItself(t *testing.T) {
	nan := FloatVal(math.NaN())
	got := roundTrip(t, nan)
	if !got.Equal(nan) {
		t.Fatalf("NaN did not compare equal to itself after round-trip")
	}
}

func TestAttrValBigIntSignRule(t *testing.T) {
	// -1 encodes as the negative-bignum tag with an empty payload (-1-(-1) == 0).
	tag, payload := bigIntTagAndPayload(big.NewInt(-1))
	if tag != tagNegativeBig {
		t.Fatalf("expected negative bignum tag, got %d", tag)
	}
	if len(payload) != 0 {
		t.Fatalf("expected empty payload for -1, got %x", payload)
	}
	back := bigIntFromTagPayload(tag, payload)
	if back.Cmp(big.NewInt(-1)) != 0 {
		t.Fatalf("round-trip of -1 produced %v", back)
	}
}

func TestAttrValUnknownTag(t *testing.T) {
	var v AttrVal
	// tag 9999 wrapping a plain integer content
	data, err := cbor.Marshal(cbor.RawTag{Number: 9999, Content: cbor.RawMessage{0x01}})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	if err := v.UnmarshalCBOR(data); err == nil {
		t.Fatalf("expected error decoding unknown tag")
	}
}
