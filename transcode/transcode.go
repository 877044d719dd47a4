// Package transcode converts documents in other data formats into canonical
// Bencode.
//
// Each decoder maps its format onto the Bencode data model:
//
//   - objects and maps become dictionaries, even when empty
//   - arrays become lists
//   - strings and byte strings become byte strings
//   - integral numbers become integers of arbitrary size
//   - booleans and null follow the encoder's byte-string fallback
//     ("1", "" and "" respectively)
//
// Numbers with a fractional part have no Bencode representation and fail with
// errs.ErrInvalidInteger, reported at their path in the document.
package transcode

import (
	"math"
	"math/big"
	"strconv"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/bencode/encoder"
	"github.com/arloliu/bencode/value"
)

// encode runs the canonical encoder over a converted document.
func encode(doc any, opts []encoder.EncoderOption) ([]byte, error) {
	enc, err := encoder.NewEncoder(doc, opts...)
	if err != nil {
		return nil, err
	}

	return enc.Encode()
}

// normalize rewrites a decoded document into values with a fixed Bencode
// shape. Maps become dictionaries so that empty objects and objects with
// integer keys keep their meaning.
func normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		pairs := make([]value.Pair, 0, len(x))
		for k, val := range x {
			pairs = append(pairs, value.Pair{Key: []byte(k), Value: normalize(val)})
		}

		return value.NewUnorderedDict(pairs...)
	case map[any]any:
		pairs := make([]value.Pair, 0, len(x))
		for k, val := range x {
			pairs = append(pairs, value.Pair{Key: value.Coerce(normalize(k)), Value: normalize(val)})
		}

		return value.NewUnorderedDict(pairs...)
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = normalize(elem)
		}

		return out
	case float64:
		return floatInteger(x)
	case float32:
		return floatInteger(float64(x))
	case big.Int:
		return value.BigInt(&x)
	case cbor.ByteString:
		return []byte(x)
	case cbor.Tag:
		return normalize(x.Content)
	case cbor.SimpleValue:
		return value.Uint(uint64(x))
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}

// floatInteger converts an integral float to an integer. Anything else is
// kept as an invalid integer so the encoder reports it with its path.
func floatInteger(f float64) value.Integer {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return value.ParseInteger(strconv.FormatFloat(f, 'g', -1, 64))
	}

	bf := big.NewFloat(f)
	if !bf.IsInt() {
		return value.ParseInteger(strconv.FormatFloat(f, 'g', -1, 64))
	}
	if f >= math.MinInt64 && f < math.MaxInt64 {
		return value.Int(int64(f))
	}

	n, _ := bf.Int(nil)

	return value.BigInt(n)
}

// numberInteger converts a decimal number literal to an integer. Exponent
// forms are accepted when they denote an integer, e.g. "1e3".
func numberInteger(s string) value.Integer {
	if n := value.ParseInteger(s); n.Valid() {
		return n
	}

	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() {
		return value.ParseInteger(s)
	}

	return value.BigInt(r.Num())
}
