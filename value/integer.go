package value

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/arloliu/bencode/errs"
)

type intForm uint8

const (
	formInt64 intForm = iota
	formUint64
	formBig
	formInvalid
)

// Integer is a signed whole number. Small values are held inline, larger
// ones in a big.Int, so no value is ever truncated.
//
// The zero Integer is 0.
type Integer struct {
	form intForm
	i    int64
	u    uint64
	b    *big.Int
	raw  string // original text of an invalid integer, for error messages
}

// Int returns an Integer holding v.
func Int(v int64) Integer {
	return Integer{form: formInt64, i: v}
}

// Uint returns an Integer holding v.
func Uint(v uint64) Integer {
	return Integer{form: formUint64, u: v}
}

// BigInt returns an Integer backed by v. The big.Int is borrowed, not copied,
// and must not change until encoding is done. A nil v yields an invalid
// Integer that fails to encode with errs.ErrInvalidInteger.
func BigInt(v *big.Int) Integer {
	if v == nil {
		return Integer{form: formInvalid, raw: "<nil>"}
	}
	if v.IsInt64() {
		return Int(v.Int64())
	}

	return Integer{form: formBig, b: v}
}

// ParseInteger parses s as a canonical decimal integer: an optional '-',
// then digits without leading zeros. "-0" is rejected.
//
// The result is invalid when s is not canonical; the error surfaces when the
// value is encoded so that classification itself never fails.
func ParseInteger(s string) Integer {
	if !isCanonicalDecimal(s) {
		return Integer{form: formInvalid, raw: s}
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}

	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Integer{form: formInvalid, raw: s}
	}

	return Integer{form: formBig, b: b}
}

func isCanonicalDecimal(s string) bool {
	if s == "" {
		return false
	}

	digits := s
	if s[0] == '-' {
		digits = s[1:]
		if digits == "" || digits == "0" {
			return false
		}
	}

	if len(digits) > 1 && digits[0] == '0' {
		return false
	}

	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}

	return true
}

// Valid reports whether the integer can be encoded.
func (n Integer) Valid() bool {
	return n.form != formInvalid
}

// Sign returns -1, 0 or +1. Invalid integers report 0.
func (n Integer) Sign() int {
	switch n.form {
	case formInt64:
		switch {
		case n.i < 0:
			return -1
		case n.i > 0:
			return 1
		}
	case formUint64:
		if n.u > 0 {
			return 1
		}
	case formBig:
		return n.b.Sign()
	case formInvalid:
	}

	return 0
}

// AppendDecimal appends the canonical decimal form of n to dst.
func (n Integer) AppendDecimal(dst []byte) ([]byte, error) {
	switch n.form {
	case formInt64:
		return strconv.AppendInt(dst, n.i, 10), nil
	case formUint64:
		return strconv.AppendUint(dst, n.u, 10), nil
	case formBig:
		return n.b.Append(dst, 10), nil
	default:
		return dst, fmt.Errorf("%w: %q", errs.ErrInvalidInteger, n.raw)
	}
}

// String returns the decimal form of n, or a marker for invalid integers.
func (n Integer) String() string {
	out, err := n.AppendDecimal(nil)
	if err != nil {
		return "<invalid " + strconv.Quote(n.raw) + ">"
	}

	return string(out)
}
