package transcode

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/bencode/encoder"
)

// cborDecMode decodes into generic Go values. Maps keep non-string keys,
// which are coerced to byte strings when the dictionary is encoded.
var cborDecMode cbor.DecMode

func init() {
	var err error

	cborDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[any]any(nil)),
		BigIntDec:      cbor.BigIntDecodePointer,
		IntDec:         cbor.IntDecConvertNone,
	}.DecMode()
	if err != nil {
		panic("transcode: CBOR decoder initialization failed: " + err.Error())
	}
}

// FromCBOR converts one CBOR data item into canonical Bencode.
//
// Tagged items are replaced by their content; bignums become integers.
// Distinct map keys that coerce to the same bytes (1 and "1") keep the
// value with the greater encoding, or fail with errs.ErrDuplicateKey under
// encoder.WithStrictKeys.
//
// Parameters:
//   - data: A single CBOR data item
//   - opts: Encoder options applied to the converted document
//
// Returns:
//   - []byte: Canonical encoding
//   - error: A CBOR decoding error (including trailing data), or an
//     *errs.EncodeError
func FromCBOR(data []byte, opts ...encoder.EncoderOption) ([]byte, error) {
	var doc any
	if err := cborDecMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("transcode: decode CBOR: %w", err)
	}

	return encode(normalize(doc), opts)
}
