package transcode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/bencode/encoder"
	"github.com/arloliu/bencode/errs"
)

// FromJSON converts one JSON document into canonical Bencode.
//
// Numbers are decoded as exact decimal text, so integers of any size
// survive. Duplicate object keys resolve as encoding/json resolves them,
// to the last value.
//
// Parameters:
//   - data: A single JSON document
//   - opts: Encoder options applied to the converted document
//
// Returns:
//   - []byte: Canonical encoding
//   - error: ErrUnsupportedDocument for empty input or trailing data, a JSON
//     syntax error, or an *errs.EncodeError
func FromJSON(data []byte, opts ...encoder.EncoderOption) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty JSON input", errs.ErrUnsupportedDocument)
		}

		return nil, fmt.Errorf("transcode: decode JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON document", errs.ErrUnsupportedDocument)
	}

	return encode(normalizeJSON(doc), opts)
}

func normalizeJSON(v any) any {
	switch x := v.(type) {
	case json.Number:
		return numberInteger(x.String())
	case map[string]any:
		for k, val := range x {
			x[k] = normalizeJSON(val)
		}
	case []any:
		for i, elem := range x {
			x[i] = normalizeJSON(elem)
		}
	}

	return normalize(v)
}
