package transcode

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/bencode/encoder"
	"github.com/arloliu/bencode/errs"
)

// FromYAML converts one YAML document into canonical Bencode.
//
// Timestamps become RFC 3339 byte strings. Non-string mapping keys are
// coerced to their decimal or text form.
//
// Parameters:
//   - data: A single YAML document
//   - opts: Encoder options applied to the converted document
//
// Returns:
//   - []byte: Canonical encoding
//   - error: ErrUnsupportedDocument for empty input or a stream with more
//     than one document, a YAML syntax error, or an *errs.EncodeError
func FromYAML(data []byte, opts ...encoder.EncoderOption) ([]byte, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc any
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty YAML input", errs.ErrUnsupportedDocument)
		}

		return nil, fmt.Errorf("transcode: decode YAML: %w", err)
	}

	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: YAML stream holds more than one document", errs.ErrUnsupportedDocument)
	}

	return encode(normalize(doc), opts)
}
