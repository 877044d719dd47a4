package encoder

import (
	"go.uber.org/zap"

	"github.com/arloliu/bencode/encoding"
	"github.com/arloliu/bencode/errs"
	"github.com/arloliu/bencode/internal/options"
	"github.com/arloliu/bencode/value"
)

// DefaultMaxDepth is the default limit on container nesting.
const DefaultMaxDepth = 512

// EncoderConfig holds the immutable settings of an Encoder.
type EncoderConfig struct {
	maxDepth   int
	strictKeys bool
	comparator encoding.KeyComparator
	classifier value.Classifier
	logger     *zap.Logger
	sizeHint   int
}

// NewEncoderConfig returns a configuration with the defaults: depth limit
// DefaultMaxDepth, byte-order keys, last-write-wins duplicate resolution for
// ordered dictionaries, empty maps as lists and a no-op logger.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		maxDepth:   DefaultMaxDepth,
		comparator: encoding.ByteOrder,
		logger:     zap.NewNop(),
	}
}

// MaxDepth returns the container nesting limit.
func (c *EncoderConfig) MaxDepth() int {
	return c.maxDepth
}

// StrictKeys reports whether every duplicate key is an error.
func (c *EncoderConfig) StrictKeys() bool {
	return c.strictKeys
}

// EncoderOption is a functional option for configuring an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithMaxDepth limits how deeply lists and dictionaries may nest. The root
// container is at depth 1. Values nested deeper fail with
// errs.ErrRecursionLimitExceeded, which is also how cyclic graphs end.
// Default is DefaultMaxDepth.
func WithMaxDepth(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n <= 0 {
			return errs.ErrInvalidMaxDepth
		}
		c.maxDepth = n

		return nil
	})
}

// WithStrictKeys makes every duplicate dictionary key an error, including
// duplicates inside ordered dictionaries that would otherwise resolve to the
// last value. Default is false.
func WithStrictKeys(strict bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.strictKeys = strict
	})
}

// WithKeyComparator replaces the dictionary key order. Only
// encoding.ByteOrder produces canonical Bencode; use another comparator only
// to match a peer that depends on a different order.
func WithKeyComparator(cmp encoding.KeyComparator) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if cmp == nil {
			return errs.ErrNilKeyComparator
		}
		c.comparator = cmp

		return nil
	})
}

// WithEmptyMapAsDict encodes empty native maps as "de" instead of "le".
// Default is false: an empty container is vacuously sequential.
func WithEmptyMapAsDict(enabled bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.classifier.EmptyMapAsDict = enabled
	})
}

// WithLogger sets the logger used to report resolved duplicate keys and
// depth failures. A nil logger disables logging.
func WithLogger(logger *zap.Logger) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
}

// WithBufferSize pre-sizes the output buffer, in bytes. Zero keeps the pool
// default.
func WithBufferSize(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 0 {
			return errs.ErrInvalidBufferSize
		}
		c.sizeHint = n

		return nil
	})
}
