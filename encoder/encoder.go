package encoder

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/arloliu/bencode/encoding"
	"github.com/arloliu/bencode/errs"
	"github.com/arloliu/bencode/internal/keys"
	"github.com/arloliu/bencode/internal/options"
	"github.com/arloliu/bencode/value"
)

// Encoder produces the canonical Bencode encoding of one root value.
//
// The root is borrowed: it is never modified, and it must not be modified
// while Encode runs. An Encoder holds no mutable state, so Encode may be
// called repeatedly and from several goroutines at once.
type Encoder struct {
	*EncoderConfig

	root any
}

// NewEncoder creates an Encoder for root.
//
// Parameters:
//   - root: Value to encode; any Go value is accepted (see value.Classify)
//   - opts: Optional configuration (depth limit, strict keys, comparator, logger)
//
// Returns:
//   - *Encoder: The created encoder
//   - error: Configuration error if an option is invalid
func NewEncoder(root any, opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	config.classifier.MaxIndirections = config.maxDepth

	return &Encoder{EncoderConfig: config, root: root}, nil
}

// Encode returns the canonical encoding of the root value in a newly
// allocated slice owned by the caller.
//
// Encoding stops at the first error; no partial output is returned. Errors
// are *errs.EncodeError values wrapping one of errs.ErrInvalidInteger,
// errs.ErrDuplicateKey or errs.ErrRecursionLimitExceeded.
func (e *Encoder) Encode() ([]byte, error) {
	st := e.newState()
	defer st.release()

	if err := st.encodeValue(e.root, 0); err != nil {
		return nil, err
	}

	return st.w.Detach(), nil
}

// EncodeTo writes the canonical encoding of the root value to w.
//
// The encoding is built completely before anything is written, so w never
// receives partial output from a failed encoding.
func (e *Encoder) EncodeTo(w io.Writer) (int64, error) {
	st := e.newState()
	defer st.release()

	if err := st.encodeValue(e.root, 0); err != nil {
		return 0, err
	}

	return st.w.WriteTo(w)
}

// encodeState is the per-call state of one Encode run.
type encodeState struct {
	cfg     *EncoderConfig
	w       *encoding.Writer
	tracker *keys.Tracker
	path    path
}

func (e *Encoder) newState() *encodeState {
	return &encodeState{
		cfg: e.EncoderConfig,
		w:   encoding.NewWriter(e.sizeHint),
	}
}

func (s *encodeState) release() {
	s.w.Release()
}

// fail wraps err with the current path.
func (s *encodeState) fail(err error) error {
	return &errs.EncodeError{Path: s.path.String(), Err: err}
}

func (s *encodeState) encodeValue(v any, depth int) error {
	// common scalars skip classification
	switch x := v.(type) {
	case string:
		s.w.WriteString(x)
		return nil
	case int:
		s.w.WriteInt64(int64(x))
		return nil
	case int64:
		s.w.WriteInt64(x)
		return nil
	}

	val, err := s.cfg.classifier.Resolve(v)
	if err != nil {
		return s.indirectionFailure(err)
	}

	switch x := val.(type) {
	case value.Integer:
		if err := s.w.WriteInteger(x); err != nil {
			return s.fail(err)
		}

		return nil
	case value.ByteString:
		s.w.WriteByteString(x)
		return nil
	case value.List:
		return s.encodeList(x, depth)
	case value.Dict:
		return s.encodeDict(x, depth)
	case value.ForcedList:
		elems, err := s.cfg.classifier.Elements(x.Of)
		if err != nil {
			return s.indirectionFailure(err)
		}

		return s.encodeList(elems, depth)
	default:
		return s.fail(fmt.Errorf("unhandled value kind %s", x.Kind()))
	}
}

func (s *encodeState) enter(depth int) error {
	if depth+1 > s.cfg.maxDepth {
		s.cfg.logger.Debug("bencode recursion limit exceeded",
			zap.Int("max_depth", s.cfg.maxDepth),
			zap.String("path", s.path.String()))

		return s.fail(fmt.Errorf("%w: depth %d exceeds %d", errs.ErrRecursionLimitExceeded, depth+1, s.cfg.maxDepth))
	}

	return nil
}

func (s *encodeState) indirectionFailure(err error) error {
	s.cfg.logger.Debug("bencode pointer chain too long",
		zap.Int("max_depth", s.cfg.maxDepth),
		zap.String("path", s.path.String()))

	return s.fail(err)
}

func (s *encodeState) encodeList(elems []any, depth int) error {
	if err := s.enter(depth); err != nil {
		return err
	}

	s.w.BeginList()
	for i, elem := range elems {
		s.path.pushIndex(i)
		if err := s.encodeValue(elem, depth+1); err != nil {
			return err
		}
		s.path.pop()
	}
	s.w.End()

	return nil
}

func (s *encodeState) encodeDict(d value.Dict, depth int) error {
	if err := s.enter(depth); err != nil {
		return err
	}

	pairs, err := s.resolveKeys(d, depth)
	if err != nil {
		return err
	}
	if !encoding.IsStrictlySorted(pairs, s.cfg.comparator) {
		encoding.SortPairs(pairs, s.cfg.comparator)
	}

	s.w.BeginDict()
	for _, p := range pairs {
		s.w.WriteByteString(p.Key)

		s.path.pushKey(p.Key)
		if err := s.encodeValue(p.Value, depth+1); err != nil {
			return err
		}
		s.path.pop()
	}
	s.w.End()

	return nil
}

// resolveKeys returns a private copy of the dictionary's pairs with at most
// one pair per key.
//
// In an ordered dictionary the last pair for a key wins. An unordered one
// (collected from a Go map or a Ranger) has no "last": distinct native keys
// that coerce to the same bytes resolve to the value with the greatest
// encoding, so the output never depends on map iteration order. In strict
// mode every duplicate is an error.
func (s *encodeState) resolveKeys(d value.Dict, depth int) ([]value.Pair, error) {
	if len(d.Pairs) < 2 {
		return append([]value.Pair(nil), d.Pairs...), nil
	}

	if s.tracker == nil {
		s.tracker = keys.NewTracker(len(d.Pairs))
	} else {
		s.tracker.Reset()
	}

	out := make([]value.Pair, 0, len(d.Pairs))
	for _, p := range d.Pairs {
		slot, dup := s.tracker.Track(p.Key)
		if !dup {
			out = append(out, p)
			continue
		}

		if s.cfg.strictKeys {
			s.path.pushKey(p.Key)
			err := s.fail(fmt.Errorf("%w: %q", errs.ErrDuplicateKey, p.Key))
			s.path.pop()

			return nil, err
		}

		if d.Unordered() {
			replace, err := s.encodesGreater(p.Key, p.Value, out[slot].Value, depth)
			if err != nil {
				return nil, err
			}
			s.cfg.logger.Warn("bencode colliding map keys, greatest value wins",
				zap.ByteString("key", p.Key),
				zap.String("path", s.path.String()))
			if replace {
				out[slot].Value = p.Value
			}

			continue
		}

		s.cfg.logger.Warn("bencode duplicate dictionary key, last value wins",
			zap.ByteString("key", p.Key),
			zap.String("path", s.path.String()))
		out[slot].Value = p.Value
	}

	return out, nil
}

// encodesGreater reports whether the encoding of a sorts after that of b,
// both taken as the value of key in a dictionary at depth.
func (s *encodeState) encodesGreater(key []byte, a, b any, depth int) (bool, error) {
	s.path.pushKey(key)
	defer s.path.pop()

	ea, err := s.encodedForm(a, depth+1)
	if err != nil {
		return false, err
	}
	eb, err := s.encodedForm(b, depth+1)
	if err != nil {
		return false, err
	}

	return bytes.Compare(ea, eb) > 0, nil
}

// encodedForm encodes v on a scratch state sharing the current path.
func (s *encodeState) encodedForm(v any, depth int) ([]byte, error) {
	scratch := &encodeState{cfg: s.cfg, w: encoding.NewWriter(0), path: s.path}
	defer scratch.release()

	if err := scratch.encodeValue(v, depth); err != nil {
		return nil, err
	}

	return scratch.w.Detach(), nil
}
