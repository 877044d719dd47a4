package encoding

import (
	"io"
	"strconv"

	"github.com/arloliu/bencode/format"
	"github.com/arloliu/bencode/internal/pool"
	"github.com/arloliu/bencode/value"
)

// Writer appends Bencode productions to a pooled buffer.
//
// A Writer is not safe for concurrent use. Call Release when done so the
// buffer goes back to the pool; the Writer must not be used afterwards.
type Writer struct {
	buf *pool.ByteBuffer
}

// NewWriter returns a Writer backed by a buffer from the default pool.
// A positive sizeHint pre-grows the buffer.
func NewWriter(sizeHint int) *Writer {
	buf := pool.GetEncodeBuffer()
	if sizeHint > 0 {
		buf.Grow(sizeHint)
	}

	return &Writer{buf: buf}
}

// WriteInteger writes n as 'i' <decimal> 'e'.
//
// An invalid integer writes nothing and returns an error wrapping
// errs.ErrInvalidInteger.
func (w *Writer) WriteInteger(n value.Integer) error {
	mark := w.buf.Len()
	_ = w.buf.WriteByte(format.TokenInteger)

	out, err := n.AppendDecimal(w.buf.B)
	if err != nil {
		w.buf.Truncate(mark)
		return err
	}
	w.buf.B = append(out, format.TokenEnd)

	return nil
}

// WriteInt64 writes v as an integer production.
func (w *Writer) WriteInt64(v int64) {
	_ = w.buf.WriteByte(format.TokenInteger)
	w.buf.AppendInt(v)
	_ = w.buf.WriteByte(format.TokenEnd)
}

// WriteByteString writes b as <len> ':' <bytes>. The length counts bytes,
// not characters.
func (w *Writer) WriteByteString(b []byte) {
	w.buf.Grow(len(b) + 21)
	w.buf.AppendInt(int64(len(b)))
	_ = w.buf.WriteByte(format.TokenSeparator)
	_, _ = w.buf.Write(b)
}

// WriteString is WriteByteString for a string.
func (w *Writer) WriteString(s string) {
	w.buf.Grow(len(s) + 21)
	w.buf.AppendInt(int64(len(s)))
	_ = w.buf.WriteByte(format.TokenSeparator)
	_, _ = w.buf.WriteString(s)
}

// BeginList opens a list.
func (w *Writer) BeginList() {
	_ = w.buf.WriteByte(format.TokenList)
}

// BeginDict opens a dictionary.
func (w *Writer) BeginDict() {
	_ = w.buf.WriteByte(format.TokenDictionary)
}

// End closes the innermost open list or dictionary.
func (w *Writer) End() {
	_ = w.buf.WriteByte(format.TokenEnd)
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the written bytes. The slice aliases the pooled buffer and
// is only valid until the next write or Release.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Detach returns a copy of the written bytes that the caller owns.
func (w *Writer) Detach() []byte {
	return w.buf.Clone()
}

// WriteTo writes the buffered bytes to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	return w.buf.WriteTo(dst)
}

// Reset discards everything written so far.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Release returns the buffer to the pool.
func (w *Writer) Release() {
	if w.buf != nil {
		pool.PutEncodeBuffer(w.buf)
		w.buf = nil
	}
}

// AppendInteger appends the integer production of n to dst.
func AppendInteger(dst []byte, n value.Integer) ([]byte, error) {
	out, err := n.AppendDecimal(append(dst, format.TokenInteger))
	if err != nil {
		return dst, err
	}

	return append(out, format.TokenEnd), nil
}

// AppendByteString appends the byte-string production of b to dst.
func AppendByteString(dst []byte, b []byte) []byte {
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, format.TokenSeparator)

	return append(dst, b...)
}
