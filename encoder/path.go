package encoder

import (
	"strconv"
	"strings"
)

type segment struct {
	key   []byte
	index int
}

// path is the stack of dictionary keys and list indexes leading from the
// root to the value being encoded. It is only rendered when an error occurs.
type path []segment

func (p *path) pushKey(key []byte) {
	*p = append(*p, segment{key: key, index: -1})
}

func (p *path) pushIndex(i int) {
	*p = append(*p, segment{index: i})
}

func (p *path) pop() {
	*p = (*p)[:len(*p)-1]
}

// String renders the path as "info.files[2].length". Keys that are not
// plain identifiers are quoted: files[0]["a.b"].
func (p path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if seg.index >= 0 {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.index))
			sb.WriteByte(']')

			continue
		}

		if !isPlainKey(seg.key) {
			sb.WriteByte('[')
			sb.WriteString(strconv.Quote(string(seg.key)))
			sb.WriteByte(']')

			continue
		}

		if i > 0 {
			sb.WriteByte('.')
		}
		sb.Write(seg.key)
	}

	return sb.String()
}

func isPlainKey(key []byte) bool {
	if len(key) == 0 {
		return false
	}

	for _, c := range key {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == ' ':
		default:
			return false
		}
	}

	return true
}
