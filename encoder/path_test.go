package encoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	var p path
	require.Equal(t, "", p.String())

	p.pushKey([]byte("info"))
	p.pushKey([]byte("files"))
	p.pushIndex(2)
	p.pushKey([]byte("length"))
	require.Equal(t, "info.files[2].length", p.String())

	p.pop()
	p.pushKey([]byte("a.b"))
	require.Equal(t, `info.files[2]["a.b"]`, p.String())

	p.pop()
	p.pop()
	p.pop()
	p.pushKey([]byte("piece length"))
	require.Equal(t, "info.piece length", p.String())
}

func TestPath_LeadingIndex(t *testing.T) {
	var p path
	p.pushIndex(0)
	p.pushIndex(3)
	p.pushKey([]byte("x"))
	require.Equal(t, "[0][3].x", p.String())
}

func TestPath_NonPlainKeys(t *testing.T) {
	var p path
	p.pushKey([]byte(""))
	require.Equal(t, `[""]`, p.String())

	p.pop()
	p.pushKey([]byte{0xff})
	require.Equal(t, `["\xff"]`, p.String())
}
