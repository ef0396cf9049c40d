package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSniffFormat(t *testing.T) {
	cases := []struct {
		name   string
		prefix []byte
		want   FormatVariant
	}{
		{"gzip magic", []byte{0x1F, 0x8B, 0x08}, FormatGzip},
		{"zlib default", []byte{0x78, 0x9C}, FormatZlib},
		{"zlib best", []byte{0x78, 0xDA}, FormatZlib},
		{"zlib fastest", []byte{0x78, 0x01}, FormatZlib},
		{"bad check bits", []byte{0x78, 0x9D}, FormatRaw},
		{"wrong method", []byte{0x74, 0x9C}, FormatRaw},
		{"text", []byte("hello"), FormatRaw},
		{"too short", []byte{0x1F}, FormatRaw},
		{"empty", nil, FormatRaw},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SniffFormat(tc.prefix))
		})
	}
}

func TestFormatWindowBits(t *testing.T) {
	require.Equal(t, -15, FormatRaw.WindowBits(15))
	require.Equal(t, 15, FormatZlib.WindowBits(15))
	require.Equal(t, 31, FormatGzip.WindowBits(15))
	require.Equal(t, 47, FormatAuto.WindowBits(15))
	require.Equal(t, -9, FormatRaw.WindowBits(9))
}

func TestFormatValidity(t *testing.T) {
	for _, f := range []FormatVariant{FormatRaw, FormatZlib, FormatGzip, FormatAuto} {
		require.True(t, f.Valid())
	}
	require.False(t, FormatVariant(9).Valid())

	require.True(t, FormatAuto.DecodeOnly())
	require.False(t, FormatGzip.DecodeOnly())
}

func TestFlushModeValidity(t *testing.T) {
	for f := NoFlush; f <= Trees; f++ {
		require.True(t, f.Valid())
		require.NotEqual(t, "unknown", f.String())
	}
	require.False(t, FlushMode(-1).Valid())
	require.False(t, FlushMode(7).Valid())
}

func TestStrategyValidity(t *testing.T) {
	for s := DefaultStrategy; s <= Fixed; s++ {
		require.True(t, s.Valid())
	}
	require.False(t, Strategy(5).Valid())
	require.False(t, Strategy(-1).Valid())
}
