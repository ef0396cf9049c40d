package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCodecError_Message(t *testing.T) {
	err := New(KindProtocol, "set-dictionary", "too late")
	require.Equal(t, "[protocol] set-dictionary: too late", err.Error())

	native := FromNative(KindDataCorruption, "inflate", -3, "")
	require.Equal(t, "[data-corruption] inflate: native status -3", native.Error())

	bare := &CodecError{Kind: KindCancelled, Operation: "transform"}
	require.Equal(t, "[cancelled] transform", bare.Error())
}

func TestKindOf(t *testing.T) {
	err := Newf(KindParameter, "initialize", "level %d", 42)
	require.Equal(t, KindParameter, KindOf(err))
	require.True(t, IsParameter(err))

	// Classification survives wrapping.
	wrapped := fmt.Errorf("outer: %w", err)
	require.Equal(t, KindParameter, KindOf(wrapped))

	require.Equal(t, Kind(0), KindOf(io.EOF))
	require.Equal(t, Kind(0), KindOf(nil))
}

func TestWrapIO(t *testing.T) {
	require.Nil(t, WrapIO("open", nil))

	err := WrapIO("open", io.ErrUnexpectedEOF)
	require.True(t, Is(err, KindIO))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	// An already classified error passes through unchanged.
	again := WrapIO("read", err)
	require.Same(t, err, again)

	inner := New(KindDataCorruption, "inflate", "bad block")
	require.Same(t, error(inner), WrapIO("read", inner))
}

func TestAsCodecError(t *testing.T) {
	err := New(KindMemory, "alloc", "")
	ce := AsCodecError(fmt.Errorf("wrapped: %w", err))
	require.NotNil(t, ce)
	require.Equal(t, KindMemory, ce.Kind)

	require.Nil(t, AsCodecError(io.EOF))
}

func TestKindString(t *testing.T) {
	kinds := []Kind{
		KindParameter, KindUninitialized, KindCompression, KindDecompression,
		KindNeedDictionary, KindBufferTooSmall, KindDataCorruption,
		KindCancelled, KindProtocol, KindIO, KindMemory,
	}
	seen := map[string]bool{}
	for _, k := range kinds {
		s := k.String()
		require.NotEqual(t, "unknown", s)
		require.False(t, seen[s], "duplicate name %q", s)
		seen[s] = true
	}
	require.Equal(t, "unknown", Kind(99).String())
}
