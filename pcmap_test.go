package pcmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/pcmap/codemap"
	"github.com/arloliu/pcmap/format"
	"github.com/arloliu/pcmap/origin"
)

func TestNewLinkedMap(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	b.Append(0x00, origin.New(5))
	b.Append(0x10, origin.New(5))
	b.Append(0x10, origin.New(9))
	b.Append(0x20, origin.New(9))

	m, err := NewLinkedMap(b, 0x7000)
	require.NoError(t, err)

	o, ok := m.FindOrigin(0x7014)
	require.True(t, ok)
	require.Equal(t, origin.New(9), o)

	_, ok = m.FindOrigin(0x7020)
	require.False(t, ok)
}

func TestNewDisabledBuilder(t *testing.T) {
	b := NewDisabledBuilder()
	require.False(t, b.Enabled())
	b.Append(0x10, origin.New(1))

	m, err := NewMap(b, codemap.IdentityResolver{})
	require.NoError(t, err)
	require.True(t, m.IsEmpty())
}

func TestRestore(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)
	b.Append(0x1000, origin.NewInlined(3, FrameID("callee")))
	b.Append(0x1040, origin.New(4))
	b.Append(0x1080, origin.New(4))

	m, err := NewMap(b, codemap.IdentityResolver{}, codemap.WithBigEndian())
	require.NoError(t, err)

	data, err := m.Snapshot(codemap.WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	restored, err := Restore(data)
	require.NoError(t, err)

	o, ok := restored.FindOrigin(0x1000)
	require.True(t, ok)
	require.Equal(t, origin.NewInlined(3, FrameID("callee")), o)
}

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	b, err := NewBuilder()
	require.NoError(t, err)
	b.Append(0x0, origin.New(1))
	b.Append(0x8, origin.New(1))

	m, err := NewLinkedMap(b, 0x10000)
	require.NoError(t, err)
	require.NoError(t, r.Register("entry", m))

	hit, ok := r.FindOrigin(0x10004)
	require.True(t, ok)
	require.Equal(t, "entry", hit.CodeBlock)
}

func TestFrameID(t *testing.T) {
	frames := origin.NewFrameTable()
	id, err := frames.Intern("callee")
	require.NoError(t, err)

	require.Equal(t, id, FrameID("callee"))
	require.NotEqual(t, origin.NoFrame, FrameID(""))
}
