package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	capacity int
	name     string
	strict   bool
}

var errNegative = errors.New("capacity cannot be negative")

func withCapacity(n int) *Func[*testConfig] {
	return New(func(c *testConfig) error {
		if n < 0 {
			return errNegative
		}
		c.capacity = n

		return nil
	}).Named("capacity")
}

func withName(name string) Option[*testConfig] {
	return NoError(func(c *testConfig) { c.name = name })
}

func withStrict() Option[*testConfig] {
	return NoError(func(c *testConfig) { c.strict = true })
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withCapacity(8), withName("a"), withName("b"), withStrict())

		require.NoError(t, err)
		require.Equal(t, 8, cfg.capacity)
		require.Equal(t, "b", cfg.name)
		require.True(t, cfg.strict)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &testConfig{}
		err := Apply(cfg, withCapacity(4), withCapacity(-1), withName("unreached"))

		require.ErrorIs(t, err, errNegative)
		require.EqualError(t, err, "capacity: capacity cannot be negative")
		require.Equal(t, 4, cfg.capacity)
		require.Empty(t, cfg.name)
	})

	t.Run("unnamed errors are returned as is", func(t *testing.T) {
		cfg := &testConfig{}
		boom := errors.New("boom")
		err := Apply(cfg, New(func(*testConfig) error { return boom }))

		require.Same(t, boom, err)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg, nil, withStrict(), nil))
		require.True(t, cfg.strict)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &testConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, testConfig{}, *cfg)
	})
}

func TestNoError_PrimitiveTarget(t *testing.T) {
	var n int
	require.NoError(t, Apply(&n, Option[*int](NoError(func(p *int) { *p = 42 }))))
	require.Equal(t, 42, n)
}
