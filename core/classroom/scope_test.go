package classroom

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	svc := NewService(nil, nil, nil)

	t.Run("inside a scope", func(t *testing.T) {
		got, err := FromContext(WithService(context.Background(), svc))
		require.NoError(t, err)
		assert.Same(t, svc, got)
	})

	t.Run("outside any scope", func(t *testing.T) {
		_, err := FromContext(context.Background())
		assert.Equal(t, ErrNotInitialized, err)
	})

	t.Run("nil service", func(t *testing.T) {
		_, err := FromContext(WithService(context.Background(), nil))
		assert.Equal(t, ErrNotInitialized, err)
	})

	t.Run("nil context", func(t *testing.T) {
		//nolint:staticcheck // nil context is what is being tested
		_, err := FromContext(nil)
		assert.Equal(t, ErrNotInitialized, err)
	})
}

func TestMustFromContext(t *testing.T) {
	svc := NewService(nil, nil, nil)
	assert.Same(t, svc, MustFromContext(WithService(context.Background(), svc)))
	assert.PanicsWithValue(t, ErrNotInitialized, func() { MustFromContext(context.Background()) })
}
