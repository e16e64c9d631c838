package memo_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/memo"
)

func TestCache_Get(t *testing.T) {
	t.Parallel()

	t.Run("computes once per key", func(t *testing.T) {
		t.Parallel()
		var c memo.Cache[string, int]
		calls := 0

		for range 3 {
			v, err := c.Get("a", func() (int, error) {
				calls++
				return 42, nil
			})
			require.NoError(t, err)
			assert.Equal(t, 42, v)
		}
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		var c memo.Cache[string, string]

		a, _ := c.Get("a", func() (string, error) { return "first", nil })
		b, _ := c.Get("b", func() (string, error) { return "second", nil })

		assert.Equal(t, "first", a)
		assert.Equal(t, "second", b)
	})

	t.Run("errors are cached and not retried", func(t *testing.T) {
		t.Parallel()
		var c memo.Cache[string, int]
		boom := errors.New("boom")
		calls := 0

		for range 2 {
			_, err := c.Get("a", func() (int, error) {
				calls++
				return 0, boom
			})
			assert.ErrorIs(t, err, boom)
		}
		assert.Equal(t, 1, calls)
	})

	t.Run("compute may use the cache for other keys", func(t *testing.T) {
		t.Parallel()
		var c memo.Cache[string, int]

		v, err := c.Get("outer", func() (int, error) {
			inner, err := c.Get("inner", func() (int, error) { return 1, nil })
			return inner + 1, err
		})
		require.NoError(t, err)
		assert.Equal(t, 2, v)
	})
}

func TestCache_ConcurrentFirstUse(t *testing.T) {
	t.Parallel()
	var c memo.Cache[string, *int]
	var calls atomic.Int32

	const workers = 32
	results := make([]*int, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get("shared", func() (*int, error) {
				calls.Add(1)
				n := 7
				return &n, nil
			})
			if err == nil {
				results[i] = v
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestCache_DeleteAndReset(t *testing.T) {
	t.Parallel()
	var c memo.Cache[string, int]
	calls := 0
	compute := func() (int, error) {
		calls++
		return calls, nil
	}

	v, _ := c.Get("a", compute)
	assert.Equal(t, 1, v)

	c.Delete("a")
	v, _ = c.Get("a", compute)
	assert.Equal(t, 2, v)

	c.Reset()
	assert.Equal(t, 0, c.Len())
	v, _ = c.Get("a", compute)
	assert.Equal(t, 3, v)
}
