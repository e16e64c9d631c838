package binder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
)

func TestCodecs(t *testing.T) {
	t.Parallel()

	codecs := map[string]binder.Codec{
		"base64 json": binder.Base64JSON{},
		"yaml":        binder.YAML{},
	}
	for name, c := range codecs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			in := address{City: "Lyon", Zip: "69001"}
			tok, err := c.Encode(in)
			require.NoError(t, err)

			var out address
			require.NoError(t, c.Decode(tok, &out))
			assert.Equal(t, in, out)
		})
	}

	t.Run("base64 tokens are url safe", func(t *testing.T) {
		t.Parallel()
		tok, err := binder.Base64JSON{}.Encode(address{City: "??>>"})
		require.NoError(t, err)
		assert.NotContains(t, tok, "+")
		assert.NotContains(t, tok, "/")
		assert.NotContains(t, tok, "=")
	})

	t.Run("yaml codec binds hand written nested values", func(t *testing.T) {
		t.Parallel()
		b := newBinder(t, binder.WithCodec(binder.YAML{}))
		var p profile
		var tr binder.Tracker
		b.Populate(&p, binder.Values{"home": {"city: Paris\nzip: '75001'\n"}}, &tr)
		assert.Zero(t, tr.Len())
		assert.Equal(t, address{City: "Paris", Zip: "75001"}, p.Home)

		b.Populate(&p, binder.Values{"home": {"city: [unterminated"}}, &tr)
		assert.True(t, tr.Has("home"))
	})
}
