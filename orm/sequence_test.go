package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/quorum/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		bucket     string
		name       string
		increments int64
	}{
		0: {"wallet", "id", 22},
		1: {"wallet", "proposal", 11},
		2: {"other", "id", 77},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)

			var (
				val  int64
				err  error
				last []byte
			)
			for i := int64(0); i < tc.increments; i++ {
				prev := last
				val, err = s.NextInt(db)
				require.NoError(t, err)
				assert.Equal(t, i, val)

				// raw values must grow so they can be used as
				// ordered store keys
				last = EncodeSequence(val)
				if prev != nil {
					assert.Equal(t, 1, bytes.Compare(last, prev))
				}
			}

			latest, err := s.Latest(db)
			require.NoError(t, err)
			assert.Equal(t, tc.increments, latest)
		})
	}
}

func TestSequenceIndependence(t *testing.T) {
	db := store.MemStore()

	a := NewSequence("wallet", "a")
	b := NewSequence("wallet", "b")

	for i := int64(0); i < 3; i++ {
		val, err := a.NextInt(db)
		require.NoError(t, err)
		assert.Equal(t, i, val)
	}

	// a fresh sequence still starts from zero
	val, err := b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), val)
}
