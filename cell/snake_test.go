package cell

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainLength(c *Cell) int {
	n := 1
	for c.RefsNum() == 1 {
		c = c.Ref(0)
		n++
	}
	return n
}

func TestSnakeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sizes := []int{0, 1, 125, 126, 127, 251, 252, 253, 1000, 4096, 10000}
	for i := 0; i < 20; i++ {
		sizes = append(sizes, rng.Intn(10001))
	}

	for _, n := range sizes {
		data := make([]byte, n)
		rng.Read(data)

		c, err := EncodeSnake(data)
		require.NoError(t, err)
		got, err := DecodeSnake(c)
		require.NoError(t, err)
		if !bytes.Equal(data, got) {
			t.Fatalf("round trip mismatch for %d bytes", n)
		}
		assert.Equal(t, max(1, (n+SnakeChunkSize-1)/SnakeChunkSize), chainLength(c), "chain length for %d bytes", n)
	}
}

func TestSnakeBoundary(t *testing.T) {
	assert.Equal(t, 126, SnakeChunkSize)

	t.Run("exactly one chunk", func(t *testing.T) {
		c, err := EncodeSnake(bytes.Repeat([]byte{0xAA}, SnakeChunkSize))
		require.NoError(t, err)
		assert.Equal(t, 0, c.RefsNum())
		assert.Equal(t, uint(8+SnakeChunkSize*8), c.BitsSize())
	})

	t.Run("one byte over", func(t *testing.T) {
		data := bytes.Repeat([]byte{0xAA}, SnakeChunkSize+1)
		data[SnakeChunkSize] = 0xBB
		c, err := EncodeSnake(data)
		require.NoError(t, err)
		require.Equal(t, 1, c.RefsNum())
		assert.Equal(t, uint(8+SnakeChunkSize*8), c.BitsSize())

		tail := c.Ref(0)
		assert.Equal(t, 0, tail.RefsNum())
		assert.Equal(t, []byte{0xBB}, tail.Data(), "deepest cell holds the last chunk without prefix")
	})

	t.Run("root carries prefix", func(t *testing.T) {
		c, err := EncodeSnake([]byte("abc"))
		require.NoError(t, err)
		assert.Equal(t, []byte{SnakePrefix, 'a', 'b', 'c'}, c.Data())
	})

	t.Run("empty", func(t *testing.T) {
		c, err := EncodeSnake(nil)
		require.NoError(t, err)
		assert.Equal(t, uint(8), c.BitsSize())
		got, err := DecodeSnake(c)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestSnakeDeterministic(t *testing.T) {
	data := bytes.Repeat([]byte("jetton"), 100)
	a, err := EncodeSnake(data)
	require.NoError(t, err)
	b, err := EncodeSnake(data)
	require.NoError(t, err)
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.ToBOC(), b.ToBOC())
}

func TestDecodeSnakeErrors(t *testing.T) {
	t.Run("wrong prefix", func(t *testing.T) {
		b := BeginCell()
		require.NoError(t, b.StoreUInt(0x01, 8))
		require.NoError(t, b.StoreBytes([]byte("x")))
		_, err := DecodeSnake(b.EndCell())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("missing prefix", func(t *testing.T) {
		_, err := DecodeSnake(BeginCell().EndCell())
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("unaligned payload", func(t *testing.T) {
		b := BeginCell()
		require.NoError(t, b.StoreUInt(SnakePrefix, 8))
		require.NoError(t, b.StoreUInt(1, 3))
		_, err := DecodeSnake(b.EndCell())
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("branching chain", func(t *testing.T) {
		leaf := BeginCell().EndCell()
		b := BeginCell()
		require.NoError(t, b.StoreUInt(SnakePrefix, 8))
		require.NoError(t, b.StoreRef(leaf))
		require.NoError(t, b.StoreRef(leaf))
		_, err := DecodeSnake(b.EndCell())
		assert.ErrorIs(t, err, ErrMalformedInput)
	})
}
