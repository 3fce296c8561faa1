package cell

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyCellBOC(t *testing.T) {
	boc := BeginCell().EndCell().ToBOC()
	assert.Equal(t, "b5ee9c724101010100020000004cacb9cd", hex.EncodeToString(boc))

	c, err := FromBOC(boc)
	require.NoError(t, err)
	assert.Equal(t, uint(0), c.BitsSize())
}

func buildTree(t *testing.T) *Cell {
	t.Helper()
	shared := func() *Cell {
		b := BeginCell()
		require.NoError(t, b.StoreBytes([]byte("shared subtree")))
		return b.EndCell()
	}
	odd := BeginCell()
	require.NoError(t, odd.StoreUInt(0b10110, 5))
	require.NoError(t, odd.StoreRef(shared()))

	root := BeginCell()
	require.NoError(t, root.StoreUInt(0xf8a7ea5, 32))
	require.NoError(t, root.StoreRef(shared()))
	require.NoError(t, root.StoreRef(odd.EndCell()))
	require.NoError(t, root.StoreSlice(make([]byte, 128), MaxBits-32))
	return root.EndCell()
}

func TestBOCRoundTrip(t *testing.T) {
	root := buildTree(t)
	boc := root.ToBOC()

	// root, the odd-width cell and a single copy of the shared subtree
	assert.Equal(t, byte(3), boc[6])

	got, err := FromBOC(boc)
	require.NoError(t, err)
	assert.Equal(t, root.Hash(), got.Hash())
	assert.Equal(t, uint(MaxBits), got.BitsSize())
	assert.Equal(t, uint(5), got.Ref(1).BitsSize())
	assert.Equal(t, root.String(), got.String())
	assert.Equal(t, boc, got.ToBOC())
}

func TestBOCErrors(t *testing.T) {
	boc := buildTree(t).ToBOC()

	t.Run("crc mismatch", func(t *testing.T) {
		bad := append([]byte(nil), boc...)
		bad[len(bad)-6] ^= 0x01
		_, err := FromBOC(bad)
		assert.ErrorIs(t, err, ErrMalformedInput)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), boc...)
		bad[0] = 0x00
		_, err := FromBOC(bad)
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := FromBOC(boc[:5])
		assert.ErrorIs(t, err, ErrMalformedInput)
	})
}

func TestBOCWithoutCRC(t *testing.T) {
	// Same empty cell, crc flag cleared and trailer dropped.
	raw, _ := hex.DecodeString("b5ee9c72010101010002000000")
	c, err := FromBOC(raw)
	require.NoError(t, err)
	assert.Equal(t, BeginCell().EndCell().Hash(), c.Hash())
}

func TestBOCRejectsExoticCells(t *testing.T) {
	// One library cell: special flag, 8-bit type tag and a 256-bit hash.
	raw, _ := hex.DecodeString("b5ee9c72010101010023000842" + "02" + strings.Repeat("00", 32))
	_, err := FromBOC(raw)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
