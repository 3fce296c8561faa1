package cell

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueCell(t *testing.T, v uint64) *Cell {
	t.Helper()
	b := BeginCell()
	require.NoError(t, b.StoreUInt(v, 16))
	return b.EndCell()
}

func TestDictionaryRoundTrip(t *testing.T) {
	for _, keyBits := range []uint{8, 32, 256} {
		d := NewDictionary(keyBits)
		keys := []uint64{0, 1, 2, 3, 7, 100, 128, 255}
		for i, k := range keys {
			require.NoError(t, d.SetRef(uint256.NewInt(k), valueCell(t, uint64(i))))
		}

		b := BeginCell()
		require.NoError(t, b.StoreDict(d))
		parsed, err := b.EndCell().BeginParse().LoadDict(keyBits)
		require.NoError(t, err)
		require.Equal(t, len(keys), parsed.Len())

		for i, k := range keys {
			leaf, ok := parsed.Get(uint256.NewInt(k))
			require.True(t, ok, "key %d in %d-bit dictionary", k, keyBits)
			require.Equal(t, 1, leaf.RefsNum())
			v, err := leaf.Ref(0).BeginParse().LoadUInt(16)
			require.NoError(t, err)
			assert.Equal(t, uint64(i), v)
		}
	}
}

func TestDictionaryFullWidthKeys(t *testing.T) {
	d := NewDictionary(256)
	var hi [32]byte
	for i := range hi {
		hi[i] = 0xff
	}
	k1 := new(uint256.Int).SetBytes32(hi[:])
	k2 := uint256.NewInt(42)
	require.NoError(t, d.Set(k1, valueCell(t, 1)))
	require.NoError(t, d.Set(k2, valueCell(t, 2)))

	root, err := d.ToCell()
	require.NoError(t, err)
	parsed, err := ParseDictionary(root, 256)
	require.NoError(t, err)

	keys := parsed.Keys()
	require.Len(t, keys, 2)
	assert.True(t, keys[0].Eq(k2))
	assert.True(t, keys[1].Eq(k1))

	leaf, ok := parsed.Get(k1)
	require.True(t, ok)
	v, err := leaf.BeginParse().LoadUInt(16)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestDictionaryOrderIndependent(t *testing.T) {
	a, b := NewDictionary(16), NewDictionary(16)
	keys := []uint64{9, 3, 500, 65535, 0}
	for i := range keys {
		require.NoError(t, a.SetRef(uint256.NewInt(keys[i]), valueCell(t, keys[i])))
		j := len(keys) - 1 - i
		require.NoError(t, b.SetRef(uint256.NewInt(keys[j]), valueCell(t, keys[j])))
	}
	ca, err := a.ToCell()
	require.NoError(t, err)
	cb, err := b.ToCell()
	require.NoError(t, err)
	assert.Equal(t, ca.Hash(), cb.Hash())

	sorted := a.Keys()
	for i := 1; i < len(sorted); i++ {
		assert.True(t, sorted[i-1].Lt(sorted[i]))
	}
}

func TestDictionaryKeyRange(t *testing.T) {
	d := NewDictionary(8)
	err := d.Set(uint256.NewInt(256), valueCell(t, 0))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, ok := d.Get(uint256.NewInt(256))
	assert.False(t, ok)
}

func TestDictionaryEmpty(t *testing.T) {
	b := BeginCell()
	require.NoError(t, b.StoreDict(NewDictionary(256)))
	require.NoError(t, b.StoreDict(nil))
	c := b.EndCell()
	assert.Equal(t, uint(2), c.BitsSize())
	assert.Equal(t, 0, c.RefsNum())

	d, err := c.BeginParse().LoadDict(256)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Len())

	_, err = NewDictionary(256).ToCell()
	assert.Error(t, err)
}

func TestDictionaryDelete(t *testing.T) {
	d := NewDictionary(32)
	require.NoError(t, d.Set(uint256.NewInt(1), valueCell(t, 1)))
	require.NoError(t, d.Set(uint256.NewInt(2), valueCell(t, 2)))
	require.NoError(t, d.Delete(uint256.NewInt(1)))
	require.NoError(t, d.Delete(uint256.NewInt(7)))
	assert.Equal(t, 1, d.Len())
	_, ok := d.Get(uint256.NewInt(1))
	assert.False(t, ok)

	require.NoError(t, d.Delete(uint256.NewInt(2)))
	assert.Equal(t, 0, d.Len())
	_, err := d.ToCell()
	assert.Error(t, err)
}

// Root hashes computed independently from the HashmapE label rules: the
// shortest of hml_short, hml_long and hml_same, preferring short on ties.
func TestDictionaryGoldenHashes(t *testing.T) {
	byRef := NewDictionary(8)
	for i, k := range []uint64{0, 1, 2, 3, 7, 100, 128, 255} {
		require.NoError(t, byRef.SetRef(uint256.NewInt(k), valueCell(t, uint64(i))))
	}
	root, err := byRef.ToCell()
	require.NoError(t, err)
	assert.Equal(t, "0x59f20b785f4068f02828b3a284a4b9f10fed9fd0762b99e4244e685f360f1222", root.Hash().Hex())

	inline := NewDictionary(16)
	for _, k := range []uint64{9, 3, 500, 65535, 0} {
		require.NoError(t, inline.Set(uint256.NewInt(k), valueCell(t, k)))
	}
	root, err = inline.ToCell()
	require.NoError(t, err)
	assert.Equal(t, "0xaa52b8da0595d4431f591af6f49db5f067f0adb2a69f96ed56d5267a3ccb94c9", root.Hash().Hex())
}

func TestDictionaryMalformedFork(t *testing.T) {
	// hml_short with empty label on a 1-bit key: must fork into two refs.
	b := BeginCell()
	require.NoError(t, b.StoreUInt(0b00, 2))
	_, err := ParseDictionary(b.EndCell(), 1)
	assert.ErrorIs(t, err, ErrMalformedInput)
}
