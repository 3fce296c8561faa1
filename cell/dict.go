package cell

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	tcell "github.com/xssnick/tonutils-go/tvm/cell"
)

// Dictionary is a HashmapE with fixed-width unsigned keys of up to 256 bits,
// backed by the tonutils-go dictionary.
//
// Values are leaf payloads: their bits and references are stored inline in
// the leaf. SetRef stores a value as a single reference, which is the usual
// layout for cell-valued dictionaries. Iteration is in ascending key order
// regardless of insertion order.
type Dictionary struct {
	keyBits uint
	dict    *tcell.Dictionary
}

// NewDictionary creates an empty dictionary with the given key width.
func NewDictionary(keyBits uint) *Dictionary {
	if keyBits == 0 || keyBits > 256 {
		panic(fmt.Sprintf("cell: dictionary key width %d out of range", keyBits))
	}
	return &Dictionary{keyBits: keyBits, dict: tcell.NewDict(keyBits)}
}

// KeyBits returns the key width.
func (d *Dictionary) KeyBits() uint {
	return d.keyBits
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	if d.dict.IsEmpty() {
		return 0
	}
	entries, err := d.entries()
	if err != nil {
		return 0
	}
	return len(entries)
}

func (d *Dictionary) keyCell(k *uint256.Int) (*tcell.Cell, error) {
	if uint(k.BitLen()) > d.keyBits {
		return nil, fmt.Errorf("%w: %d-bit key for %d-bit dictionary", ErrInvalidKey, k.BitLen(), d.keyBits)
	}
	b := tcell.BeginCell()
	if err := b.StoreBigUInt(k.ToBig(), d.keyBits); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return b.EndCell(), nil
}

// Set stores value inline in the leaf for key, replacing any previous value.
func (d *Dictionary) Set(k *uint256.Int, value *Cell) error {
	key, err := d.keyCell(k)
	if err != nil {
		return err
	}
	if err := d.dict.Set(key, toTVM(value)); err != nil {
		return fmt.Errorf("%w: dictionary leaf: %v", ErrCapacityExceeded, err)
	}
	return nil
}

// SetRef stores value as a single reference in the leaf for key.
func (d *Dictionary) SetRef(k *uint256.Int, value *Cell) error {
	b := BeginCell()
	if err := b.StoreRef(value); err != nil {
		return err
	}
	return d.Set(k, b.EndCell())
}

// Get returns the leaf payload stored for key.
func (d *Dictionary) Get(k *uint256.Int) (*Cell, bool) {
	key, err := d.keyCell(k)
	if err != nil || d.dict.IsEmpty() {
		return nil, false
	}
	leaf, err := d.dict.LoadValue(key)
	if err != nil {
		return nil, false
	}
	tc, err := leaf.ToCell()
	if err != nil {
		return nil, false
	}
	v, err := fromTVM(tc)
	if err != nil {
		return nil, false
	}
	return v, true
}

// Delete removes key from the dictionary. Deleting a missing key is a no-op.
func (d *Dictionary) Delete(k *uint256.Int) error {
	key, err := d.keyCell(k)
	if err != nil {
		return err
	}
	if err := d.dict.Delete(key); err != nil && !errors.Is(err, tcell.ErrNoSuchKeyInDict) {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return nil
}

// Keys returns all keys in ascending numeric order.
func (d *Dictionary) Keys() []*uint256.Int {
	if d.dict.IsEmpty() {
		return nil
	}
	entries, err := d.entries()
	if err != nil {
		return nil
	}
	out := make([]*uint256.Int, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}

type dictEntry struct {
	key   *uint256.Int
	value *tcell.Slice
}

// entries walks the whole tree. Zero branches are visited first, so the
// result is in ascending key order.
func (d *Dictionary) entries() (out []dictEntry, err error) {
	// The walker may panic on labels longer than the key.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: dictionary: %v", ErrMalformedInput, r)
		}
	}()

	all, err := d.dict.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: dictionary: %v", ErrMalformedInput, err)
	}
	out = make([]dictEntry, len(all))
	for i, kv := range all {
		if kv.Key.BitsLeft() != d.keyBits {
			return nil, fmt.Errorf("%w: dictionary key of %d bits, want %d", ErrMalformedInput, kv.Key.BitsLeft(), d.keyBits)
		}
		k, err := kv.Key.LoadBigUInt(d.keyBits)
		if err != nil {
			return nil, fmt.Errorf("%w: dictionary key: %v", ErrMalformedInput, err)
		}
		key, _ := uint256.FromBig(k)
		out[i] = dictEntry{key: key, value: kv.Value}
	}
	return out, nil
}

// ToCell serializes the non-empty dictionary as a Hashmap root edge.
func (d *Dictionary) ToCell() (*Cell, error) {
	if d.dict.IsEmpty() {
		return nil, fmt.Errorf("cell: empty dictionary has no root cell")
	}
	return fromTVM(d.dict.AsCell())
}

// ParseDictionary reads a Hashmap root edge cell as produced by ToCell. A
// nil root is an empty dictionary. The whole tree is validated up front.
func ParseDictionary(root *Cell, keyBits uint) (*Dictionary, error) {
	if keyBits == 0 || keyBits > 256 {
		return nil, fmt.Errorf("cell: dictionary key width %d out of range", keyBits)
	}
	d := NewDictionary(keyBits)
	if root == nil {
		return d, nil
	}
	d.dict = toTVM(root).AsDict(keyBits)
	if _, err := d.entries(); err != nil {
		return nil, err
	}
	return d, nil
}
