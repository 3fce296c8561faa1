package cell

import (
	"fmt"
	"math/big"
)

// Slice is a sequential read cursor over a Cell.
type Slice struct {
	cell *Cell
	pos  uint
	ref  int
}

// RemainingBits returns the number of unread payload bits.
func (s *Slice) RemainingBits() uint {
	return s.cell.bits - s.pos
}

// RemainingRefs returns the number of unread references.
func (s *Slice) RemainingRefs() int {
	return len(s.cell.refs) - s.ref
}

func (s *Slice) need(n uint) error {
	if n > s.RemainingBits() {
		return &ReadError{What: "bits", Need: int(n), Left: int(s.RemainingBits())}
	}
	return nil
}

func (s *Slice) bit() bool {
	v := s.cell.data[s.pos/8]>>(7-s.pos%8)&1 == 1
	s.pos++
	return v
}

// LoadBit reads a single bit.
func (s *Slice) LoadBit() (bool, error) {
	if err := s.need(1); err != nil {
		return false, err
	}
	return s.bit(), nil
}

// LoadUInt reads an unsigned integer of the given width (<= 64).
func (s *Slice) LoadUInt(bits uint) (uint64, error) {
	if bits > 64 {
		return 0, fmt.Errorf("cell: uint width %d exceeds 64 bits", bits)
	}
	if err := s.need(bits); err != nil {
		return 0, err
	}
	var v uint64
	for i := uint(0); i < bits; i++ {
		v <<= 1
		if s.bit() {
			v |= 1
		}
	}
	return v, nil
}

// LoadInt reads a two's complement integer of the given width (1..64).
func (s *Slice) LoadInt(bits uint) (int64, error) {
	if bits == 0 || bits > 64 {
		return 0, fmt.Errorf("cell: int width %d out of range", bits)
	}
	u, err := s.LoadUInt(bits)
	if err != nil {
		return 0, err
	}
	if bits < 64 && u>>(bits-1)&1 == 1 {
		u |= ^uint64(0) << bits
	}
	return int64(u), nil
}

// LoadBigUInt reads an unsigned integer of arbitrary width.
func (s *Slice) LoadBigUInt(bits uint) (*big.Int, error) {
	if err := s.need(bits); err != nil {
		return nil, err
	}
	v := new(big.Int)
	for i := uint(0); i < bits; i++ {
		v.Lsh(v, 1)
		if s.bit() {
			v.SetBit(v, 0, 1)
		}
	}
	return v, nil
}

// LoadSlice reads bits bits, returned left aligned and zero padded.
func (s *Slice) LoadSlice(bits uint) ([]byte, error) {
	if err := s.need(bits); err != nil {
		return nil, err
	}
	out := make([]byte, (bits+7)/8)
	if s.pos%8 == 0 {
		copy(out, s.cell.data[s.pos/8:])
		if bits%8 != 0 {
			out[len(out)-1] &= 0xff << (8 - bits%8)
		}
		s.pos += bits
		return out, nil
	}
	for i := uint(0); i < bits; i++ {
		if s.bit() {
			out[i/8] |= 1 << (7 - i%8)
		}
	}
	return out, nil
}

// LoadBytes reads n whole bytes.
func (s *Slice) LoadBytes(n int) ([]byte, error) {
	return s.LoadSlice(uint(n) * 8)
}

// LoadRemainingBytes reads all unread payload, which must be byte aligned.
func (s *Slice) LoadRemainingBytes() ([]byte, error) {
	left := s.RemainingBits()
	if left%8 != 0 {
		return nil, fmt.Errorf("%w: %d remaining bits are not byte aligned", ErrMalformedInput, left)
	}
	return s.LoadSlice(left)
}

// LoadRef reads the next reference.
func (s *Slice) LoadRef() (*Cell, error) {
	if s.RemainingRefs() < 1 {
		return nil, &ReadError{What: "refs", Need: 1, Left: 0}
	}
	c := s.cell.refs[s.ref]
	s.ref++
	return c, nil
}

// LoadMaybeRef reads the Maybe ^Cell construction, returning nil for nothing.
func (s *Slice) LoadMaybeRef() (*Cell, error) {
	has, err := s.LoadBit()
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	return s.LoadRef()
}

// LoadCoins reads a VarUInteger 16 amount.
func (s *Slice) LoadCoins() (*big.Int, error) {
	n, err := s.LoadUInt(4)
	if err != nil {
		return nil, err
	}
	return s.LoadBigUInt(uint(n) * 8)
}

// LoadAddress reads a MsgAddressInt. addr_none yields a nil address.
func (s *Slice) LoadAddress() (*Address, error) {
	tag, err := s.LoadUInt(2)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0b00:
		return nil, nil
	case 0b10:
	default:
		return nil, fmt.Errorf("%w: address tag %02b", ErrUnsupportedFormat, tag)
	}
	anycast, err := s.LoadBit()
	if err != nil {
		return nil, err
	}
	if anycast {
		return nil, fmt.Errorf("%w: anycast address", ErrUnsupportedFormat)
	}
	wc, err := s.LoadInt(8)
	if err != nil {
		return nil, err
	}
	data, err := s.LoadSlice(256)
	if err != nil {
		return nil, err
	}
	a := &Address{Workchain: int8(wc)}
	copy(a.Data[:], data)
	return a, nil
}

// LoadDict reads a HashmapE with the given key width.
func (s *Slice) LoadDict(keyBits uint) (*Dictionary, error) {
	root, err := s.LoadMaybeRef()
	if err != nil {
		return nil, err
	}
	return ParseDictionary(root, keyBits)
}

// ToCell copies the unread remainder into a new cell. The slice is not advanced.
func (s *Slice) ToCell() *Cell {
	cp := *s
	b := BeginCell()
	data, _ := cp.LoadSlice(cp.RemainingBits())
	b.appendBits(data, s.RemainingBits())
	b.refs = append(b.refs, s.cell.refs[s.ref:]...)
	return b.EndCell()
}
