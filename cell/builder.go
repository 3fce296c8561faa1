package cell

import (
	"fmt"
	"math/big"
)

// Builder is the mutable, pre-finalization form of a Cell.
//
// Every Store method either appends its whole value or leaves the builder
// untouched and returns an error wrapping ErrCapacityExceeded.
type Builder struct {
	data []byte
	bits uint
	refs []*Cell
}

// BeginCell creates an empty builder.
func BeginCell() *Builder {
	return &Builder{data: make([]byte, 0, (MaxBits+7)/8)}
}

// BitsUsed returns the number of payload bits written so far.
func (b *Builder) BitsUsed() uint {
	return b.bits
}

// BitsLeft returns the remaining payload capacity.
func (b *Builder) BitsLeft() uint {
	return MaxBits - b.bits
}

// RefsUsed returns the number of references stored so far.
func (b *Builder) RefsUsed() int {
	return len(b.refs)
}

// RefsLeft returns the remaining reference capacity.
func (b *Builder) RefsLeft() int {
	return MaxRefs - len(b.refs)
}

func (b *Builder) checkBits(n uint) error {
	if n > b.BitsLeft() {
		return &CapacityError{What: "bits", Need: int(n), Left: int(b.BitsLeft())}
	}
	return nil
}

func (b *Builder) checkRefs(n int) error {
	if n > b.RefsLeft() {
		return &CapacityError{What: "refs", Need: n, Left: b.RefsLeft()}
	}
	return nil
}

// appendBit writes a single bit without a capacity check.
func (b *Builder) appendBit(v bool) {
	if b.bits%8 == 0 {
		b.data = append(b.data, 0)
	}
	if v {
		b.data[b.bits/8] |= 1 << (7 - b.bits%8)
	}
	b.bits++
}

// appendBits writes the first n bits of src (MSB first) without a capacity check.
func (b *Builder) appendBits(src []byte, n uint) {
	if b.bits%8 == 0 && n%8 == 0 {
		b.data = append(b.data, src[:n/8]...)
		b.bits += n
		return
	}
	for i := uint(0); i < n; i++ {
		b.appendBit(src[i/8]>>(7-i%8)&1 == 1)
	}
}

// StoreBit appends a single bit.
func (b *Builder) StoreBit(v bool) error {
	if err := b.checkBits(1); err != nil {
		return err
	}
	b.appendBit(v)
	return nil
}

// StoreUInt appends v as an unsigned big-endian integer of the given width (<= 64).
func (b *Builder) StoreUInt(v uint64, bits uint) error {
	if bits > 64 {
		return fmt.Errorf("cell: uint width %d exceeds 64 bits", bits)
	}
	if bits < 64 && v>>bits != 0 {
		return fmt.Errorf("cell: value %d does not fit in %d bits", v, bits)
	}
	if err := b.checkBits(bits); err != nil {
		return err
	}
	for i := bits; i > 0; i-- {
		b.appendBit(v>>(i-1)&1 == 1)
	}
	return nil
}

// StoreInt appends v as a two's complement integer of the given width (<= 64).
func (b *Builder) StoreInt(v int64, bits uint) error {
	if bits == 0 || bits > 64 {
		return fmt.Errorf("cell: int width %d out of range", bits)
	}
	if bits < 64 {
		lim := int64(1) << (bits - 1)
		if v < -lim || v >= lim {
			return fmt.Errorf("cell: value %d does not fit in %d signed bits", v, bits)
		}
	}
	if err := b.checkBits(bits); err != nil {
		return err
	}
	u := uint64(v)
	for i := bits; i > 0; i-- {
		b.appendBit(u>>(i-1)&1 == 1)
	}
	return nil
}

// StoreBigUInt appends a non-negative big integer of the given width.
func (b *Builder) StoreBigUInt(v *big.Int, bits uint) error {
	if v.Sign() < 0 {
		return fmt.Errorf("cell: negative value %s for unsigned field", v)
	}
	if uint(v.BitLen()) > bits {
		return fmt.Errorf("cell: value %s does not fit in %d bits", v, bits)
	}
	if err := b.checkBits(bits); err != nil {
		return err
	}
	for i := int(bits) - 1; i >= 0; i-- {
		b.appendBit(v.Bit(i) == 1)
	}
	return nil
}

// StoreSlice appends the first bits bits of data.
func (b *Builder) StoreSlice(data []byte, bits uint) error {
	if uint(len(data))*8 < bits {
		return fmt.Errorf("cell: %d bytes cannot hold %d bits", len(data), bits)
	}
	if err := b.checkBits(bits); err != nil {
		return err
	}
	b.appendBits(data, bits)
	return nil
}

// StoreBytes appends all of p.
func (b *Builder) StoreBytes(p []byte) error {
	return b.StoreSlice(p, uint(len(p))*8)
}

// StoreRef appends a reference to a finalized cell.
func (b *Builder) StoreRef(c *Cell) error {
	if c == nil {
		return fmt.Errorf("cell: nil reference")
	}
	if err := b.checkRefs(1); err != nil {
		return err
	}
	b.refs = append(b.refs, c)
	return nil
}

// StoreMaybeRef appends the Maybe ^Cell construction: a 0 bit for nil, a 1
// bit and a reference otherwise.
func (b *Builder) StoreMaybeRef(c *Cell) error {
	if c == nil {
		return b.StoreBit(false)
	}
	if err := b.checkBits(1); err != nil {
		return err
	}
	if err := b.checkRefs(1); err != nil {
		return err
	}
	b.appendBit(true)
	b.refs = append(b.refs, c)
	return nil
}

// StoreCoins appends an amount in the VarUInteger 16 encoding: a 4-bit byte
// length followed by the big-endian value.
func (b *Builder) StoreCoins(v *big.Int) error {
	if v == nil {
		v = new(big.Int)
	}
	if v.Sign() < 0 {
		return fmt.Errorf("cell: negative coins amount %s", v)
	}
	n := uint(len(v.Bytes()))
	if n > 15 {
		return fmt.Errorf("cell: coins amount %s exceeds 120 bits", v)
	}
	if err := b.checkBits(4 + n*8); err != nil {
		return err
	}
	_ = b.StoreUInt(uint64(n), 4)
	b.appendBits(v.Bytes(), n*8)
	return nil
}

// StoreAddress appends a MsgAddressInt. A nil address is stored as addr_none.
func (b *Builder) StoreAddress(a *Address) error {
	if a == nil {
		return b.StoreUInt(0, 2)
	}
	if err := b.checkBits(AddressBits); err != nil {
		return err
	}
	_ = b.StoreUInt(0b10, 2) // addr_std
	b.appendBit(false)       // no anycast
	_ = b.StoreInt(int64(a.Workchain), 8)
	b.appendBits(a.Data[:], 256)
	return nil
}

// StoreDict appends a HashmapE: a 0 bit for an empty dictionary, otherwise a
// 1 bit and a reference to the root edge.
func (b *Builder) StoreDict(d *Dictionary) error {
	if d == nil || d.dict.IsEmpty() {
		return b.StoreBit(false)
	}
	root, err := d.ToCell()
	if err != nil {
		return err
	}
	return b.StoreMaybeRef(root)
}

// StoreBuilder appends the bits and references of another builder.
func (b *Builder) StoreBuilder(o *Builder) error {
	if err := b.checkBits(o.bits); err != nil {
		return err
	}
	if err := b.checkRefs(len(o.refs)); err != nil {
		return err
	}
	b.appendBits(o.data, o.bits)
	b.refs = append(b.refs, o.refs...)
	return nil
}

// EndCell finalizes the builder. The builder must not be reused afterwards.
func (b *Builder) EndCell() *Cell {
	data := make([]byte, len(b.data))
	copy(data, b.data)
	refs := make([]*Cell, len(b.refs))
	copy(refs, b.refs)
	return newCell(data, b.bits, refs)
}
