// Package cell implements the bounded binary tree nodes used as the universal
// serialization unit of the TON ledger: builders, read cursors, the standard
// hashmap dictionary, snake chains and the bag-of-cells envelope.
//
// A Cell holds up to MaxBits bits of payload and up to MaxRefs references to
// child cells. Cells are immutable once a Builder is finalized, so a Cell may
// be shared between goroutines and between parent cells freely.
package cell

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/minio/sha256-simd"
)

// Cell capacity limits of the reference format.
const (
	// MaxBits is the payload capacity of a single cell.
	MaxBits = 1023

	// MaxRefs is the maximum number of child references of a cell.
	MaxRefs = 4
)

// Cell is a finalized, immutable cell.
type Cell struct {
	data  []byte // bit-packed payload, MSB first, trailing bits zero
	bits  uint
	refs  []*Cell
	depth uint16
	hash  common.Hash
}

// newCell finalizes the payload. Depth and representation hash are computed
// once here; children are already final so this never recurses.
func newCell(data []byte, bits uint, refs []*Cell) *Cell {
	c := &Cell{
		data: data[:(bits+7)/8],
		bits: bits,
		refs: refs,
	}
	for _, r := range refs {
		if r.depth+1 > c.depth {
			c.depth = r.depth + 1
		}
	}
	c.hash = sha256.Sum256(c.repr())
	return c
}

// BitsSize returns the payload length in bits.
func (c *Cell) BitsSize() uint {
	return c.bits
}

// RefsNum returns the number of child references.
func (c *Cell) RefsNum() int {
	return len(c.refs)
}

// Ref returns the i-th child, or nil when out of range.
func (c *Cell) Ref(i int) *Cell {
	if i < 0 || i >= len(c.refs) {
		return nil
	}
	return c.refs[i]
}

// Data returns a copy of the payload bytes. The last byte is zero padded
// when BitsSize is not a multiple of 8.
func (c *Cell) Data() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Depth returns the maximum reference depth below this cell.
func (c *Cell) Depth() uint16 {
	return c.depth
}

// Hash returns the representation hash of the cell.
func (c *Cell) Hash() common.Hash {
	return c.hash
}

// Equal reports whether both cells have identical content and subtrees.
func (c *Cell) Equal(o *Cell) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.hash == o.hash
}

// BeginParse returns a read cursor positioned at the start of the cell.
func (c *Cell) BeginParse() *Slice {
	return &Slice{cell: c}
}

// descriptors returns the two descriptor bytes of an ordinary level-0 cell.
func (c *Cell) descriptors() (byte, byte) {
	d1 := byte(len(c.refs))
	d2 := byte(c.bits/8 + (c.bits+7)/8)
	return d1, d2
}

// paddedData returns the payload with the completion tag appended when the
// bit length is not byte aligned.
func (c *Cell) paddedData() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	if c.bits%8 != 0 {
		out[c.bits/8] |= 1 << (7 - c.bits%8)
	}
	return out
}

// repr is the standard representation: descriptors, padded data, child
// depths, then child hashes.
func (c *Cell) repr() []byte {
	d1, d2 := c.descriptors()
	buf := make([]byte, 0, 2+len(c.data)+len(c.refs)*(2+common.HashLength))
	buf = append(buf, d1, d2)
	buf = append(buf, c.paddedData()...)
	for _, r := range c.refs {
		buf = binary.BigEndian.AppendUint16(buf, r.depth)
	}
	for _, r := range c.refs {
		buf = append(buf, r.hash[:]...)
	}
	return buf
}

// String dumps the tree in the fift notation, e.g. x{0F8A_} with children
// indented below their parent.
func (c *Cell) String() string {
	var sb strings.Builder
	c.dump(&sb, 0)
	return sb.String()
}

func (c *Cell) dump(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat(" ", indent))
	sb.WriteString("x{")
	if c.bits%4 == 0 {
		sb.WriteString(strings.ToUpper(hex.EncodeToString(c.data))[:c.bits/4])
	} else {
		nibbles := (c.bits + 4) / 4
		sb.WriteString(strings.ToUpper(hex.EncodeToString(c.paddedData()))[:nibbles])
		sb.WriteString("_")
	}
	sb.WriteString("}\n")
	for _, r := range c.refs {
		r.dump(sb, indent+1)
	}
}
