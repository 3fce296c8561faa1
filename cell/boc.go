package cell

import (
	"bytes"
	"fmt"

	tcell "github.com/xssnick/tonutils-go/tvm/cell"
)

// bocMagic is the generic bag-of-cells magic prefix.
var bocMagic = []byte{0xb5, 0xee, 0x9c, 0x72}

// ToBOC serializes the tree rooted at c as a single-root bag of cells with a
// CRC32C trailer and no offset index. Identical subtrees are stored once.
func (c *Cell) ToBOC() []byte {
	return toTVM(c).ToBOCWithFlags(true)
}

// FromBOC parses a bag of cells and returns its first root.
func FromBOC(data []byte) (*Cell, error) {
	roots, err := FromBOCMultiRoot(data)
	if err != nil {
		return nil, err
	}
	return roots[0], nil
}

// FromBOCMultiRoot parses a bag of cells and returns all roots in order.
// Only ordinary cells are accepted.
func FromBOCMultiRoot(data []byte) (roots []*Cell, err error) {
	if len(data) >= len(bocMagic) && !bytes.Equal(data[:len(bocMagic)], bocMagic) {
		return nil, fmt.Errorf("%w: bag of cells magic %x", ErrUnsupportedFormat, data[:len(bocMagic)])
	}

	// The parser indexes into the header without bounds checks.
	defer func() {
		if r := recover(); r != nil {
			roots, err = nil, fmt.Errorf("%w: bag of cells: %v", ErrMalformedInput, r)
		}
	}()

	parsed, err := tcell.FromBOCMultiRoot(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("%w: bag of cells without roots", ErrMalformedInput)
	}
	seen := make(map[string]*Cell)
	roots = make([]*Cell, len(parsed))
	for i, tc := range parsed {
		if roots[i], err = fromTVMCached(tc, seen); err != nil {
			return nil, err
		}
	}
	return roots, nil
}
