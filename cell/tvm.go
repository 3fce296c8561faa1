package cell

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	tcell "github.com/xssnick/tonutils-go/tvm/cell"
)

// toTVM rebuilds c as a tonutils-go cell. Shared subtrees are converted once.
func toTVM(c *Cell) *tcell.Cell {
	return toTVMCached(c, make(map[common.Hash]*tcell.Cell))
}

func toTVMCached(c *Cell, seen map[common.Hash]*tcell.Cell) *tcell.Cell {
	if tc, ok := seen[c.hash]; ok {
		return tc
	}
	b := tcell.BeginCell()
	// Bounds were enforced when c was built.
	b.MustStoreSlice(c.data, c.bits)
	for _, r := range c.refs {
		b.MustStoreRef(toTVMCached(r, seen))
	}
	tc := b.EndCell()
	seen[c.hash] = tc
	return tc
}

// fromTVM converts a tonutils-go cell tree. Exotic cells (pruned branches,
// library and merkle cells) are rejected.
func fromTVM(tc *tcell.Cell) (*Cell, error) {
	return fromTVMCached(tc, make(map[string]*Cell))
}

func fromTVMCached(tc *tcell.Cell, seen map[string]*Cell) (*Cell, error) {
	key := string(tc.Hash())
	if c, ok := seen[key]; ok {
		return c, nil
	}
	if typ := tc.GetType(); typ != tcell.OrdinaryCellType {
		return nil, fmt.Errorf("%w: exotic cell of type %d", ErrUnsupportedFormat, typ)
	}
	if tc.BitsSize() > MaxBits || tc.RefsNum() > MaxRefs {
		return nil, fmt.Errorf("%w: cell with %d bits and %d refs", ErrMalformedInput, tc.BitsSize(), tc.RefsNum())
	}

	data, err := tc.BeginParse().LoadSlice(tc.BitsSize())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	refs := make([]*Cell, tc.RefsNum())
	for i := range refs {
		ref, err := tc.PeekRef(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		if refs[i], err = fromTVMCached(ref, seen); err != nil {
			return nil, err
		}
	}
	buf := make([]byte, (tc.BitsSize()+7)/8)
	copy(buf, data)
	c := newCell(buf, tc.BitsSize(), refs)
	seen[key] = c
	return c, nil
}
