package cell

import "fmt"

// Snake layout constants.
const (
	// SnakePrefix is the discriminator byte stored at the root of a snake chain.
	SnakePrefix = 0x00

	// SnakeChunkSize is the number of data bytes per cell: the cell capacity
	// minus the 8-bit prefix, rounded down to whole bytes.
	SnakeChunkSize = (MaxBits - 8) / 8
)

// EncodeSnake splits data into SnakeChunkSize chunks and chains them through
// single references. The chain is built from the last chunk backwards so the
// root holds the prefix and the first chunk; a single chunk yields a cell
// without references. Empty data yields a root holding only the prefix.
func EncodeSnake(data []byte) (*Cell, error) {
	var chunks [][]byte
	for rest := data; len(rest) > 0; {
		n := min(len(rest), SnakeChunkSize)
		chunks = append(chunks, rest[:n])
		rest = rest[n:]
	}
	if len(chunks) == 0 {
		chunks = [][]byte{nil}
	}

	var next *Cell
	for i := len(chunks) - 1; i >= 0; i-- {
		b := BeginCell()
		if i == 0 {
			if err := b.StoreUInt(SnakePrefix, 8); err != nil {
				return nil, err
			}
		}
		if err := b.StoreBytes(chunks[i]); err != nil {
			return nil, err
		}
		if next != nil {
			if err := b.StoreRef(next); err != nil {
				return nil, err
			}
		}
		next = b.EndCell()
	}
	return next, nil
}

// DecodeSnake reverses EncodeSnake.
func DecodeSnake(c *Cell) ([]byte, error) {
	return DecodeSnakeSlice(c.BeginParse())
}

// DecodeSnakeSlice decodes a snake chain starting at the unread part of s,
// which must begin with SnakePrefix.
func DecodeSnakeSlice(s *Slice) ([]byte, error) {
	prefix, err := s.LoadUInt(8)
	if err != nil {
		return nil, err
	}
	if prefix != SnakePrefix {
		return nil, fmt.Errorf("%w: snake prefix 0x%02x", ErrUnsupportedFormat, prefix)
	}
	return DecodeSnakeTail(s)
}

// DecodeSnakeTail concatenates the remaining payload of s and of every cell
// reachable through the single-reference chain, root first.
func DecodeSnakeTail(s *Slice) ([]byte, error) {
	var out []byte
	for {
		chunk, err := s.LoadRemainingBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)

		switch s.RemainingRefs() {
		case 0:
			return out, nil
		case 1:
			next, _ := s.LoadRef()
			s = next.BeginParse()
		default:
			return nil, fmt.Errorf("%w: snake cell with %d references", ErrMalformedInput, s.RemainingRefs())
		}
	}
}
