package jetton

import (
	"fmt"
	"math/big"

	"github.com/branched-services/go-jetton/cell"
)

// Message header layout.
const (
	// OpBits is the width of the operation tag.
	OpBits = 32

	// QueryIDBits is the width of the query id following the tag.
	QueryIDBits = 64
)

// bodyWriter stores message fields, keeping the first failure.
type bodyWriter struct {
	b   *cell.Builder
	op  Op
	err error
}

func newBodyWriter(m Message) *bodyWriter {
	w := &bodyWriter{b: cell.BeginCell(), op: m.Op()}
	w.store("op", func() error { return w.b.StoreUInt(uint64(m.Op()), OpBits) })
	w.store("query_id", func() error { return w.b.StoreUInt(m.Query(), QueryIDBits) })
	return w
}

func (w *bodyWriter) store(field string, fn func() error) {
	if w.err != nil {
		return
	}
	if err := fn(); err != nil {
		w.err = &MessageError{Op: w.op, Field: field, Err: err}
	}
}

func (w *bodyWriter) coins(field string, v *big.Int) {
	w.store(field, func() error { return w.b.StoreCoins(v) })
}

func (w *bodyWriter) address(field string, a *cell.Address) {
	w.store(field, func() error { return w.b.StoreAddress(a) })
}

func (w *bodyWriter) bit(field string, v bool) {
	w.store(field, func() error { return w.b.StoreBit(v) })
}

func (w *bodyWriter) ref(field string, c *cell.Cell) {
	w.store(field, func() error {
		if c == nil {
			return fmt.Errorf("missing cell")
		}
		return w.b.StoreRef(c)
	})
}

func (w *bodyWriter) finish() (*cell.Cell, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.b.EndCell(), nil
}

// EncodeMessage serializes m: the operation tag, the query id, then the
// operation's fields in wire order.
func EncodeMessage(m Message) (*cell.Cell, error) {
	w := newBodyWriter(m)

	switch m := m.(type) {
	case *Mint:
		w.address("to_address", m.Owner)
		w.coins("amount", m.ForwardAmount)
		if m.Transfer == nil {
			w.store("master_msg", func() error { return fmt.Errorf("missing internal transfer") })
			break
		}
		inner, err := EncodeMessage(m.Transfer)
		if err != nil {
			return nil, err
		}
		w.ref("master_msg", inner)

	case *InternalTransfer:
		w.coins("amount", m.Amount)
		w.address("from", m.From)
		w.address("response_address", m.ResponseAddress)
		w.coins("forward_ton_amount", m.ForwardTONAmount)
		w.bit("forward_payload", false)

	case *Transfer:
		w.coins("amount", m.Amount)
		w.address("destination", m.To)
		w.address("response_destination", m.ResponseAddress)
		w.bit("custom_payload", false)
		w.coins("forward_ton_amount", m.ForwardTONAmount)
		w.bit("forward_payload", false)

	case *Burn:
		w.coins("amount", m.Amount)
		w.address("response_destination", m.ResponseAddress)
		w.bit("custom_payload", false)

	case *ChangeAdmin:
		w.address("new_admin", m.NewAdmin)

	case *ReplaceMetadata:
		w.ref("content", m.Content)

	default:
		return nil, fmt.Errorf("jetton: unknown message type %T", m)
	}

	return w.finish()
}

// bodyReader loads message fields, keeping the first failure.
type bodyReader struct {
	s   *cell.Slice
	op  Op
	err error
}

func (r *bodyReader) fail(field string, err error) {
	if r.err == nil {
		r.err = &MessageError{Op: r.op, Field: field, Err: err}
	}
}

func (r *bodyReader) coins(field string) *big.Int {
	if r.err != nil {
		return nil
	}
	v, err := r.s.LoadCoins()
	if err != nil {
		r.fail(field, err)
	}
	return v
}

func (r *bodyReader) address(field string) *cell.Address {
	if r.err != nil {
		return nil
	}
	a, err := r.s.LoadAddress()
	if err != nil {
		r.fail(field, err)
	}
	return a
}

func (r *bodyReader) ref(field string) *cell.Cell {
	if r.err != nil {
		return nil
	}
	c, err := r.s.LoadRef()
	if err != nil {
		r.fail(field, err)
	}
	return c
}

// emptyPayload consumes an Either/Maybe bit that this package always writes
// as zero. A set bit carries a payload the message types do not model.
func (r *bodyReader) emptyPayload(field string) {
	if r.err != nil {
		return
	}
	set, err := r.s.LoadBit()
	if err != nil {
		r.fail(field, err)
		return
	}
	if set {
		r.fail(field, fmt.Errorf("%w: payload present", cell.ErrUnsupportedFormat))
	}
}

// forwardPayload consumes an Either Cell ^Cell forward payload. Anything left
// after a zero tag is an inline payload, which is not modeled either.
func (r *bodyReader) forwardPayload(field string) {
	r.emptyPayload(field)
	if r.err == nil && (r.s.RemainingBits() > 0 || r.s.RemainingRefs() > 0) {
		r.fail(field, fmt.Errorf("%w: inline payload present", cell.ErrUnsupportedFormat))
	}
}

// end rejects data after the last field.
func (r *bodyReader) end() {
	if r.err != nil {
		return
	}
	if bits, refs := r.s.RemainingBits(), r.s.RemainingRefs(); bits > 0 || refs > 0 {
		r.fail("", fmt.Errorf("%w: %d bits and %d refs after the last field", cell.ErrMalformedInput, bits, refs))
	}
}

// DecodeMessage parses a body produced by EncodeMessage. A tag outside the
// known set fails with ErrUnknownOp; data after the last field fails with
// cell.ErrMalformedInput.
func DecodeMessage(c *cell.Cell) (Message, error) {
	s := c.BeginParse()
	tag, err := s.LoadUInt(OpBits)
	if err != nil {
		return nil, err
	}
	op := Op(tag)
	switch op {
	case OpMint, OpInternalTransfer, OpTransfer, OpBurn, OpChangeAdmin, OpReplaceMetadata:
	default:
		return nil, fmt.Errorf("%w: 0x%x", ErrUnknownOp, tag)
	}
	r := &bodyReader{s: s, op: op}

	queryID, err := s.LoadUInt(QueryIDBits)
	if err != nil {
		return nil, &MessageError{Op: op, Field: "query_id", Err: err}
	}

	var m Message
	switch op {
	case OpMint:
		msg := &Mint{QueryID: queryID}
		msg.Owner = r.address("to_address")
		msg.ForwardAmount = r.coins("amount")
		if inner := r.ref("master_msg"); inner != nil {
			decoded, err := DecodeMessage(inner)
			if err != nil {
				return nil, &MessageError{Op: op, Field: "master_msg", Err: err}
			}
			it, ok := decoded.(*InternalTransfer)
			if !ok {
				return nil, &MessageError{Op: op, Field: "master_msg", Err: fmt.Errorf("%w: nested %s", cell.ErrUnsupportedFormat, decoded.Op())}
			}
			msg.Transfer = it
		}
		m = msg

	case OpInternalTransfer:
		msg := &InternalTransfer{QueryID: queryID}
		msg.Amount = r.coins("amount")
		msg.From = r.address("from")
		msg.ResponseAddress = r.address("response_address")
		msg.ForwardTONAmount = r.coins("forward_ton_amount")
		r.forwardPayload("forward_payload")
		m = msg

	case OpTransfer:
		msg := &Transfer{QueryID: queryID}
		msg.Amount = r.coins("amount")
		msg.To = r.address("destination")
		msg.ResponseAddress = r.address("response_destination")
		r.emptyPayload("custom_payload")
		msg.ForwardTONAmount = r.coins("forward_ton_amount")
		r.forwardPayload("forward_payload")
		m = msg

	case OpBurn:
		msg := &Burn{QueryID: queryID}
		msg.Amount = r.coins("amount")
		msg.ResponseAddress = r.address("response_destination")
		r.emptyPayload("custom_payload")
		m = msg

	case OpChangeAdmin:
		m = &ChangeAdmin{QueryID: queryID, NewAdmin: r.address("new_admin")}

	case OpReplaceMetadata:
		m = &ReplaceMetadata{QueryID: queryID, Content: r.ref("content")}
	}

	r.end()
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}
