package jetton

import (
	"fmt"
	"math/big"

	"github.com/branched-services/go-jetton/cell"
)

// Op is the 32-bit operation tag at the start of every message body.
type Op uint32

// Operation tags.
const (
	OpChangeAdmin      Op = 0x3
	OpReplaceMetadata  Op = 0x4
	OpMint             Op = 0x15
	OpTransfer         Op = 0xf8a7ea5
	OpInternalTransfer Op = 0x178d4519
	OpBurn             Op = 0x595f07bc
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpChangeAdmin:
		return "change_admin"
	case OpReplaceMetadata:
		return "replace_metadata"
	case OpMint:
		return "mint"
	case OpTransfer:
		return "transfer"
	case OpInternalTransfer:
		return "internal_transfer"
	case OpBurn:
		return "burn"
	default:
		return fmt.Sprintf("op(0x%x)", uint32(o))
	}
}

// Message is a jetton operation body. The concrete type is one of *Mint,
// *InternalTransfer, *Transfer, *Burn, *ChangeAdmin or *ReplaceMetadata.
type Message interface {
	isMessage()

	// Op returns the operation tag.
	Op() Op

	// Query returns the 64-bit query id.
	Query() uint64

	// Cell encodes the message body.
	Cell() (*cell.Cell, error)
}

// Mint asks the minter to credit Owner's wallet. Transfer is delivered to
// the wallet with ForwardAmount attached.
type Mint struct {
	QueryID       uint64
	Owner         *cell.Address
	ForwardAmount *big.Int
	Transfer      *InternalTransfer
}

// InternalTransfer is the wallet-to-wallet credit message.
type InternalTransfer struct {
	QueryID          uint64
	Amount           *big.Int
	From             *cell.Address // nil for mints
	ResponseAddress  *cell.Address
	ForwardTONAmount *big.Int
}

// Transfer moves jettons from the sender's wallet to To.
type Transfer struct {
	QueryID          uint64
	Amount           *big.Int
	To               *cell.Address
	ResponseAddress  *cell.Address
	ForwardTONAmount *big.Int
}

// Burn destroys jettons held by the sender's wallet.
type Burn struct {
	QueryID         uint64
	Amount          *big.Int
	ResponseAddress *cell.Address
}

// ChangeAdmin hands minter administration to NewAdmin. The zero address
// revokes it.
type ChangeAdmin struct {
	QueryID  uint64
	NewAdmin *cell.Address
}

// ReplaceMetadata swaps the minter's content cell.
type ReplaceMetadata struct {
	QueryID uint64
	Content *cell.Cell
}

func (*Mint) isMessage()             {}
func (*InternalTransfer) isMessage() {}
func (*Transfer) isMessage()         {}
func (*Burn) isMessage()             {}
func (*ChangeAdmin) isMessage()      {}
func (*ReplaceMetadata) isMessage()  {}

func (*Mint) Op() Op             { return OpMint }
func (*InternalTransfer) Op() Op { return OpInternalTransfer }
func (*Transfer) Op() Op         { return OpTransfer }
func (*Burn) Op() Op             { return OpBurn }
func (*ChangeAdmin) Op() Op      { return OpChangeAdmin }
func (*ReplaceMetadata) Op() Op  { return OpReplaceMetadata }

func (m *Mint) Query() uint64             { return m.QueryID }
func (m *InternalTransfer) Query() uint64 { return m.QueryID }
func (m *Transfer) Query() uint64         { return m.QueryID }
func (m *Burn) Query() uint64             { return m.QueryID }
func (m *ChangeAdmin) Query() uint64      { return m.QueryID }
func (m *ReplaceMetadata) Query() uint64  { return m.QueryID }

func (m *Mint) Cell() (*cell.Cell, error)             { return EncodeMessage(m) }
func (m *InternalTransfer) Cell() (*cell.Cell, error) { return EncodeMessage(m) }
func (m *Transfer) Cell() (*cell.Cell, error)         { return EncodeMessage(m) }
func (m *Burn) Cell() (*cell.Cell, error)             { return EncodeMessage(m) }
func (m *ChangeAdmin) Cell() (*cell.Cell, error)      { return EncodeMessage(m) }
func (m *ReplaceMetadata) Cell() (*cell.Cell, error)  { return EncodeMessage(m) }

// Default attachments used by the message constructors.
var (
	// DefaultForwardTONAmount is attached to the recipient notification.
	DefaultForwardTONAmount = MustToNano("0.001")
)

// MintBody builds a mint for owner. The nested transfer carries query id 0,
// no source address and owner as the response address.
func MintBody(owner *cell.Address, jettonAmount, forwardAmount *big.Int, queryID uint64) *Mint {
	return &Mint{
		QueryID:       queryID,
		Owner:         owner,
		ForwardAmount: forwardAmount,
		Transfer: &InternalTransfer{
			QueryID:          0,
			Amount:           jettonAmount,
			ResponseAddress:  owner,
			ForwardTONAmount: DefaultForwardTONAmount,
		},
	}
}

// TransferBody builds a transfer to to, with excess returned to from.
func TransferBody(to, from *cell.Address, amount *big.Int) *Transfer {
	return &Transfer{
		QueryID:          1,
		Amount:           amount,
		To:               to,
		ResponseAddress:  from,
		ForwardTONAmount: DefaultForwardTONAmount,
	}
}

// BurnBody builds a burn of amount with excess returned to response.
func BurnBody(amount *big.Int, response *cell.Address) *Burn {
	return &Burn{
		QueryID:         1,
		Amount:          amount,
		ResponseAddress: response,
	}
}

// ChangeAdminBody builds an admin change to newAdmin.
func ChangeAdminBody(newAdmin *cell.Address) *ChangeAdmin {
	return &ChangeAdmin{NewAdmin: newAdmin}
}

// ReplaceMetadataBody builds a content replacement.
func ReplaceMetadataBody(content *cell.Cell) *ReplaceMetadata {
	return &ReplaceMetadata{Content: content}
}
