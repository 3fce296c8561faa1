package deploy

import (
	"context"
	"math/big"
	"time"

	"github.com/branched-services/go-jetton/cell"
)

// JettonData is the result of the minter's get_jetton_data method.
type JettonData struct {
	TotalSupply *big.Int
	Mintable    bool
	Admin       *cell.Address
	Content     *cell.Cell
	WalletCode  *cell.Cell
}

// WalletData is the result of a jetton wallet's get_wallet_data method.
type WalletData struct {
	Balance *big.Int
	Owner   *cell.Address
	Master  *cell.Address
}

// Chain reads blockchain state. Implementations wrap an RPC client.
type Chain interface {
	Balance(ctx context.Context, addr *cell.Address) (*big.Int, error)
	IsDeployed(ctx context.Context, addr *cell.Address) (bool, error)
	Seqno(ctx context.Context, wallet *cell.Address) (uint64, error)

	// WalletAddress calls the minter's get_wallet_address for owner.
	WalletAddress(ctx context.Context, minter, owner *cell.Address) (*cell.Address, error)
	JettonData(ctx context.Context, minter *cell.Address) (*JettonData, error)
	WalletData(ctx context.Context, wallet *cell.Address) (*WalletData, error)
}

// Transaction is a single outgoing message. StateInit and Payload are BOC
// bytes; StateInit is empty unless deploying.
type Transaction struct {
	To         *cell.Address
	Amount     *big.Int
	StateInit  []byte
	Payload    []byte
	ValidUntil time.Time
}

// Wallet signs and submits transactions on behalf of its owner.
type Wallet interface {
	Address() *cell.Address
	Send(ctx context.Context, tx Transaction) error
}
