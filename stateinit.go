package jetton

import (
	"fmt"
	"math/big"

	"github.com/branched-services/go-jetton/cell"
)

// Deployment defaults.
var (
	// DeployValue is attached to the deployment message.
	DeployValue = MustToNano("0.25")

	// DeployMintForwardAmount is forwarded to the owner's wallet by the
	// initial mint.
	DeployMintForwardAmount = MustToNano("0.2")
)

// Contracts holds the compiled minter and wallet code. Both are opaque.
type Contracts struct {
	Minter *cell.Cell
	Wallet *cell.Cell
}

// LoadContracts parses the minter and wallet code from BOC blobs.
func LoadContracts(minterBOC, walletBOC []byte) (*Contracts, error) {
	minter, err := cell.FromBOC(minterBOC)
	if err != nil {
		return nil, fmt.Errorf("jetton: minter code: %w", err)
	}
	wallet, err := cell.FromBOC(walletBOC)
	if err != nil {
		return nil, fmt.Errorf("jetton: wallet code: %w", err)
	}
	return &Contracts{Minter: minter, Wallet: wallet}, nil
}

// InitData builds the minter's initial storage: zero supply, the admin
// address, the content cell and the wallet code.
func InitData(owner *cell.Address, content, walletCode *cell.Cell) (*cell.Cell, error) {
	if content == nil || walletCode == nil {
		return nil, fmt.Errorf("jetton: init data needs content and wallet code")
	}
	b := cell.BeginCell()
	if err := b.StoreCoins(new(big.Int)); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(owner); err != nil {
		return nil, err
	}
	if err := b.StoreRef(content); err != nil {
		return nil, err
	}
	if err := b.StoreRef(walletCode); err != nil {
		return nil, err
	}
	return b.EndCell(), nil
}

// StateInit is the code and data a contract is deployed with.
type StateInit struct {
	Code *cell.Cell
	Data *cell.Cell
}

// Cell encodes s without split depth, special flags or libraries.
func (s *StateInit) Cell() (*cell.Cell, error) {
	b := cell.BeginCell()
	if err := b.StoreBit(false); err != nil { // split_depth
		return nil, err
	}
	if err := b.StoreBit(false); err != nil { // special
		return nil, err
	}
	if err := b.StoreMaybeRef(s.Code); err != nil {
		return nil, err
	}
	if err := b.StoreMaybeRef(s.Data); err != nil {
		return nil, err
	}
	if err := b.StoreBit(false); err != nil { // library
		return nil, err
	}
	return b.EndCell(), nil
}

// Address derives the contract address: the state init hash in workchain.
func (s *StateInit) Address(workchain int8) (*cell.Address, error) {
	c, err := s.Cell()
	if err != nil {
		return nil, err
	}
	return cell.NewAddress(workchain, c.Hash()), nil
}

// DeployParams describes a new jetton.
type DeployParams struct {
	Owner *cell.Address

	// Exactly one source is used; OffchainURI wins when both are set.
	OnchainMetadata map[string]string
	OffchainURI     string

	AmountToMint *big.Int
}

// Deployment is everything needed to submit a minter deployment.
type Deployment struct {
	StateInit *StateInit
	Address   *cell.Address
	Value     *big.Int
	Body      *Mint
}

// NewDeployment prepares the minter state init and its initial mint to the
// owner. Deployments target the basechain.
func (c *Codec) NewDeployment(p DeployParams, contracts *Contracts, queryID uint64) (*Deployment, error) {
	if p.Owner == nil {
		return nil, fmt.Errorf("jetton: deployment needs an owner")
	}
	content, err := c.BuildContent(p.OnchainMetadata, p.OffchainURI)
	if err != nil {
		return nil, err
	}
	data, err := InitData(p.Owner, content, contracts.Wallet)
	if err != nil {
		return nil, err
	}

	si := &StateInit{Code: contracts.Minter, Data: data}
	addr, err := si.Address(0)
	if err != nil {
		return nil, err
	}

	return &Deployment{
		StateInit: si,
		Address:   addr,
		Value:     new(big.Int).Set(DeployValue),
		Body:      MintBody(p.Owner, p.AmountToMint, DeployMintForwardAmount, queryID),
	}, nil
}
