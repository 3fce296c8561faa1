// Package deploy drives jetton deployment and administration against a
// chain reader and a signing wallet, waiting for each step to land.
package deploy

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/log"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/cell"
)

// Attached values per operation.
var (
	MintValue          = jetton.MustToNano("0.04")
	MintForwardAmount  = jetton.MustToNano("0.02")
	TransferValue      = jetton.MustToNano("0.05")
	BurnValue          = jetton.MustToNano("0.031")
	AdminValue         = jetton.MustToNano("0.01")
	DefaultValidityTTL = 5 * time.Minute
)

// Controller submits jetton operations from a single wallet.
type Controller struct {
	chain     Chain
	wallet    Wallet
	contracts *jetton.Contracts

	codec    *jetton.Codec
	poller   *Poller
	queryID  uint64
	validity time.Duration
	now      func() time.Time
	log      log.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithCodec sets the metadata codec. Default is jetton.NewCodec().
func WithCodec(codec *jetton.Codec) ControllerOption {
	return func(c *Controller) {
		c.codec = codec
	}
}

// WithPoller sets the confirmation poller.
func WithPoller(p *Poller) ControllerOption {
	return func(c *Controller) {
		c.poller = p
	}
}

// WithQueryID sets the query id of the deployment mint.
func WithQueryID(id uint64) ControllerOption {
	return func(c *Controller) {
		c.queryID = id
	}
}

// WithValidity sets how long submitted transactions stay valid.
func WithValidity(d time.Duration) ControllerOption {
	return func(c *Controller) {
		c.validity = d
	}
}

// NewController creates a controller sending from wallet.
func NewController(chain Chain, wallet Wallet, contracts *jetton.Contracts, opts ...ControllerOption) *Controller {
	c := &Controller{
		chain:     chain,
		wallet:    wallet,
		contracts: contracts,
		codec:     jetton.NewCodec(),
		poller:    NewPoller(),
		validity:  DefaultValidityTTL,
		now:       time.Now,
		log:       log.New("module", "jetton-deploy"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateJetton deploys the minter described by p unless it already exists,
// then waits for the owner's jetton wallet created by the initial mint.
func (c *Controller) CreateJetton(ctx context.Context, p jetton.DeployParams) (*cell.Address, error) {
	balance, err := c.chain.Balance(ctx, p.Owner)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(jetton.DeployValue) < 0 {
		return nil, fmt.Errorf("%w: have %s TON, need %s", ErrInsufficientBalance, jetton.FromNano(balance), jetton.FromNano(jetton.DeployValue))
	}

	dep, err := c.codec.NewDeployment(p, c.contracts, c.queryID)
	if err != nil {
		return nil, err
	}

	deployed, err := c.chain.IsDeployed(ctx, dep.Address)
	if err != nil {
		return nil, err
	}
	if deployed {
		c.log.Info("Jetton minter already deployed", "address", dep.Address)
	} else {
		si, err := dep.StateInit.Cell()
		if err != nil {
			return nil, err
		}
		body, err := dep.Body.Cell()
		if err != nil {
			return nil, err
		}
		c.log.Info("Deploying jetton minter", "address", dep.Address, "value", jetton.FromNano(dep.Value))
		if err := c.wallet.Send(ctx, Transaction{
			To:         dep.Address,
			Amount:     dep.Value,
			StateInit:  si.ToBOC(),
			Payload:    body.ToBOC(),
			ValidUntil: c.now().Add(c.validity),
		}); err != nil {
			return nil, err
		}
		if err := c.waitDeployed(ctx, dep.Address); err != nil {
			return nil, fmt.Errorf("deploy: minter %s: %w", dep.Address, err)
		}
	}

	ownerWallet, err := c.chain.WalletAddress(ctx, dep.Address, p.Owner)
	if err != nil {
		return nil, err
	}
	if err := c.waitDeployed(ctx, ownerWallet); err != nil {
		return nil, fmt.Errorf("deploy: owner wallet %s: %w", ownerWallet, err)
	}
	c.log.Info("Jetton deployed", "minter", dep.Address, "wallet", ownerWallet)
	return dep.Address, nil
}

// Mint credits amount to the controller's wallet.
func (c *Controller) Mint(ctx context.Context, minter *cell.Address, amount *big.Int) error {
	return c.send(ctx, minter, MintValue, jetton.MintBody(c.wallet.Address(), amount, MintForwardAmount, 0))
}

// Transfer moves amount from the controller's jetton wallet to to.
func (c *Controller) Transfer(ctx context.Context, jettonWallet, to *cell.Address, amount *big.Int) error {
	return c.send(ctx, jettonWallet, TransferValue, jetton.TransferBody(to, c.wallet.Address(), amount))
}

// Burn destroys amount held by the controller's jetton wallet.
func (c *Controller) Burn(ctx context.Context, jettonWallet *cell.Address, amount *big.Int) error {
	return c.send(ctx, jettonWallet, BurnValue, jetton.BurnBody(amount, c.wallet.Address()))
}

// BurnAdmin renounces minter administration by setting the zero address.
func (c *Controller) BurnAdmin(ctx context.Context, minter *cell.Address) error {
	return c.send(ctx, minter, AdminValue, jetton.ChangeAdminBody(cell.ZeroAddress()))
}

// UpdateMetadata replaces the minter content with on-chain fields. It also
// repairs minters whose content was written in the legacy inline layout.
func (c *Controller) UpdateMetadata(ctx context.Context, minter *cell.Address, fields map[string]string) error {
	content, err := c.codec.BuildOnchainMetadata(fields)
	if err != nil {
		return err
	}
	return c.send(ctx, minter, AdminValue, jetton.ReplaceMetadataBody(content))
}

// send submits msg and waits until the wallet seqno advances.
func (c *Controller) send(ctx context.Context, to *cell.Address, amount *big.Int, msg jetton.Message) error {
	body, err := msg.Cell()
	if err != nil {
		return err
	}

	from := c.wallet.Address()
	before, err := c.chain.Seqno(ctx, from)
	if err != nil {
		return err
	}

	c.log.Debug("Sending jetton message", "op", msg.Op(), "to", to, "value", jetton.FromNano(amount), "seqno", before)
	if err := c.wallet.Send(ctx, Transaction{
		To:         to,
		Amount:     amount,
		Payload:    body.ToBOC(),
		ValidUntil: c.now().Add(c.validity),
	}); err != nil {
		return err
	}

	err = c.poller.Until(ctx, func(ctx context.Context) (bool, error) {
		after, err := c.chain.Seqno(ctx, from)
		if err != nil {
			return false, err
		}
		return after > before, nil
	})
	if err != nil {
		return fmt.Errorf("deploy: %s confirmation: %w", msg.Op(), err)
	}
	return nil
}

func (c *Controller) waitDeployed(ctx context.Context, addr *cell.Address) error {
	return c.poller.Until(ctx, func(ctx context.Context) (bool, error) {
		return c.chain.IsDeployed(ctx, addr)
	})
}

// MinterDetails describes a jetton minter.
type MinterDetails struct {
	Address     *cell.Address
	TotalSupply *big.Int
	Admin       *cell.Address
	Metadata    *jetton.JettonMetadata
}

// WalletDetails describes an owner's jetton wallet.
type WalletDetails struct {
	Address *cell.Address
	Balance *big.Int
	Master  *cell.Address
}

// Details is the state of a jetton as seen by one owner. Wallet is nil when
// the owner's wallet is not deployed yet.
type Details struct {
	Minter MinterDetails
	Wallet *WalletDetails
}

// Details reads the minter state and owner's wallet state.
func (c *Controller) Details(ctx context.Context, minter, owner *cell.Address) (*Details, error) {
	data, err := c.chain.JettonData(ctx, minter)
	if err != nil {
		return nil, err
	}
	md, err := c.codec.ReadMetadata(ctx, data.Content)
	if err != nil {
		return nil, err
	}
	out := &Details{
		Minter: MinterDetails{
			Address:     minter,
			TotalSupply: data.TotalSupply,
			Admin:       data.Admin,
			Metadata:    md,
		},
	}
	if md.FaultyOnchainData {
		c.log.Warn("Jetton metadata uses the legacy inline layout", "minter", minter)
	}

	walletAddr, err := c.chain.WalletAddress(ctx, minter, owner)
	if err != nil {
		return nil, err
	}
	deployed, err := c.chain.IsDeployed(ctx, walletAddr)
	if err != nil {
		return nil, err
	}
	if !deployed {
		return out, nil
	}
	wd, err := c.chain.WalletData(ctx, walletAddr)
	if err != nil {
		return nil, err
	}
	out.Wallet = &WalletDetails{
		Address: walletAddr,
		Balance: wd.Balance,
		Master:  wd.Master,
	}
	return out, nil
}
