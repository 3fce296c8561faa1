package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	jetton "github.com/branched-services/go-jetton"
)

var (
	minterCodeFlag = &cli.PathFlag{
		Name:     "minter-code",
		Usage:    "Jetton minter code as a raw bag of cells file",
		Required: true,
	}
	walletCodeFlag = &cli.PathFlag{
		Name:     "wallet-code",
		Usage:    "Jetton wallet code as a raw bag of cells file",
		Required: true,
	}
	deployQueryIDFlag = &cli.Uint64Flag{
		Name:    "query-id",
		Usage:   "Query id of the initial mint",
		EnvVars: []string{"JETTON_DEPLOY_QUERY_ID"},
	}
)

var deploymentCommand = &cli.Command{
	Name:  "deployment",
	Usage: "Prepare a jetton minter deployment",
	Flags: []cli.Flag{
		ownerFlag,
		minterCodeFlag,
		walletCodeFlag,
		fieldFlag,
		uriFlag,
		amountFlag,
		decimalsFlag,
		deployQueryIDFlag,
	},
	Action: prepareDeployment,
}

func prepareDeployment(ctx *cli.Context) error {
	owner, err := addressFlag(ctx, ownerFlag.Name)
	if err != nil {
		return err
	}
	minter, err := os.ReadFile(ctx.Path(minterCodeFlag.Name))
	if err != nil {
		return err
	}
	wallet, err := os.ReadFile(ctx.Path(walletCodeFlag.Name))
	if err != nil {
		return err
	}
	contracts, err := jetton.LoadContracts(minter, wallet)
	if err != nil {
		return err
	}
	fields, err := parseFields(ctx.StringSlice(fieldFlag.Name))
	if err != nil {
		return err
	}
	amount, err := jettonAmount(ctx)
	if err != nil {
		return err
	}

	d, err := newCodec(ctx).NewDeployment(jetton.DeployParams{
		Owner:           owner,
		OnchainMetadata: fields,
		OffchainURI:     ctx.String(uriFlag.Name),
		AmountToMint:    amount,
	}, contracts, ctx.Uint64(deployQueryIDFlag.Name))
	if err != nil {
		return err
	}
	stateInit, err := d.StateInit.Cell()
	if err != nil {
		return err
	}
	body, err := d.Body.Cell()
	if err != nil {
		return err
	}
	log.Info("Prepared jetton deployment", "minter", d.Address, "value", jetton.FromNano(d.Value))

	rows := addressRows("minter", d.Address)
	rows = append(rows,
		[]string{"value", jetton.FromNano(d.Value) + " TON"},
		[]string{"state_init", encodeBOC(ctx, stateInit)},
		[]string{"body", encodeBOC(ctx, body)},
	)
	renderTable(ctx.App.Writer, []string{"Field", "Value"}, rows)
	fmt.Fprintln(ctx.App.ErrWriter, "Send the value with the state init and body attached to deploy.")
	return nil
}
