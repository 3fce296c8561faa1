package main

import (
	"fmt"
	"math/big"

	"github.com/urfave/cli/v2"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/cell"
)

var (
	ownerFlag = &cli.StringFlag{
		Name:  "owner",
		Usage: "Owner address (raw or user-friendly)",
	}
	forwardFlag = &cli.StringFlag{
		Name:  "forward",
		Usage: "TON forwarded to the owner's jetton wallet",
		Value: "0.02",
	}
	toFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "Recipient address",
	}
	fromFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "Sender address receiving the excess",
	}
	responseFlag = &cli.StringFlag{
		Name:  "response",
		Usage: "Address receiving the excess",
	}
	adminFlag = &cli.StringFlag{
		Name:  "admin",
		Usage: "New admin address; omit to renounce administration",
	}
	contentFlag = &cli.StringFlag{
		Name:     "content",
		Usage:    "Content cell as a bag of cells",
		Required: true,
	}
)

var messageCommand = &cli.Command{
	Name:  "message",
	Usage: "Build and decode jetton message bodies",
	Subcommands: []*cli.Command{
		{
			Name:   "mint",
			Usage:  "Build a mint body",
			Flags:  []cli.Flag{ownerFlag, amountFlag, decimalsFlag, forwardFlag, queryIDFlag},
			Action: buildMint,
		},
		{
			Name:   "transfer",
			Usage:  "Build a transfer body",
			Flags:  []cli.Flag{toFlag, fromFlag, amountFlag, decimalsFlag},
			Action: buildTransfer,
		},
		{
			Name:   "burn",
			Usage:  "Build a burn body",
			Flags:  []cli.Flag{responseFlag, amountFlag, decimalsFlag},
			Action: buildBurn,
		},
		{
			Name:   "change-admin",
			Usage:  "Build an admin change body",
			Flags:  []cli.Flag{adminFlag},
			Action: buildChangeAdmin,
		},
		{
			Name:   "replace-metadata",
			Usage:  "Build a content replacement body",
			Flags:  []cli.Flag{contentFlag},
			Action: buildReplaceMetadata,
		},
		{
			Name:      "decode",
			Usage:     "Decode a message body",
			ArgsUsage: "<boc>",
			Action:    decodeMessage,
		},
	},
}

func printMessage(ctx *cli.Context, m jetton.Message) error {
	c, err := m.Cell()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, encodeBOC(ctx, c))
	return nil
}

func buildMint(ctx *cli.Context) error {
	owner, err := addressFlag(ctx, ownerFlag.Name)
	if err != nil {
		return err
	}
	amount, err := jettonAmount(ctx)
	if err != nil {
		return err
	}
	forward, err := jetton.ToNano(ctx.String(forwardFlag.Name))
	if err != nil {
		return err
	}
	return printMessage(ctx, jetton.MintBody(owner, amount, forward, ctx.Uint64(queryIDFlag.Name)))
}

func buildTransfer(ctx *cli.Context) error {
	to, err := addressFlag(ctx, toFlag.Name)
	if err != nil {
		return err
	}
	from, err := addressFlag(ctx, fromFlag.Name)
	if err != nil {
		return err
	}
	amount, err := jettonAmount(ctx)
	if err != nil {
		return err
	}
	return printMessage(ctx, jetton.TransferBody(to, from, amount))
}

func buildBurn(ctx *cli.Context) error {
	response, err := addressFlag(ctx, responseFlag.Name)
	if err != nil {
		return err
	}
	amount, err := jettonAmount(ctx)
	if err != nil {
		return err
	}
	return printMessage(ctx, jetton.BurnBody(amount, response))
}

func buildChangeAdmin(ctx *cli.Context) error {
	var admin *cell.Address
	if ctx.IsSet(adminFlag.Name) {
		var err error
		if admin, err = addressFlag(ctx, adminFlag.Name); err != nil {
			return err
		}
	}
	return printMessage(ctx, jetton.ChangeAdminBody(admin))
}

func buildReplaceMetadata(ctx *cli.Context) error {
	content, err := decodeBOC(ctx.String(contentFlag.Name))
	if err != nil {
		return err
	}
	return printMessage(ctx, jetton.ReplaceMetadataBody(content))
}

func decodeMessage(ctx *cli.Context) error {
	c, err := cellArg(ctx)
	if err != nil {
		return err
	}
	m, err := jetton.DecodeMessage(c)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"op", m.Op().String()},
		{"query_id", fmt.Sprint(m.Query())},
	}
	switch m := m.(type) {
	case *jetton.Mint:
		rows = append(rows, addressRows("to_address", m.Owner)...)
		rows = append(rows, tonRow("amount", m.ForwardAmount))
		if m.Transfer != nil {
			rows = append(rows, []string{"jetton_amount", m.Transfer.Amount.String()})
			rows = append(rows, addressRows("response_address", m.Transfer.ResponseAddress)...)
			rows = append(rows, tonRow("forward_ton_amount", m.Transfer.ForwardTONAmount))
		}
	case *jetton.InternalTransfer:
		rows = append(rows, []string{"amount", m.Amount.String()})
		rows = append(rows, addressRows("from", m.From)...)
		rows = append(rows, addressRows("response_address", m.ResponseAddress)...)
		rows = append(rows, tonRow("forward_ton_amount", m.ForwardTONAmount))
	case *jetton.Transfer:
		rows = append(rows, []string{"amount", m.Amount.String()})
		rows = append(rows, addressRows("destination", m.To)...)
		rows = append(rows, addressRows("response_destination", m.ResponseAddress)...)
		rows = append(rows, tonRow("forward_ton_amount", m.ForwardTONAmount))
	case *jetton.Burn:
		rows = append(rows, []string{"amount", m.Amount.String()})
		rows = append(rows, addressRows("response_destination", m.ResponseAddress)...)
	case *jetton.ChangeAdmin:
		rows = append(rows, addressRows("new_admin", m.NewAdmin)...)
	case *jetton.ReplaceMetadata:
		rows = append(rows, []string{"content_hash", m.Content.Hash().Hex()})
	}
	renderTable(ctx.App.Writer, []string{"Field", "Value"}, rows)
	return nil
}

func tonRow(label string, v *big.Int) []string {
	return []string{label, jetton.FromNano(v) + " TON"}
}
