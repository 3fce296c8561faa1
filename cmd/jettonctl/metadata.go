package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/httpfetch"
)

var metadataCommand = &cli.Command{
	Name:  "metadata",
	Usage: "Build and inspect jetton content cells",
	Subcommands: []*cli.Command{
		{
			Name:      "build",
			Usage:     "Build a content cell from fields or an off-chain URI",
			ArgsUsage: " ",
			Flags:     []cli.Flag{fieldFlag, uriFlag},
			Action:    buildMetadata,
		},
		{
			Name:      "decode",
			Usage:     "Decode a content cell without fetching off-chain documents",
			ArgsUsage: "<boc>",
			Action:    decodeMetadata,
		},
		{
			Name:      "read",
			Usage:     "Decode a content cell and resolve off-chain documents",
			ArgsUsage: "<boc>",
			Action:    readMetadata,
		},
	},
}

func newCodec(ctx *cli.Context) *jetton.Codec {
	return jetton.NewCodec(
		jetton.WithIPFSGateway(ctx.String(gatewayFlag.Name)),
		jetton.WithFetcher(httpfetch.New()),
	)
}

func buildMetadata(ctx *cli.Context) error {
	fields, err := parseFields(ctx.StringSlice(fieldFlag.Name))
	if err != nil {
		return err
	}
	content, err := newCodec(ctx).BuildContent(fields, ctx.String(uriFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, encodeBOC(ctx, content))
	return nil
}

func decodeMetadata(ctx *cli.Context) error {
	content, err := cellArg(ctx)
	if err != nil {
		return err
	}
	ct, err := newCodec(ctx).DecodeContent(content)
	if err != nil {
		return err
	}

	rows := [][]string{{"hash", content.Hash().Hex()}}
	switch ct := ct.(type) {
	case *jetton.OnchainContent:
		rows = append(rows, []string{"layout", "onchain"})
		if ct.FaultyData {
			rows = append(rows, []string{"faulty", "true"})
		}
		rows = append(rows, metadataRows(ct.Metadata)...)
	case *jetton.OffchainContent:
		rows = append(rows, []string{"layout", "offchain"}, []string{"uri", ct.URI})
	}
	renderTable(ctx.App.Writer, []string{"Field", "Value"}, rows)
	return nil
}

func readMetadata(ctx *cli.Context) error {
	content, err := cellArg(ctx)
	if err != nil {
		return err
	}
	md, err := newCodec(ctx).ReadMetadata(ctx.Context, content)
	if err != nil {
		return err
	}

	rows := [][]string{{"persistence", string(md.Persistence)}}
	if md.FaultyOnchainData {
		rows = append(rows, []string{"faulty", "true"})
	}
	rows = append(rows, metadataRows(md.Metadata)...)
	renderTable(ctx.App.Writer, []string{"Field", "Value"}, rows)
	return nil
}
