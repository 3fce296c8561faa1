package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	jetton "github.com/branched-services/go-jetton"
)

var ipfsCommand = &cli.Command{
	Name:  "ipfs",
	Usage: "Helpers for IPFS-hosted metadata",
	Subcommands: []*cli.Command{
		{
			Name:   "cid",
			Usage:  "Render metadata JSON and compute its content identifier",
			Flags:  []cli.Flag{fieldFlag},
			Action: ipfsCID,
		},
		{
			Name:      "gateway",
			Usage:     "Resolve an ipfs:// URI through the configured gateway",
			ArgsUsage: "<uri>",
			Action: func(ctx *cli.Context) error {
				if ctx.NArg() != 1 {
					return fmt.Errorf("expected one URI argument")
				}
				uri := ctx.Args().First()
				if _, err := jetton.ParseIPFSURI(uri); err != nil {
					return err
				}
				fmt.Fprintln(ctx.App.Writer, jetton.GatewayURL(uri, ctx.String(gatewayFlag.Name)))
				return nil
			},
		},
	},
}

func ipfsCID(ctx *cli.Context) error {
	fields, err := parseFields(ctx.StringSlice(fieldFlag.Name))
	if err != nil {
		return err
	}
	md, err := jetton.MetadataFromFields(fields)
	if err != nil {
		return err
	}
	doc, err := jetton.MarshalMetadataJSON(md)
	if err != nil {
		return err
	}
	id, err := jetton.MetadataCID(doc)
	if err != nil {
		return err
	}
	renderTable(ctx.App.Writer, []string{"Field", "Value"}, [][]string{
		{"json", string(doc)},
		{"cid", id.String()},
		{"uri", jetton.IPFSURI(id)},
	})
	return nil
}
