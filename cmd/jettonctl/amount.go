package main

import (
	"fmt"
	"math/big"

	"github.com/urfave/cli/v2"

	jetton "github.com/branched-services/go-jetton"
)

var amountCommand = &cli.Command{
	Name:  "amount",
	Usage: "Convert between decimal amounts and base units",
	Subcommands: []*cli.Command{
		{
			Name:      "to-units",
			Usage:     "Scale a decimal amount to base units",
			ArgsUsage: "<amount>",
			Flags:     []cli.Flag{decimalsFlag},
			Action: func(ctx *cli.Context) error {
				if ctx.NArg() != 1 {
					return fmt.Errorf("expected one amount argument")
				}
				v, err := jetton.ToFixedPoint(ctx.Args().First(), ctx.Int(decimalsFlag.Name))
				if err != nil {
					return err
				}
				fmt.Fprintln(ctx.App.Writer, v)
				return nil
			},
		},
		{
			Name:      "from-units",
			Usage:     "Format base units as a decimal amount",
			ArgsUsage: "<units>",
			Flags:     []cli.Flag{decimalsFlag},
			Action: func(ctx *cli.Context) error {
				if ctx.NArg() != 1 {
					return fmt.Errorf("expected one integer argument")
				}
				v, ok := new(big.Int).SetString(ctx.Args().First(), 10)
				if !ok {
					return fmt.Errorf("%w: %q", jetton.ErrInvalidNumber, ctx.Args().First())
				}
				s, err := jetton.FromFixedPoint(v, ctx.Int(decimalsFlag.Name))
				if err != nil {
					return err
				}
				fmt.Fprintln(ctx.App.Writer, s)
				return nil
			},
		},
	},
}
