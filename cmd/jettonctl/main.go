// Command jettonctl builds and inspects jetton metadata, message bodies and
// deployment payloads.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:    "verbosity",
		Usage:   "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:   3,
		EnvVars: []string{"JETTON_VERBOSITY"},
	}
	gatewayFlag = &cli.StringFlag{
		Name:    "ipfs-gateway",
		Usage:   "HTTPS prefix substituted for ipfs:// URIs",
		Value:   "https://ipfs.io/ipfs/",
		EnvVars: []string{"JETTON_IPFS_GATEWAY"},
	}
	base64Flag = &cli.BoolFlag{
		Name:  "base64",
		Usage: "Print bags of cells as base64 instead of hex",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "jettonctl",
		Usage: "TON jetton metadata and message toolkit",
		Flags: []cli.Flag{
			verbosityFlag,
			gatewayFlag,
			base64Flag,
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			metadataCommand,
			messageCommand,
			amountCommand,
			ipfsCommand,
			deploymentCommand,
			serveCommand,
		},
	}
}

func setupLogging(ctx *cli.Context) error {
	useColor := isatty.IsTerminal(os.Stderr.Fd())
	handler := log.NewTerminalHandlerWithLevel(os.Stderr, log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)), useColor)
	log.SetDefault(log.NewLogger(handler))
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
