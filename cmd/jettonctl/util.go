package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/cell"
)

var (
	fieldFlag = &cli.StringSliceFlag{
		Name:  "field",
		Usage: "On-chain metadata field as key=value (repeatable)",
	}
	uriFlag = &cli.StringFlag{
		Name:  "uri",
		Usage: "Off-chain metadata URI; takes precedence over --field",
	}
	decimalsFlag = &cli.IntFlag{
		Name:  "decimals",
		Usage: "Jetton decimals used to scale --amount",
		Value: 9,
	}
	amountFlag = &cli.StringFlag{
		Name:     "amount",
		Usage:    "Jetton amount as a decimal string",
		Required: true,
	}
	queryIDFlag = &cli.Uint64Flag{
		Name:  "query-id",
		Usage: "Message query id",
	}
)

// parseFields converts key=value pairs into a field map. No pairs yields a
// nil map, meaning no on-chain source.
func parseFields(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid field %q, want key=value", p)
		}
		fields[k] = v
	}
	return fields, nil
}

// decodeBOC accepts 0x-prefixed hex, base64, or @path to a raw BOC file.
func decodeBOC(arg string) (*cell.Cell, error) {
	var raw []byte
	var err error
	switch {
	case strings.HasPrefix(arg, "@"):
		raw, err = os.ReadFile(arg[1:])
	case strings.HasPrefix(arg, "0x"):
		raw, err = hexutil.Decode(arg)
	default:
		raw, err = base64.StdEncoding.DecodeString(arg)
	}
	if err != nil {
		return nil, err
	}
	return cell.FromBOC(raw)
}

func cellArg(ctx *cli.Context) (*cell.Cell, error) {
	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("expected one bag of cells argument")
	}
	return decodeBOC(ctx.Args().First())
}

func encodeBOC(ctx *cli.Context, c *cell.Cell) string {
	boc := c.ToBOC()
	if ctx.Bool(base64Flag.Name) {
		return base64.StdEncoding.EncodeToString(boc)
	}
	return hexutil.Encode(boc)
}

func addressFlag(ctx *cli.Context, name string) (*cell.Address, error) {
	s := ctx.String(name)
	if s == "" {
		return nil, fmt.Errorf("missing --%s", name)
	}
	return cell.ParseAddress(s)
}

func jettonAmount(ctx *cli.Context) (*big.Int, error) {
	return jetton.ToFixedPoint(ctx.String(amountFlag.Name), ctx.Int(decimalsFlag.Name))
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func metadataRows(md jetton.Metadata) [][]string {
	var rows [][]string
	for _, k := range jetton.MetadataKeys {
		if v, ok := md[k]; ok {
			rows = append(rows, []string{string(k), v})
		}
	}
	return rows
}

func addressRows(label string, a *cell.Address) [][]string {
	if a == nil {
		return [][]string{{label, "none"}}
	}
	return [][]string{
		{label, a.String()},
		{label + " (bounceable)", a.Friendly(true)},
	}
}
