// Package jetton builds and parses the binary payloads of TON fungible
// tokens (jettons): token metadata in its on-chain and off-chain layouts,
// the operation messages sent to minter and wallet contracts, and the state
// needed to deploy a minter.
//
// # Basic Usage
//
// Build metadata, wrap it in a deployment and encode the initial mint:
//
//	codec := jetton.NewCodec()
//
//	content, err := codec.BuildOnchainMetadata(map[string]string{
//	    "name":     "Example",
//	    "symbol":   "EXM",
//	    "decimals": "9",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	contracts, _ := jetton.LoadContracts(minterBOC, walletBOC)
//	dep, _ := codec.NewDeployment(jetton.DeployParams{
//	    Owner:           owner,
//	    OnchainMetadata: fields,
//	    AmountToMint:    amount,
//	}, contracts, 0)
//
//	body, _ := dep.Body.Cell()
//	payload := body.ToBOC()
//
// # Metadata Layouts
//
// A content cell starts with a discriminator byte:
//
//   - 0x00 (on-chain): a dictionary keyed by the sha256 of each field name,
//     each value a snake chain referenced from its leaf.
//
//   - 0x01 (off-chain): the ASCII bytes of a URI pointing to a JSON document,
//     commonly on IPFS.
//
// Recognized fields are name, description, image, image_data, symbol,
// decimals and uri. image and uri are ASCII, image_data is base64 text over
// raw bytes, the rest are UTF-8.
//
// ReadMetadata resolves off-chain documents through a Fetcher and reports
// the persistence type: onchain, offchain_private_domain or offchain_ipfs.
//
// # Messages
//
// Every message body is a 32-bit operation tag, a 64-bit query id and the
// operation's fields. Message is a closed set of types; EncodeMessage and
// DecodeMessage convert between them and cells.
//
// # Amounts
//
// ToFixedPoint and FromFixedPoint convert between decimal strings and base
// units without floating point. ToNano and FromNano apply the 9 decimals of
// native TON.
//
// # References
//
//   - https://github.com/ton-blockchain/TEPs/blob/master/text/0064-token-data-standard.md
//   - https://github.com/ton-blockchain/TEPs/blob/master/text/0074-jettons-standard.md
package jetton
