// Package codecrpc exposes the jetton metadata codec as a gRPC service.
package codecrpc

import (
	"context"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/cell"
)

// BuildRequest is the JSON body of a Build call.
type BuildRequest struct {
	Fields      map[string]string `json:"fields,omitempty"`
	OffchainURI string            `json:"offchain_uri,omitempty"`
}

// Layout names.
const (
	LayoutOnchain  = "onchain"
	LayoutOffchain = "offchain"
)

// Description is the JSON reply of Decode and Read.
type Description struct {
	Layout      string            `json:"layout"`
	Hash        string            `json:"hash"`
	URI         string            `json:"uri,omitempty"`
	Persistence string            `json:"persistence,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	FaultyData  bool              `json:"faulty_data,omitempty"`
}

// describe decodes content into a Description. With resolve set, off-chain
// documents are fetched through the codec's Fetcher.
func describe(ctx context.Context, codec *jetton.Codec, content *cell.Cell, resolve bool) (*Description, error) {
	ct, err := codec.DecodeContent(content)
	if err != nil {
		return nil, err
	}

	d := &Description{Hash: content.Hash().Hex()}
	switch ct := ct.(type) {
	case *jetton.OnchainContent:
		d.Layout = LayoutOnchain
		d.Persistence = string(jetton.PersistenceOnchain)
		d.Metadata = ct.Metadata.Fields()
		d.FaultyData = ct.FaultyData
	case *jetton.OffchainContent:
		d.Layout = LayoutOffchain
		d.URI = ct.URI
	}

	if !resolve {
		return d, nil
	}
	md, err := codec.ReadMetadata(ctx, content)
	if err != nil {
		return nil, err
	}
	d.Persistence = string(md.Persistence)
	d.Metadata = md.Metadata.Fields()
	d.FaultyData = md.FaultyOnchainData
	return d, nil
}
