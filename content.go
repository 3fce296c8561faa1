package jetton

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/branched-services/go-jetton/cell"
)

// PersistenceType reports where the authoritative metadata lives.
type PersistenceType string

// Persistence types.
const (
	PersistenceOnchain       PersistenceType = "onchain"
	PersistencePrivateDomain PersistenceType = "offchain_private_domain"
	PersistenceIPFS          PersistenceType = "offchain_ipfs"
)

// Content is a decoded content cell. The concrete type is either
// *OnchainContent or *OffchainContent.
type Content interface {
	isContent()

	// Prefix returns the layout discriminator byte.
	Prefix() byte
}

// OnchainContent holds fields stored in the content dictionary.
type OnchainContent struct {
	Metadata Metadata

	// FaultyData is set when at least one value was stored inline in its
	// dictionary leaf instead of behind a reference.
	FaultyData bool
}

func (*OnchainContent) isContent() {}

// Prefix returns OnchainContentPrefix.
func (*OnchainContent) Prefix() byte { return OnchainContentPrefix }

// OffchainContent holds the URI of an external metadata document.
type OffchainContent struct {
	URI string
}

func (*OffchainContent) isContent() {}

// Prefix returns OffchainContentPrefix.
func (*OffchainContent) Prefix() byte { return OffchainContentPrefix }

// EncodeContent builds the cell for a decoded content value.
func (c *Codec) EncodeContent(ct Content) (*cell.Cell, error) {
	switch ct := ct.(type) {
	case *OnchainContent:
		return c.buildOnchain(ct.Metadata)
	case *OffchainContent:
		return c.BuildOffchainMetadata(ct.URI)
	default:
		return nil, fmt.Errorf("jetton: unknown content type %T", ct)
	}
}

// DecodeContent parses a content cell. Dictionary entries whose keys match
// no recognized field are ignored.
func (c *Codec) DecodeContent(content *cell.Cell) (Content, error) {
	s := content.BeginParse()
	prefix, err := s.LoadUInt(8)
	if err != nil {
		return nil, err
	}

	switch prefix {
	case OnchainContentPrefix:
		return c.decodeOnchain(s)
	case OffchainContentPrefix:
		raw, err := cell.DecodeSnakeTail(s)
		if err != nil {
			return nil, &KeyError{Key: string(KeyURI), Err: err}
		}
		return &OffchainContent{URI: decodeValue(KeyURI, raw)}, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnexpectedContentPrefix, prefix)
	}
}

func (c *Codec) decodeOnchain(s *cell.Slice) (*OnchainContent, error) {
	dict, err := s.LoadDict(ContentKeyBits)
	if err != nil {
		return nil, err
	}

	out := &OnchainContent{Metadata: make(Metadata)}
	for _, k := range MetadataKeys {
		leaf, ok := dict.Get(c.ContentKey(string(k)))
		if !ok {
			continue
		}

		var raw []byte
		if leaf.RefsNum() == 0 {
			// Legacy writers stored the snake inline in the leaf.
			out.FaultyData = true
			raw, err = cell.DecodeSnake(leaf)
		} else {
			raw, err = cell.DecodeSnake(leaf.Ref(0))
		}
		if err != nil {
			return nil, &KeyError{Key: string(k), Err: err}
		}

		if v := decodeValue(k, raw); v != "" {
			out.Metadata[k] = v
		}
	}
	return out, nil
}

// DecodeContent uses the default codec.
func DecodeContent(content *cell.Cell) (Content, error) {
	return defaultCodec.DecodeContent(content)
}

// JettonMetadata is the resolved metadata of a jetton.
type JettonMetadata struct {
	Persistence PersistenceType
	Metadata    Metadata

	// FaultyOnchainData mirrors OnchainContent.FaultyData.
	FaultyOnchainData bool
}

// ReadMetadata decodes content and resolves off-chain documents through the
// configured Fetcher. Fetched fields override on-chain ones.
func (c *Codec) ReadMetadata(ctx context.Context, content *cell.Cell) (*JettonMetadata, error) {
	ct, err := c.DecodeContent(content)
	if err != nil {
		return nil, err
	}

	switch ct := ct.(type) {
	case *OnchainContent:
		res := &JettonMetadata{
			Persistence:       PersistenceOnchain,
			Metadata:          ct.Metadata,
			FaultyOnchainData: ct.FaultyData,
		}
		uri, ok := ct.Metadata[KeyURI]
		if !ok {
			return res, nil
		}
		ext, persistence, err := c.fetchExternal(ctx, uri)
		if err != nil {
			return nil, err
		}
		res.Persistence = persistence
		for k, v := range ext {
			res.Metadata[k] = v
		}
		return res, nil

	case *OffchainContent:
		ext, persistence, err := c.fetchExternal(ctx, ct.URI)
		if err != nil {
			return nil, err
		}
		return &JettonMetadata{Persistence: persistence, Metadata: ext}, nil

	default:
		return nil, fmt.Errorf("jetton: unknown content type %T", ct)
	}
}

// ReadMetadata uses the default codec, which has no Fetcher.
func ReadMetadata(ctx context.Context, content *cell.Cell) (*JettonMetadata, error) {
	return defaultCodec.ReadMetadata(ctx, content)
}

func (c *Codec) fetchExternal(ctx context.Context, uri string) (Metadata, PersistenceType, error) {
	url := GatewayURL(uri, c.gateway)
	if c.fetcher == nil {
		return nil, "", &FetchError{URI: url, Err: ErrNoFetcher}
	}

	doc, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, "", &FetchError{URI: url, Err: err}
	}

	persistence := PersistencePrivateDomain
	if IsIPFS(uri) || IsIPFS(url) {
		persistence = PersistenceIPFS
	}
	return metadataFromJSON(doc), persistence, nil
}

// metadataFromJSON keeps recognized fields with scalar values.
func metadataFromJSON(doc map[string]any) Metadata {
	m := make(Metadata)
	for _, k := range MetadataKeys {
		var v string
		switch x := doc[string(k)].(type) {
		case string:
			v = x
		case float64:
			v = strconv.FormatFloat(x, 'f', -1, 64)
		case json.Number:
			v = x.String()
		case bool:
			v = strconv.FormatBool(x)
		}
		if v != "" {
			m[k] = v
		}
	}
	return m
}
