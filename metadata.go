package jetton

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/holiman/uint256"

	"github.com/branched-services/go-jetton/cell"
)

// MetadataKey names a recognized metadata field.
type MetadataKey string

// Recognized metadata fields.
const (
	KeyName        MetadataKey = "name"
	KeyDescription MetadataKey = "description"
	KeyImage       MetadataKey = "image"
	KeyImageData   MetadataKey = "image_data"
	KeySymbol      MetadataKey = "symbol"
	KeyDecimals    MetadataKey = "decimals"
	KeyURI         MetadataKey = "uri"
)

// MetadataKeys lists every recognized field in canonical order.
var MetadataKeys = []MetadataKey{
	KeyName,
	KeyDescription,
	KeyImage,
	KeyImageData,
	KeySymbol,
	KeyDecimals,
	KeyURI,
}

// valueEncoding is the fixed text encoding of a field's stored bytes.
type valueEncoding uint8

const (
	encodingUTF8 valueEncoding = iota
	encodingASCII
	encodingBase64
)

var keyEncodings = map[MetadataKey]valueEncoding{
	KeyName:        encodingUTF8,
	KeyDescription: encodingUTF8,
	KeyImage:       encodingASCII,
	KeyImageData:   encodingBase64,
	KeySymbol:      encodingUTF8,
	KeyDecimals:    encodingUTF8,
	KeyURI:         encodingASCII,
}

// IsValid reports whether k is a recognized field.
func (k MetadataKey) IsValid() bool {
	_, ok := keyEncodings[k]
	return ok
}

// ParseMetadataKey validates a field name.
func ParseMetadataKey(name string) (MetadataKey, error) {
	k := MetadataKey(name)
	if !k.IsValid() {
		return "", &KeyError{Key: name, Err: ErrUnsupportedKey}
	}
	return k, nil
}

// Metadata maps recognized fields to their text values.
type Metadata map[MetadataKey]string

// Clone returns a shallow copy of m.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Fields returns m keyed by plain field names.
func (m Metadata) Fields() map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[string(k)] = v
	}
	return out
}

// MetadataFromFields validates field names and drops empty values.
func MetadataFromFields(fields map[string]string) (Metadata, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	m := make(Metadata, len(fields))
	for _, name := range names {
		k, err := ParseMetadataKey(name)
		if err != nil {
			return nil, err
		}
		if v := fields[name]; v != "" {
			m[k] = v
		}
	}
	return m, nil
}

func encodeValue(k MetadataKey, v string) ([]byte, error) {
	switch keyEncodings[k] {
	case encodingASCII:
		if !isASCII(v) {
			return nil, &KeyError{Key: string(k), Err: fmt.Errorf("%w: non-ASCII text", ErrInvalidValue)}
		}
		return []byte(v), nil
	case encodingBase64:
		raw, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, &KeyError{Key: string(k), Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
		}
		return raw, nil
	default:
		if !utf8.ValidString(v) {
			return nil, &KeyError{Key: string(k), Err: fmt.Errorf("%w: invalid UTF-8", ErrInvalidValue)}
		}
		return []byte(v), nil
	}
}

func decodeValue(k MetadataKey, raw []byte) string {
	switch keyEncodings[k] {
	case encodingASCII:
		out := make([]byte, len(raw))
		for i, c := range raw {
			out[i] = c & 0x7f
		}
		return string(out)
	case encodingBase64:
		return base64.StdEncoding.EncodeToString(raw)
	default:
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Fetcher retrieves an off-chain metadata document. The returned object is
// the decoded JSON body.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (map[string]any, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (map[string]any, error)

// Fetch calls f(ctx, url).
func (f FetcherFunc) Fetch(ctx context.Context, url string) (map[string]any, error) {
	return f(ctx, url)
}

// Codec builds and parses jetton content cells.
//
// A Codec is safe for concurrent use once constructed.
type Codec struct {
	hasher  Hasher
	fetcher Fetcher
	gateway string
}

// NewCodec creates a codec with the given options.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{
		hasher:  defaultHasher,
		gateway: DefaultIPFSGateway,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCodec = NewCodec()

// ContentKeyBits is the key width of the on-chain metadata dictionary.
const ContentKeyBits = 256

// ContentKey returns the dictionary key for a field name.
func (c *Codec) ContentKey(name string) *uint256.Int {
	sum := c.hasher([]byte(name))
	return new(uint256.Int).SetBytes32(sum[:])
}

// ContentKey returns the sha256 dictionary key for a field name.
func ContentKey(name string) *uint256.Int {
	return defaultCodec.ContentKey(name)
}

// Content layout discriminators.
const (
	OnchainContentPrefix  = 0x00
	OffchainContentPrefix = 0x01
)

// BuildOnchainMetadata stores fields in a content-key dictionary, each value
// as a snake chain referenced from its leaf. Empty values are skipped; an
// unrecognized name fails before anything is built.
func (c *Codec) BuildOnchainMetadata(fields map[string]string) (*cell.Cell, error) {
	m, err := MetadataFromFields(fields)
	if err != nil {
		return nil, err
	}
	return c.buildOnchain(m)
}

func (c *Codec) buildOnchain(m Metadata) (*cell.Cell, error) {
	dict := cell.NewDictionary(ContentKeyBits)
	for _, k := range MetadataKeys {
		v, ok := m[k]
		if !ok || v == "" {
			continue
		}
		raw, err := encodeValue(k, v)
		if err != nil {
			return nil, err
		}
		value, err := cell.EncodeSnake(raw)
		if err != nil {
			return nil, &KeyError{Key: string(k), Err: err}
		}
		if err := dict.SetRef(c.ContentKey(string(k)), value); err != nil {
			return nil, &KeyError{Key: string(k), Err: err}
		}
	}

	b := cell.BeginCell()
	if err := b.StoreUInt(OnchainContentPrefix, 8); err != nil {
		return nil, err
	}
	if err := b.StoreDict(dict); err != nil {
		return nil, err
	}
	return b.EndCell(), nil
}

// BuildOffchainMetadata stores the prefix and the ASCII bytes of uri in a
// single cell. A URI longer than the cell capacity fails with
// cell.ErrCapacityExceeded.
func (c *Codec) BuildOffchainMetadata(uri string) (*cell.Cell, error) {
	if !isASCII(uri) {
		return nil, &KeyError{Key: string(KeyURI), Err: fmt.Errorf("%w: non-ASCII text", ErrInvalidValue)}
	}
	b := cell.BeginCell()
	if err := b.StoreUInt(OffchainContentPrefix, 8); err != nil {
		return nil, err
	}
	if err := b.StoreBytes([]byte(uri)); err != nil {
		return nil, &KeyError{Key: string(KeyURI), Err: err}
	}
	return b.EndCell(), nil
}

// BuildContent selects the content layout for a jetton. When offchainURI is
// set the off-chain layout wins and fields are ignored. A non-nil empty field
// map builds on-chain content with an empty dictionary.
func (c *Codec) BuildContent(fields map[string]string, offchainURI string) (*cell.Cell, error) {
	if offchainURI != "" {
		return c.BuildOffchainMetadata(offchainURI)
	}
	if fields == nil {
		return nil, ErrMissingMetadataSource
	}
	return c.BuildOnchainMetadata(fields)
}

// BuildOnchainMetadata uses the default codec.
func BuildOnchainMetadata(fields map[string]string) (*cell.Cell, error) {
	return defaultCodec.BuildOnchainMetadata(fields)
}

// BuildOffchainMetadata uses the default codec.
func BuildOffchainMetadata(uri string) (*cell.Cell, error) {
	return defaultCodec.BuildOffchainMetadata(uri)
}

// BuildContent uses the default codec.
func BuildContent(fields map[string]string, offchainURI string) (*cell.Cell, error) {
	return defaultCodec.BuildContent(fields, offchainURI)
}
