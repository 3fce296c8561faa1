package jetton

import (
	"github.com/minio/sha256-simd"
)

// DefaultIPFSGateway replaces the ipfs:// scheme when fetching off-chain metadata.
const DefaultIPFSGateway = "https://ipfs.io/ipfs/"

// Hasher derives a 256-bit digest from a metadata field name.
type Hasher func(data []byte) [32]byte

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithHasher replaces the content key hash function.
// Default is sha256; any 256-bit digest works for private deployments.
func WithHasher(h Hasher) CodecOption {
	return func(c *Codec) {
		if h != nil {
			c.hasher = h
		}
	}
}

// WithFetcher sets the collaborator used to retrieve off-chain metadata.
// Without one, reading metadata that points to a URI fails with ErrNoFetcher.
func WithFetcher(f Fetcher) CodecOption {
	return func(c *Codec) {
		c.fetcher = f
	}
}

// WithIPFSGateway sets the HTTPS prefix substituted for ipfs:// URIs.
// Default is DefaultIPFSGateway.
func WithIPFSGateway(gateway string) CodecOption {
	return func(c *Codec) {
		if gateway != "" {
			c.gateway = gateway
		}
	}
}

// defaultHasher is sha256 over the raw bytes.
func defaultHasher(data []byte) [32]byte {
	return sha256.Sum256(data)
}
