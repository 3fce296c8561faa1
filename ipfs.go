package jetton

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// IPFSScheme is the URI scheme of IPFS-hosted documents.
const IPFSScheme = "ipfs://"

var ipfsPattern = regexp.MustCompile(`(^|/)ipfs[.:]`)

// IsIPFS reports whether uri addresses IPFS content, either through the
// ipfs: scheme or an ipfs.* gateway host.
func IsIPFS(uri string) bool {
	return ipfsPattern.MatchString(uri)
}

// GatewayURL rewrites an ipfs:// URI to an HTTPS gateway URL. Other URIs
// are returned unchanged.
func GatewayURL(uri, gateway string) string {
	if !strings.HasPrefix(uri, IPFSScheme) {
		return uri
	}
	if gateway == "" {
		gateway = DefaultIPFSGateway
	}
	return gateway + strings.TrimPrefix(uri, IPFSScheme)
}

// MetadataCID returns the CIDv1 (raw codec, sha2-256) of a metadata document.
func MetadataCID(doc []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(doc, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// IPFSURI formats id as an ipfs:// URI.
func IPFSURI(id cid.Cid) string {
	return IPFSScheme + id.String()
}

// ParseIPFSURI extracts the CID from an ipfs:// URI. A trailing path is ignored.
func ParseIPFSURI(uri string) (cid.Cid, error) {
	rest, ok := strings.CutPrefix(uri, IPFSScheme)
	if !ok {
		return cid.Undef, fmt.Errorf("jetton: %q is not an %s URI", uri, IPFSScheme)
	}
	id, _, _ := strings.Cut(rest, "/")
	return cid.Decode(id)
}

// MarshalMetadataJSON renders m as the off-chain JSON document with keys in
// lexical order.
func MarshalMetadataJSON(m Metadata) ([]byte, error) {
	for k := range m {
		if !k.IsValid() {
			return nil, &KeyError{Key: string(k), Err: ErrUnsupportedKey}
		}
	}
	return json.Marshal(m.Fields())
}
