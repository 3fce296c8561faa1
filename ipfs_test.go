package jetton

import (
	"errors"
	"strings"
	"testing"
)

func TestIsIPFS(t *testing.T) {
	tests := []struct {
		uri  string
		want bool
	}{
		{"ipfs://QmExample", true},
		{"https://ipfs.io/ipfs/QmExample", true},
		{"https://gateway.example/ipfs:QmExample", true},
		{"https://example.com/jetton.json", false},
		{"https://cloudflare-ipfs.com/x", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := IsIPFS(tt.uri); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGatewayURL(t *testing.T) {
	tests := []struct {
		uri     string
		gateway string
		want    string
	}{
		{"ipfs://QmExample", "", "https://ipfs.io/ipfs/QmExample"},
		{"ipfs://QmExample/meta.json", "https://gw.example/ipfs/", "https://gw.example/ipfs/QmExample/meta.json"},
		{"https://example.com/a.json", "https://gw.example/ipfs/", "https://example.com/a.json"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			if got := GatewayURL(tt.uri, tt.gateway); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMetadataCID(t *testing.T) {
	doc, err := MarshalMetadataJSON(Metadata{KeySymbol: "EXM", KeyName: "Example"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(doc) != `{"name":"Example","symbol":"EXM"}` {
		t.Errorf("Unexpected document %s", doc)
	}

	id, err := MetadataCID(doc)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	again, _ := MetadataCID(doc)
	if !id.Equals(again) {
		t.Error("Expected deterministic CID")
	}
	if !strings.HasPrefix(id.String(), "bafkrei") {
		t.Errorf("Expected CIDv1 raw sha2-256, got %s", id)
	}

	uri := IPFSURI(id)
	if !IsIPFS(uri) {
		t.Errorf("Expected %s to be recognized as IPFS", uri)
	}
	parsed, err := ParseIPFSURI(uri + "/metadata.json")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !parsed.Equals(id) {
		t.Errorf("Expected %s, got %s", id, parsed)
	}

	if _, err := ParseIPFSURI("https://example.com"); err == nil {
		t.Error("Expected error for non-IPFS URI")
	}
}

func TestMarshalMetadataJSONUnsupportedKey(t *testing.T) {
	_, err := MarshalMetadataJSON(Metadata{"website": "x"})
	if !errors.Is(err, ErrUnsupportedKey) {
		t.Errorf("Expected ErrUnsupportedKey, got %v", err)
	}
}
