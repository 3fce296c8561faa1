package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/cell"
	"github.com/branched-services/go-jetton/codecrpc"
	"github.com/branched-services/go-jetton/httpfetch"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Owner used for deployments (any basechain address works)
const testOwner = "0:83dfd552e63729b472fcbcc8c45ebcc6691702558b68ec7527e1ba403a0f31a8"

func skipUnlessEnabled(t *testing.T) {
	t.Helper()
	if os.Getenv("INTEGRATION_TEST") != "1" {
		t.Skip("Set INTEGRATION_TEST=1 to run integration tests")
	}
}

// startService serves the codec over TCP, or connects to JETTON_RPC_ADDR when
// an external service is running.
func startService(t *testing.T, gateway string) *codecrpc.Client {
	t.Helper()

	target := os.Getenv("JETTON_RPC_ADDR")
	if target == "" {
		lis, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			t.Fatalf("Failed to listen: %v", err)
		}
		codec := jetton.NewCodec(
			jetton.WithIPFSGateway(gateway),
			jetton.WithFetcher(httpfetch.New()),
		)
		srv := codecrpc.NewGRPCServer(codec)
		go srv.Serve(lis)
		t.Cleanup(srv.Stop)
		target = lis.Addr().String()
	}

	client, err := codecrpc.Dial(target, codecrpc.DialOptions{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", target, err)
	}
	client.Timeout = 10 * time.Second
	t.Cleanup(func() { client.Close() })
	t.Logf("Connected to codec service at %s", target)
	return client
}

func TestCodecServiceRoundTrip(t *testing.T) {
	skipUnlessEnabled(t)
	ctx := context.Background()

	// Host the metadata document behind a local IPFS gateway
	doc := []byte(`{"name":"Integration Jetton","symbol":"INT","decimals":"6"}`)
	id, err := jetton.MetadataCID(doc)
	if err != nil {
		t.Fatalf("Failed to compute CID: %v", err)
	}
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimPrefix(r.URL.Path, "/ipfs/") != id.String() {
			http.NotFound(w, r)
			return
		}
		w.Write(doc)
	}))
	defer gateway.Close()

	client := startService(t, gateway.URL+"/ipfs/")

	// Step 1: on-chain content survives the service in both directions
	onchain, err := client.Build(ctx, codecrpc.BuildRequest{Fields: map[string]string{
		"name":   "Integration Jetton",
		"symbol": "INT",
		"image":  "https://example.org/int.png",
	}})
	if err != nil {
		t.Fatalf("Failed to build on-chain content: %v", err)
	}
	local, err := jetton.BuildOnchainMetadata(map[string]string{
		"name":   "Integration Jetton",
		"symbol": "INT",
		"image":  "https://example.org/int.png",
	})
	if err != nil {
		t.Fatalf("Failed to build local content: %v", err)
	}
	if !onchain.Equal(local) {
		t.Fatalf("Expected remote content %s, got %s", local.Hash().Hex(), onchain.Hash().Hex())
	}

	desc, err := client.Decode(ctx, onchain)
	if err != nil {
		t.Fatalf("Failed to decode on-chain content: %v", err)
	}
	if desc.Layout != codecrpc.LayoutOnchain || desc.Metadata["symbol"] != "INT" {
		t.Fatalf("Unexpected on-chain description: %+v", desc)
	}

	// Step 2: off-chain content resolves through the gateway
	offchain, err := client.Build(ctx, codecrpc.BuildRequest{OffchainURI: jetton.IPFSURI(id)})
	if err != nil {
		t.Fatalf("Failed to build off-chain content: %v", err)
	}
	desc, err = client.Read(ctx, offchain)
	if err != nil {
		t.Fatalf("Failed to read off-chain content: %v", err)
	}
	if desc.Persistence != string(jetton.PersistenceIPFS) {
		t.Fatalf("Expected persistence %s, got %s", jetton.PersistenceIPFS, desc.Persistence)
	}
	if desc.Metadata["name"] != "Integration Jetton" {
		t.Fatalf("Expected fetched name, got %q", desc.Metadata["name"])
	}
	t.Logf("Resolved %s: %v", desc.URI, desc.Metadata)
}

// ContractArtifact is a compiled contract with its code BOC in hex.
type ContractArtifact struct {
	Hex string `json:"hex"`
}

func loadArtifact(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name+".compiled.json"))
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w (compile the contracts first)", err)
	}
	var artifact ContractArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	return hexutil.Decode("0x" + strings.TrimPrefix(artifact.Hex, "0x"))
}

func TestDeploymentPayload(t *testing.T) {
	skipUnlessEnabled(t)

	dir := os.Getenv("JETTON_CONTRACTS_DIR")
	if dir == "" {
		dir = "build"
	}
	minter, err := loadArtifact(dir, "jetton-minter")
	if err != nil {
		t.Skipf("Contracts unavailable: %v", err)
	}
	wallet, err := loadArtifact(dir, "jetton-wallet")
	if err != nil {
		t.Skipf("Contracts unavailable: %v", err)
	}
	contracts, err := jetton.LoadContracts(minter, wallet)
	if err != nil {
		t.Fatalf("Failed to load contracts: %v", err)
	}

	owner := cell.MustParseAddress(testOwner)
	d, err := jetton.NewCodec().NewDeployment(jetton.DeployParams{
		Owner:           owner,
		OnchainMetadata: map[string]string{"name": "Integration Jetton", "symbol": "INT"},
		AmountToMint:    big.NewInt(1_000_000_000),
	}, contracts, 0)
	if err != nil {
		t.Fatalf("Failed to prepare deployment: %v", err)
	}
	t.Logf("Minter address: %s (%s)", d.Address, d.Address.Friendly(true))

	stateInit, err := d.StateInit.Cell()
	if err != nil {
		t.Fatalf("Failed to encode state init: %v", err)
	}
	if !d.StateInit.Code.Equal(contracts.Minter) {
		t.Fatal("Expected state init to carry the minter code")
	}

	// The address is the hash of the state init on the basechain
	if d.Address.Workchain != 0 || [32]byte(stateInit.Hash()) != d.Address.Data {
		t.Fatalf("Expected address derived from state init hash %s, got %s", stateInit.Hash().Hex(), d.Address)
	}

	body, err := d.Body.Cell()
	if err != nil {
		t.Fatalf("Failed to encode mint: %v", err)
	}
	decoded, err := jetton.DecodeMessage(body)
	if err != nil {
		t.Fatalf("Failed to decode mint: %v", err)
	}
	mint := decoded.(*jetton.Mint)
	if mint.Transfer.Amount.Cmp(big.NewInt(1_000_000_000)) != 0 {
		t.Fatalf("Expected minted amount 1000000000, got %s", mint.Transfer.Amount)
	}
}
