package codecrpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/wrapperspb"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/cell"
)

func startServer(t *testing.T, codec *jetton.Codec) *Client {
	t.Helper()
	lis := bufconn.Listen(1024 * 1024)
	srv := NewGRPCServer(codec)
	go func() {
		_ = srv.Serve(lis)
	}()
	t.Cleanup(srv.Stop)

	dialer := func(ctx context.Context, s string) (net.Conn, error) { return lis.Dial() }
	cc, err := grpc.DialContext(
		context.Background(),
		"bufnet",
		grpc.WithContextDialer(dialer),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	client := NewClient(cc)
	client.Timeout = 2 * time.Second
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestBuildDecodeRoundTrip(t *testing.T) {
	client := startServer(t, jetton.NewCodec())
	ctx := context.Background()

	fields := map[string]string{"name": "Example", "symbol": "EXM", "decimals": "9"}
	content, err := client.Build(ctx, BuildRequest{Fields: fields})
	require.NoError(t, err)

	local, err := jetton.BuildOnchainMetadata(fields)
	require.NoError(t, err)
	assert.Equal(t, local.Hash(), content.Hash())

	d, err := client.Decode(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, LayoutOnchain, d.Layout)
	assert.Equal(t, string(jetton.PersistenceOnchain), d.Persistence)
	assert.Equal(t, fields, d.Metadata)
	assert.Equal(t, content.Hash().Hex(), d.Hash)
	assert.False(t, d.FaultyData)
}

func TestDecodeOffchain(t *testing.T) {
	client := startServer(t, jetton.NewCodec())

	content, err := client.Build(context.Background(), BuildRequest{OffchainURI: "ipfs://QmExample"})
	require.NoError(t, err)

	d, err := client.Decode(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, LayoutOffchain, d.Layout)
	assert.Equal(t, "ipfs://QmExample", d.URI)
	assert.Empty(t, d.Metadata)
}

func TestRead(t *testing.T) {
	fetcher := jetton.FetcherFunc(func(_ context.Context, url string) (map[string]any, error) {
		return map[string]any{"name": "Remote", "url": url}, nil
	})
	client := startServer(t, jetton.NewCodec(jetton.WithFetcher(fetcher)))

	content, err := jetton.BuildOffchainMetadata("ipfs://QmExample")
	require.NoError(t, err)

	d, err := client.Read(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, string(jetton.PersistenceIPFS), d.Persistence)
	assert.Equal(t, map[string]string{"name": "Remote"}, d.Metadata)
}

func TestErrors(t *testing.T) {
	client := startServer(t, jetton.NewCodec())
	ctx := context.Background()

	t.Run("unsupported key", func(t *testing.T) {
		_, err := client.Build(ctx, BuildRequest{Fields: map[string]string{"foo": "bar"}})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.Contains(t, err.Error(), "foo")
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := client.Build(ctx, BuildRequest{})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("bad prefix", func(t *testing.T) {
		b := cell.BeginCell()
		require.NoError(t, b.StoreUInt(0x07, 8))
		_, err := client.Decode(ctx, b.EndCell())
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("fetch without fetcher", func(t *testing.T) {
		content, err := jetton.BuildOffchainMetadata("https://example.com/a.json")
		require.NoError(t, err)
		_, err = client.Read(ctx, content)
		require.ErrorIs(t, err, jetton.ErrExternalFetch)
	})

	t.Run("garbage boc", func(t *testing.T) {
		_, err := client.client.Decode(ctx, wrapperspb.Bytes([]byte{0x01}))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("malformed request", func(t *testing.T) {
		_, err := client.client.Build(ctx, wrapperspb.String("{"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestServerWithoutCodec(t *testing.T) {
	s := &Server{}
	_, err := s.Build(context.Background(), wrapperspb.String("{}"))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}
