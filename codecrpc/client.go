package codecrpc

import (
	"context"
	"encoding/json"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/branched-services/go-jetton/cell"
)

// Client calls a remote Metadata service.
type Client struct {
	cc     *grpc.ClientConn
	client MetadataClient

	// Timeout applies per RPC when non-zero.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return NewClient(cc), nil
}

// NewClient wraps an existing connection. Close closes it.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewMetadataClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Build asks the server for a content cell.
func (c *Client) Build(ctx context.Context, req BuildRequest) (*cell.Cell, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := c.client.Build(ctx, wrapperspb.String(string(body)))
	if err != nil {
		return nil, mapRPC(err)
	}
	return cell.FromBOC(reply.GetValue())
}

// Decode describes content without fetching off-chain documents.
func (c *Client) Decode(ctx context.Context, content *cell.Cell) (*Description, error) {
	return c.call(ctx, c.client.Decode, content)
}

// Read describes content with off-chain documents resolved by the server.
func (c *Client) Read(ctx context.Context, content *cell.Cell) (*Description, error) {
	return c.call(ctx, c.client.Read, content)
}

type describeRPC func(context.Context, *wrapperspb.BytesValue, ...grpc.CallOption) (*wrapperspb.StringValue, error)

func (c *Client) call(ctx context.Context, rpc describeRPC, content *cell.Cell) (*Description, error) {
	ctx, cancel := c.ctx(ctx)
	defer cancel()

	reply, err := rpc(ctx, wrapperspb.Bytes(content.ToBOC()))
	if err != nil {
		return nil, mapRPC(err)
	}
	var d Description
	if err := json.Unmarshal([]byte(reply.GetValue()), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, c.Timeout)
}
