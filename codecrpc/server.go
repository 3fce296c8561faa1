package codecrpc

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	jetton "github.com/branched-services/go-jetton"
	"github.com/branched-services/go-jetton/cell"
)

// Server exposes a jetton.Codec over the Metadata gRPC service.
type Server struct {
	UnimplementedMetadataServer
	Codec *jetton.Codec
}

// NewGRPCServer creates a gRPC server with the Metadata service registered
// and request logging installed.
func NewGRPCServer(codec *jetton.Codec, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(LoggingInterceptor))
	srv := grpc.NewServer(opts...)
	RegisterMetadataServer(srv, &Server{Codec: codec})
	return srv
}

// LoggingInterceptor logs every unary call.
func LoggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Debug("Served codec request", "method", info.FullMethod, "code", status.Code(err), "elapsed", time.Since(start))
	return resp, err
}

func (s *Server) Build(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Codec == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing codec")
	}
	var req BuildRequest
	if err := json.Unmarshal([]byte(in.GetValue()), &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid build request: "+err.Error())
	}
	content, err := s.Codec.BuildContent(req.Fields, req.OffchainURI)
	if err != nil {
		return nil, mapErr("Build", err)
	}
	return wrapperspb.Bytes(content.ToBOC()), nil
}

func (s *Server) Decode(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return s.describe(ctx, "Decode", in, false)
}

func (s *Server) Read(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.StringValue, error) {
	return s.describe(ctx, "Read", in, true)
}

func (s *Server) describe(ctx context.Context, method string, in *wrapperspb.BytesValue, resolve bool) (*wrapperspb.StringValue, error) {
	if s == nil || s.Codec == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing codec")
	}
	content, err := cell.FromBOC(in.GetValue())
	if err != nil {
		return nil, mapErr(method, err)
	}
	d, err := describe(ctx, s.Codec, content, resolve)
	if err != nil {
		return nil, mapErr(method, err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return wrapperspb.String(string(out)), nil
}

func mapErr(method string, err error) error {
	if err == nil {
		return nil
	}
	log.Debug("Codec request failed", "method", method, "err", err)
	switch {
	case errors.Is(err, jetton.ErrExternalFetch):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, jetton.ErrUnsupportedKey),
		errors.Is(err, jetton.ErrInvalidValue),
		errors.Is(err, jetton.ErrMissingMetadataSource),
		errors.Is(err, jetton.ErrUnexpectedContentPrefix),
		errors.Is(err, cell.ErrCapacityExceeded),
		errors.Is(err, cell.ErrMalformedInput),
		errors.Is(err, cell.ErrUnsupportedFormat):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
