package codecrpc

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	jetton "github.com/branched-services/go-jetton"
)

// ErrInvalidArgument indicates the server rejected the request content.
var ErrInvalidArgument = errors.New("codecrpc: invalid argument")

func mapRPC(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.Unavailable:
		// Server uses Unavailable when the off-chain document could not be fetched.
		return fmt.Errorf("%w: %s", jetton.ErrExternalFetch, st.Message())
	default:
		return err
	}
}
