package jetton

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrUnsupportedKey indicates a metadata field name outside the recognized set.
	ErrUnsupportedKey = errors.New("jetton: unsupported metadata key")

	// ErrInvalidValue indicates a metadata value that cannot be stored with
	// the fixed encoding of its key.
	ErrInvalidValue = errors.New("jetton: invalid metadata value")

	// ErrMissingMetadataSource indicates neither on-chain fields nor an off-chain URI were given.
	ErrMissingMetadataSource = errors.New("jetton: must specify on-chain data or off-chain URI")

	// ErrUnexpectedContentPrefix indicates a content cell with a discriminator other than 0 or 1.
	ErrUnexpectedContentPrefix = errors.New("jetton: unexpected content prefix")

	// ErrExternalFetch indicates the off-chain metadata document could not be retrieved or parsed.
	ErrExternalFetch = errors.New("jetton: external metadata fetch failed")

	// ErrNoFetcher indicates off-chain metadata was needed but no Fetcher is configured.
	ErrNoFetcher = errors.New("jetton: no metadata fetcher configured")

	// ErrInvalidNumber indicates a malformed decimal amount string.
	ErrInvalidNumber = errors.New("jetton: invalid number")

	// ErrUnknownOp indicates a message body with an unrecognized operation tag.
	ErrUnknownOp = errors.New("jetton: unknown operation")
)

// KeyError indicates an issue with a single metadata field.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("jetton: metadata key %q: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}

// FetchError wraps failures of the Fetcher collaborator.
type FetchError struct {
	URI string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("jetton: fetch metadata from %s: %v", e.URI, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports FetchError as ErrExternalFetch regardless of the cause.
func (e *FetchError) Is(target error) bool {
	return target == ErrExternalFetch
}

// MessageError indicates a failure while encoding or decoding a message field.
type MessageError struct {
	Op    Op
	Field string
	Err   error
}

func (e *MessageError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("jetton: %s message, field %s: %v", e.Op, e.Field, e.Err)
	}
	return fmt.Sprintf("jetton: %s message: %v", e.Op, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}
