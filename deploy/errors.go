package deploy

import "errors"

var (
	// ErrTimeout indicates the poller ran out of attempts.
	ErrTimeout = errors.New("deploy: timeout")

	// ErrInsufficientBalance indicates the deployer cannot cover the deployment value.
	ErrInsufficientBalance = errors.New("deploy: not enough balance in deployer wallet")
)
