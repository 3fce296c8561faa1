package cell

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/xssnick/tonutils-go/address"
)

// AddressBits is the serialized width of a standard internal address:
// 2-bit tag, anycast bit, 8-bit workchain and 256-bit account id.
const AddressBits = 2 + 1 + 8 + 256

// Address is a standard internal address (addr_std without anycast).
type Address struct {
	Workchain int8
	Data      [32]byte
}

// ZeroAddress returns 0:000...000, used to renounce minter ownership.
func ZeroAddress() *Address {
	return &Address{}
}

// NewAddress creates an address from a workchain and 32-byte account id.
func NewAddress(workchain int8, data [32]byte) *Address {
	return &Address{Workchain: workchain, Data: data}
}

// ParseAddress accepts the raw form "wc:hex" and the base64 user-friendly
// forms (bounceable or not, url-safe or not).
func ParseAddress(s string) (*Address, error) {
	s = strings.TrimSpace(s)
	if wc, hexPart, ok := strings.Cut(s, ":"); ok {
		n, err := strconv.ParseInt(wc, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("cell: invalid workchain %q: %w", wc, err)
		}
		raw, err := hex.DecodeString(hexPart)
		if err != nil || len(raw) != 32 {
			return nil, fmt.Errorf("cell: invalid account id %q", hexPart)
		}
		a := &Address{Workchain: int8(n)}
		copy(a.Data[:], raw)
		return a, nil
	}
	parsed, err := address.ParseAddr(s)
	if err != nil {
		return nil, fmt.Errorf("cell: invalid address %q: %w", s, err)
	}
	a := &Address{Workchain: int8(parsed.Workchain())}
	copy(a.Data[:], parsed.Data())
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(s string) *Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the raw form "wc:hex".
func (a *Address) String() string {
	return fmt.Sprintf("%d:%s", a.Workchain, hex.EncodeToString(a.Data[:]))
}

// Friendly returns the base64url user-friendly form.
func (a *Address) Friendly(bounceable bool) string {
	data := make([]byte, 32)
	copy(data, a.Data[:])
	fa := address.NewAddress(0, byte(a.Workchain), data)
	fa.SetBounce(bounceable)
	return fa.String()
}

// IsZero reports whether the address is 0:000...000.
func (a *Address) IsZero() bool {
	return a.Workchain == 0 && a.Data == [32]byte{}
}

// Equal reports whether both addresses are identical. Two nil addresses are equal.
func (a *Address) Equal(o *Address) bool {
	if a == nil || o == nil {
		return a == o
	}
	return *a == *o
}
