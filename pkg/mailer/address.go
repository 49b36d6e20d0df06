package mailer

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Address is an email address accepted by an AddressPolicy.
// The zero value is the empty address; it is never produced by a successful parse.
type Address struct {
	addr string
}

// ParseAddress checks that raw has the shape local@domain: exactly one "@",
// both parts non-empty and a domain containing at least one ".".
// The accepted address is lower-cased. No DNS or MX lookups are made.
func ParseAddress(raw string) (Address, error) {
	local, domain, ok := strings.Cut(raw, "@")
	if !ok || local == "" || domain == "" || strings.Contains(domain, "@") {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
	}
	if !strings.Contains(domain, ".") {
		return Address{}, fmt.Errorf("%w: %q: domain has no dot", ErrInvalidAddress, raw)
	}

	// Casers carry state, so each call gets its own.
	return Address{addr: cases.Lower(language.Und).String(raw)}, nil
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(raw string) Address {
	a, err := ParseAddress(raw)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the address as accepted.
func (a Address) String() string {
	return a.addr
}

// IsZero reports whether a is the empty address.
func (a Address) IsZero() bool {
	return a.addr == ""
}

// Domain returns the part after the last "@", or "" when there is none.
func (a Address) Domain() string {
	i := strings.LastIndexByte(a.addr, '@')
	if i < 0 {
		return ""
	}
	return a.addr[i+1:]
}

// AddressPolicy decides how raw address strings become Address values.
type AddressPolicy uint8

const (
	// ValidateAddresses runs ParseAddress on every address.
	ValidateAddresses AddressPolicy = iota

	// TrustAddresses accepts the raw string unchanged, without lower-casing.
	// The transport may still reject it.
	TrustAddresses
)

// Accept turns raw into an Address according to the policy.
func (p AddressPolicy) Accept(raw string) (Address, error) {
	if p == TrustAddresses {
		return Address{addr: raw}, nil
	}
	return ParseAddress(raw)
}

// AcceptAll accepts every address in order and stops at the first failure.
// The returned slice preserves order and duplicates.
func (p AddressPolicy) AcceptAll(raws []string) ([]Address, error) {
	if len(raws) == 0 {
		return nil, nil
	}
	out := make([]Address, 0, len(raws))
	for _, raw := range raws {
		a, err := p.Accept(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (p AddressPolicy) String() string {
	if p == TrustAddresses {
		return "trust"
	}
	return "validate"
}

// Strings converts addresses back to plain strings, preserving order.
func Strings(addrs []Address) []string {
	if len(addrs) == 0 {
		return nil
	}
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.addr
	}
	return out
}
