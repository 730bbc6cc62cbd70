package hci

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address is a Bluetooth device address in big-endian display order:
// Address[0] is the most significant byte of the printed form.
type Address [6]byte

// ParseAddress parses a colon-separated address such as "12:34:56:78:9A:BC".
// Parsing is case-insensitive.
func ParseAddress(s string) (Address, error) {
	var a Address
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return a, fmt.Errorf("invalid address %q: want 6 colon-separated octets", s)
	}
	for i, p := range parts {
		b, err := hex.DecodeString(p)
		if err != nil || len(b) != 1 {
			return Address{}, fmt.Errorf("invalid address %q: bad octet %q", s, p)
		}
		a[i] = b[0]
	}
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on error.
// Intended for constants in tests and examples.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String formats the address as "12:34:56:78:9A:BC".
func (a Address) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", a[0], a[1], a[2], a[3], a[4], a[5])
}

// IsEmpty reports whether the address is all zero.
func (a Address) IsEmpty() bool {
	return a == Address{}
}
