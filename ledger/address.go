package ledger

import (
	"bytes"
	"encoding/hex"
)

// AddressSize is the fixed byte width of an Address. Using a fixed
// array rather than a slice keeps Address comparable and trivially
// copyable, so the "K and V admit deep copy" requirement is satisfied
// by plain assignment.
const AddressSize = 22

// Address identifies an account. It is opaque to the staging substrate
// — only LessAddress and equality are ever asked of it.
type Address [AddressSize]byte

// AddressFromBytes left-pads or truncates b to AddressSize.
func AddressFromBytes(b []byte) Address {
	var a Address
	if len(b) >= AddressSize {
		copy(a[:], b[len(b)-AddressSize:])
	} else {
		copy(a[AddressSize-len(b):], b)
	}
	return a
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// LessAddress is the total order MapTxn[Address, Balance] is built
// with — lexicographic on the raw bytes.
func LessAddress(a, b Address) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
