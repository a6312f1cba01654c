// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package amount

import (
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/holiman/uint256"
)

// BytesLength is the length of the byte representation of an amount.
const BytesLength = 32

// Amount is a 256-bit unsigned integer used for account balances.
type Amount struct {
	internal uint256.Int
}

// New creates a new Amount from up to 4 uint64 arguments. The
// arguments are given in the Big Endian order. No argument results in a value of zero.
// The constructor panics if more than 4 arguments are given.
func New(args ...uint64) Amount {
	if len(args) > 4 {
		panic("too many arguments")
	}
	result := Amount{}
	offset := 4 - len(args)
	for i := 0; i < len(args); i++ {
		result.internal[3-i-offset] = args[i]
	}
	return result
}

// NewFromBytes creates a new Amount instance from up to 32 big-endian bytes.
// Shorter inputs are zero-extended on the left.
func NewFromBytes(bytes ...byte) (Amount, error) {
	if len(bytes) > BytesLength {
		return Amount{}, fmt.Errorf("amount of %d bytes exceeds %d bytes", len(bytes), BytesLength)
	}
	result := Amount{}
	result.internal.SetBytes(bytes)
	return result, nil
}

// NewFromBigInt creates a new Amount instance from a big.Int.
func NewFromBigInt(b *big.Int) (Amount, error) {
	if b == nil {
		return New(), nil
	}
	if b.Sign() < 0 {
		return Amount{}, fmt.Errorf("cannot construct Amount from negative big.Int")
	}
	result := uint256.Int{}
	overflow := result.SetFromBig(b)
	if overflow {
		return Amount{}, fmt.Errorf("big.Int has more than 256 bits")
	}
	return Amount{internal: result}, nil
}

// Parse reads an amount given in decimal or as 0x-prefixed hex, the two forms
// found in genesis and state dump files. An empty string is zero.
func Parse(s string) (Amount, error) {
	value, err := common.ParseBig(s)
	if err != nil {
		return Amount{}, err
	}
	return NewFromBigInt(value)
}

// Uint64 returns the lowest 64 bits of the amount.
func (a Amount) Uint64() uint64 {
	return a.internal.Uint64()
}

// ToBig returns a bigInt version of the amount.
func (a Amount) ToBig() *big.Int {
	return a.internal.ToBig()
}

// String returns the decimal representation of the amount.
func (a Amount) String() string {
	return a.internal.ToBig().String()
}

// Bytes returns the minimal big-endian representation, empty for zero.
func (a Amount) Bytes() []byte {
	return a.internal.Bytes()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(text []byte) error {
	res, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = res
	return nil
}

// UnmarshalJSON accepts amounts given as JSON numbers or as strings in any
// of the forms supported by Parse.
func (a *Amount) UnmarshalJSON(data []byte) error {
	text := string(data)
	if text == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return a.UnmarshalText([]byte(text))
}

// MarshalBinary produces the minimal big-endian representation of the amount.
func (a Amount) MarshalBinary() ([]byte, error) {
	return a.Bytes(), nil
}

func (a *Amount) UnmarshalBinary(data []byte) error {
	res, err := NewFromBytes(data...)
	if err != nil {
		return err
	}
	*a = res
	return nil
}
