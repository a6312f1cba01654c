// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/hex"
	"fmt"
)

const (
	HashSize    = 32
	AddressSize = 20
	KeySize     = 32
	ValueSize   = 32
	BloomSize   = 256
)

// Hash is a 32-byte digest, typically a Keccak-256 hash.
type Hash [HashSize]byte

// Address is the 20-byte identifier of an account.
type Address [AddressSize]byte

// Key addresses a storage slot of an account.
type Key [KeySize]byte

// Value is the content of a storage slot.
type Value [ValueSize]byte

// Bloom is the 2048-bit log filter of a block header or receipt.
type Bloom [BloomSize]byte

func (h Hash) String() string    { return "0x" + hex.EncodeToString(h[:]) }
func (a Address) String() string { return "0x" + hex.EncodeToString(a[:]) }
func (k Key) String() string     { return "0x" + hex.EncodeToString(k[:]) }
func (v Value) String() string   { return "0x" + hex.EncodeToString(v[:]) }

func (h Hash) MarshalText() ([]byte, error)    { return []byte(h.String()), nil }
func (a Address) MarshalText() ([]byte, error) { return []byte(a.String()), nil }
func (k Key) MarshalText() ([]byte, error)     { return []byte(k.String()), nil }
func (v Value) MarshalText() ([]byte, error)   { return []byte(v.String()), nil }

func (h *Hash) UnmarshalText(text []byte) error {
	return decodeFixedHex(h[:], string(text), false)
}

func (a *Address) UnmarshalText(text []byte) error {
	return decodeFixedHex(a[:], string(text), false)
}

// UnmarshalText accepts storage keys shorter than 32 bytes, padding them on
// the left, since exporters strip leading zeros.
func (k *Key) UnmarshalText(text []byte) error {
	return decodeFixedHex(k[:], string(text), true)
}

// UnmarshalText accepts values shorter than 32 bytes, see Key.UnmarshalText.
func (v *Value) UnmarshalText(text []byte) error {
	return decodeFixedHex(v[:], string(text), true)
}

// HashFromBytes copies the given slice into a hash. The slice must be exactly
// HashSize bytes long.
func HashFromBytes(data []byte) (Hash, error) {
	var res Hash
	if len(data) != HashSize {
		return res, fmt.Errorf("invalid hash length, wanted %d, got %d", HashSize, len(data))
	}
	copy(res[:], data)
	return res, nil
}

// AddressFromBytes copies the given slice into an address. The slice must be
// exactly AddressSize bytes long.
func AddressFromBytes(data []byte) (Address, error) {
	var res Address
	if len(data) != AddressSize {
		return res, fmt.Errorf("invalid address length, wanted %d, got %d", AddressSize, len(data))
	}
	copy(res[:], data)
	return res, nil
}

// HexToHash parses a 0x-prefixed or plain hex string into a hash.
func HexToHash(s string) (Hash, error) {
	var res Hash
	return res, decodeFixedHex(res[:], s, false)
}

// HexToAddress parses a 0x-prefixed or plain hex string into an address.
func HexToAddress(s string) (Address, error) {
	var res Address
	return res, decodeFixedHex(res[:], s, false)
}

func decodeFixedHex(dst []byte, s string, padLeft bool) error {
	data, err := DecodeHex(s)
	if err != nil {
		return err
	}
	if len(data) > len(dst) || (!padLeft && len(data) != len(dst)) {
		return fmt.Errorf("invalid length of hex value %q, wanted %d bytes, got %d", s, len(dst), len(data))
	}
	for i := range dst {
		dst[i] = 0
	}
	copy(dst[len(dst)-len(data):], data)
	return nil
}
