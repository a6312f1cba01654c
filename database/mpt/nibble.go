// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package mpt

// Nibble is one hex digit of a key. Trie paths are sequences of nibbles,
// taken from the key bytes high half first.
type Nibble byte

const hexDigits = "0123456789abcdef"

// Rune returns the hex digit of the nibble, '?' if it is out of range.
func (n Nibble) Rune() rune {
	if int(n) >= len(hexDigits) {
		return '?'
	}
	return rune(hexDigits[n])
}

func (n Nibble) String() string {
	return string(n.Rune())
}

// ToNibblePath splits every byte of the key into two nibbles.
func ToNibblePath(key []byte) []Nibble {
	res := make([]Nibble, 0, len(key)*2)
	for _, b := range key {
		res = append(res, Nibble(b>>4), Nibble(b&0xf))
	}
	return res
}

// GetCommonPrefixLength returns the number of leading nibbles shared by both paths.
func GetCommonPrefixLength(a, b []Nibble) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
