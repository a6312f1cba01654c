// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package store

import (
	"encoding/binary"
)

// TableSpace divide key-value storage into spaces by adding a prefix to the key.
type TableSpace byte

const (
	// HeaderKey is a tablespace for block headers, keyed by block number
	HeaderKey TableSpace = 'h'
	// CanonicalHashKey is a tablespace for the hashes of canonical blocks, keyed by block number
	CanonicalHashKey TableSpace = 'n'
	// BodyKey is a tablespace for block bodies, keyed by block number
	BodyKey TableSpace = 'b'
	// ReceiptKey is a tablespace for receipts, keyed by transaction hash
	ReceiptKey TableSpace = 'r'
	// AccountKey is a tablespace for account states, keyed by address
	AccountKey TableSpace = 'a'
	// StorageKey is a tablespace for storage slots, keyed by address and slot key
	StorageKey TableSpace = 's'
	// CodeKey is a tablespace for contract codes, keyed by code hash
	CodeKey TableSpace = 'c'
	// ConfigKey is a tablespace for chain configuration entries, keyed by name
	ConfigKey TableSpace = 'g'
)

// ToDBKey converts the input key parts to their respective table space key.
func ToDBKey(t TableSpace, parts ...[]byte) []byte {
	size := 1
	for _, part := range parts {
		size += len(part)
	}
	res := make([]byte, 1, size)
	res[0] = byte(t)
	for _, part := range parts {
		res = append(res, part...)
	}
	return res
}

func numberKey(t TableSpace, number uint64) []byte {
	return ToDBKey(t, binary.BigEndian.AppendUint64(nil, number))
}
