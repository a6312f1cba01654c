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
	"sync"

	"golang.org/x/crypto/sha3"
)

// EmptyCodeHash is the Keccak-256 hash of the empty input. It is the code hash
// recorded in the state trie for accounts without code.
var EmptyCodeHash = Keccak256(nil)

// EmptyRootHash is the root of an empty Merkle-Patricia trie, the hash of the
// RLP encoding of the empty string.
var EmptyRootHash = Keccak256([]byte{0x80})

// EmptyOmmersHash is the hash of the RLP encoding of an empty list, the
// ommers hash of blocks without uncles.
var EmptyOmmersHash = Keccak256([]byte{0xc0})

func Keccak256(data []byte) Hash {
	hasher := keccakHasherPool.Get().(keccakHasher)
	hasher.Reset()
	hasher.Write(data)
	var res Hash
	hasher.Read(res[:])
	keccakHasherPool.Put(hasher)
	return res
}

var keccakHasherPool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}

type keccakHasher interface {
	Reset()
	Write(in []byte) (int, error)
	Read(out []byte) (int, error)
}
