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

import (
	"fmt"

	"github.com/Fantom-foundation/legacy-import/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrSerialization is reported if the value of an entry could not be encoded
// for the insertion into a trie.
const ErrSerialization = common.ConstError("failed to serialize trie value")

// ValueEncoder is implemented by values stored in a trie. The encoding is the
// byte string stored in the leaf node. An empty encoding marks an absent key.
type ValueEncoder interface {
	EncodeValue() ([]byte, error)
}

// Entry is a single key/value pair to be committed to by a trie root.
type Entry struct {
	Key   []byte
	Value ValueEncoder
}

// Bytes is a ValueEncoder for values that are already encoded.
type Bytes []byte

func (b Bytes) EncodeValue() ([]byte, error) {
	return b, nil
}

// Root computes the root hash of the trie containing the given entries,
// using their keys as the paths in the trie. The result does not depend on
// the order of the entries. If a key is present multiple times, the last
// entry for the key takes effect. If the value of any entry can not be
// encoded, no root is produced.
func Root(entries []Entry) (common.Hash, error) {
	return root(entries, func(key []byte) []byte { return key })
}

// SecureRoot is like Root, but uses the Keccak-256 hashes of the keys as the
// paths in the trie. This is the layout of Ethereum's State and Storage
// Tries.
func SecureRoot(entries []Entry) (common.Hash, error) {
	return root(entries, func(key []byte) []byte {
		hash := common.Keccak256(key)
		return hash[:]
	})
}

func root(entries []Entry, toPath func([]byte) []byte) (common.Hash, error) {
	values := make(map[string][]byte, len(entries))
	for i, entry := range entries {
		if entry.Value == nil {
			return common.Hash{}, fmt.Errorf("%w: entry %d for key %x has no value", ErrSerialization, i, entry.Key)
		}
		value, err := entry.Value.EncodeValue()
		if err != nil {
			return common.Hash{}, fmt.Errorf("%w: entry %d for key %x: %w", ErrSerialization, i, entry.Key, err)
		}
		values[string(toPath(entry.Key))] = value
	}

	keys := maps.Keys(values)
	slices.Sort(keys)

	var trie Node = EmptyNode{}
	for _, key := range keys {
		value := values[key]
		if len(value) == 0 {
			continue
		}
		trie = trie.Set(ToNibblePath([]byte(key)), value)
	}
	return hashNode(trie)
}
