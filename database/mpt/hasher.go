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
	"reflect"
	"sync"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/rlp"
)

// EmptyRootHash is the hash of an empty trie, the Keccak-256 hash of the RLP
// encoding of an empty string.
var EmptyRootHash = common.EmptyRootHash

// hashNode computes the hash of a trie rooted by the given node following
// Ethereum's State and Storage Trie specification.
// See Appendix D of https://ethereum.github.io/yellowpaper/paper.pdf
//
// Unlike inner nodes, the root is always hashed, even if its encoding is
// shorter than 32 bytes.
func hashNode(node Node) (common.Hash, error) {
	if _, isEmpty := node.(EmptyNode); isEmpty {
		return EmptyRootHash, nil
	}
	encoded, err := encode(node, make([]byte, 0, 1024))
	if err != nil {
		return common.Hash{}, err
	}
	return common.Keccak256(encoded), nil
}

// encode computes the RLP encoding of the given node. The result is stored
// in the input slice, and the slice is returned as well.
func encode(node Node, target []byte) ([]byte, error) {
	switch trg := node.(type) {
	case EmptyNode:
		return encodeEmpty(), nil
	case *BranchNode:
		return encodeBranch(trg, target)
	case *ExtensionNode:
		return encodeExtension(trg, target)
	case *LeafNode:
		return encodeLeaf(trg, target), nil
	default:
		return nil, fmt.Errorf("unsupported node type: %v", reflect.TypeOf(node))
	}
}

var emptyStringRlpEncoded = rlp.Encode(rlp.String{})

func encodeEmpty() []byte {
	return emptyStringRlpEncoded
}

// encodeReference produces the item referencing the given child node in the
// encoding of its parent. Nodes with an encoding of less than 32 bytes are
// embedded, all others are referenced by their hash.
func encodeReference(node Node) (rlp.Item, error) {
	if node == nil {
		return rlp.String{}, nil
	}
	if _, isEmpty := node.(EmptyNode); isEmpty {
		return rlp.String{}, nil
	}
	encoded, err := encode(node, make([]byte, 0, 128))
	if err != nil {
		return nil, err
	}
	if len(encoded) < 32 {
		return rlp.Encoded{Data: encoded}, nil
	}
	hash := common.Keccak256(encoded)
	return rlp.Hash{Hash: &hash}, nil
}

// This pools stores not only the slice, but also its pointer, to reduce calls to runtime.convTslice().
var branchRlpStreamPool = sync.Pool{New: func() any {
	s := make([]rlp.Item, 16+1)
	return &s
},
}

func encodeBranch(node *BranchNode, target []byte) ([]byte, error) {
	ptr := branchRlpStreamPool.Get().(*[]rlp.Item)
	defer branchRlpStreamPool.Put(ptr)
	items := *ptr

	for i, child := range node.children {
		item, err := encodeReference(child)
		if err != nil {
			return nil, err
		}
		items[i] = item
	}

	// The 17th entry is filled if a key terminates at this node. In secure
	// tries all keys have the same length, so this is only used by plain
	// tries over keys of different lengths.
	items[len(node.children)] = rlp.String{Str: node.value}

	return rlp.EncodeInto(target[0:0], rlp.List{Items: items}), nil
}

func encodeExtension(node *ExtensionNode, target []byte) ([]byte, error) {
	next, err := encodeReference(node.next)
	if err != nil {
		return nil, err
	}
	path := encodePartialPath(node.path, false, make([]byte, 0, getEncodedPartialPathSize(len(node.path))))
	return rlp.EncodeInto(target[0:0], rlp.List{Items: []rlp.Item{
		rlp.String{Str: path},
		next,
	}}), nil
}

func encodeLeaf(node *LeafNode, target []byte) []byte {
	path := encodePartialPath(node.path, true, make([]byte, 0, getEncodedPartialPathSize(len(node.path))))
	return rlp.EncodeInto(target[0:0], rlp.List{Items: []rlp.Item{
		rlp.String{Str: path},
		rlp.String{Str: node.value},
	}})
}

// encodePartialPath produces the compact encoding of a path fragment.
func encodePartialPath(path []Nibble, targetsValue bool, target []byte) []byte {
	// Path encoding derived from Ethereum.
	// see https://github.com/ethereum/go-ethereum/blob/v1.12.0/trie/encoding.go#L37
	numNibbles := len(path)
	compact := target[0:getEncodedPartialPathSize(numNibbles)]

	// The high nibble of the first byte encodes the 'is-value' mark
	// and whether the length is even or odd.
	compact[0] = 0
	if targetsValue {
		compact[0] |= 1 << 5
	}
	compact[0] |= (byte(numNibbles) % 2) << 4 // odd flag

	// If there is an odd number of nibbles, the first is included in the
	// low-part of the compact path encoding.
	if numNibbles%2 == 1 {
		compact[0] |= byte(path[0])
		path = path[1:]
	}
	// The rest of the nibbles are packed in pairs.
	for i := 0; i < len(path); i += 2 {
		compact[1+i/2] = byte(path[i])<<4 | byte(path[i+1])
	}
	return compact
}

func getEncodedPartialPathSize(numNibbles int) int {
	return numNibbles/2 + 1
}
