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
	"io"
	"strings"
)

// Node is a node of a trie under construction. The trie is built in memory
// by a sequence of insertions and hashed once all entries are present.
// Nodes are not shared between tries and are not safe for concurrent use.
type Node interface {
	// Set inserts the given value at the given remaining path below this
	// node. The result is the node replacing this node in its parent.
	Set(path []Nibble, value []byte) Node

	// Dump prints a human-readable representation of the sub-trie rooted by
	// this node to the given writer. This is intended for debugging.
	Dump(out io.Writer, indent string)
}

// ----------------------------------------------------------------------------
//                               Empty Node
// ----------------------------------------------------------------------------

// EmptyNode is the root of an empty trie and the content of unused branch
// slots.
type EmptyNode struct{}

func (EmptyNode) Set(path []Nibble, value []byte) Node {
	return &LeafNode{path: path, value: value}
}

func (EmptyNode) Dump(out io.Writer, indent string) {
	fmt.Fprintf(out, "%s-empty-\n", indent)
}

// ----------------------------------------------------------------------------
//                               Branch Node
// ----------------------------------------------------------------------------

// BranchNode splits the trie by the next nibble of the path. A non-empty
// value is present if a key terminates at this node.
type BranchNode struct {
	children [16]Node
	value    []byte
}

func (n *BranchNode) Set(path []Nibble, value []byte) Node {
	if len(path) == 0 {
		n.value = value
		return n
	}
	n.children[path[0]] = n.getChild(path[0]).Set(path[1:], value)
	return n
}

func (n *BranchNode) getChild(pos Nibble) Node {
	if child := n.children[pos]; child != nil {
		return child
	}
	return EmptyNode{}
}

// setChild inserts an existing sub-trie below the given path, where the
// path starts with the position of the child in this branch.
func (n *BranchNode) setChild(path []Nibble, next Node) {
	if len(path) == 1 {
		n.children[path[0]] = next
		return
	}
	n.children[path[0]] = &ExtensionNode{path: path[1:], next: next}
}

func (n *BranchNode) Dump(out io.Writer, indent string) {
	fmt.Fprintf(out, "%sBranch", indent)
	if len(n.value) > 0 {
		fmt.Fprintf(out, " - value: %x", n.value)
	}
	fmt.Fprintln(out)
	for i, child := range n.children {
		if child == nil {
			continue
		}
		fmt.Fprintf(out, "%s  %v:\n", indent, Nibble(i))
		child.Dump(out, indent+"    ")
	}
}

// ----------------------------------------------------------------------------
//                               Extension Node
// ----------------------------------------------------------------------------

// ExtensionNode compresses a path segment shared by all keys below it. The
// next node is always a branch node.
type ExtensionNode struct {
	path []Nibble
	next Node
}

func (n *ExtensionNode) Set(path []Nibble, value []byte) Node {
	common := GetCommonPrefixLength(n.path, path)
	if common == len(n.path) {
		n.next = n.next.Set(path[common:], value)
		return n
	}

	// The new key diverges within the extension, so a branch is introduced
	// at the point of divergence.
	branch := &BranchNode{}
	branch.setChild(n.path[common:], n.next)
	branch.Set(path[common:], value)
	if common == 0 {
		return branch
	}
	n.path = n.path[:common]
	n.next = branch
	return n
}

func (n *ExtensionNode) Dump(out io.Writer, indent string) {
	fmt.Fprintf(out, "%sExtension: %v\n", indent, formatPath(n.path))
	n.next.Dump(out, indent+"  ")
}

// ----------------------------------------------------------------------------
//                               Leaf Node
// ----------------------------------------------------------------------------

// LeafNode holds the value of a single key, together with the part of the
// key's path not yet consumed by the nodes above it.
type LeafNode struct {
	path  []Nibble
	value []byte
}

func (n *LeafNode) Set(path []Nibble, value []byte) Node {
	common := GetCommonPrefixLength(n.path, path)
	if common == len(n.path) && common == len(path) {
		n.value = value
		return n
	}

	branch := &BranchNode{}
	branch.Set(n.path[common:], n.value)
	branch.Set(path[common:], value)
	if common == 0 {
		return branch
	}
	return &ExtensionNode{path: path[:common], next: branch}
}

func (n *LeafNode) Dump(out io.Writer, indent string) {
	fmt.Fprintf(out, "%sLeaf: %v - value: %x\n", indent, formatPath(n.path), n.value)
}

func formatPath(path []Nibble) string {
	var builder strings.Builder
	for _, cur := range path {
		builder.WriteRune(cur.Rune())
	}
	return builder.String()
}
