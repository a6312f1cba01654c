// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package mpt computes the root hashes of Merkle-Patricia Tries as defined by
// Ethereum's State and Storage Tries.
//
// Tries are built in memory from a complete set of entries and hashed once.
// State roots are computed in two phases: accounts are first resolved by
// computing their storage roots (ResolveAccount, ResolveAccounts), and the
// resolved accounts are then combined into the state root (StateRoot).
package mpt
