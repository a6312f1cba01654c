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
	"bytes"
	"context"
	"runtime"
	"sort"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/rlp"
	"github.com/Fantom-foundation/legacy-import/types"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

// StorageValue is the ValueEncoder of storage slots. Values are stored
// without leading zeros; zero values are absent from the trie.
type StorageValue common.Value

func (v StorageValue) EncodeValue() ([]byte, error) {
	value := bytes.TrimLeft(v[:], "\x00")
	if len(value) == 0 {
		return nil, nil
	}
	return rlp.Encode(rlp.String{Str: value}), nil
}

// StorageRoot computes the root of the storage trie of an account.
func StorageRoot(storage map[common.Key]common.Value) (common.Hash, error) {
	if len(storage) == 0 {
		return EmptyRootHash, nil
	}
	entries := make([]Entry, 0, len(storage))
	for key, value := range storage {
		key := key
		entries = append(entries, Entry{Key: key[:], Value: StorageValue(value)})
	}
	return SecureRoot(entries)
}

// ResolvedAccount is an account whose storage root has been computed. It can
// only be obtained from ResolveAccount, so every account passed to StateRoot
// has its storage fully committed.
type ResolvedAccount struct {
	address     common.Address
	storageRoot common.Hash
	payload     []byte
}

// Address returns the address of the account.
func (a *ResolvedAccount) Address() common.Address {
	return a.address
}

// StorageRoot returns the root of the account's storage trie.
func (a *ResolvedAccount) StorageRoot() common.Hash {
	return a.storageRoot
}

// EncodeValue returns the RLP encoding of the account as stored in the
// state trie.
func (a *ResolvedAccount) EncodeValue() ([]byte, error) {
	return a.payload, nil
}

// ResolveAccount computes the storage root of the given account and derives
// the account's state trie payload, the RLP list of nonce, balance, storage
// root and code hash. Accounts without code use the hash of the empty code.
func ResolveAccount(address common.Address, account *types.Account) (ResolvedAccount, error) {
	storageRoot, err := StorageRoot(account.Storage)
	if err != nil {
		return ResolvedAccount{}, err
	}
	codeHash := common.EmptyCodeHash
	if account.CodeHash != nil {
		codeHash = *account.CodeHash
	}
	payload := rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.Uint64{Value: account.Nonce},
		rlp.BigInt{Value: account.Balance.ToBig()},
		rlp.Hash{Hash: &storageRoot},
		rlp.Hash{Hash: &codeHash},
	}})
	return ResolvedAccount{
		address:     address,
		storageRoot: storageRoot,
		payload:     payload,
	}, nil
}

// ResolveAccounts resolves the given accounts in parallel. The result is
// ordered by address.
func ResolveAccounts(ctx context.Context, accounts map[common.Address]types.Account) ([]ResolvedAccount, error) {
	addresses := maps.Keys(accounts)
	sort.Slice(addresses, func(i, j int) bool {
		return bytes.Compare(addresses[i][:], addresses[j][:]) < 0
	})

	res := make([]ResolvedAccount, len(addresses))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())
	for i, address := range addresses {
		i, address := i, address
		account := accounts[address]
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			resolved, err := ResolveAccount(address, &account)
			if err != nil {
				return err
			}
			res[i] = resolved
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// StateRoot computes the root of the state trie formed by the given accounts.
func StateRoot(accounts []ResolvedAccount) (common.Hash, error) {
	entries := make([]Entry, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		entries = append(entries, Entry{Key: account.address[:], Value: account})
	}
	return SecureRoot(entries)
}
