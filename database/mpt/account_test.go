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
	"context"
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/common/amount"
	"github.com/Fantom-foundation/legacy-import/rlp"
	"github.com/Fantom-foundation/legacy-import/types"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/core/state"

	gethcommon "github.com/ethereum/go-ethereum/common"
)

func TestStorageRoot_EmptyStorageHasEmptyRoot(t *testing.T) {
	for _, storage := range []map[common.Key]common.Value{nil, {}, {{1}: {}}} {
		root, err := StorageRoot(storage)
		if err != nil {
			t.Fatalf("failed to compute storage root: %v", err)
		}
		if root != EmptyRootHash {
			t.Errorf("unexpected root of empty storage: %v", root)
		}
	}
}

func TestStorageValue_LeadingZerosAreStripped(t *testing.T) {
	tests := []struct {
		value common.Value
		want  []byte
	}{
		{common.Value{}, nil},
		{common.Value{31: 1}, []byte{0x01}},
		{common.Value{31: 0x80}, []byte{0x81, 0x80}},
		{common.Value{30: 1, 31: 2}, []byte{0x82, 0x01, 0x02}},
	}
	for _, test := range tests {
		got, err := StorageValue(test.value).EncodeValue()
		if err != nil {
			t.Fatalf("failed to encode value: %v", err)
		}
		if string(got) != string(test.want) {
			t.Errorf("unexpected encoding of %v, wanted %x, got %x", test.value, test.want, got)
		}
	}
}

func TestResolveAccount_PayloadLayout(t *testing.T) {
	code := []byte{0x60, 0x00}
	tests := map[string]types.Account{
		"without code": types.NewAccount(1, amount.New(2), nil, nil),
		"with code":    types.NewAccount(0, amount.New(0), code, nil),
		"with storage": types.NewAccount(0, amount.New(1), nil, map[common.Key]common.Value{{1}: {31: 2}}),
	}
	for name, account := range tests {
		t.Run(name, func(t *testing.T) {
			resolved, err := ResolveAccount(common.Address{1}, &account)
			if err != nil {
				t.Fatalf("failed to resolve account: %v", err)
			}
			payload, err := resolved.EncodeValue()
			if err != nil {
				t.Fatalf("failed to encode account: %v", err)
			}
			raw, err := rlp.DecodeRaw(payload)
			if err != nil {
				t.Fatalf("invalid account payload: %v", err)
			}
			if got, err := raw.Len(); err != nil || got != 4 {
				t.Fatalf("unexpected number of fields: %d, %v", got, err)
			}

			storageRoot, _ := StorageRoot(account.Storage)
			if resolved.StorageRoot() != storageRoot {
				t.Errorf("unexpected storage root, wanted %v, got %v", storageRoot, resolved.StorageRoot())
			}
			field, _ := raw.At(2)
			if got, _ := field.Bytes(); string(got) != string(storageRoot[:]) {
				t.Errorf("unexpected storage root in payload: %x", got)
			}

			wantCodeHash := common.EmptyCodeHash
			if account.CodeHash != nil {
				wantCodeHash = *account.CodeHash
			}
			field, _ = raw.At(3)
			if got, _ := field.Bytes(); string(got) != string(wantCodeHash[:]) {
				t.Errorf("unexpected code hash in payload: %x", got)
			}
		})
	}
}

func TestResolveAccounts_ResultIsOrderedByAddress(t *testing.T) {
	accounts := map[common.Address]types.Account{
		{3}: types.NewAccount(3, amount.New(), nil, nil),
		{1}: types.NewAccount(1, amount.New(), nil, nil),
		{2}: types.NewAccount(2, amount.New(), nil, nil),
	}
	resolved, err := ResolveAccounts(context.Background(), accounts)
	if err != nil {
		t.Fatalf("failed to resolve accounts: %v", err)
	}
	if len(resolved) != 3 {
		t.Fatalf("unexpected number of accounts: %d", len(resolved))
	}
	for i, account := range resolved {
		if want := (common.Address{byte(i + 1)}); account.Address() != want {
			t.Errorf("unexpected address at position %d, wanted %v, got %v", i, want, account.Address())
		}
	}
}

func TestResolveAccounts_CanceledContextIsReported(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	accounts := map[common.Address]types.Account{{1}: {}}
	if _, err := ResolveAccounts(ctx, accounts); !errors.Is(err, context.Canceled) {
		t.Errorf("expected %v, got %v", context.Canceled, err)
	}
}

func TestStateRoot_EmptyStateHasEmptyRoot(t *testing.T) {
	root, err := StateRoot(nil)
	if err != nil {
		t.Fatalf("failed to compute state root: %v", err)
	}
	if root != EmptyRootHash {
		t.Errorf("unexpected root of empty state: %v", root)
	}
}

func TestStateRoot_MatchesGethStateDB(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, numAccounts := range []int{1, 2, 10, 100} {
		accounts := map[common.Address]types.Account{}
		reference := newEthereumStateDB(t)
		for i := 0; i < numAccounts; i++ {
			var address common.Address
			r.Read(address[:])

			nonce := uint64(r.Intn(3))
			balance := amount.New(1 + uint64(r.Intn(1_000_000)))
			var code []byte
			if r.Intn(2) == 0 {
				code = make([]byte, 1+r.Intn(100))
				r.Read(code)
			}
			storage := map[common.Key]common.Value{}
			for j := r.Intn(5); j > 0; j-- {
				var key common.Key
				var value common.Value
				r.Read(key[:])
				r.Read(value[32-1-r.Intn(32):])
				if value == (common.Value{}) {
					continue
				}
				storage[key] = value
			}
			accounts[address] = types.NewAccount(nonce, balance, code, storage)

			gethAddr := gethcommon.Address(address)
			reference.SetNonce(gethAddr, nonce)
			reference.SetBalance(gethAddr, balance.ToBig())
			if len(code) > 0 {
				reference.SetCode(gethAddr, code)
			}
			for key, value := range storage {
				reference.SetState(gethAddr, gethcommon.Hash(key), gethcommon.Hash(value))
			}
		}

		resolved, err := ResolveAccounts(context.Background(), accounts)
		if err != nil {
			t.Fatalf("failed to resolve accounts: %v", err)
		}
		root, err := StateRoot(resolved)
		if err != nil {
			t.Fatalf("failed to compute state root: %v", err)
		}
		if got, want := gethcommon.Hash(root), reference.IntermediateRoot(false); got != want {
			t.Errorf("invalid state root for %d accounts\nexpected %v\n     got %v", numAccounts, want, got)
		}
	}
}

func TestStateRoot_LargeBalances(t *testing.T) {
	balance, err := amount.NewFromBigInt(new(big.Int).Lsh(big.NewInt(1), 255))
	if err != nil {
		t.Fatalf("failed to create balance: %v", err)
	}
	address := common.Address{0x42}
	account := types.NewAccount(0, balance, nil, nil)
	resolved, err := ResolveAccount(address, &account)
	if err != nil {
		t.Fatalf("failed to resolve account: %v", err)
	}
	root, err := StateRoot([]ResolvedAccount{resolved})
	if err != nil {
		t.Fatalf("failed to compute state root: %v", err)
	}

	reference := newEthereumStateDB(t)
	reference.SetBalance(gethcommon.Address(address), balance.ToBig())
	if got, want := gethcommon.Hash(root), reference.IntermediateRoot(false); got != want {
		t.Errorf("invalid state root\nexpected %v\n     got %v", want, got)
	}
}

func newEthereumStateDB(t *testing.T) *state.StateDB {
	t.Helper()
	db, err := state.New(gethcommon.Hash{}, state.NewDatabase(rawdb.NewMemoryDatabase()), nil)
	if err != nil {
		t.Fatalf("failed to create reference state: %v", err)
	}
	return db
}
