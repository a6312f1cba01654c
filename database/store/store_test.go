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
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/common/amount"
	"github.com/Fantom-foundation/legacy-import/types"
)

func openTestStore(t *testing.T, config Config) *LevelDbStore {
	t.Helper()
	store, err := OpenLevelDbStore(t.TempDir(), config)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return store
}

func TestStore_ImplementsStoreInterface(t *testing.T) {
	var store LevelDbStore
	var _ Store = &store
	var mock MockStore
	var _ Store = &mock
}

func TestToDBKey_PrefixesConcatenatedParts(t *testing.T) {
	got := ToDBKey(StorageKey, []byte{1, 2}, []byte{3})
	want := []byte{'s', 1, 2, 3}
	if !bytes.Equal(got, want) {
		t.Errorf("unexpected key, wanted %x, got %x", want, got)
	}
	if got, want := numberKey(HeaderKey, 0x0102), []byte{'h', 0, 0, 0, 0, 0, 0, 1, 2}; !bytes.Equal(got, want) {
		t.Errorf("unexpected key, wanted %x, got %x", want, got)
	}
}

func TestStore_InvalidBatchSizeIsRejected(t *testing.T) {
	if _, err := OpenLevelDbStore(t.TempDir(), Config{BatchSize: 0}); err == nil {
		t.Errorf("opening a store with a zero batch size should fail")
	}
}

func TestStore_HeadersCanBeStoredAndRetrieved(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	header := types.Header{
		ParentHash: common.Hash{1},
		StateRoot:  common.EmptyRootHash,
		Difficulty: big.NewInt(1 << 40),
		Number:     12,
		GasLimit:   15_000_000,
		Timestamp:  1_600_000_000,
		ExtraData:  []byte("extra"),
		Nonce:      0x0102030405060708,
	}
	if err := store.PutHeader(&header); err != nil {
		t.Fatalf("failed to store header: %v", err)
	}
	got, err := store.GetHeader(12)
	if err != nil {
		t.Fatalf("failed to load header: %v", err)
	}
	if got.Hash() != header.Hash() {
		t.Errorf("restored header differs, wanted %v, got %v", header, got)
	}
	hash, err := store.GetCanonicalHash(12)
	if err != nil {
		t.Fatalf("failed to load canonical hash: %v", err)
	}
	if want := header.Hash(); hash != want {
		t.Errorf("unexpected canonical hash, wanted %v, got %v", want, hash)
	}
}

func TestStore_MissingEntriesAreReportedAsNotFound(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	if _, err := store.GetHeader(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing header: %v", err)
	}
	if _, err := store.GetCanonicalHash(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing hash: %v", err)
	}
	if _, err := store.GetBlockBody(1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing body: %v", err)
	}
	if _, err := store.GetReceipt(common.Hash{1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing receipt: %v", err)
	}
	if _, err := store.GetAccount(common.Address{1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing account: %v", err)
	}
	if _, err := store.GetCode(common.Hash{1}); !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing code: %v", err)
	}
	if _, err := store.GetConfig("chainId"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unexpected error for missing config: %v", err)
	}
}

func TestStore_BlocksCanBeStoredAndRetrieved(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	to := common.Address{7}
	block := types.Block{
		Header: types.Header{Number: 3, Difficulty: big.NewInt(2)},
		Transactions: []types.Transaction{
			{
				Nonce:     1,
				GasPrice:  big.NewInt(10),
				Gas:       21_000,
				To:        &to,
				Value:     big.NewInt(1000),
				Signature: types.Signature{R: big.NewInt(1), S: big.NewInt(2), OddYParity: true},
			},
			{
				Type:      types.DynamicFeeTxType,
				ChainID:   big.NewInt(420),
				GasTipCap: big.NewInt(1),
				GasFeeCap: big.NewInt(2),
				Input:     []byte{0x60, 0x80},
				AccessList: []types.AccessTuple{
					{Address: common.Address{1}, StorageKeys: []common.Key{{2}}},
				},
				Signature: types.Signature{R: big.NewInt(3), S: big.NewInt(4)},
			},
		},
		Ommers: []types.Header{{Number: 2, Difficulty: big.NewInt(1)}},
	}
	if err := store.PutBlock(&block); err != nil {
		t.Fatalf("failed to store block: %v", err)
	}

	header, err := store.GetHeader(3)
	if err != nil {
		t.Fatalf("failed to load header: %v", err)
	}
	if header.Hash() != block.Hash() {
		t.Errorf("unexpected header hash")
	}

	body, err := store.GetBlockBody(3)
	if err != nil {
		t.Fatalf("failed to load body: %v", err)
	}
	if got, want := len(body.Transactions), 2; got != want {
		t.Fatalf("unexpected number of transactions, wanted %d, got %d", want, got)
	}
	first := body.Transactions[0]
	if first.To == nil || *first.To != to || first.Value.Cmp(big.NewInt(1000)) != 0 || !first.Signature.OddYParity {
		t.Errorf("unexpected first transaction: %+v", first)
	}
	second := body.Transactions[1]
	if second.Type != types.DynamicFeeTxType || !second.IsContractCreation() || second.ChainID.Cmp(big.NewInt(420)) != 0 {
		t.Errorf("unexpected second transaction: %+v", second)
	}
	if len(second.AccessList) != 1 || second.AccessList[0].StorageKeys[0] != (common.Key{2}) {
		t.Errorf("unexpected access list: %v", second.AccessList)
	}
	if got, want := len(body.Ommers), 1; got != want {
		t.Fatalf("unexpected number of ommers, wanted %d, got %d", want, got)
	}
	if body.Ommers[0].Hash() != block.Ommers[0].Hash() {
		t.Errorf("unexpected ommer")
	}
}

func TestStore_ReceiptsAreIndexedByTransactionHash(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	contract := common.Address{9}
	receipt := types.Receipt{
		Status:            1,
		CumulativeGasUsed: 42_000,
		TxHash:            common.Hash{1, 2, 3},
		ContractAddress:   &contract,
		GasUsed:           21_000,
		BlockNumber:       big.NewInt(5),
		TransactionIndex:  2,
		L1Fee:             big.NewInt(77),
		L1FeeScalar:       "1.5",
	}
	if err := store.PutReceipt(&receipt); err != nil {
		t.Fatalf("failed to store receipt: %v", err)
	}
	got, err := store.GetReceipt(common.Hash{1, 2, 3})
	if err != nil {
		t.Fatalf("failed to load receipt: %v", err)
	}
	if got.GasUsed != receipt.GasUsed || got.TransactionIndex != 2 || got.L1FeeScalar != "1.5" {
		t.Errorf("unexpected receipt: %+v", got)
	}
	if got.ContractAddress == nil || *got.ContractAddress != contract {
		t.Errorf("unexpected contract address: %v", got.ContractAddress)
	}
	if got.L1Fee.Cmp(big.NewInt(77)) != 0 || got.BlockNumber.Cmp(big.NewInt(5)) != 0 {
		t.Errorf("unexpected numbers in receipt: %+v", got)
	}
}

func TestStore_AccountsAreStoredWithoutCodeAndStorage(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	code := []byte{0x60, 0x80, 0x60, 0x40}
	account := types.NewAccount(3, amount.New(1, 2, 3, 4), code, map[common.Key]common.Value{{1}: {2}})
	if err := store.PutAccount(common.Address{1}, &account); err != nil {
		t.Fatalf("failed to store account: %v", err)
	}
	got, err := store.GetAccount(common.Address{1})
	if err != nil {
		t.Fatalf("failed to load account: %v", err)
	}
	if got.Nonce != 3 || got.Balance != account.Balance {
		t.Errorf("unexpected account: %+v", got)
	}
	if got.CodeHash == nil || *got.CodeHash != common.Keccak256(code) {
		t.Errorf("unexpected code hash: %v", got.CodeHash)
	}
	if got.Code != nil || got.Storage != nil {
		t.Errorf("code and storage should not be part of the account record")
	}
}

func TestStore_CodeIsIndexedByItsHash(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	code := bytes.Repeat([]byte{0x60, 0x00}, 1000)
	hash, err := store.PutCode(code)
	if err != nil {
		t.Fatalf("failed to store code: %v", err)
	}
	if want := common.Keccak256(code); hash != want {
		t.Errorf("unexpected code hash, wanted %v, got %v", want, hash)
	}
	got, err := store.GetCode(hash)
	if err != nil {
		t.Fatalf("failed to load code: %v", err)
	}
	if !bytes.Equal(got, code) {
		t.Errorf("restored code differs")
	}
}

func TestStore_StorageSlotsDefaultToZero(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	if err := store.PutStorage(common.Address{1}, common.Key{2}, common.Value{3}); err != nil {
		t.Fatalf("failed to store slot: %v", err)
	}
	if got, err := store.GetStorage(common.Address{1}, common.Key{2}); err != nil || got != (common.Value{3}) {
		t.Errorf("unexpected slot value %v, err %v", got, err)
	}
	if got, err := store.GetStorage(common.Address{1}, common.Key{3}); err != nil || got != (common.Value{}) {
		t.Errorf("unexpected value for unset slot %v, err %v", got, err)
	}
	if got, err := store.GetStorage(common.Address{2}, common.Key{2}); err != nil || got != (common.Value{}) {
		t.Errorf("slots of different accounts should be independent, got %v, err %v", got, err)
	}
}

func TestStore_ConfigEntriesAreStoredVerbatim(t *testing.T) {
	store := openTestStore(t, DefaultConfig)
	if err := store.PutConfig("chainId", []byte{0xa4, 0x01, 0, 0, 0, 0, 0, 0}); err != nil {
		t.Fatalf("failed to store config: %v", err)
	}
	got, err := store.GetConfig("chainId")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if want := []byte{0xa4, 0x01, 0, 0, 0, 0, 0, 0}; !bytes.Equal(got, want) {
		t.Errorf("unexpected config value, wanted %x, got %x", want, got)
	}
}

func TestStore_PendingWritesAreWrittenWhenBatchIsFull(t *testing.T) {
	store := openTestStore(t, Config{BatchSize: 4})
	for i := 0; i < 3; i++ {
		if err := store.PutStorage(common.Address{1}, common.Key{byte(i)}, common.Value{1}); err != nil {
			t.Fatalf("failed to store slot: %v", err)
		}
	}
	if got, want := store.batch.Len(), 3; got != want {
		t.Errorf("unexpected number of pending writes, wanted %d, got %d", want, got)
	}
	if err := store.PutStorage(common.Address{1}, common.Key{3}, common.Value{1}); err != nil {
		t.Fatalf("failed to store slot: %v", err)
	}
	if got, want := store.batch.Len(), 0; got != want {
		t.Errorf("full batch should have been written, %d writes pending", got)
	}
}

func TestStore_ContentSurvivesReopening(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenLevelDbStore(dir, DefaultConfig)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	header := types.Header{Number: 0, Difficulty: big.NewInt(1)}
	if err := store.PutHeader(&header); err != nil {
		t.Fatalf("failed to store header: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	store, err = OpenLevelDbStore(dir, DefaultConfig)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer store.Close()
	hash, err := store.GetCanonicalHash(0)
	if err != nil {
		t.Fatalf("failed to load canonical hash: %v", err)
	}
	if hash != header.Hash() {
		t.Errorf("unexpected hash after reopening, wanted %v, got %v", header.Hash(), hash)
	}
}
