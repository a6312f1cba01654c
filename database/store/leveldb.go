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
	"errors"
	"fmt"
	"sync"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/types"
	"github.com/hashicorp/go-multierror"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// Config customizes the LevelDB backed store.
type Config struct {
	// WriteBufferSize is the size of the LevelDB memtable in bytes.
	WriteBufferSize int
	// BatchSize is the number of buffered write operations after which the
	// pending batch is written to the database.
	BatchSize int
}

// DefaultConfig is the configuration used by the import tool.
var DefaultConfig = Config{
	WriteBufferSize: 64 * opt.MiB,
	BatchSize:       10_000,
}

// LevelDbStore is a Store persisting its content in a LevelDB instance.
type LevelDbStore struct {
	db     *leveldb.DB
	codec  *codec
	config Config

	mu    sync.Mutex
	batch leveldb.Batch
}

// OpenLevelDbStore opens or creates a store in the given directory.
func OpenLevelDbStore(path string, config Config) (*LevelDbStore, error) {
	if config.BatchSize <= 0 {
		return nil, fmt.Errorf("invalid batch size: %d", config.BatchSize)
	}
	codec, err := newCodec()
	if err != nil {
		return nil, err
	}
	db, err := leveldb.OpenFile(path, &opt.Options{WriteBuffer: config.WriteBufferSize})
	if err != nil {
		codec.Close()
		return nil, fmt.Errorf("failed to open LevelDB at %s: %w", path, err)
	}
	return &LevelDbStore{
		db:     db,
		codec:  codec,
		config: config,
	}, nil
}

func (s *LevelDbStore) PutHeader(header *types.Header) error {
	data, err := s.codec.Marshal(header)
	if err != nil {
		return err
	}
	hash := header.Hash()
	return s.put(
		numberKey(HeaderKey, header.Number), data,
		numberKey(CanonicalHashKey, header.Number), hash[:],
	)
}

func (s *LevelDbStore) GetHeader(number uint64) (types.Header, error) {
	var res types.Header
	return res, s.getDecoded(numberKey(HeaderKey, number), &res)
}

func (s *LevelDbStore) GetCanonicalHash(number uint64) (common.Hash, error) {
	data, err := s.get(numberKey(CanonicalHashKey, number))
	if err != nil {
		return common.Hash{}, err
	}
	return common.HashFromBytes(data)
}

func (s *LevelDbStore) PutBlock(block *types.Block) error {
	if err := s.PutHeader(&block.Header); err != nil {
		return err
	}
	body := block.Body()
	data, err := s.codec.Marshal(&body)
	if err != nil {
		return err
	}
	return s.put(numberKey(BodyKey, block.Number()), data)
}

func (s *LevelDbStore) GetBlockBody(number uint64) (types.Body, error) {
	var res types.Body
	return res, s.getDecoded(numberKey(BodyKey, number), &res)
}

func (s *LevelDbStore) PutReceipt(receipt *types.Receipt) error {
	data, err := s.codec.Marshal(receipt)
	if err != nil {
		return err
	}
	return s.put(ToDBKey(ReceiptKey, receipt.TxHash[:]), data)
}

func (s *LevelDbStore) GetReceipt(txHash common.Hash) (types.Receipt, error) {
	var res types.Receipt
	return res, s.getDecoded(ToDBKey(ReceiptKey, txHash[:]), &res)
}

func (s *LevelDbStore) PutAccount(address common.Address, account *types.Account) error {
	stored := types.Account{
		Nonce:    account.Nonce,
		Balance:  account.Balance,
		CodeHash: account.CodeHash,
	}
	data, err := s.codec.Marshal(&stored)
	if err != nil {
		return err
	}
	return s.put(ToDBKey(AccountKey, address[:]), data)
}

func (s *LevelDbStore) GetAccount(address common.Address) (types.Account, error) {
	var res types.Account
	return res, s.getDecoded(ToDBKey(AccountKey, address[:]), &res)
}

func (s *LevelDbStore) PutStorage(address common.Address, key common.Key, value common.Value) error {
	return s.put(ToDBKey(StorageKey, address[:], key[:]), value[:])
}

func (s *LevelDbStore) GetStorage(address common.Address, key common.Key) (common.Value, error) {
	var res common.Value
	data, err := s.get(ToDBKey(StorageKey, address[:], key[:]))
	if errors.Is(err, ErrNotFound) {
		return res, nil
	}
	if err != nil {
		return res, err
	}
	if len(data) != len(res) {
		return res, fmt.Errorf("invalid storage value length: %d", len(data))
	}
	copy(res[:], data)
	return res, nil
}

func (s *LevelDbStore) PutCode(code []byte) (common.Hash, error) {
	hash := common.Keccak256(code)
	data, err := s.codec.Marshal(code)
	if err != nil {
		return hash, err
	}
	return hash, s.put(ToDBKey(CodeKey, hash[:]), data)
}

func (s *LevelDbStore) GetCode(hash common.Hash) ([]byte, error) {
	var res []byte
	return res, s.getDecoded(ToDBKey(CodeKey, hash[:]), &res)
}

func (s *LevelDbStore) PutConfig(name string, value []byte) error {
	return s.put(ToDBKey(ConfigKey, []byte(name)), value)
}

func (s *LevelDbStore) GetConfig(name string) ([]byte, error) {
	return s.get(ToDBKey(ConfigKey, []byte(name)))
}

func (s *LevelDbStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flush()
}

func (s *LevelDbStore) Close() error {
	var result *multierror.Error
	if err := s.Flush(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := s.db.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	s.codec.Close()
	return result.ErrorOrNil()
}

// put adds the given key/value pairs to the pending batch.
func (s *LevelDbStore) put(pairs ...[]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.batch.Put(pairs[i], pairs[i+1])
	}
	if s.batch.Len() >= s.config.BatchSize {
		return s.flush()
	}
	return nil
}

func (s *LevelDbStore) get(key []byte) ([]byte, error) {
	s.mu.Lock()
	err := s.flush()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	data, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("key %x: %w", key, ErrNotFound)
	}
	return data, err
}

func (s *LevelDbStore) getDecoded(key []byte, value any) error {
	data, err := s.get(key)
	if err != nil {
		return err
	}
	return s.codec.Unmarshal(data, value)
}

func (s *LevelDbStore) flush() error {
	if s.batch.Len() == 0 {
		return nil
	}
	if err := s.db.Write(&s.batch, nil); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	s.batch.Reset()
	return nil
}
