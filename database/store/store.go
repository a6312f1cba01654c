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

//go:generate mockgen -source store.go -destination store_mocks.go -package store

import (
	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/types"
)

// ErrNotFound is returned by getters if the requested entry is not present.
const ErrNotFound = common.ConstError("not found")

// Store is the persistent destination of imported chain data. Writes may be
// buffered; they are visible to subsequent reads of the same store, but only
// guaranteed to be durable after a Flush or Close.
type Store interface {
	// PutHeader stores the header and registers its hash as the canonical
	// hash of its block number.
	PutHeader(header *types.Header) error

	// GetHeader returns the canonical header of the given block number.
	GetHeader(number uint64) (types.Header, error)

	// GetCanonicalHash returns the hash of the canonical block of the given number.
	GetCanonicalHash(number uint64) (common.Hash, error)

	// PutBlock stores the header and the body of the given block.
	PutBlock(block *types.Block) error

	// GetBlockBody returns the transactions and ommers of the given block.
	GetBlockBody(number uint64) (types.Body, error)

	// PutReceipt stores a receipt indexed by the hash of its transaction.
	PutReceipt(receipt *types.Receipt) error

	// GetReceipt returns the receipt of the transaction with the given hash.
	GetReceipt(txHash common.Hash) (types.Receipt, error)

	// PutAccount stores the nonce, balance and code hash of an account. The
	// code and storage of the account are to be stored separately.
	PutAccount(address common.Address, account *types.Account) error

	// GetAccount returns the account without its code and storage.
	GetAccount(address common.Address) (types.Account, error)

	// PutStorage sets a storage slot of an account.
	PutStorage(address common.Address, key common.Key, value common.Value) error

	// GetStorage returns a storage slot of an account. Slots never written
	// are zero.
	GetStorage(address common.Address, key common.Key) (common.Value, error)

	// PutCode stores a contract code indexed by its hash.
	PutCode(code []byte) (common.Hash, error)

	// GetCode returns the code with the given hash.
	GetCode(hash common.Hash) ([]byte, error)

	// PutConfig stores a chain configuration entry.
	PutConfig(name string, value []byte) error

	// GetConfig returns a chain configuration entry.
	GetConfig(name string) ([]byte, error)

	// Flush writes all buffered updates to the underlying storage.
	Flush() error

	// Close flushes the store and closes it.
	Close() error
}
