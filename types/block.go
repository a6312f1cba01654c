// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package types

import (
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
)

// Block is a header together with its ordered transactions and ommers.
type Block struct {
	Header       Header
	Transactions []Transaction
	Ommers       []Header
}

func (b *Block) Number() uint64 {
	return b.Header.Number
}

func (b *Block) Hash() common.Hash {
	return b.Header.Hash()
}

// Body is the part of a block stored next to its header.
type Body struct {
	Transactions []Transaction
	Ommers       []Header
}

func (b *Block) Body() Body {
	return Body{Transactions: b.Transactions, Ommers: b.Ommers}
}

// Receipt is the outcome of a transaction as exported by an optimistic
// rollup node, including the fee components charged for L1 data.
type Receipt struct {
	Type              uint8
	PostState         []byte
	Status            uint64
	CumulativeGasUsed uint64
	Bloom             common.Bloom
	Logs              []byte // RLP encoded list of logs
	TxHash            common.Hash
	ContractAddress   *common.Address
	GasUsed           uint64
	BlockHash         common.Hash
	BlockNumber       *big.Int
	TransactionIndex  uint64
	L1GasPrice        *big.Int
	L1GasUsed         *big.Int
	L1Fee             *big.Int
	L1FeeScalar       string
}
