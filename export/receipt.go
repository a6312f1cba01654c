// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package export

import (
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/rlp"
)

// SourceReceipt is a receipt in the positional export layout of optimistic
// rollup nodes, carrying the L1 fee components next to the regular fields.
type SourceReceipt struct {
	Type              uint8
	PostState         []byte
	Status            uint64
	CumulativeGasUsed uint64
	Bloom             common.Bloom
	Logs              []byte // full encoding of the log list
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

// DecodeReceipt decodes a single receipt record.
func DecodeReceipt(raw rlp.Raw) (*SourceReceipt, error) {
	r, err := newFieldReader("receipt", raw)
	if err != nil {
		return nil, err
	}
	res := &SourceReceipt{}
	r.uint8(&res.Type)
	r.bytes(&res.PostState)
	r.uint64(&res.Status)
	r.uint64(&res.CumulativeGasUsed)
	r.bloom(&res.Bloom)
	r.encoded(&res.Logs)
	r.hash(&res.TxHash)
	r.optionalAddress(&res.ContractAddress)
	r.uint64(&res.GasUsed)
	r.hash(&res.BlockHash)
	r.bigInt(&res.BlockNumber)
	r.uint64(&res.TransactionIndex)
	r.bigInt(&res.L1GasPrice)
	r.bigInt(&res.L1GasUsed)
	r.bigInt(&res.L1Fee)
	r.string(&res.L1FeeScalar)
	if err := r.done(); err != nil {
		return nil, err
	}
	return res, nil
}

// receiptBloom is the position of the bloom filter in a receipt record.
const receiptBloom = 4

// IsReceipt distinguishes receipts from nested batches of receipts in a
// receipt dump. The leading fields of a receipt up to its bloom filter are
// scalars, and at least one of them is not empty. A batch is any other list,
// including one starting with empty items.
func IsReceipt(raw rlp.Raw) bool {
	iter, err := raw.Iterator()
	if err != nil {
		return false
	}
	content := false
	for iter.Next() && iter.Index() <= receiptBloom {
		field := iter.Value()
		if field.IsList() {
			return false
		}
		content = content || len(field.Content()) > 0
	}
	return iter.Err() == nil && content
}

func (r *SourceReceipt) Encode() []byte {
	contract := rlp.String{}
	if r.ContractAddress != nil {
		contract.Str = r.ContractAddress[:]
	}
	logs := r.Logs
	if len(logs) == 0 {
		logs = rlp.Encode(rlp.List{})
	}
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.Uint64{Value: uint64(r.Type)},
		rlp.String{Str: r.PostState},
		rlp.Uint64{Value: r.Status},
		rlp.Uint64{Value: r.CumulativeGasUsed},
		rlp.String{Str: r.Bloom[:]},
		rlp.Encoded{Data: logs},
		rlp.Hash{Hash: &r.TxHash},
		contract,
		rlp.Uint64{Value: r.GasUsed},
		rlp.Hash{Hash: &r.BlockHash},
		rlp.BigInt{Value: r.BlockNumber},
		rlp.Uint64{Value: r.TransactionIndex},
		rlp.BigInt{Value: r.L1GasPrice},
		rlp.BigInt{Value: r.L1GasUsed},
		rlp.BigInt{Value: r.L1Fee},
		rlp.String{Str: []byte(r.L1FeeScalar)},
	}})
}
