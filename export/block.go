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
	"github.com/Fantom-foundation/legacy-import/rlp"
)

// SourceBlock is a block record of a dump: a list of the header, the list
// of transactions and the list of uncle headers.
type SourceBlock struct {
	Header       SourceHeader
	Transactions []*SourceTransaction
	Uncles       []*SourceHeader
}

// DecodeBlock decodes a block record. A block is only returned if all its
// parts could be decoded.
func DecodeBlock(raw rlp.Raw) (*SourceBlock, error) {
	r, err := newFieldReader("block", raw)
	if err != nil {
		return nil, err
	}
	block := &SourceBlock{
		Transactions: []*SourceTransaction{},
		Uncles:       []*SourceHeader{},
	}
	if raw, ok := r.next(); ok {
		header, err := DecodeHeader(raw)
		if err != nil {
			r.fail(err)
		} else {
			block.Header = *header
		}
	}
	r.list(func(_ int, raw rlp.Raw) error {
		tx, err := DecodeTransaction(raw)
		if err != nil {
			return err
		}
		block.Transactions = append(block.Transactions, tx)
		return nil
	})
	r.list(func(_ int, raw rlp.Raw) error {
		uncle, err := DecodeHeader(raw)
		if err != nil {
			return err
		}
		block.Uncles = append(block.Uncles, uncle)
		return nil
	})
	if err := r.done(); err != nil {
		return nil, err
	}
	return block, nil
}

func (b *SourceBlock) Encode() []byte {
	txs := make([]rlp.Item, 0, len(b.Transactions))
	for _, tx := range b.Transactions {
		txs = append(txs, tx.item())
	}
	uncles := make([]rlp.Item, 0, len(b.Uncles))
	for _, uncle := range b.Uncles {
		uncles = append(uncles, uncle.item())
	}
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		b.Header.item(),
		rlp.List{Items: txs},
		rlp.List{Items: uncles},
	}})
}
