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
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/rlp"
)

// SourceHeader is a block header in the positional layout written by the
// exporting node. The nonce is kept as the raw byte string found in the dump.
type SourceHeader struct {
	ParentHash  common.Hash
	UncleHash   common.Hash
	Coinbase    common.Address
	Root        common.Hash
	TxHash      common.Hash
	ReceiptHash common.Hash
	Bloom       common.Bloom
	Difficulty  *big.Int
	Number      uint64
	GasLimit    uint64
	GasUsed     uint64
	Time        uint64
	Extra       []byte
	MixDigest   common.Hash
	Nonce       []byte
}

// DecodeHeader decodes a header record.
func DecodeHeader(raw rlp.Raw) (*SourceHeader, error) {
	r, err := newFieldReader("header", raw)
	if err != nil {
		return nil, err
	}
	h := &SourceHeader{}
	r.hash(&h.ParentHash)
	r.hash(&h.UncleHash)
	r.address(&h.Coinbase)
	r.hash(&h.Root)
	r.hash(&h.TxHash)
	r.hash(&h.ReceiptHash)
	r.bloom(&h.Bloom)
	r.bigInt(&h.Difficulty)
	r.uint64(&h.Number)
	r.uint64(&h.GasLimit)
	r.uint64(&h.GasUsed)
	r.uint64(&h.Time)
	r.bytes(&h.Extra)
	r.hash(&h.MixDigest)
	if raw, ok := r.next(); ok {
		nonce, err := blockNonce(raw)
		if err != nil {
			r.fail(err)
		}
		h.Nonce = nonce
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return h, nil
}

// blockNonce reads the nonce field of a header. Besides the regular byte
// string, some exporters write the nonce as a list of single-byte integers.
func blockNonce(raw rlp.Raw) ([]byte, error) {
	var res []byte
	if !raw.IsList() {
		data, _ := raw.Bytes()
		res = append(res, data...)
	} else {
		iter, _ := raw.Iterator()
		for iter.Next() {
			value, err := iter.Value().Uint64()
			if err != nil {
				return nil, err
			}
			if value > 0xff {
				return nil, fmt.Errorf("%w: nonce element %d exceeds a byte", rlp.ErrValueOverflow, value)
			}
			res = append(res, byte(value))
		}
		if err := iter.Err(); err != nil {
			return nil, err
		}
	}
	if len(res) > 8 {
		return nil, fmt.Errorf("%w: nonce of %d bytes", ErrInvalidFieldSize, len(res))
	}
	return res, nil
}

// Encode produces the exporter's encoding of the header.
func (h *SourceHeader) Encode() []byte {
	return rlp.Encode(h.item())
}

func (h *SourceHeader) item() rlp.Item {
	return rlp.List{Items: []rlp.Item{
		rlp.Hash{Hash: &h.ParentHash},
		rlp.Hash{Hash: &h.UncleHash},
		rlp.String{Str: h.Coinbase[:]},
		rlp.Hash{Hash: &h.Root},
		rlp.Hash{Hash: &h.TxHash},
		rlp.Hash{Hash: &h.ReceiptHash},
		rlp.String{Str: h.Bloom[:]},
		rlp.BigInt{Value: h.Difficulty},
		rlp.Uint64{Value: h.Number},
		rlp.Uint64{Value: h.GasLimit},
		rlp.Uint64{Value: h.GasUsed},
		rlp.Uint64{Value: h.Time},
		rlp.String{Str: h.Extra},
		rlp.Hash{Hash: &h.MixDigest},
		rlp.String{Str: h.Nonce},
	}}
}
