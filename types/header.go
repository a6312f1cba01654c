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
	"encoding/binary"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/rlp"
)

// Header is the canonical form of a pre-London block header.
type Header struct {
	ParentHash       common.Hash
	OmmersHash       common.Hash
	Beneficiary      common.Address
	StateRoot        common.Hash
	TransactionsRoot common.Hash
	ReceiptsRoot     common.Hash
	LogsBloom        common.Bloom
	Difficulty       *big.Int
	Number           uint64
	GasLimit         uint64
	GasUsed          uint64
	Timestamp        uint64
	ExtraData        []byte
	MixHash          common.Hash
	Nonce            uint64
}

// Encode produces the Ethereum RLP encoding of the header. The nonce is
// emitted as an 8-byte big-endian string.
func (h *Header) Encode() []byte {
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], h.Nonce)
	return rlp.Encode(rlp.List{Items: []rlp.Item{
		rlp.Hash{Hash: &h.ParentHash},
		rlp.Hash{Hash: &h.OmmersHash},
		rlp.String{Str: h.Beneficiary[:]},
		rlp.Hash{Hash: &h.StateRoot},
		rlp.Hash{Hash: &h.TransactionsRoot},
		rlp.Hash{Hash: &h.ReceiptsRoot},
		rlp.String{Str: h.LogsBloom[:]},
		rlp.BigInt{Value: h.Difficulty},
		rlp.Uint64{Value: h.Number},
		rlp.Uint64{Value: h.GasLimit},
		rlp.Uint64{Value: h.GasUsed},
		rlp.Uint64{Value: h.Timestamp},
		rlp.String{Str: h.ExtraData},
		rlp.Hash{Hash: &h.MixHash},
		rlp.String{Str: nonce[:]},
	}})
}

// Hash computes the block hash identifying this header.
func (h *Header) Hash() common.Hash {
	return common.Keccak256(h.Encode())
}
