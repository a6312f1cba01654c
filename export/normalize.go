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
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/types"
)

// ErrCodeHashMismatch is reported if a state dump entry reports a code hash
// that does not match its bytecode.
const ErrCodeHashMismatch = common.ConstError("code hash does not match code")

// NormalizeHeader converts an exported header into its canonical form. The
// exported nonce bytes are read as a little-endian integer.
func NormalizeHeader(h *SourceHeader) types.Header {
	var nonce [8]byte
	copy(nonce[:], h.Nonce)
	return types.Header{
		ParentHash:       h.ParentHash,
		OmmersHash:       h.UncleHash,
		Beneficiary:      h.Coinbase,
		StateRoot:        h.Root,
		TransactionsRoot: h.TxHash,
		ReceiptsRoot:     h.ReceiptHash,
		LogsBloom:        h.Bloom,
		Difficulty:       bigOrZero(h.Difficulty),
		Number:           h.Number,
		GasLimit:         h.GasLimit,
		GasUsed:          h.GasUsed,
		Timestamp:        h.Time,
		ExtraData:        h.Extra,
		MixHash:          h.MixDigest,
		Nonce:            binary.LittleEndian.Uint64(nonce[:]),
	}
}

// NormalizeTransaction converts an exported transaction into its canonical
// form. The signature parity is the lowest bit of V; no chain id offset is
// removed from V of legacy transactions.
func NormalizeTransaction(tx *SourceTransaction) types.Transaction {
	res := types.Transaction{
		Type:     tx.Type,
		Nonce:    tx.Nonce,
		GasPrice: tx.GasPrice,
		Gas:      tx.Gas,
		To:       tx.To,
		Value:    bigOrZero(tx.Value),
		Input:    tx.Data,
		Signature: types.Signature{
			R:          bigOrZero(tx.R),
			S:          bigOrZero(tx.S),
			OddYParity: tx.V != nil && tx.V.Bit(0) == 1,
		},
	}
	if tx.Type != types.LegacyTxType {
		res.ChainID = bigOrZero(tx.ChainID)
		res.AccessList = tx.AccessList
	}
	if tx.Type == types.DynamicFeeTxType {
		res.GasTipCap = bigOrZero(tx.GasTipCap)
		res.GasFeeCap = bigOrZero(tx.GasFeeCap)
	} else {
		res.GasPrice = bigOrZero(tx.GasPrice)
	}
	return res
}

// NormalizeBlock converts an exported block with all its transactions and
// uncles into its canonical form.
func NormalizeBlock(b *SourceBlock) types.Block {
	res := types.Block{
		Header:       NormalizeHeader(&b.Header),
		Transactions: make([]types.Transaction, 0, len(b.Transactions)),
		Ommers:       make([]types.Header, 0, len(b.Uncles)),
	}
	for _, tx := range b.Transactions {
		res.Transactions = append(res.Transactions, NormalizeTransaction(tx))
	}
	for _, uncle := range b.Uncles {
		res.Ommers = append(res.Ommers, NormalizeHeader(uncle))
	}
	return res
}

// NormalizeReceipt converts an exported receipt. Exporters write the zero
// address if no contract was created; this is mapped to an absent address.
func NormalizeReceipt(r *SourceReceipt) types.Receipt {
	contract := r.ContractAddress
	if contract != nil && *contract == (common.Address{}) {
		contract = nil
	}
	return types.Receipt{
		Type:              r.Type,
		PostState:         r.PostState,
		Status:            r.Status,
		CumulativeGasUsed: r.CumulativeGasUsed,
		Bloom:             r.Bloom,
		Logs:              r.Logs,
		TxHash:            r.TxHash,
		ContractAddress:   contract,
		GasUsed:           r.GasUsed,
		BlockHash:         r.BlockHash,
		BlockNumber:       bigOrZero(r.BlockNumber),
		TransactionIndex:  r.TransactionIndex,
		L1GasPrice:        bigOrZero(r.L1GasPrice),
		L1GasUsed:         bigOrZero(r.L1GasUsed),
		L1Fee:             bigOrZero(r.L1Fee),
		L1FeeScalar:       r.L1FeeScalar,
	}
}

// NormalizeGenesisAccount converts a genesis allocation entry. The code hash
// is only set for accounts with code.
func NormalizeGenesisAccount(a *GenesisAccount) types.Account {
	return types.NewAccount(a.Nonce.value(), a.Balance, a.Code, a.Storage)
}

// NormalizeStateAccount converts a state dump entry. A code hash reported by
// the exporter must be consistent with the exported code.
func NormalizeStateAccount(a *StateAccount) (types.Account, error) {
	res := types.NewAccount(a.Nonce.value(), a.Balance, a.Code, a.Storage)
	if a.CodeHash == nil {
		return res, nil
	}
	want := common.EmptyCodeHash
	if res.CodeHash != nil {
		want = *res.CodeHash
	}
	if *a.CodeHash != want {
		return types.Account{}, fmt.Errorf("%w: reported %v, code hashes to %v", ErrCodeHashMismatch, *a.CodeHash, want)
	}
	return res, nil
}

// GenesisHeader derives the header of the genesis block. Only difficulty,
// gas limit and extra data are taken from the genesis file; all other fields
// have the values of an empty block, with the given state root.
func GenesisHeader(g *Genesis, stateRoot common.Hash) (types.Header, error) {
	difficulty, err := common.ParseBig(g.Difficulty)
	if err != nil {
		return types.Header{}, fmt.Errorf("invalid genesis difficulty: %w", err)
	}
	gasLimit, err := common.ParseUint64(g.GasLimit)
	if err != nil {
		return types.Header{}, fmt.Errorf("invalid genesis gas limit: %w", err)
	}
	extra, err := common.DecodeHex(g.ExtraData)
	if err != nil {
		return types.Header{}, fmt.Errorf("invalid genesis extra data: %w", err)
	}
	return types.Header{
		OmmersHash:       common.EmptyOmmersHash,
		StateRoot:        stateRoot,
		TransactionsRoot: common.EmptyRootHash,
		ReceiptsRoot:     common.EmptyRootHash,
		Difficulty:       difficulty,
		GasLimit:         gasLimit,
		ExtraData:        bytes.Clone(extra),
	}, nil
}

func bigOrZero(value *big.Int) *big.Int {
	if value == nil {
		return new(big.Int)
	}
	return value
}
