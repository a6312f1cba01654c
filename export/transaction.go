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
	"github.com/Fantom-foundation/legacy-import/types"
)

// SourceTransaction is a signed transaction as found in a block dump. Legacy
// transactions are plain lists, typed transactions are byte strings holding
// the type byte followed by the encoded payload list. For typed transactions
// V is the y-parity of the signature.
type SourceTransaction struct {
	Type       types.TxType
	ChainID    *big.Int
	Nonce      uint64
	GasPrice   *big.Int
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         *common.Address
	Value      *big.Int
	Data       []byte
	AccessList []types.AccessTuple
	V          *big.Int
	R          *big.Int
	S          *big.Int
}

// DecodeTransaction decodes a transaction embedded in a block body.
func DecodeTransaction(raw rlp.Raw) (*SourceTransaction, error) {
	if raw.IsList() {
		return decodeLegacyTransaction(raw)
	}
	envelope, _ := raw.Bytes()
	return decodeTypedTransaction(envelope)
}

// UnmarshalTransaction decodes the canonical binary form of a transaction,
// the list encoding for legacy transactions and the bare envelope otherwise.
func UnmarshalTransaction(data []byte) (*SourceTransaction, error) {
	if len(data) > 0 && data[0] >= 0xc0 {
		raw, err := rlp.DecodeRaw(data)
		if err != nil {
			return nil, fmt.Errorf("transaction: %w", err)
		}
		return decodeLegacyTransaction(raw)
	}
	return decodeTypedTransaction(data)
}

func decodeLegacyTransaction(raw rlp.Raw) (*SourceTransaction, error) {
	r, err := newFieldReader("legacy transaction", raw)
	if err != nil {
		return nil, err
	}
	tx := &SourceTransaction{Type: types.LegacyTxType}
	r.uint64(&tx.Nonce)
	r.bigInt(&tx.GasPrice)
	r.uint64(&tx.Gas)
	r.optionalAddress(&tx.To)
	r.bigInt(&tx.Value)
	r.bytes(&tx.Data)
	r.bigInt(&tx.V)
	r.bigInt(&tx.R)
	r.bigInt(&tx.S)
	if err := r.done(); err != nil {
		return nil, err
	}
	return tx, nil
}

func decodeTypedTransaction(envelope []byte) (*SourceTransaction, error) {
	if len(envelope) == 0 {
		return nil, fmt.Errorf("%w: empty envelope", ErrUnsupportedTxType)
	}
	txType := types.TxType(envelope[0])
	if txType != types.AccessListTxType && txType != types.DynamicFeeTxType {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTxType, txType)
	}
	payload, err := rlp.DecodeRaw(envelope[1:])
	if err != nil {
		return nil, fmt.Errorf("%v transaction: %w", txType, err)
	}
	r, err := newFieldReader(txType.String()+" transaction", payload)
	if err != nil {
		return nil, err
	}

	tx := &SourceTransaction{Type: txType}
	r.bigInt(&tx.ChainID)
	r.uint64(&tx.Nonce)
	if txType == types.AccessListTxType {
		r.bigInt(&tx.GasPrice)
	} else {
		r.bigInt(&tx.GasTipCap)
		r.bigInt(&tx.GasFeeCap)
	}
	r.uint64(&tx.Gas)
	r.optionalAddress(&tx.To)
	r.bigInt(&tx.Value)
	r.bytes(&tx.Data)
	tx.AccessList = []types.AccessTuple{}
	r.list(func(_ int, raw rlp.Raw) error {
		tuple, err := decodeAccessTuple(raw)
		if err != nil {
			return err
		}
		tx.AccessList = append(tx.AccessList, tuple)
		return nil
	})
	r.bigInt(&tx.V)
	r.bigInt(&tx.R)
	r.bigInt(&tx.S)
	if err := r.done(); err != nil {
		return nil, err
	}
	return tx, nil
}

func decodeAccessTuple(raw rlp.Raw) (types.AccessTuple, error) {
	res := types.AccessTuple{StorageKeys: []common.Key{}}
	r, err := newFieldReader("access tuple", raw)
	if err != nil {
		return res, err
	}
	r.address(&res.Address)
	r.list(func(_ int, raw rlp.Raw) error {
		var key common.Key
		if err := fixed(key[:], raw); err != nil {
			return err
		}
		res.StorageKeys = append(res.StorageKeys, key)
		return nil
	})
	return res, r.done()
}

// Encode produces the canonical binary form of the transaction, see
// UnmarshalTransaction.
func (tx *SourceTransaction) Encode() []byte {
	if tx.Type == types.LegacyTxType {
		return rlp.Encode(tx.payload())
	}
	return rlp.EncodeInto([]byte{byte(tx.Type)}, tx.payload())
}

// item produces the representation of the transaction within a block body.
func (tx *SourceTransaction) item() rlp.Item {
	if tx.Type == types.LegacyTxType {
		return tx.payload()
	}
	return rlp.String{Str: tx.Encode()}
}

func (tx *SourceTransaction) payload() rlp.List {
	to := rlp.String{}
	if tx.To != nil {
		to.Str = tx.To[:]
	}
	if tx.Type == types.LegacyTxType {
		return rlp.List{Items: []rlp.Item{
			rlp.Uint64{Value: tx.Nonce},
			rlp.BigInt{Value: tx.GasPrice},
			rlp.Uint64{Value: tx.Gas},
			to,
			rlp.BigInt{Value: tx.Value},
			rlp.String{Str: tx.Data},
			rlp.BigInt{Value: tx.V},
			rlp.BigInt{Value: tx.R},
			rlp.BigInt{Value: tx.S},
		}}
	}

	items := []rlp.Item{
		rlp.BigInt{Value: tx.ChainID},
		rlp.Uint64{Value: tx.Nonce},
	}
	if tx.Type == types.AccessListTxType {
		items = append(items, rlp.BigInt{Value: tx.GasPrice})
	} else {
		items = append(items, rlp.BigInt{Value: tx.GasTipCap}, rlp.BigInt{Value: tx.GasFeeCap})
	}
	accessList := make([]rlp.Item, 0, len(tx.AccessList))
	for _, tuple := range tx.AccessList {
		keys := make([]rlp.Item, 0, len(tuple.StorageKeys))
		for i := range tuple.StorageKeys {
			keys = append(keys, rlp.String{Str: tuple.StorageKeys[i][:]})
		}
		address := tuple.Address
		accessList = append(accessList, rlp.List{Items: []rlp.Item{
			rlp.String{Str: address[:]},
			rlp.List{Items: keys},
		}})
	}
	items = append(items,
		rlp.Uint64{Value: tx.Gas},
		to,
		rlp.BigInt{Value: tx.Value},
		rlp.String{Str: tx.Data},
		rlp.List{Items: accessList},
		rlp.BigInt{Value: tx.V},
		rlp.BigInt{Value: tx.R},
		rlp.BigInt{Value: tx.S},
	)
	return rlp.List{Items: items}
}
