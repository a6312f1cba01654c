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
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
)

// TxType identifies the envelope of a transaction.
type TxType byte

const (
	LegacyTxType     TxType = 0
	AccessListTxType TxType = 1
	DynamicFeeTxType TxType = 2
)

func (t TxType) String() string {
	switch t {
	case LegacyTxType:
		return "legacy"
	case AccessListTxType:
		return "access-list"
	case DynamicFeeTxType:
		return "dynamic-fee"
	}
	return fmt.Sprintf("unknown(%d)", byte(t))
}

// AccessTuple is an entry of an EIP-2930 access list.
type AccessTuple struct {
	Address     common.Address
	StorageKeys []common.Key
}

// Signature is the secp256k1 signature of a transaction. Only the parity of
// the recovery value is retained.
type Signature struct {
	R          *big.Int
	S          *big.Int
	OddYParity bool
}

// Transaction is the canonical form of a signed transaction. Fields not used
// by the transaction's type are left at their zero value.
type Transaction struct {
	Type       TxType
	ChainID    *big.Int
	Nonce      uint64
	GasPrice   *big.Int
	GasTipCap  *big.Int
	GasFeeCap  *big.Int
	Gas        uint64
	To         *common.Address
	Value      *big.Int
	Input      []byte
	AccessList []AccessTuple
	Signature  Signature
}

// IsContractCreation returns true if the transaction has no recipient.
func (tx *Transaction) IsContractCreation() bool {
	return tx.To == nil
}
