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
	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/common/amount"
)

// Account is the canonical state of a single account.
//
// CodeHash is nil if and only if the account has no code. It is never set to
// the hash of the empty input.
type Account struct {
	Nonce    uint64
	Balance  amount.Amount
	Code     []byte
	CodeHash *common.Hash
	Storage  map[common.Key]common.Value `cbor:"-"`
}

// HasCode returns true if the account carries a non-empty bytecode.
func (a *Account) HasCode() bool {
	return a.CodeHash != nil
}

// NewAccount creates an account, deriving the code hash from the given code.
func NewAccount(nonce uint64, balance amount.Amount, code []byte, storage map[common.Key]common.Value) Account {
	res := Account{
		Nonce:   nonce,
		Balance: balance,
		Storage: storage,
	}
	if len(code) > 0 {
		hash := common.Keccak256(code)
		res.Code = code
		res.CodeHash = &hash
	}
	return res
}
