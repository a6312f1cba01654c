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
	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/common/amount"
)

// StateAccount is an entry of a JSON state dump, keyed by account address.
// CodeHash and Root are the values reported by the exporter; they are used
// for cross-checking only.
type StateAccount struct {
	Balance  amount.Amount               `json:"balance"`
	CodeHash *common.Hash                `json:"codeHash,omitempty"`
	Code     HexBytes                    `json:"code,omitempty"`
	Nonce    *Quantity                   `json:"nonce,omitempty"`
	Root     *common.Hash                `json:"root,omitempty"`
	Storage  map[common.Key]common.Value `json:"storage,omitempty"`
}

// UnmarshalStateAccount parses a single state dump entry.
func UnmarshalStateAccount(data []byte) (*StateAccount, error) {
	res := &StateAccount{}
	if err := json.Unmarshal(data, res); err != nil {
		return nil, err
	}
	return res, nil
}
