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
	"strings"

	"github.com/Fantom-foundation/legacy-import/common"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HexBytes is a byte string represented as 0x-prefixed hex in JSON.
type HexBytes []byte

func (b HexBytes) MarshalText() ([]byte, error) {
	return []byte(common.EncodeHex(b)), nil
}

func (b *HexBytes) UnmarshalText(text []byte) error {
	data, err := common.DecodeHex(string(text))
	if err != nil {
		return err
	}
	*b = data
	return nil
}

// Quantity is an unsigned 64-bit integer given in JSON either as a number or
// as a decimal or 0x-prefixed hex string.
type Quantity uint64

func (q *Quantity) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), "\"")
	if text == "null" {
		return nil
	}
	value, err := common.ParseUint64(text)
	if err != nil {
		return err
	}
	*q = Quantity(value)
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(q))
}

func (q *Quantity) value() uint64 {
	if q == nil {
		return 0
	}
	return uint64(*q)
}
