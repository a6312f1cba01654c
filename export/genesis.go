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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/common/amount"
)

// Genesis is the genesis specification of a chain as written by the
// exporting node.
type Genesis struct {
	Config     GenesisConfig                     `json:"config"`
	Difficulty string                            `json:"difficulty"`
	GasLimit   string                            `json:"gasLimit"`
	ExtraData  string                            `json:"extradata"`
	Alloc      map[common.Address]GenesisAccount `json:"alloc"`
}

// GenesisAccount is the initial state of an account in the genesis
// allocation. Absent fields default to zero or empty values.
type GenesisAccount struct {
	Nonce   *Quantity                   `json:"nonce,omitempty"`
	Balance amount.Amount               `json:"balance"`
	Code    HexBytes                    `json:"code,omitempty"`
	Storage map[common.Key]common.Value `json:"storage,omitempty"`
}

// OptimismConfig holds the rollup specific fee market parameters.
type OptimismConfig struct {
	EIP1559Elasticity  uint64 `json:"eip1559Elasticity"`
	EIP1559Denominator uint64 `json:"eip1559Denominator"`
}

// GenesisConfig is the chain configuration of a genesis file.
type GenesisConfig struct {
	ChainName                     string         `json:"ChainName"`
	ChainID                       uint64         `json:"chainId"`
	HomesteadBlock                uint64         `json:"homesteadBlock"`
	EIP150Block                   uint64         `json:"eip150Block"`
	EIP150Hash                    string         `json:"eip150Hash"`
	EIP155Block                   uint64         `json:"eip155Block"`
	EIP158Block                   uint64         `json:"eip158Block"`
	ByzantiumBlock                uint64         `json:"byzantiumBlock"`
	ConstantinopleBlock           uint64         `json:"constantinopleBlock"`
	PetersburgBlock               uint64         `json:"petersburgBlock"`
	IstanbulBlock                 uint64         `json:"istanbulBlock"`
	MuirGlacierBlock              uint64         `json:"muirGlacierBlock"`
	BerlinBlock                   uint64         `json:"berlinBlock"`
	LondonBlock                   uint64         `json:"londonBlock"`
	ArrowGlacierBlock             uint64         `json:"arrowGlacierBlock"`
	GrayGlacierBlock              uint64         `json:"grayGlacierBlock"`
	MergeNetsplitBlock            uint64         `json:"mergeNetsplitBlock"`
	BedrockBlock                  uint64         `json:"bedrockBlock"`
	TerminalTotalDifficulty       uint64         `json:"terminalTotalDifficulty"`
	TerminalTotalDifficultyPassed bool           `json:"terminalTotalDifficultyPassed"`
	Optimism                      OptimismConfig `json:"optimism"`
}

// ReadGenesis parses a genesis file.
func ReadGenesis(in io.Reader) (*Genesis, error) {
	res := &Genesis{}
	if err := json.NewDecoder(in).Decode(res); err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	return res, nil
}

// Map serializes the configuration into a flat key/value form, keyed by the
// JSON names of the fields. Numbers are stored as 8-byte little-endian
// values, strings as their raw bytes and flags as a single 0 or 1 byte.
func (c *GenesisConfig) Map() map[string][]byte {
	le := func(value uint64) []byte {
		return binary.LittleEndian.AppendUint64(nil, value)
	}
	passed := []byte{0}
	if c.TerminalTotalDifficultyPassed {
		passed = []byte{1}
	}
	return map[string][]byte{
		"ChainName":                     []byte(c.ChainName),
		"chainId":                       le(c.ChainID),
		"homesteadBlock":                le(c.HomesteadBlock),
		"eip150Block":                   le(c.EIP150Block),
		"eip150Hash":                    []byte(c.EIP150Hash),
		"eip155Block":                   le(c.EIP155Block),
		"eip158Block":                   le(c.EIP158Block),
		"byzantiumBlock":                le(c.ByzantiumBlock),
		"constantinopleBlock":           le(c.ConstantinopleBlock),
		"petersburgBlock":               le(c.PetersburgBlock),
		"istanbulBlock":                 le(c.IstanbulBlock),
		"muirGlacierBlock":              le(c.MuirGlacierBlock),
		"berlinBlock":                   le(c.BerlinBlock),
		"londonBlock":                   le(c.LondonBlock),
		"arrowGlacierBlock":             le(c.ArrowGlacierBlock),
		"grayGlacierBlock":              le(c.GrayGlacierBlock),
		"mergeNetsplitBlock":            le(c.MergeNetsplitBlock),
		"bedrockBlock":                  le(c.BedrockBlock),
		"terminalTotalDifficulty":       le(c.TerminalTotalDifficulty),
		"terminalTotalDifficultyPassed": passed,
		"eip1559Elasticity":             le(c.Optimism.EIP1559Elasticity),
		"eip1559Denominator":            le(c.Optimism.EIP1559Denominator),
	}
}
