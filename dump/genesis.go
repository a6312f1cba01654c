// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package dump

import (
	"errors"

	"github.com/Fantom-foundation/legacy-import/export"
)

// LoadGenesis reads the genesis file at the given path.
func LoadGenesis(path string) (*export.Genesis, error) {
	in, err := Open(path)
	if err != nil {
		return nil, err
	}
	genesis, err := export.ReadGenesis(in)
	return genesis, errors.Join(err, in.Close())
}

// OpenState opens a state dump file and passes its accounts to the given
// visitor, see ReadState.
func OpenState(path string, visit func(Result[StateEntry]) error) error {
	in, err := Open(path)
	if err != nil {
		return err
	}
	return errors.Join(ReadState(in, visit), in.Close())
}
