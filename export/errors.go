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

	"github.com/Fantom-foundation/legacy-import/common"
)

const (
	// ErrMissingField is reported if a record has fewer fields than required.
	ErrMissingField = common.ConstError("missing required field")
	// ErrInvalidFieldSize is reported if a fixed-width field has the wrong size.
	ErrInvalidFieldSize = common.ConstError("invalid field size")
	// ErrUnsupportedTxType is reported for transaction envelopes of unknown type.
	ErrUnsupportedTxType = common.ConstError("unsupported transaction type")
)

// FieldError locates a decoding failure at a positional field of a record.
type FieldError struct {
	Record string
	Index  int
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field %d: %v", e.Record, e.Index, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
