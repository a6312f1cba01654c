// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstError_IsError(t *testing.T) {
	var _ error = ConstError("bla")
}

func TestConstError_IsFoundInWrappedAndJoinedErrors(t *testing.T) {
	target := ConstError("target")
	tests := map[string]struct {
		err   error
		found bool
	}{
		"nil":       {nil, false},
		"plain":     {target, true},
		"unrelated": {fmt.Errorf("unrelated"), false},
		"wrapped":   {fmt.Errorf("record 3 at offset 12: %w", target), true},
		"nested":    {fmt.Errorf("import: %w", fmt.Errorf("%w: detail", target)), true},
		"joined":    {errors.Join(fmt.Errorf("unrelated"), target), true},
		"equal":     {ConstError("target"), true},
		"different": {ConstError("other"), false},
	}

	for name, test := range tests {
		if want, got := test.found, errors.Is(test.err, target); want != got {
			t.Errorf("%s: unexpected result for %v, wanted %t, got %t", name, test.err, want, got)
		}
	}
}
