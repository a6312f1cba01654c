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
	"fmt"
	"io"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/export"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StateEntry is a single account of a state dump.
type StateEntry struct {
	Address common.Address
	Account *export.StateAccount
}

// ErrStop may be returned by a visitor of ReadState to end the iteration
// early without reporting an error.
const ErrStop = common.ConstError("stop")

// ReadState reads a state dump, a JSON object mapping addresses to accounts,
// and passes the accounts to the given visitor in the order of the dump.
// Accounts are decoded one at a time, so the dump is never fully resident.
//
// Like Stream, this is a lenient boundary: an account that can not be
// decoded is passed to the visitor as a Result with an error. Malformed JSON
// ends the iteration. An error returned by the visitor stops the iteration
// and is returned.
func ReadState(in io.Reader, visit func(Result[StateEntry]) error) error {
	iter := jsoniter.Parse(json, in, 1<<16)
	index := 0
	var visitErr error
	iter.ReadMapCB(func(iter *jsoniter.Iterator, key string) bool {
		data := iter.SkipAndReturnBytes()
		if iter.Error != nil {
			return false
		}
		res := Result[StateEntry]{Index: index}
		index++
		address, err := common.HexToAddress(key)
		if err == nil {
			res.Value.Address = address
			res.Value.Account, err = export.UnmarshalStateAccount(data)
		}
		if err != nil {
			res.Err = fmt.Errorf("account %d (%s): %w", res.Index, key, err)
		}
		if err := visit(res); err != nil {
			visitErr = err
			return false
		}
		return true
	})
	if visitErr != nil {
		if errors.Is(visitErr, ErrStop) {
			return nil
		}
		return visitErr
	}
	if iter.Error != nil {
		return fmt.Errorf("invalid state dump: %w", iter.Error)
	}
	return nil
}

// LoadState reads a complete state dump into memory.
func LoadState(in io.Reader) (map[common.Address]*export.StateAccount, error) {
	res := map[common.Address]*export.StateAccount{}
	var errs []error
	err := ReadState(in, func(entry Result[StateEntry]) error {
		if entry.Err != nil {
			errs = append(errs, entry.Err)
			return nil
		}
		res[entry.Value.Address] = entry.Value.Account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, errors.Join(errs...)
}

// ExtractState copies the first n accounts of a state dump into a new,
// smaller state dump. Accounts are copied verbatim, including accounts that
// would fail to decode.
func ExtractState(in io.Reader, out io.Writer, n int) (int, error) {
	stream := jsoniter.NewStream(json, out, 1<<16)
	stream.WriteObjectStart()
	count := 0
	iter := jsoniter.Parse(json, in, 1<<16)
	iter.ReadMapCB(func(iter *jsoniter.Iterator, key string) bool {
		if count >= n {
			return false
		}
		data := iter.SkipAndReturnBytes()
		if iter.Error != nil {
			return false
		}
		if count > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(key)
		stream.WriteRaw(string(data))
		count++
		return true
	})
	if iter.Error != nil {
		return 0, fmt.Errorf("invalid state dump: %w", iter.Error)
	}
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")
	if err := stream.Flush(); err != nil {
		return 0, err
	}
	return count, stream.Error
}
