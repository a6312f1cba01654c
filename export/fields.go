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
	"bytes"
	"fmt"
	"math/big"

	"github.com/Fantom-foundation/legacy-import/common"
	"github.com/Fantom-foundation/legacy-import/rlp"
)

// fieldReader consumes the fields of a positional record one after another.
// The first failure is retained and all subsequent reads are ignored, so a
// record decoder can read all of its fields and check for errors once.
type fieldReader struct {
	record string
	iter   *rlp.Iterator
	index  int
	err    error
}

func newFieldReader(record string, raw rlp.Raw) (*fieldReader, error) {
	iter, err := raw.Iterator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", record, err)
	}
	return &fieldReader{record: record, iter: iter, index: -1}, nil
}

func (r *fieldReader) next() (rlp.Raw, bool) {
	if r.err != nil {
		return rlp.Raw{}, false
	}
	r.index++
	if !r.iter.Next() {
		err := r.iter.Err()
		if err == nil {
			err = ErrMissingField
		}
		r.fail(err)
		return rlp.Raw{}, false
	}
	return r.iter.Value(), true
}

func (r *fieldReader) fail(err error) {
	if r.err == nil {
		r.err = &FieldError{Record: r.record, Index: r.index, Err: err}
	}
}

// done returns the first error encountered. Additional trailing fields are
// accepted, since exporters append optional fields to newer record versions.
func (r *fieldReader) done() error {
	return r.err
}

func (r *fieldReader) uint64(dst *uint64) {
	if raw, ok := r.next(); ok {
		value, err := raw.Uint64()
		if err != nil {
			r.fail(err)
			return
		}
		*dst = value
	}
}

func (r *fieldReader) uint8(dst *uint8) {
	var value uint64
	r.uint64(&value)
	if r.err == nil && value > 0xff {
		r.fail(fmt.Errorf("%w: %d does not fit into a byte", rlp.ErrValueOverflow, value))
		return
	}
	*dst = uint8(value)
}

func (r *fieldReader) bigInt(dst **big.Int) {
	if raw, ok := r.next(); ok {
		value, err := raw.BigInt()
		if err != nil {
			r.fail(err)
			return
		}
		*dst = value
	}
}

func (r *fieldReader) bytes(dst *[]byte) {
	if raw, ok := r.next(); ok {
		value, err := raw.Bytes()
		if err != nil {
			r.fail(err)
			return
		}
		*dst = bytes.Clone(value)
	}
}

func (r *fieldReader) string(dst *string) {
	var value []byte
	r.bytes(&value)
	*dst = string(value)
}

func (r *fieldReader) hash(dst *common.Hash) {
	if raw, ok := r.next(); ok {
		if err := fixed(dst[:], raw); err != nil {
			r.fail(err)
		}
	}
}

func (r *fieldReader) address(dst *common.Address) {
	if raw, ok := r.next(); ok {
		if err := fixed(dst[:], raw); err != nil {
			r.fail(err)
		}
	}
}

func (r *fieldReader) bloom(dst *common.Bloom) {
	if raw, ok := r.next(); ok {
		if err := fixed(dst[:], raw); err != nil {
			r.fail(err)
		}
	}
}

func (r *fieldReader) optionalAddress(dst **common.Address) {
	if raw, ok := r.next(); ok {
		address, err := optionalAddress(raw)
		if err != nil {
			r.fail(err)
			return
		}
		*dst = address
	}
}

// encoded retains the full encoding of the next field, whatever its kind.
func (r *fieldReader) encoded(dst *[]byte) {
	if raw, ok := r.next(); ok {
		*dst = bytes.Clone(raw.Encoded())
	}
}

// list calls the given function for every element of the next field, which
// must be a list. Errors of the function are attributed to the field.
func (r *fieldReader) list(element func(int, rlp.Raw) error) {
	raw, ok := r.next()
	if !ok {
		return
	}
	iter, err := raw.Iterator()
	if err != nil {
		r.fail(err)
		return
	}
	for iter.Next() {
		if err := element(iter.Index(), iter.Value()); err != nil {
			r.fail(fmt.Errorf("element %d: %w", iter.Index(), err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		r.fail(err)
	}
}

// optionalAddress decodes a recipient-like field. A zero-length string means
// that no address is present; any other value must be exactly 20 bytes.
func optionalAddress(raw rlp.Raw) (*common.Address, error) {
	data, err := raw.Bytes()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	address, err := common.AddressFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFieldSize, err)
	}
	return &address, nil
}

func fixed(dst []byte, raw rlp.Raw) error {
	data, err := raw.Bytes()
	if err != nil {
		return err
	}
	if len(data) != len(dst) {
		return fmt.Errorf("%w: wanted %d bytes, got %d", ErrInvalidFieldSize, len(dst), len(data))
	}
	copy(dst, data)
	return nil
}
