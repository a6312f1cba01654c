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

	"github.com/Fantom-foundation/legacy-import/export"
	"github.com/Fantom-foundation/legacy-import/rlp"
)

// NewBlockStream reads a block dump, a concatenation of top-level block
// records.
func NewBlockStream(in io.Reader) *Stream[*export.SourceBlock] {
	return newStream(in, export.DecodeBlock)
}

// NewHeaderStream reads a header dump, a concatenation of top-level header
// records.
func NewHeaderStream(in io.Reader) *Stream[*export.SourceHeader] {
	return newStream(in, export.DecodeHeader)
}

// NewReceiptStream reads a receipts dump. The dump starts with a single
// envelope byte followed by a list of receipts. Batches of receipts may be
// wrapped in additional list layers; these are flattened, and empty items
// are skipped.
func NewReceiptStream(in io.Reader) (*Stream[*export.SourceReceipt], error) {
	var envelope [1]byte
	if _, err := io.ReadFull(in, envelope[:]); err != nil {
		return nil, fmt.Errorf("failed to read receipts envelope: %w", err)
	}
	res := newStream(in, export.DecodeReceipt)
	size, err := res.reader.Enter()
	if err != nil {
		return nil, fmt.Errorf("invalid receipts dump: %w", err)
	}
	res.end = res.reader.Offset() + size
	res.bounded = true
	res.expand = func(raw rlp.Raw) ([]rlp.Raw, error) {
		return flattenReceipts(raw, nil)
	}
	return res, nil
}

func flattenReceipts(raw rlp.Raw, out []rlp.Raw) ([]rlp.Raw, error) {
	if isEmpty(raw) {
		return out, nil
	}
	if !raw.IsList() || export.IsReceipt(raw) {
		return append(out, raw), nil
	}
	iter, err := raw.Iterator()
	if err != nil {
		return out, err
	}
	for iter.Next() {
		if out, err = flattenReceipts(iter.Value(), out); err != nil {
			return out, err
		}
	}
	return out, iter.Err()
}

func isEmpty(raw rlp.Raw) bool {
	return len(raw.Content()) == 0
}

// OpenBlocks opens a block dump file.
func OpenBlocks(path string) (*Stream[*export.SourceBlock], error) {
	in, err := Open(path)
	if err != nil {
		return nil, err
	}
	res := NewBlockStream(in)
	res.closer = in
	return res, nil
}

// OpenHeaders opens a header dump file.
func OpenHeaders(path string) (*Stream[*export.SourceHeader], error) {
	in, err := Open(path)
	if err != nil {
		return nil, err
	}
	res := NewHeaderStream(in)
	res.closer = in
	return res, nil
}

// OpenReceipts opens a receipts dump file.
func OpenReceipts(path string) (*Stream[*export.SourceReceipt], error) {
	in, err := Open(path)
	if err != nil {
		return nil, err
	}
	res, err := NewReceiptStream(in)
	if err != nil {
		return nil, errors.Join(err, in.Close())
	}
	res.closer = in
	return res, nil
}
