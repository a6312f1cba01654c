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

	"github.com/Fantom-foundation/legacy-import/rlp"
)

// Result is a single record produced by a Stream. If the record could not be
// decoded, Err is set and Value is the zero value.
type Result[T any] struct {
	// Index is the position of the record in the stream, counting records
	// that failed to decode.
	Index int
	// Offset is the byte position of the top-level item the record was
	// read from. It is not set for JSON dumps.
	Offset uint64
	Value  T
	Err    error
}

// Stream reads a sequence of records from a dump. It is the lenient boundary
// of the import: a record that is correctly framed but can not be decoded is
// reported as a Result with an error, and reading continues with the next
// record. Framing errors end the stream, since the position of the next
// record is unknown; they are reported by Err.
//
// A Stream is not safe for concurrent use.
type Stream[T any] struct {
	reader  *rlp.Reader
	closer  io.Closer
	decode  func(rlp.Raw) (T, error)
	expand  func(rlp.Raw) ([]rlp.Raw, error)
	pending []rlp.Raw
	offset  uint64
	end     uint64 // end of the entered list, if bounded is set
	bounded bool
	index   int
	err     error
}

func newStream[T any](in io.Reader, decode func(rlp.Raw) (T, error)) *Stream[T] {
	return &Stream[T]{
		reader: rlp.NewReader(in),
		decode: decode,
		expand: func(raw rlp.Raw) ([]rlp.Raw, error) { return []rlp.Raw{raw}, nil },
	}
}

// Next produces the next record. The second result is false once the stream
// is exhausted or broken; Err distinguishes the two cases.
func (s *Stream[T]) Next() (Result[T], bool) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return Result[T]{}, false
		}
		if s.bounded && s.reader.Offset() >= s.end {
			return Result[T]{}, false
		}
		s.offset = s.reader.Offset()
		raw, err := s.reader.Next()
		if errors.Is(err, io.EOF) {
			if s.bounded {
				s.err = fmt.Errorf("%w: stream ended at offset %d within list ending at %d", rlp.ErrMalformedLength, s.offset, s.end)
			}
			return Result[T]{}, false
		}
		if err != nil {
			s.err = err
			return Result[T]{}, false
		}
		if s.bounded && s.reader.Offset() > s.end {
			s.err = fmt.Errorf("%w: item at offset %d exceeds list ending at %d", rlp.ErrMalformedLength, s.offset, s.end)
			return Result[T]{}, false
		}
		records, err := s.expand(raw)
		if err != nil {
			return s.failure(err), true
		}
		s.pending = records
	}

	raw := s.pending[0]
	s.pending = s.pending[1:]
	value, err := s.decode(raw)
	if err != nil {
		return s.failure(err), true
	}
	res := Result[T]{Index: s.index, Offset: s.offset, Value: value}
	s.index++
	return res, true
}

func (s *Stream[T]) failure(err error) Result[T] {
	res := Result[T]{Index: s.index, Offset: s.offset, Err: fmt.Errorf("record %d at offset %d: %w", s.index, s.offset, err)}
	s.index++
	return res
}

// Err returns the error that ended the stream, nil if the stream ended at
// its regular end.
func (s *Stream[T]) Err() error {
	return s.err
}

// Close releases the underlying input, if the stream owns it.
func (s *Stream[T]) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// All collects the records of the given stream. Records failing to decode
// are returned as a joined error, together with all successfully decoded
// records. A broken stream fails the whole operation.
func All[T any](s *Stream[T]) ([]T, error) {
	var res []T
	var errs []error
	for {
		next, ok := s.Next()
		if !ok {
			break
		}
		if next.Err != nil {
			errs = append(errs, next.Err)
			continue
		}
		res = append(res, next.Value)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return res, errors.Join(errs...)
}
