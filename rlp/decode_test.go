// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package rlp

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"testing"
)

func TestDecode_List(t *testing.T) {
	testWithRlpLists(t, func(t *testing.T, rlp []byte, item List) {
		testDecoder(t, rlp, item)
	})
}

func TestDecode_Strings(t *testing.T) {
	testWithRlpStrings(t, func(t *testing.T, rlp []byte, item String) {
		testDecoder(t, rlp, item)
	})
}

func TestDecode_Uint64(t *testing.T) {
	testWithRlpUint64(t, func(t *testing.T, rlp []byte, item Uint64) {
		testDecoder(t, rlp, item)
		raw, err := DecodeRaw(rlp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, err := raw.Uint64(); err != nil || got != item.Value {
			t.Errorf("unexpected value, wanted %d, got %d, err %v", item.Value, got, err)
		}
	})
}

func TestDecode_BigInt(t *testing.T) {
	testWithRlpBigInt(t, func(t *testing.T, rlp []byte, item BigInt) {
		testDecoder(t, rlp, item)
		raw, err := DecodeRaw(rlp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, err := raw.BigInt(); err != nil || got.Cmp(item.Value) != 0 {
			t.Errorf("unexpected value, wanted %v, got %v, err %v", item.Value, got, err)
		}
	})
}

func TestDecode_Hash(t *testing.T) {
	testWithRlpHash(t, func(t *testing.T, rlp []byte, item Hash) {
		testDecoder(t, rlp, item)
	})
}

func TestReadSize_All_Correct_Sizes(t *testing.T) {
	want := uint64(0)
	for i := 1; i <= 8; i++ {
		b := bytes.Repeat([]byte{0xff}, i)
		got, err := readSize(b, byte(i))
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		want = want<<8 | 0xFF
		if got != want {
			t.Errorf("invalid result for readSize, wanted %d, got %d", want, got)
		}
	}
}

func TestReadSize_All_InCorrect_Size(t *testing.T) {
	if _, err := readSize(make([]byte, 1), 4); !errors.Is(err, ErrMalformedLength) {
		t.Errorf("expected %v, got %v", ErrMalformedLength, err)
	}
}

func TestDecoder_Corrupted_RLPs(t *testing.T) {
	tests := []struct {
		rlp  []byte
		want error
	}{
		{[]byte{}, ErrEmptyInput},
		{[]byte{0x80 + 1}, ErrMalformedLength},           // short string with missing payload
		{[]byte{0xb7 + 1}, ErrMalformedLength},           // long string with missing size
		{[]byte{0xb7 + 1, 60, 1, 2}, ErrMalformedLength}, // long string with missing payload
		{[]byte{0xc0 + 1}, ErrMalformedLength},           // short list with missing payload
		{[]byte{0xf7 + 1}, ErrMalformedLength},           // long list with missing size
		{[]byte{0xf7 + 8, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, ErrMalformedLength},
		{[]byte{0x80, 0x80}, ErrTrailingBytes},                // two short strings
		{[]byte{0xc0 + 2, 0xc0 + 2, 0x1}, ErrMalformedLength}, // inner list missing payload
		{[]byte{0xc3, 0x01, 0x83, 0x01}, ErrMalformedLength},  // inner string exceeds list
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%x", test.rlp), func(t *testing.T) {
			if _, err := Decode(test.rlp); !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
		})
	}
}

func TestSplit_ReturnsRemainder(t *testing.T) {
	buf := []byte{0x83, 'd', 'o', 'g', 0xc1, 0x01, 0x7f}
	first, rest, err := Split(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := first.Bytes(); string(got) != "dog" {
		t.Errorf("unexpected first item: %q", got)
	}
	if want := []byte{0xc1, 0x01, 0x7f}; !bytes.Equal(rest, want) {
		t.Errorf("unexpected remainder, wanted %x, got %x", want, rest)
	}
	if got, want := first.Encoded(), buf[:4]; !bytes.Equal(got, want) {
		t.Errorf("unexpected encoding, wanted %x, got %x", want, got)
	}
}

func TestRaw_AtProvidesRandomAccess(t *testing.T) {
	encoded := Encode(List{[]Item{
		Uint64{Value: 1},
		String{Str: []byte("second")},
		List{[]Item{Uint64{Value: 3}}},
		String{},
	}})
	raw, err := DecodeRaw(encoded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := raw.At(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := second.Bytes(); string(got) != "second" {
		t.Errorf("unexpected element: %q", got)
	}

	third, err := raw.At(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !third.IsList() {
		t.Errorf("expected third element to be a list")
	}
	if _, err := third.Bytes(); !errors.Is(err, ErrUnexpectedStructure) {
		t.Errorf("expected %v, got %v", ErrUnexpectedStructure, err)
	}

	fourth, err := raw.At(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fourth.IsEmpty() {
		t.Errorf("expected fourth element to be empty")
	}

	if _, err := raw.At(4); !errors.Is(err, ErrNoSuchElement) {
		t.Errorf("expected %v, got %v", ErrNoSuchElement, err)
	}
	if _, err := raw.At(-1); !errors.Is(err, ErrNoSuchElement) {
		t.Errorf("expected %v, got %v", ErrNoSuchElement, err)
	}
	if got, err := raw.Len(); err != nil || got != 4 {
		t.Errorf("unexpected length, wanted 4, got %d, err %v", got, err)
	}
}

func TestRaw_AtOnStringFails(t *testing.T) {
	raw, err := DecodeRaw([]byte{0x82, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := raw.At(0); !errors.Is(err, ErrUnexpectedStructure) {
		t.Errorf("expected %v, got %v", ErrUnexpectedStructure, err)
	}
	if _, err := raw.Iterator(); !errors.Is(err, ErrUnexpectedStructure) {
		t.Errorf("expected %v, got %v", ErrUnexpectedStructure, err)
	}
}

func TestRaw_AtReportsCorruptedSiblings(t *testing.T) {
	// the list header is valid but its second element overflows the list
	raw, err := DecodeRaw([]byte{0xc3, 0x01, 0x82, 0x01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := raw.At(0); err != nil {
		t.Errorf("unexpected error for intact element: %v", err)
	}
	if _, err := raw.At(1); !errors.Is(err, ErrMalformedLength) {
		t.Errorf("expected %v, got %v", ErrMalformedLength, err)
	}
}

func TestRaw_Uint64Overflow(t *testing.T) {
	raw, err := DecodeRaw(Encode(BigInt{Value: new(big.Int).Lsh(big.NewInt(1), 64)}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := raw.Uint64(); !errors.Is(err, ErrValueOverflow) {
		t.Errorf("expected %v, got %v", ErrValueOverflow, err)
	}
}

func TestIterator_IsLazyAndRestartable(t *testing.T) {
	buf := append(Encode(Uint64{Value: 1}), Encode(Uint64{Value: 2})...)
	buf = append(buf, Encode(Uint64{Value: 3})...)
	iter := NewIterator(buf)

	collect := func() []uint64 {
		res := []uint64{}
		for iter.Next() {
			value, err := iter.Value().Uint64()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			res = append(res, value)
		}
		if err := iter.Err(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return res
	}

	if got := collect(); fmt.Sprint(got) != "[1 2 3]" {
		t.Errorf("unexpected values: %v", got)
	}
	if iter.Next() {
		t.Errorf("exhausted iterator should not produce more values")
	}
	iter.Reset()
	if got := iter.Index(); got != -1 {
		t.Errorf("unexpected index after reset: %d", got)
	}
	if got := collect(); fmt.Sprint(got) != "[1 2 3]" {
		t.Errorf("unexpected values after reset: %v", got)
	}
}

func TestIterator_StopsAtCorruptedItem(t *testing.T) {
	iter := NewIterator([]byte{0x01, 0x02, 0x85, 0x01})
	count := 0
	for iter.Next() {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 intact items, got %d", count)
	}
	if err := iter.Err(); !errors.Is(err, ErrMalformedLength) {
		t.Errorf("expected %v, got %v", ErrMalformedLength, err)
	}
}

// testDecoder runs a test for decoding an item.
func testDecoder(t *testing.T, rlp []byte, item Item) {
	t.Run(fmt.Sprintf("%x->%x", rlp, item), func(t *testing.T) {
		got, err := Decode(rlp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !equal(got, item) {
			t.Errorf("invalid decoding, wanted %v, got %v, input %v", item, got, rlp)
		}
	})
}

func FuzzDecode_ReEncodingIsStable(f *testing.F) {
	f.Add([]byte{0x80})
	f.Add([]byte{0xc7, 0xc0, 0xc1, 0xc0, 0xc3, 0xc0, 0xc1, 0xc0})
	f.Add(Encode(List{[]Item{Uint64{Value: 1 << 40}, String{Str: make([]byte, 60)}}}))

	f.Fuzz(func(t *testing.T, data []byte) {
		item, err := Decode(data)
		if err != nil {
			return
		}
		encoded := Encode(item)
		restored, err := Decode(encoded)
		if err != nil {
			t.Fatalf("failed to decode re-encoded item %x: %v", encoded, err)
		}
		if !bytes.Equal(Encode(restored), encoded) {
			t.Errorf("re-encoding is not stable for %x", data)
		}
	})
}
