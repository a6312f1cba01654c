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
	"math/big"
	"testing"
)

func TestAddress_TextRoundTrip(t *testing.T) {
	address := Address{0x42, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x11}
	text, err := address.MarshalText()
	if err != nil {
		t.Fatalf("failed to marshal address: %v", err)
	}
	if got, want := string(text), "0x4200000000000000000000000000000000000011"; got != want {
		t.Errorf("unexpected text, wanted %v, got %v", want, got)
	}
	var restored Address
	if err := restored.UnmarshalText(text); err != nil {
		t.Fatalf("failed to unmarshal address: %v", err)
	}
	if restored != address {
		t.Errorf("unexpected address, wanted %v, got %v", address, restored)
	}
}

func TestAddress_UnmarshalRejectsWrongLength(t *testing.T) {
	tests := []string{"", "0x", "0x42", "0x420000000000000000000000000000000000001100"}
	for _, test := range tests {
		var address Address
		if err := address.UnmarshalText([]byte(test)); err == nil {
			t.Errorf("expected error for %q, got nil", test)
		}
	}
}

func TestKey_UnmarshalPadsShortValuesOnTheLeft(t *testing.T) {
	var key Key
	if err := key.UnmarshalText([]byte("0x0102")); err != nil {
		t.Fatalf("failed to unmarshal key: %v", err)
	}
	want := Key{}
	want[30], want[31] = 1, 2
	if key != want {
		t.Errorf("unexpected key, wanted %v, got %v", want, key)
	}

	var value Value
	if err := value.UnmarshalText([]byte("0x")); err != nil {
		t.Fatalf("failed to unmarshal value: %v", err)
	}
	if value != (Value{}) {
		t.Errorf("expected zero value, got %v", value)
	}
}

func TestHashFromBytes_RequiresExactLength(t *testing.T) {
	if _, err := HashFromBytes(make([]byte, 31)); err == nil {
		t.Errorf("expected error for short input")
	}
	hash, err := HashFromBytes(append(make([]byte, 31), 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash[31] != 7 {
		t.Errorf("unexpected hash content: %v", hash)
	}
	if _, err := AddressFromBytes(make([]byte, 21)); err == nil {
		t.Errorf("expected error for long address")
	}
}

func TestParseBig_AcceptsDecimalAndHex(t *testing.T) {
	tests := []struct {
		input string
		want  *big.Int
	}{
		{"", big.NewInt(0)},
		{"0", big.NewInt(0)},
		{"1", big.NewInt(1)},
		{"15000000", big.NewInt(15000000)},
		{"0x", big.NewInt(0)},
		{"0x01", big.NewInt(1)},
		{"0xe4e1c0", big.NewInt(15000000)},
	}
	for _, test := range tests {
		got, err := ParseBig(test.input)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", test.input, err)
		}
		if got.Cmp(test.want) != 0 {
			t.Errorf("unexpected value for %q, wanted %v, got %v", test.input, test.want, got)
		}
	}
	for _, invalid := range []string{"-1", "abc", "0xzz"} {
		if _, err := ParseBig(invalid); err == nil {
			t.Errorf("expected error for %q", invalid)
		}
	}
}

func TestParseUint64_AcceptsDecimalAndHex(t *testing.T) {
	tests := map[string]uint64{
		"":         0,
		"0x":       0,
		"12":       12,
		"0x10":     16,
		"15000000": 15000000,
	}
	for input, want := range tests {
		got, err := ParseUint64(input)
		if err != nil {
			t.Fatalf("failed to parse %q: %v", input, err)
		}
		if got != want {
			t.Errorf("unexpected value for %q, wanted %d, got %d", input, want, got)
		}
	}
}

func TestDecodeHex_HandlesPrefixAndOddLength(t *testing.T) {
	got, err := DecodeHex("0x123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 0x01 || got[1] != 0x23 {
		t.Errorf("unexpected result: %x", got)
	}
	if _, err := DecodeHex("0xgg"); err == nil {
		t.Errorf("expected error for invalid hex")
	}
}

func TestEncodeHex_IsInverseOfDecodeHex(t *testing.T) {
	data := []byte{0, 1, 0xab, 0xff}
	text := EncodeHex(data)
	if got, want := text, "0x0001abff"; got != want {
		t.Errorf("unexpected text, wanted %v, got %v", want, got)
	}
	restored, err := DecodeHex(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(restored) != string(data) {
		t.Errorf("unexpected data, wanted %x, got %x", data, restored)
	}
}
