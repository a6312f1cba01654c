// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package store

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
)

// codec serializes records as CBOR and compresses them with zstd.
type codec struct {
	encoder      cbor.EncMode
	compressor   *zstd.Encoder
	decompressor *zstd.Decoder
}

func newCodec() (*codec, error) {
	encoder, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	compressor, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	decompressor, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &codec{
		encoder:      encoder,
		compressor:   compressor,
		decompressor: decompressor,
	}, nil
}

func (c *codec) Marshal(value any) ([]byte, error) {
	data, err := c.encoder.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("could not encode value: %w", err)
	}
	return c.compressor.EncodeAll(data, nil), nil
}

func (c *codec) Unmarshal(compressed []byte, value any) error {
	data, err := c.decompressor.DecodeAll(compressed, nil)
	if err != nil {
		return fmt.Errorf("could not decompress data: %w", err)
	}
	if err := cbor.Unmarshal(data, value); err != nil {
		return fmt.Errorf("could not decode value: %w", err)
	}
	return nil
}

func (c *codec) Close() {
	c.decompressor.Close()
}
