package main

import (
	"bytes"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/alpha0010/terra-awg/structure"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Undo zstd compression if the data carries a zstd frame header.
func decompressStructure(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer dec.Close()
	plain, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "zstd")
	}
	return plain, nil
}

// Decode a structure held in memory, raw or zstd compressed.
func LoadStructure(data []byte) (*structure.Structure, error) {
	plain, err := decompressStructure(data)
	if err != nil {
		return nil, err
	}
	return structure.Decode(bytes.NewReader(plain))
}

// Load an input file and decode the structure it holds.
func LoadStructureFile(inputPath string) (*structure.Structure, error) {
	dat, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return LoadStructure(dat)
}
