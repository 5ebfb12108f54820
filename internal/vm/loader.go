package vm

// loader.go holds the object-image loader (§4.4). Images are big-endian on
// disk, host-endian in memory: a two-byte origin word followed by the
// program's words, each byte-swapped on the way in.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/nwillis/lc3vm/internal/log"
)

// Loader reads object images into a machine's memory.
type Loader struct {
	vm  *LC3
	log *log.Logger
}

// NewLoader returns a Loader that stores images into vm's memory.
func NewLoader(vm *LC3) *Loader {
	return &Loader{vm: vm, log: log.DefaultLogger()}
}

// LoadFile reads the object image at path and stores it into memory. It
// returns the number of words written.
func (l *Loader) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLoader, err)
	}

	obj, err := decodeImage(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrLoader, path, err)
	}

	l.log.Debug("loading image", "path", path, "origin", obj.Orig, "words", len(obj.Code))

	return l.Load(obj)
}

// Load stores obj's code starting at its origin address, overwriting
// whatever is already there — later loads at overlapping origins win
// (§8 scenario 5). Words that would fall past address 0xFFFF are silently
// truncated rather than rejected: an image at origin 0xFFFE that contains
// three words writes the first two at 0xFFFE and 0xFFFF and drops the third
// (§4.4, §8 scenario 7).
func (l *Loader) Load(obj Image) (int, error) {
	if len(obj.Code) == 0 {
		return 0, fmt.Errorf("%w: empty image", ErrLoader)
	}

	addr := obj.Orig

	for i, word := range obj.Code {
		if int(addr)+i > 0xFFFF {
			break
		}

		l.vm.Mem.Write(addr+Word(i), word)
	}

	n := len(obj.Code)
	if int(addr)+n > 0x10000 {
		n = 0x10000 - int(addr)
	}

	return n, nil
}

// Image is a decoded object file: an origin address and the words to store
// starting there.
type Image struct {
	Orig Word
	Code []Word
}

// decodeImage parses the on-disk big-endian format: a two-byte origin
// followed by any number of two-byte words.
func decodeImage(b []byte) (Image, error) {
	if len(b) < 2 {
		return Image{}, fmt.Errorf("%w: image too small", ErrLoader)
	}

	if len(b)%2 != 0 {
		return Image{}, fmt.Errorf("%w: odd number of bytes", ErrLoader)
	}

	r := bytes.NewReader(b)

	var orig uint16
	if err := binary.Read(r, binary.BigEndian, &orig); err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrLoader, err)
	}

	code := make([]Word, (len(b)-2)/2)
	if err := binary.Read(r, binary.BigEndian, code); err != nil {
		return Image{}, fmt.Errorf("%w: %w", ErrLoader, err)
	}

	return Image{Orig: Word(orig), Code: code}, nil
}
