package structure

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Stream reads the primitive types of a structure file from a byte source.
// It never seeks backwards.
type Stream struct {
	r      io.Reader
	offset int64
	buf    [4]byte
}

func NewStream(r io.Reader) *Stream {
	return &Stream{r: r}
}

// Offset is the number of bytes consumed so far.
func (s *Stream) Offset() int64 {
	return s.offset
}

func (s *Stream) fail(start int64, field string, kind error, detail string) error {
	return &DecodeError{Offset: start, Field: field, Detail: detail, Err: kind}
}

func (s *Stream) read(field string, dst []byte) error {
	start := s.offset
	n, err := io.ReadFull(s.r, dst)
	s.offset += int64(n)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return s.fail(start, field, ErrTruncatedStream,
			fmt.Sprintf("need %d bytes, have %d", len(dst), n))
	}
	if err != nil {
		return s.fail(start, field, ErrTruncatedStream, err.Error())
	}
	return nil
}

func (s *Stream) ReadUint8(field string) (uint8, error) {
	if err := s.read(field, s.buf[:1]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}

func (s *Stream) ReadUint16(field string) (uint16, error) {
	if err := s.read(field, s.buf[:2]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(s.buf[:2]), nil
}

func (s *Stream) ReadUint32(field string) (uint32, error) {
	if err := s.read(field, s.buf[:4]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(s.buf[:4]), nil
}

// ReadString reads a LEB128 length prefix followed by that many bytes of UTF-8.
func (s *Stream) ReadString(field string) (string, error) {
	start := s.offset
	var length uint64
	shift := uint(0)
	for {
		b, err := s.ReadUint8(field)
		if err != nil {
			return "", err
		}
		if shift > 63 || (shift == 63 && b&0x7e != 0) {
			return "", s.fail(start, field, ErrCorruptStructure, "length prefix overflows")
		}
		length |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}
		shift += 7
	}

	// Copy in bounded steps so a huge length on a short stream fails on
	// truncation instead of allocating the whole claimed size.
	raw := make([]byte, 0, min(length, 4096))
	chunk := make([]byte, 4096)
	for remaining := length; remaining > 0; {
		n := min(remaining, uint64(len(chunk)))
		if err := s.read(field, chunk[:n]); err != nil {
			return "", err
		}
		raw = append(raw, chunk[:n]...)
		remaining -= n
	}

	if _, _, err := transform.Bytes(encoding.UTF8Validator, raw); err != nil {
		return "", s.fail(start, field, ErrInvalidEncoding, err.Error())
	}
	return string(raw), nil
}

// ReadBitVec reads a 16-bit bit count followed by the packed bits.
// Bits fill each byte starting from 0x01.
func (s *Stream) ReadBitVec(field string) ([]bool, error) {
	count, err := s.ReadUint16(field)
	if err != nil {
		return nil, err
	}
	bits := make([]bool, count)
	var b byte
	var mask byte = 0x80
	for i := range bits {
		if mask == 0x80 {
			b, err = s.ReadUint8(field)
			if err != nil {
				return nil, err
			}
			mask = 0x01
		} else {
			mask <<= 1
		}
		bits[i] = b&mask == mask
	}
	return bits, nil
}
