package structure

import "bytes"

// Writer assembles raw structure file bytes, mirroring the Stream primitives.
// It is used to build fixtures and hand-written structure files.
type Writer struct {
	buf     bytes.Buffer
	bitData byte
	// Next bit to write in the pending bit vector byte. 0 means none pending.
	bitMask byte
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) AddByte(v byte) *Writer {
	w.buf.WriteByte(v)
	return w
}

func (w *Writer) AddBytes(v ...byte) *Writer {
	w.buf.Write(v)
	return w
}

func (w *Writer) AddWord(v uint16) *Writer {
	w.buf.WriteByte(byte(v & 255))
	w.buf.WriteByte(byte(v >> 8))
	return w
}

func (w *Writer) AddLong(v uint32) *Writer {
	for i := 0; i < 4; i++ {
		w.buf.WriteByte(byte(v >> (8 * i)))
	}
	return w
}

// AddString writes a LEB128 length followed by the raw bytes of str.
func (w *Writer) AddString(str string) *Writer {
	n := uint64(len(str))
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			w.buf.WriteByte(b | 0x80)
			continue
		}
		w.buf.WriteByte(b)
		break
	}
	w.buf.WriteString(str)
	return w
}

// AddBitVec writes a bit count and the packed bits, low bit first.
func (w *Writer) AddBitVec(bits []bool) *Writer {
	w.AddWord(uint16(len(bits)))
	w.bitMask = 0
	for _, bit := range bits {
		if w.bitMask == 0 {
			w.bitData = 0
			w.bitMask = 0x01
		}
		if bit {
			w.bitData |= w.bitMask
		}
		w.bitMask <<= 1
		if w.bitMask == 0 {
			w.buf.WriteByte(w.bitData)
		}
	}
	if w.bitMask != 0 {
		w.buf.WriteByte(w.bitData)
		w.bitMask = 0
	}
	return w
}

// AddHeader writes everything that precedes the tile records.
func (w *Writer) AddHeader(name string, version uint32, framed []bool, width uint32, height uint32) *Writer {
	return w.AddString(name).
		AddLong(version).
		AddBitVec(framed).
		AddLong(width).
		AddLong(height)
}
