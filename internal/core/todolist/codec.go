package todolist

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/colonyops/bounty/internal/core/ledger"
)

const discriminatorLen = 8

var (
	listDiscriminator = discriminator("TodoList")
	itemDiscriminator = discriminator("ListItem")
)

func discriminator(kind string) [discriminatorLen]byte {
	var d [discriminatorLen]byte
	sum := sha256.Sum256([]byte("account:" + kind))
	copy(d[:], sum[:discriminatorLen])
	return d
}

// EncodeList lays out l in a buffer of ListSpace bytes.
func EncodeList(l *List) ([]byte, error) {
	if len(l.Members) > int(l.Capacity) {
		return nil, fmt.Errorf("encode list: %d members exceed capacity %d", len(l.Members), l.Capacity)
	}

	w := newWriter(ListSpace(l.Name, l.Capacity))
	w.raw(listDiscriminator[:])
	w.raw(l.Owner[:])
	w.u8(l.Bump)
	w.u16(l.Capacity)
	w.str(l.Name)
	w.u32(uint32(len(l.Members)))
	for _, m := range l.Members {
		w.raw(m[:])
	}
	return w.bytes(), nil
}

// DecodeList parses list account data. Trailing padding is ignored.
func DecodeList(data []byte) (*List, error) {
	r := reader{buf: data}
	if err := r.expect(listDiscriminator); err != nil {
		return nil, err
	}

	l := &List{}
	r.addr(&l.Owner)
	l.Bump = r.u8()
	l.Capacity = r.u16()
	l.Name = r.str()

	n := r.u32()
	if r.err == nil && n > uint32(l.Capacity) {
		return nil, fmt.Errorf("%w: list holds %d members over capacity %d", ledger.ErrInvalidAccountData, n, l.Capacity)
	}
	l.Members = make([]ledger.Address, 0, n)
	for range n {
		var m ledger.Address
		r.addr(&m)
		l.Members = append(l.Members, m)
	}

	if r.err != nil {
		return nil, r.err
	}
	return l, nil
}

// EncodeItem lays out it in a buffer of ItemSpace bytes.
func EncodeItem(it *Item) ([]byte, error) {
	w := newWriter(ItemSpace(it.Name))
	w.raw(itemDiscriminator[:])
	w.raw(it.Creator[:])
	w.bool(it.CreatorConfirmed)
	w.bool(it.OwnerConfirmed)
	w.str(it.Name)
	return w.bytes(), nil
}

// DecodeItem parses item account data.
func DecodeItem(data []byte) (*Item, error) {
	r := reader{buf: data}
	if err := r.expect(itemDiscriminator); err != nil {
		return nil, err
	}

	it := &Item{}
	r.addr(&it.Creator)
	it.CreatorConfirmed = r.bool()
	it.OwnerConfirmed = r.bool()
	it.Name = r.str()

	if r.err != nil {
		return nil, r.err
	}
	return it, nil
}

type writer struct {
	buf  *bytes.Buffer
	size int
}

func newWriter(size int) *writer {
	return &writer{buf: bytes.NewBuffer(make([]byte, 0, size)), size: size}
}

func (w *writer) raw(b []byte) { w.buf.Write(b) }
func (w *writer) u8(v uint8)   { w.buf.WriteByte(v) }

func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
		return
	}
	w.u8(0)
}

func (w *writer) u16(v uint16) { w.buf.Write(binary.LittleEndian.AppendUint16(nil, v)) }
func (w *writer) u32(v uint32) { w.buf.Write(binary.LittleEndian.AppendUint32(nil, v)) }

func (w *writer) str(s string) {
	w.u32(uint32(len(s)))
	w.buf.WriteString(s)
}

// bytes pads the output to the reserved size.
func (w *writer) bytes() []byte {
	out := w.buf.Bytes()
	if pad := w.size - len(out); pad > 0 {
		out = append(out, make([]byte, pad)...)
	}
	return out
}

// reader consumes little-endian fields and records the first error.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ledger.ErrInvalidAccountData, n, r.off, len(r.buf))
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) expect(d [discriminatorLen]byte) error {
	b := r.take(discriminatorLen)
	if r.err != nil {
		return r.err
	}
	if !bytes.Equal(b, d[:]) {
		return fmt.Errorf("%w: unexpected account discriminator", ledger.ErrInvalidAccountData)
	}
	return nil
}

func (r *reader) addr(a *ledger.Address) {
	if b := r.take(ledger.AddressLen); b != nil {
		copy(a[:], b)
	}
}

func (r *reader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) bool() bool {
	switch v := r.u8(); v {
	case 0:
		return false
	case 1:
		return true
	default:
		if r.err == nil {
			r.err = fmt.Errorf("%w: invalid bool byte %d", ledger.ErrInvalidAccountData, v)
		}
		return false
	}
}

func (r *reader) u16() uint16 {
	if b := r.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (r *reader) str() string {
	n := r.u32()
	if b := r.take(int(n)); b != nil {
		return string(b)
	}
	return ""
}
