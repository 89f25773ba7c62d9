package stream

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/dropbox/godropbox/errors"

	"github.com/andileco/csvsort"
)

// DefaultBufferSize is the file I/O buffer size used when none is
// configured.
const DefaultBufferSize = 1 << 16

// Strings are uvarint-length-prefixed so cells may contain any byte.
func ReadString(r *bufio.Reader) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

func WriteString(w *bufio.Writer, s string) error {
	var lenBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(s)))
	if _, err := w.Write(lenBuf[:n]); err != nil {
		return err
	}
	_, err := w.WriteString(s)
	return err
}

func ReadHeader(r *bufio.Reader) (*csvsort.Header, error) {
	name, err := ReadString(r)
	if err != nil {
		return nil, err
	}
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	numFields := int(b)
	fields := make([]string, numFields)
	for i := 0; i < numFields; i++ {
		field, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		fields[i] = field
	}
	return &csvsort.Header{
		Name:   name,
		Fields: fields,
	}, nil
}

func WriteHeader(w *bufio.Writer, h *csvsort.Header) error {
	if len(h.Fields) > 0xFF {
		return errors.Newf("header %v has more than 255 fields", h.Name)
	}
	err := WriteString(w, h.Name)
	if err != nil {
		return err
	}
	err = w.WriteByte(uint8(len(h.Fields)))
	if err != nil {
		return err
	}
	for _, field := range h.Fields {
		err = WriteString(w, field)
		if err != nil {
			return err
		}
	}
	return nil
}

func ReadRecord(r *bufio.Reader, h *csvsort.Header) (csvsort.Record, error) {
	record := make(csvsort.Record, len(h.Fields))
	for i := range h.Fields {
		value, err := ReadString(r)
		if err != nil {
			return nil, err
		}
		record[i] = value
	}
	return record, nil
}

// WriteRecord persists record normalized to the Header width: runs
// always hold exactly len(h.Fields) cells per Record.
func WriteRecord(w *bufio.Writer, h *csvsort.Header, record csvsort.Record) error {
	for i := range h.Fields {
		err := WriteString(w, record.Value(i))
		if err != nil {
			return err
		}
	}
	return nil
}
