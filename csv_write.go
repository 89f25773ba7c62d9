package csvsort

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/dropbox/godropbox/errors"
)

// csvWrite adapts a CSV file to the RecordWriter interface. The header
// row is written once at creation; Records are padded to the header
// width.
type csvWrite struct {
	w      *csv.Writer
	h      *Header
	closed bool
	c      io.Closer
}

var _ RecordWriter = (*csvWrite)(nil)

func NewCSVWrite(path string, h *Header) (RecordWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %v", path)
	}
	w := csv.NewWriter(f)
	if err := w.Write(h.Fields); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "writing csv header to %v", path)
	}
	return &csvWrite{
		w: w,
		h: h,
		c: f,
	}, nil
}

func (w *csvWrite) WriteRecord(record Record) error {
	row := make([]string, len(w.h.Fields))
	for i := range row {
		row[i] = record.Value(i)
	}
	return w.w.Write(row)
}

func (w *csvWrite) Close() error {
	if w.closed {
		return nil
	}
	defer func() {
		w.closed = true
	}()
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return err
	}
	return w.c.Close()
}
