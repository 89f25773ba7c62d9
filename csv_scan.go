package csvsort

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dropbox/godropbox/errors"
)

// csvScan adapts a CSV file to the Iterator interface. The first row of
// the file is its header. The engine itself never parses CSV; this is
// glue for callers whose inputs live in files.
type csvScan struct {
	r      *csv.Reader
	h      *Header
	size   int64
	closed bool
	c      io.Closer
}

var _ Iterator = (*csvScan)(nil)
var _ SizeHinted = (*csvScan)(nil)

// NewCSVScan opens a CSV file as a record stream. When h is non-nil the
// file's header row must match it exactly; when nil the header is taken
// from the file, with the table named after the file.
func NewCSVScan(path string, h *Header) (Iterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "statting %v", path)
	}
	r := csv.NewReader(bufio.NewReader(f))
	// Records narrower than the header read as empty cells.
	r.FieldsPerRecord = -1
	headerRow, err := r.Read()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "reading csv header from %v", path)
	}
	if h == nil {
		name := filepath.Base(path)
		name = strings.TrimSuffix(name, filepath.Ext(name))
		h = &Header{Name: name, Fields: headerRow}
	} else if !headerMatches(h, headerRow) {
		f.Close()
		return nil, errors.Newf(
			"csv header %v doesn't match header %v", headerRow, *h)
	}
	return &csvScan{
		r:    r,
		h:    h,
		size: info.Size(),
		c:    f,
	}, nil
}

func headerMatches(h *Header, row []string) bool {
	if len(row) != len(h.Fields) {
		return false
	}
	for i := range row {
		if row[i] != h.Fields[i] {
			return false
		}
	}
	return true
}

func (c *csvScan) Header() *Header {
	return c.h
}

func (c *csvScan) SizeHint() (int64, bool) {
	return c.size, true
}

func (c *csvScan) Next() (Record, error) {
	row, err := c.r.Read()
	if err != nil {
		return nil, err
	}
	return Record(row), nil
}

func (c *csvScan) Close() error {
	if c.closed {
		return nil
	}
	defer func() {
		c.closed = true
	}()
	return c.c.Close()
}
