package stream

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/andileco/csvsort"
)

// Scan reads a run back, forward only.
type Scan struct {
	r       *bufio.Reader
	h       *csvsort.Header
	counter *countingReader
	closed  bool
	c       io.Closer
}

var _ csvsort.Iterator = (*Scan)(nil)

func NewScan(path string, bufferSize int) (*Scan, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	counter := &countingReader{r: f}
	r := bufio.NewReaderSize(counter, bufferSize)
	h, err := ReadHeader(r)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Scan{
		r:       r,
		h:       h,
		counter: counter,
		c:       f,
	}, nil
}

func (s *Scan) Header() *csvsort.Header {
	return s.h
}

func (s *Scan) Next() (csvsort.Record, error) {
	if s.closed {
		return nil, errors.New("cannot call Next after Scan was closed")
	}
	record, err := ReadRecord(s.r, s.h)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// BytesRead reports bytes read from the file so far.
func (s *Scan) BytesRead() int64 {
	return s.counter.n
}

func (s *Scan) Close() error {
	if s.closed {
		return nil
	}
	defer func() {
		s.closed = true
	}()
	return s.c.Close()
}
