package stream

import (
	"bufio"
	"io"
	"os"

	"github.com/andileco/csvsort"
)

// Write persists a run: the Header once at creation, then Records in
// the order given. A closed Write is never reopened for writing.
type Write struct {
	w       *bufio.Writer
	h       *csvsort.Header
	counter *countingWriter
	closed  bool
	c       io.Closer
}

var _ csvsort.RecordWriter = (*Write)(nil)

func NewWrite(path string, h *csvsort.Header, bufferSize int) (*Write, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	counter := &countingWriter{w: f}
	w := bufio.NewWriterSize(counter, bufferSize)
	if err := WriteHeader(w, h); err != nil {
		f.Close()
		return nil, err
	}
	return &Write{
		w:       w,
		h:       h,
		counter: counter,
		c:       f,
	}, nil
}

func (w *Write) WriteRecord(record csvsort.Record) error {
	return WriteRecord(w.w, w.h, record)
}

// BytesWritten reports bytes flushed to the file so far; it is accurate
// after Close.
func (w *Write) BytesWritten() int64 {
	return w.counter.n
}

func (w *Write) Close() error {
	if w.closed {
		return nil
	}
	defer func() {
		w.closed = true
	}()
	// Release the file even when the flush fails; the flush error is
	// the one worth reporting.
	flushErr := w.w.Flush()
	closeErr := w.c.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// WriteAll persists records as a complete run and reports the bytes
// written.
func WriteAll(path string, h *csvsort.Header, records []csvsort.Record, bufferSize int) (int64, error) {
	w, err := NewWrite(path, h, bufferSize)
	if err != nil {
		return 0, err
	}
	for _, record := range records {
		if err := w.WriteRecord(record); err != nil {
			w.Close()
			return 0, err
		}
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return w.BytesWritten(), nil
}
