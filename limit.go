package csvsort

import "io"

// limit sets an upper bound on the number of Records that can be read
// from the input Iterator.
type limit struct {
	iter           Iterator
	h              *Header
	maxRecords     int
	numRecordsRead int
}

var _ Iterator = (*limit)(nil)

func NewLimit(iter Iterator, maxRecords int) Iterator {
	return &limit{
		iter:       iter,
		h:          iter.Header(),
		maxRecords: maxRecords,
	}
}

func (l *limit) Header() *Header {
	return l.h
}

func (l *limit) Next() (Record, error) {
	if l.numRecordsRead == l.maxRecords {
		return nil, io.EOF
	}
	r, err := l.iter.Next()
	if err != nil {
		return nil, err
	}
	l.numRecordsRead++
	return r, nil
}

func (l *limit) Close() error {
	return l.iter.Close()
}
