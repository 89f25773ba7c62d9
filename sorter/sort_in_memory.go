package sorter

import (
	"io"
	"sort"

	"github.com/andileco/csvsort"
)

// sortInMemory holds the whole input and serves it back in sorted
// order. Chosen only when the input's byte size is known to be below
// the configured threshold.
type sortInMemory struct {
	iter          csvsort.Iterator
	sortedRecords []csvsort.Record
}

var _ csvsort.Iterator = (*sortInMemory)(nil)

func (s *Sorter) sortInMemory(iter csvsort.Iterator, cmp *csvsort.RecordComparator) (csvsort.Iterator, error) {
	records, err := csvsort.ReadAll(iter)
	if err == io.EOF {
		records = nil
	} else if err != nil {
		return nil, err
	}
	sort.Stable(&byKey{cmp: cmp, records: records})
	s.metrics.RecordsProcessed += int64(len(records))
	s.metrics.observeMemory()
	return &sortInMemory{
		iter:          iter,
		sortedRecords: records,
	}, nil
}

func (s *sortInMemory) Header() *csvsort.Header {
	return s.iter.Header()
}

func (s *sortInMemory) Next() (csvsort.Record, error) {
	if len(s.sortedRecords) == 0 {
		return nil, io.EOF
	}
	record := s.sortedRecords[0]
	s.sortedRecords = s.sortedRecords[1:]
	return record, nil
}

func (s *sortInMemory) Close() error {
	s.sortedRecords = nil
	return s.iter.Close()
}
