package csvsort

import "io"

type inMemoryScan struct {
	h       *Header
	records []Record
}

var _ Iterator = (*inMemoryScan)(nil)

func NewInMemoryScan(h *Header, records []Record) Iterator {
	return &inMemoryScan{
		h:       h,
		records: records,
	}
}

func (m *inMemoryScan) Header() *Header {
	return m.h
}

func (m *inMemoryScan) Next() (Record, error) {
	if len(m.records) == 0 {
		return nil, io.EOF
	}
	r := m.records[0]
	m.records = m.records[1:]
	return r, nil
}

func (m *inMemoryScan) Close() error {
	m.records = nil
	return nil
}
