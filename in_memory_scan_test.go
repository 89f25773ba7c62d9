package csvsort

import (
	. "gopkg.in/check.v1"
)

type InMemoryScanSuite struct{}

var _ = Suite(&InMemoryScanSuite{})

func (s *InMemoryScanSuite) TestInMemoryScan(c *C) {
	h := &Header{
		Name:   "users",
		Fields: []string{"id", "name"},
	}
	records := []Record{
		{"1", "ewd"},
		{"2", "dmr"},
		{"3", "rob"},
		{"4", "ken"},
		{"5", "gri"},
	}
	CheckIterator(c, NewInMemoryScan(h, records), records)
}

func (s *InMemoryScanSuite) TestEmptyScan(c *C) {
	h := &Header{
		Name:   "users",
		Fields: []string{"id"},
	}
	CheckIterator(c, NewInMemoryScan(h, nil), nil)
}
