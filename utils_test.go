package csvsort

import (
	"io"

	. "gopkg.in/check.v1"

	. "github.com/dropbox/godropbox/gocheck2"
)

type UtilsSuite struct{}

var _ = Suite(&UtilsSuite{})

func (s *UtilsSuite) TestReadAll(c *C) {
	h := &Header{
		Name:   "users",
		Fields: []string{"id"},
	}
	records := []Record{{"1"}, {"2"}, {"3"}}
	actual, err := ReadAll(NewInMemoryScan(h, records))
	c.Assert(err, IsNil)
	c.Assert(actual, DeepEquals, records)

	// An exhausted Iterator reads as io.EOF.
	_, err = ReadAll(NewInMemoryScan(h, nil))
	c.Assert(err, Equals, io.EOF)
}

func (s *UtilsSuite) TestLimit(c *C) {
	h := &Header{
		Name:   "users",
		Fields: []string{"id"},
	}
	records := []Record{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}}
	iter := NewInMemoryScan(h, records)

	first, err := ReadAll(NewLimit(iter, 2))
	c.Assert(err, IsNil)
	c.Assert(first, DeepEquals, records[:2])

	// The underlying Iterator resumes where the limit stopped.
	second, err := ReadAll(NewLimit(iter, 2))
	c.Assert(err, IsNil)
	c.Assert(second, DeepEquals, records[2:4])

	third, err := ReadAll(NewLimit(iter, 2))
	c.Assert(err, IsNil)
	c.Assert(third, DeepEquals, records[4:])

	_, err = ReadAll(NewLimit(iter, 2))
	c.Assert(err, Equals, io.EOF)
}

func (s *UtilsSuite) TestRecordValue(c *C) {
	r := Record{"a", "b"}
	c.Assert(r.Value(0), Equals, "a")
	c.Assert(r.Value(1), Equals, "b")
	c.Assert(r.Value(2), Equals, "")
	c.Assert(r.Value(-1), Equals, "")
}

func (s *UtilsSuite) TestHeaderFieldPosition(c *C) {
	h := &Header{
		Name:   "users",
		Fields: []string{"id", "name"},
	}
	pos, ok := h.FieldPosition("name")
	c.Assert(ok, IsTrue)
	c.Assert(pos, Equals, 1)
	_, ok = h.FieldPosition("age")
	c.Assert(ok, IsFalse)
	c.Assert(h.HasField("id"), IsTrue)
	c.Assert(h.HasField("age"), IsFalse)
}
