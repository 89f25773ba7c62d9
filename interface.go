package csvsort

// Record holds the cells of a single row, positionally matching the
// Fields of the Header it was read under. A Record shorter than its
// Header reads as empty string for the missing cells.
type Record []string

func (r1 Record) Equals(r2 Record) bool {
	if len(r1) != len(r2) {
		return false
	}
	for i := range r1 {
		if r1[i] != r2[i] {
			return false
		}
	}
	return true
}

// Value returns the cell at position i, or the empty string if the
// Record has no cell there.
func (r Record) Value(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

type Header struct {
	Name string
	// Invariant: len(Fields) <= 0xFF
	Fields []string
}

// FieldPosition returns the position of fieldName in the Header, or
// false if the Header has no such field.
func (h *Header) FieldPosition(fieldName string) (int, bool) {
	for i, field := range h.Fields {
		if field == fieldName {
			return i, true
		}
	}
	return 0, false
}

func (h *Header) HasField(fieldName string) bool {
	_, ok := h.FieldPosition(fieldName)
	return ok
}

type Iterator interface {
	Header() *Header
	Next() (Record, error)
	Close() error
}

// SizeHinted is implemented by Iterators that can estimate the byte
// size of their underlying input (e.g. file-backed sources). The
// estimate is used for sort strategy selection only; it does not have
// to be exact.
type SizeHinted interface {
	SizeHint() (int64, bool)
}

// RecordWriter accepts an ordered sequence of Records under a Header
// that was written exactly once before the first Record.
type RecordWriter interface {
	WriteRecord(Record) error
	Close() error
}
