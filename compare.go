package csvsort

import (
	"strconv"
	"strings"
	"time"
)

// Direction is the sign multiplier applied to a Comparator result.
type Direction int8

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Comparator compares two raw cell values and returns a negative, zero,
// or positive result. Implementations must be pure; the same pair must
// always yield the same result within one sort.
type Comparator interface {
	Compare(a, b string) int
}

// Lexicographic compares values byte-wise, optionally after lowercasing
// both sides.
type Lexicographic struct {
	CaseInsensitive bool
}

func (l Lexicographic) Compare(a, b string) int {
	if l.CaseInsensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	return strings.Compare(a, b)
}

// Numeric compares values as floating point numbers. Values that fail
// to parse compare as zero.
type Numeric struct{}

func (Numeric) Compare(a, b string) int {
	x := parseFloatOrZero(a)
	y := parseFloatOrZero(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func parseFloatOrZero(s string) float64 {
	x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return x
}

// Natural compares values alphanumerically: runs of digits compare by
// numeric value, everything else byte-wise. "file9" sorts before
// "file10".
type Natural struct {
	CaseInsensitive bool
}

func (n Natural) Compare(a, b string) int {
	if n.CaseInsensitive {
		a = strings.ToLower(a)
		b = strings.ToLower(b)
	}
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			da, restA := splitDigitRun(a)
			db, restB := splitDigitRun(b)
			if c := compareDigitRuns(da, db); c != 0 {
				return c
			}
			a, b = restA, restB
			continue
		}
		if a[0] != b[0] {
			if a[0] < b[0] {
				return -1
			}
			return 1
		}
		a, b = a[1:], b[1:]
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func splitDigitRun(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// Digit runs compare by numeric value; leading zeros don't contribute.
func compareDigitRuns(x, y string) int {
	x = strings.TrimLeft(x, "0")
	y = strings.TrimLeft(y, "0")
	switch {
	case len(x) < len(y):
		return -1
	case len(x) > len(y):
		return 1
	default:
		return strings.Compare(x, y)
	}
}

// Temporal compares values as timestamps parsed with Layout (time.RFC3339
// when empty). Unparsable values sort last; two unparsable values are
// equal.
type Temporal struct {
	Layout string
}

func (t Temporal) Compare(a, b string) int {
	layout := t.Layout
	if layout == "" {
		layout = time.RFC3339
	}
	ta, errA := time.Parse(layout, a)
	tb, errB := time.Parse(layout, b)
	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// Boolean normalizes common truthy tokens and orders false before true.
type Boolean struct{}

var truthyTokens = map[string]struct{}{
	"1":    {},
	"t":    {},
	"true": {},
	"y":    {},
	"yes":  {},
	"on":   {},
}

func (Boolean) Compare(a, b string) int {
	x := isTruthy(a)
	y := isTruthy(b)
	switch {
	case x == y:
		return 0
	case y:
		return -1
	default:
		return 1
	}
}

func isTruthy(s string) bool {
	_, ok := truthyTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Column describes one component of a composite ordering. A zero
// Direction means Ascending; a nil Comparator means case-sensitive
// Lexicographic.
type Column struct {
	Field      string
	Direction  Direction
	Comparator Comparator
}

// SortKey is an ordered sequence of Columns evaluated left to right.
type SortKey []Column

// Bind resolves every Column against the Header, validating once that
// each referenced field exists, and returns the comparator used for all
// ordering decisions in a sort.
func (k SortKey) Bind(h *Header) (*RecordComparator, error) {
	if len(k) == 0 {
		return nil, &ConfigError{
			Field:  "SortKey",
			Value:  k,
			Reason: "at least one sort column is required",
		}
	}
	columns := make([]boundColumn, len(k))
	for i, col := range k {
		position, ok := h.FieldPosition(col.Field)
		if !ok {
			return nil, &ColumnError{Column: col.Field, Available: h.Fields}
		}
		direction := col.Direction
		if direction == 0 {
			direction = Ascending
		}
		comparator := col.Comparator
		if comparator == nil {
			comparator = Lexicographic{}
		}
		columns[i] = boundColumn{
			position:   position,
			direction:  direction,
			comparator: comparator,
		}
	}
	return &RecordComparator{columns: columns}, nil
}

type boundColumn struct {
	position   int
	direction  Direction
	comparator Comparator
}

// RecordComparator is a SortKey bound to the positions of a specific
// Header. It is the single source of ordering truth: the in-memory
// sort, the in-batch sort, and the merge priority queue all decide
// order through the same RecordComparator.
type RecordComparator struct {
	columns []boundColumn
}

// Compare evaluates the bound columns left to right, short-circuiting
// on the first non-zero comparison. Missing cells compare as empty
// strings. A zero result means the declared key sequence cannot
// distinguish the two Records.
func (rc *RecordComparator) Compare(r1, r2 Record) int {
	for _, col := range rc.columns {
		c := col.comparator.Compare(r1.Value(col.position), r2.Value(col.position))
		if c != 0 {
			return c * int(col.direction)
		}
	}
	return 0
}

func (rc *RecordComparator) Less(r1, r2 Record) bool {
	return rc.Compare(r1, r2) < 0
}
