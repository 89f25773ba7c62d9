// Package sorter implements external merge sorting of tabular record
// streams: inputs below a byte threshold are sorted wholly in memory;
// everything else is partitioned into sorted runs on disk and merged
// back with a bounded-fan-in, multi-pass k-way merge.
package sorter

import (
	"os"

	"github.com/dropbox/godropbox/errors"

	"github.com/andileco/csvsort"
	"github.com/andileco/csvsort/stream"
)

// Sorter sorts record streams under a composite SortKey. It is strictly
// single-threaded and not safe for concurrent use; concurrent sorts
// need one Sorter each.
type Sorter struct {
	config  *Config
	metrics Metrics
}

func New(config *Config) (*Sorter, error) {
	merged := mergeConfig(config)
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return &Sorter{config: merged}, nil
}

// Metrics returns a snapshot of the counters from the most recent Sort
// call.
func (s *Sorter) Metrics() Metrics {
	return s.metrics
}

// Sort consumes iter once and returns an Iterator over the same records
// in sorted order. On error no usable output exists and every temporary
// file created by the call has been deleted. On success the caller owns
// the returned Iterator; closing it releases any remaining temporary
// state.
func (s *Sorter) Sort(iter csvsort.Iterator, key csvsort.SortKey) (csvsort.Iterator, error) {
	s.metrics.reset()
	defer s.metrics.finalize()

	h := iter.Header()
	if h == nil || len(h.Fields) == 0 {
		return nil, &csvsort.ConfigError{
			Field:  "Header",
			Value:  h,
			Reason: "input header must declare at least one field",
		}
	}
	cmp, err := key.Bind(h)
	if err != nil {
		return nil, err
	}

	size, known := s.inputSize(iter)
	if useInMemorySort(size, known, s.config.InMemoryThreshold) {
		return s.sortInMemory(iter, cmp)
	}
	return s.sortExternal(iter, cmp)
}

// useInMemorySort decides the strategy from a size estimate. Only
// inputs known to be strictly below the threshold sort in memory;
// unknown sizes conservatively take the external path.
func useInMemorySort(size int64, known bool, threshold int64) bool {
	return known && size < threshold
}

func (s *Sorter) inputSize(iter csvsort.Iterator) (int64, bool) {
	if s.config.SizeHint > 0 {
		return s.config.SizeHint, true
	}
	if hinted, ok := iter.(csvsort.SizeHinted); ok {
		return hinted.SizeHint()
	}
	return 0, false
}

func (s *Sorter) sortExternal(iter csvsort.Iterator, cmp *csvsort.RecordComparator) (csvsort.Iterator, error) {
	runDir, err := os.MkdirTemp(s.config.TempDir, "csvsort-")
	if err != nil {
		return nil, errors.Wrapf(err, "creating run directory under %q", s.config.TempDir)
	}
	out, err := s.runExternal(runDir, iter, cmp)
	if err != nil {
		// Cleanup is best-effort; the error that aborted the sort is
		// the one worth reporting.
		os.RemoveAll(runDir)
		return nil, err
	}
	return out, nil
}

func (s *Sorter) runExternal(runDir string, iter csvsort.Iterator, cmp *csvsort.RecordComparator) (csvsort.Iterator, error) {
	h := iter.Header()
	runs, err := s.produceRuns(runDir, iter, cmp)
	if err != nil {
		return nil, err
	}
	// The input is fully consumed once its runs exist; close it here so
	// both strategies release the input by the time the output is
	// closed.
	if err := iter.Close(); err != nil {
		return nil, errors.Wrap(err, "closing input")
	}
	if len(runs) == 0 {
		// An empty input is already sorted: empty output, header
		// preserved.
		os.RemoveAll(runDir)
		return csvsort.NewInMemoryScan(h, nil), nil
	}
	finalRun, err := s.mergeAll(runDir, h, runs, cmp)
	if err != nil {
		return nil, err
	}
	scan, err := stream.NewScan(finalRun, s.config.BufferSize)
	if err != nil {
		return nil, errors.Wrapf(err, "opening final run %v", finalRun)
	}
	return &sortedRun{scan: scan, runDir: runDir}, nil
}

// sortedRun streams the final run back to the caller and removes the
// run directory when closed.
type sortedRun struct {
	scan   *stream.Scan
	runDir string
}

var _ csvsort.Iterator = (*sortedRun)(nil)

func (d *sortedRun) Header() *csvsort.Header {
	return d.scan.Header()
}

func (d *sortedRun) Next() (csvsort.Record, error) {
	return d.scan.Next()
}

func (d *sortedRun) Close() error {
	err := d.scan.Close()
	os.RemoveAll(d.runDir)
	return err
}
