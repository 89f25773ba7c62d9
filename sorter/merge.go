package sorter

import (
	"container/heap"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dropbox/godropbox/errors"
	"github.com/sirupsen/logrus"

	"github.com/andileco/csvsort"
	"github.com/andileco/csvsort/stream"
)

// runEntry holds the head record of one open run together with the
// position the run was handed to the merge in. Entries whose records
// compare equal pop in arrival order, so equal-key records are emitted
// in the order their source runs are visited. That tie-break is a
// deliberate, observable rule, not an artifact of the heap.
type runEntry struct {
	iter    csvsort.Iterator
	record  csvsort.Record
	arrival int
}

// mergeIter takes a list of sorted Iterators as input and returns a
// single stream of Records in totally sorted order. It holds exactly
// one record per open run, so its memory footprint is proportional to
// the number of runs in the group, not their length.
type mergeIter struct {
	entries []*runEntry
	h       *csvsort.Header
	cmp     *csvsort.RecordComparator

	// We keep track of these so we can close them when the merge is
	// closed.
	exhaustedIters []csvsort.Iterator
}

var _ heap.Interface = (*mergeIter)(nil)

var _ csvsort.Iterator = (*mergeIter)(nil)

func newMergeIter(iters []csvsort.Iterator, h *csvsort.Header, cmp *csvsort.RecordComparator) (*mergeIter, error) {
	entries := make([]*runEntry, 0, len(iters))
	exhaustedIters := make([]csvsort.Iterator, 0, len(iters))
	for arrival, iter := range iters {
		record, err := iter.Next()
		if err == io.EOF {
			exhaustedIters = append(exhaustedIters, iter)
		} else if err != nil {
			return nil, err
		} else {
			entries = append(entries, &runEntry{
				iter:    iter,
				record:  record,
				arrival: arrival,
			})
		}
	}
	m := &mergeIter{
		entries:        entries,
		h:              h,
		cmp:            cmp,
		exhaustedIters: exhaustedIters,
	}
	heap.Init(m)
	return m, nil
}

func (m *mergeIter) Len() int {
	return len(m.entries)
}

func (m *mergeIter) Swap(i, j int) {
	m.entries[i], m.entries[j] = m.entries[j], m.entries[i]
}

func (m *mergeIter) Less(i, j int) bool {
	if c := m.cmp.Compare(m.entries[i].record, m.entries[j].record); c != 0 {
		return c < 0
	}
	return m.entries[i].arrival < m.entries[j].arrival
}

func (m *mergeIter) Push(x interface{}) {
	m.entries = append(m.entries, x.(*runEntry))
}

func (m *mergeIter) Pop() interface{} {
	i := len(m.entries) - 1
	result := m.entries[i]
	m.entries = m.entries[:i]
	return result
}

func (m *mergeIter) Header() *csvsort.Header {
	return m.h
}

func (m *mergeIter) Next() (csvsort.Record, error) {
	if m.Len() == 0 {
		return nil, io.EOF
	}
	e := heap.Pop(m).(*runEntry)
	nextRecord, err := e.iter.Next()
	if err == io.EOF {
		m.exhaustedIters = append(m.exhaustedIters, e.iter)
	} else if err != nil {
		return nil, err
	} else {
		heap.Push(m, &runEntry{
			iter:    e.iter,
			record:  nextRecord,
			arrival: e.arrival,
		})
	}
	return e.record, nil
}

func (m *mergeIter) Close() error {
	for _, e := range m.entries {
		err := e.iter.Close()
		if err != nil {
			return err
		}
	}
	for _, iter := range m.exhaustedIters {
		err := iter.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// mergeAll repeatedly merges groups of at most MaxFanIn runs until a
// single run remains, deleting each group's inputs as soon as the group
// is merged. The pass count grows logarithmically in the number of
// initial runs with base MaxFanIn.
func (s *Sorter) mergeAll(runDir string, h *csvsort.Header, runs []string, cmp *csvsort.RecordComparator) (string, error) {
	nextRunID := len(runs)
	for len(runs) > 1 {
		merged := make([]string, 0, (len(runs)+s.config.MaxFanIn-1)/s.config.MaxFanIn)
		for start := 0; start < len(runs); start += s.config.MaxFanIn {
			end := start + s.config.MaxFanIn
			if end > len(runs) {
				end = len(runs)
			}
			outPath := filepath.Join(runDir, "run-"+strconv.Itoa(nextRunID))
			nextRunID++
			if err := s.mergeGroup(runs[start:end], h, outPath, cmp); err != nil {
				return "", err
			}
			merged = append(merged, outPath)
		}
		runs = merged
		s.metrics.MergePasses++
		s.config.Logger.WithFields(logrus.Fields{
			"pass": s.metrics.MergePasses,
			"runs": len(runs),
		}).Debug("merge pass complete")
	}
	return runs[0], nil
}

// mergeGroup merges one group of runs into a new run at outPath and
// removes the consumed inputs.
func (s *Sorter) mergeGroup(group []string, h *csvsort.Header, outPath string, cmp *csvsort.RecordComparator) error {
	scans := make([]*stream.Scan, 0, len(group))
	closeScans := func() {
		for _, scan := range scans {
			scan.Close()
		}
	}
	iters := make([]csvsort.Iterator, 0, len(group))
	for _, runPath := range group {
		scan, err := stream.NewScan(runPath, s.config.BufferSize)
		if err != nil {
			closeScans()
			return errors.Wrapf(err, "opening run %v", runPath)
		}
		scans = append(scans, scan)
		iters = append(iters, scan)
	}
	m, err := newMergeIter(iters, h, cmp)
	if err != nil {
		closeScans()
		return err
	}
	defer m.Close()

	w, err := stream.NewWrite(outPath, h, s.config.BufferSize)
	if err != nil {
		return errors.Wrapf(err, "creating run %v", outPath)
	}
	for {
		record, err := m.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			w.Close()
			return err
		}
		if err := w.WriteRecord(record); err != nil {
			w.Close()
			return errors.Wrapf(err, "writing run %v", outPath)
		}
	}
	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "closing run %v", outPath)
	}

	s.metrics.TempFilesCreated++
	s.metrics.BytesWritten += w.BytesWritten()
	for _, scan := range scans {
		s.metrics.BytesRead += scan.BytesRead()
	}
	s.metrics.observeMemory()

	// The inputs are fully consumed; removal is best-effort cleanup.
	closeScans()
	for _, runPath := range group {
		os.Remove(runPath)
	}
	return nil
}
