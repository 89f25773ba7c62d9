package sorter

import (
	"io"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/dropbox/godropbox/errors"
	"github.com/sirupsen/logrus"

	"github.com/andileco/csvsort"
	"github.com/andileco/csvsort/stream"
)

// byKey sorts a batch of records in place under a bound comparator.
type byKey struct {
	cmp     *csvsort.RecordComparator
	records []csvsort.Record
}

var _ sort.Interface = (*byKey)(nil)

func (b *byKey) Len() int {
	return len(b.records)
}

func (b *byKey) Swap(i, j int) {
	b.records[i], b.records[j] = b.records[j], b.records[i]
}

func (b *byKey) Less(i, j int) bool {
	return b.cmp.Less(b.records[i], b.records[j])
}

// produceRuns drains iter into runs of at most ChunkSize records each,
// sorted in memory before being persisted. A trailing partial batch
// becomes a final, smaller run; an empty input produces no runs.
func (s *Sorter) produceRuns(runDir string, iter csvsort.Iterator, cmp *csvsort.RecordComparator) ([]string, error) {
	h := iter.Header()
	var runPaths []string
	for runID := 0; ; runID++ {
		// Read a batch of records.
		records, err := csvsort.ReadAll(csvsort.NewLimit(iter, s.config.ChunkSize))
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		// Sort them in memory. The stable sort keeps equal-key records
		// in input order within the batch, which together with the
		// merge tie-break makes resorting sorted input a no-op.
		sort.Stable(&byKey{cmp: cmp, records: records})

		// Write the sorted run to disk.
		runPath := filepath.Join(runDir, "run-"+strconv.Itoa(runID))
		n, err := stream.WriteAll(runPath, h, records, s.config.BufferSize)
		if err != nil {
			return nil, errors.Wrapf(err, "writing run %v", runPath)
		}
		runPaths = append(runPaths, runPath)

		s.metrics.RecordsProcessed += int64(len(records))
		s.metrics.RunsCreated++
		s.metrics.TempFilesCreated++
		s.metrics.BytesWritten += n
		s.metrics.observeMemory()
		s.config.Logger.WithFields(logrus.Fields{
			"run":     runID,
			"records": len(records),
			"bytes":   n,
		}).Debug("wrote sorted run")
	}
	return runPaths, nil
}
