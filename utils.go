package csvsort

import "io"

// ReadAll drains iter into a slice. Returns io.EOF (and no records)
// when the Iterator was already exhausted, which keeps batching loops
// simple.
func ReadAll(iter Iterator) ([]Record, error) {
	var records []Record
	for {
		record, err := iter.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		} else {
			records = append(records, record)
		}
	}
	if len(records) == 0 {
		return nil, io.EOF
	}
	return records, nil
}
