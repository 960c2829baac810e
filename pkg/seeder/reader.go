package seeder

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/pkg/errors"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// recordReader reads a CSV file with a header row and addresses fields by
// column name.
type recordReader struct {
	csv     *csv.Reader
	columns map[string]int
	current []string
}

func newRecordReader(r io.Reader, required []string) (*recordReader, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = br.Discard(len(byteOrderMark))
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("missing header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read header row")
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	return &recordReader{csv: cr, columns: columns}, nil
}

// Next advances to the next record. It returns io.EOF at end of input.
func (r *recordReader) Next() error {
	record, err := r.csv.Read()
	if err != nil {
		return err
	}
	r.current = record
	return nil
}

// Line is the input line of the current record.
func (r *recordReader) Line() int {
	line, _ := r.csv.FieldPos(0)
	return line
}

// Get returns the raw value of column in the current record.
func (r *recordReader) Get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.current) {
		return ""
	}
	return r.current[i]
}

func (r *recordReader) Text(column string) *string {
	return emptyToNull(r.Get(column))
}

func (r *recordReader) Float(column string) *float64 {
	return parseFloatOrNull(r.Get(column))
}

func (r *recordReader) OptionalID(column string) *int64 {
	return parseIntOrNull(r.Get(column))
}

func (r *recordReader) ID(column string) (int64, error) {
	return parseID(column, r.Get(column))
}

func (r *recordReader) RequiredFloat(column string) (float64, error) {
	return parseRequiredFloat(column, r.Get(column))
}

func (r *recordReader) Bool(column string) bool {
	return parseBool(r.Get(column))
}
