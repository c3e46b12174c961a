package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// maxLineLen bounds a single text line. The widest public GloVe files have
// 300 components per line.
const maxLineLen = 16 << 20

// Record is one token and its vector components.
type Record struct {
	Token  string
	Values []float64
}

// TextSource parses GloVe text from r. Blank lines are skipped and CRLF line
// endings are accepted. If skipHeader is set, the first line is ignored.
//
// A parse error is yielded once and ends the sequence.
func TextSource(r io.Reader, skipHeader bool) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64<<10), maxLineLen)

		line := 0
		for sc.Scan() {
			line++
			if skipHeader && line == 1 {
				continue
			}
			text := strings.TrimSuffix(sc.Text(), "\r")
			if strings.TrimSpace(text) == "" {
				continue
			}
			rec, err := parseLine(text)
			if err != nil {
				yield(Record{}, &LineError{Line: line, Err: err})
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Record{}, &LineError{Line: line + 1, Err: err})
		}
	}
}

func parseLine(text string) (Record, error) {
	fields := strings.Split(strings.TrimRight(text, " "), " ")
	token := fields[0]
	if token == "" {
		return Record{}, errors.New("empty token")
	}
	if len(fields) == 1 {
		return Record{}, fmt.Errorf("token %q: %w", token, ErrEmptyVector)
	}

	values := make([]float64, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Record{}, fmt.Errorf("token %q component %d: %w", token, i+1, err)
		}
		values[i] = v
	}
	return Record{Token: token, Values: values}, nil
}

// SliceSource yields records from memory.
func SliceSource(records []Record) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		for _, r := range records {
			if !yield(r, nil) {
				return
			}
		}
	}
}
