package store

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/advdiff/internal/field"
)

// WriteField renders the interior of g as whitespace-separated text,
// one row per line. Values are formatted with the shortest decimal
// representation that round-trips, so a write/read cycle is exact.
func WriteField(w io.Writer, g *field.Grid) error {
	bw := bufio.NewWriter(w)
	var err error
	g.Each(func(x, _ int, v float64) {
		if err != nil {
			return
		}
		if x > 0 {
			if _, err = bw.WriteString(" "); err != nil {
				return
			}
		}
		if _, err = bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return
		}
		if x == g.NX()-1 {
			if _, err = bw.WriteString("\n"); err != nil {
				return
			}
		}
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// ReadField parses a text grid written by WriteField. Every line must
// hold the same number of values.
func ReadField(r io.Reader) (*field.Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	var rows [][]float64
	for sc.Scan() {
		line := strings.Fields(sc.Text())
		if len(line) == 0 {
			continue
		}
		row := make([]float64, len(line))
		for i, tok := range line {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("store: bad value %q on row %d: %w", tok, len(rows), err)
			}
			row[i] = v
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("store: ragged grid: row %d has %d values, want %d", len(rows), len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("store: empty grid")
	}

	g := field.New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, v := range row {
			g.Set(x, y, v)
		}
	}
	return g, nil
}
