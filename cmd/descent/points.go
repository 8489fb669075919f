package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/descent/optim"
)

// readPoints loads x,y samples from a CSV file. A first row that does not
// parse as numbers is treated as a header.
func readPoints(path string) (optim.Dataset[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return optim.Dataset[float64]{}, errors.Wrap(err, "open samples")
	}
	defer f.Close()

	return parsePoints(f)
}

func parsePoints(r io.Reader) (optim.Dataset[float64], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	var xs, ys []float64
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return optim.Dataset[float64]{}, errors.Wrap(err, "read samples")
		}

		x, errX := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if errX != nil || errY != nil {
			if line == 1 {
				continue
			}
			return optim.Dataset[float64]{}, errors.Errorf("samples record %d: %q is not a number pair", line, strings.Join(rec, ","))
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	return optim.ScalarDataset(xs, ys)
}
