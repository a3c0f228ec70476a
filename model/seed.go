package model

import (
	"bufio"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidCoordinate is returned when a seed record holds a coordinate that is not a non-negative integer
var ErrInvalidCoordinate = errors.New("invalid coordinate")

const seedFieldSeparator = ";"

// LoadAliveFile reads the initially alive cells from a seed file
func LoadAliveFile(filename string, width, height int, logger *log.Logger) ([]Coord, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadAliveFile] failed to open file: %+v", filename)
	}
	defer f.Close()

	alive, err := ParseAliveCells(f, width, height, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "[LoadAliveFile] %s", filename)
	}
	return alive, nil
}

/*
ParseAliveCells reads one "x;y" record per line.

Records with the wrong number of fields, blank lines included, are logged and skipped.
A field that is not a non-negative integer, or a coordinate outside the width x height
board, aborts parsing. Whitespace around a field is ignored.
*/
func ParseAliveCells(r io.Reader, width, height int, logger *log.Logger) ([]Coord, error) {
	var (
		alive      []Coord
		scanner    = bufio.NewScanner(r)
		lineNumber = 0
	)

	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()

		fields := strings.Split(line, seedFieldSeparator)
		if len(fields) != 2 {
			if logger != nil {
				logger.Printf("Warning: invalid alive cell position: %q, on line %d", line, lineNumber)
			}
			continue
		}

		x, err := parseCoordinate(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "[ParseAliveCells] line %d: %q", lineNumber, line)
		}
		y, err := parseCoordinate(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "[ParseAliveCells] line %d: %q", lineNumber, line)
		}
		if x >= width || y >= height {
			return nil, errors.Wrapf(ErrOutOfBounds, "[ParseAliveCells] line %d: (%d, %d) on %dx%d grid",
				lineNumber, x, y, width, height)
		}

		alive = append(alive, Coord{X: x, Y: y})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParseAliveCells] failed to read input")
	}

	return alive, nil
}

func parseCoordinate(field string) (int, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 31)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidCoordinate, "%q", field)
	}
	return int(v), nil
}
