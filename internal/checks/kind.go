package checks

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Kind describes one monitored unit type: its name, its columns, and how to
// build its records.
type Kind struct {
	Name    string
	Columns []string
	build   func([]*string) Result
}

var kinds = []Kind{
	{Name: UnitNode, Columns: nodeColumns, build: nodeFromFields},
	{Name: UnitMiner, Columns: minerColumns, build: minerFromFields},
}

// Kinds returns every known unit type in a stable order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// Names returns the names of every known unit type.
func Names() []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.Name
	}
	return names
}

// Lookup returns the unit type with the given name.
func Lookup(name string) (Kind, error) {
	for _, k := range kinds {
		if k.Name == name {
			return k, nil
		}
	}
	return Kind{}, fmt.Errorf("unknown unit %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Header is the comma-joined column list.
func (k Kind) Header() string {
	return strings.Join(k.Columns, fieldSep)
}

// FromFields builds a record from positional cells. Time and address are
// required; trailing cells may be omitted and default to missing, which is
// how an unreachable host is recorded.
func (k Kind) FromFields(fields []*string) (Result, error) {
	if len(fields) < 2 {
		return nil, fmt.Errorf("%s record needs time and ipv4, got %d cells", k.Name, len(fields))
	}
	if len(fields) > len(k.Columns) {
		return nil, fmt.Errorf("%s record has %d cells, expected at most %d", k.Name, len(fields), len(k.Columns))
	}
	if fields[0] == nil || fields[1] == nil {
		return nil, fmt.Errorf("%s record is missing its time or ipv4", k.Name)
	}

	padded := make([]*string, len(k.Columns))
	copy(padded, fields)
	return k.build(padded), nil
}

// FromCSV parses one serialised record line.
func (k Kind) FromCSV(line string) (Result, error) {
	cells, err := DeserialiseCSV(line)
	if err != nil {
		return nil, err
	}
	return k.FromFields(cells)
}

// ReadAll parses one record per non-blank line. A line equal to the header
// is skipped so files written with a header row load unchanged.
func (k Kind) ReadAll(r io.Reader) ([]Result, error) {
	var results []Result
	header := k.Header()

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text == header {
			continue
		}
		res, err := k.FromCSV(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		results = append(results, res)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning records: %w", err)
	}
	return results, nil
}
