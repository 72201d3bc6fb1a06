package probe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	localAddrHeader = "Local Address:Port"
	peerAddrHeader  = "Peer Address:Port"
	listSep         = "+"
)

// CellsUnder extracts the cell of every row that sits under header in a
// fixed-width table such as `ss` prints. A cell wider than its header may
// start to the left of it; a narrower one may start to the right.
func CellsUnder(lines []string, header string) ([]string, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty table, looking for %q", header)
	}
	col := strings.Index(lines[0], header)
	if col < 0 {
		return nil, fmt.Errorf("column %q not in header %q", header, lines[0])
	}

	var cells []string
	for n, row := range lines[1:] {
		if strings.TrimSpace(row) == "" {
			continue
		}
		if col >= len(row) {
			return nil, fmt.Errorf("row %d ends before column %q", n+1, header)
		}

		i := col
		if row[i] == ' ' {
			for i < len(row) && row[i] == ' ' {
				i++
			}
		} else {
			for i > 0 && row[i-1] != ' ' {
				i--
			}
		}

		fields := strings.Fields(row[i:])
		if len(fields) == 0 {
			return nil, fmt.Errorf("row %d has no value under %q", n+1, header)
		}
		cells = append(cells, fields[0])
	}
	return cells, nil
}

// ListeningPorts reads `ss -tuln` output and returns the listening ports
// not in known, numerically sorted and joined with "+".
func ListeningPorts(lines []string, known map[string]bool) (string, error) {
	cells, err := CellsUnder(lines, localAddrHeader)
	if err != nil {
		return "", err
	}

	seen := make(map[int]bool)
	for _, cell := range cells {
		raw := strings.TrimSpace(cell[strings.LastIndex(cell, ":")+1:])
		if known[raw] {
			continue
		}
		port, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("failed to parse port '%s': %w", raw, err)
		}
		seen[port] = true
	}

	ports := make([]int, 0, len(seen))
	for p := range seen {
		ports = append(ports, p)
	}
	sort.Ints(ports)

	out := make([]string, len(ports))
	for i, p := range ports {
		out[i] = strconv.Itoa(p)
	}
	return strings.Join(out, listSep), nil
}

// SSHPeers reads `ss -tn sport = 22` output and returns the connected peer
// addresses not in known, sorted and joined with "+".
func SSHPeers(lines []string, known map[string]bool) (string, error) {
	cells, err := CellsUnder(lines, peerAddrHeader)
	if err != nil {
		return "", err
	}

	seen := make(map[string]bool)
	for _, cell := range cells {
		addr, _, _ := strings.Cut(cell, ":")
		addr = strings.TrimSpace(addr)
		if !known[addr] {
			seen[addr] = true
		}
	}

	peers := make([]string, 0, len(seen))
	for p := range seen {
		peers = append(peers, p)
	}
	sort.Strings(peers)
	return strings.Join(peers, listSep), nil
}

// ParseUserList turns a comma-separated allow list into a set. An empty
// list yields the set holding only the empty string.
func ParseUserList(csv string) map[string]bool {
	set := make(map[string]bool)
	for _, item := range strings.Split(csv, ",") {
		set[item] = true
	}
	return set
}
