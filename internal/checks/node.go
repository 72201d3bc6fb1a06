package checks

import "strings"

// UnitNode is the unit name of general-purpose servers.
const UnitNode = "node"

var nodeColumns = []string{
	"time", "ipv4", "ping", "ping_max",
	"http_ms", "http_code", "mem_avail", "swap_free",
	"disk_avail", "last_boot", "ports", "ssh_peers",
}

// NodeResult is the check record of a general-purpose server: latency, the
// home page's HTTP response, memory and disk headroom, boot time, and any
// unexpected listening ports or SSH peers.
type NodeResult struct {
	Time      string
	Addr      string
	Ping      *string
	PingMax   *string
	HTTPMs    *string
	HTTPCode  *string
	MemAvail  *string
	SwapFree  *string
	DiskAvail *string
	LastBoot  *string
	Ports     *string
	// SSHPeers stays last; it changes most between runs.
	SSHPeers *string
}

func (r NodeResult) Header() string { return strings.Join(nodeColumns, fieldSep) }
func (r NodeResult) Unit() string   { return UnitNode }
func (r NodeResult) IPv4() string   { return FormatIPv4(r.Addr) }

func (r NodeResult) CSV() string {
	return strings.Join([]string{
		r.Time, FormatIPv4(r.Addr), opt(r.Ping), opt(r.PingMax),
		opt(r.HTTPMs), opt(r.HTTPCode), opt(r.MemAvail), opt(r.SwapFree),
		opt(r.DiskAvail), opt(r.LastBoot), opt(r.Ports), opt(r.SSHPeers),
	}, fieldSep)
}

func nodeFromFields(f []*string) Result {
	return NodeResult{
		Time: *f[0], Addr: *f[1],
		Ping: f[2], PingMax: f[3],
		HTTPMs: f[4], HTTPCode: f[5],
		MemAvail: f[6], SwapFree: f[7],
		DiskAvail: f[8], LastBoot: f[9],
		Ports: f[10], SSHPeers: f[11],
	}
}
