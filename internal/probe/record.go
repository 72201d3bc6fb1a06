package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rileyhilliard/healthdigest/internal/checks"
)

// Capture file names read by LoadCaptures, one per remote command.
const (
	PingFile       = "ping.txt"
	FreeFile       = "free.txt"
	DiskFile       = "df.txt"
	WhoBootFile    = "who-b.txt"
	LastRebootFile = "last-reboot.txt"
	ListeningFile  = "ss-tuln.txt"
	SSHFile        = "ss-sport22.txt"
	NvidiaSMIFile  = "nvidia-smi.txt"
)

// Captures holds the output lines of each command run against one host. A
// nil entry means the command was not captured and its cells stay missing.
type Captures struct {
	Ping       []string
	Free       []string
	Disk       []string
	WhoBoot    []string
	LastReboot []string
	Listening  []string
	SSH        []string
	NvidiaSMI  []string

	// HTTPMillis and HTTPCode come from the home page request, made by the
	// caller.
	HTTPMillis *string
	HTTPCode   *string
}

// Options tunes how captures become record cells.
type Options struct {
	Time       string
	KnownPorts map[string]bool
	KnownPeers map[string]bool
	GPUCount   int
	Now        time.Time
}

// LoadCaptures reads the capture files of one host from dir. Missing files
// are left nil.
func LoadCaptures(dir string) (*Captures, error) {
	c := &Captures{}
	targets := map[string]*[]string{
		PingFile:       &c.Ping,
		FreeFile:       &c.Free,
		DiskFile:       &c.Disk,
		WhoBootFile:    &c.WhoBoot,
		LastRebootFile: &c.LastReboot,
		ListeningFile:  &c.Listening,
		SSHFile:        &c.SSH,
		NvidiaSMIFile:  &c.NvidiaSMI,
	}
	for name, dst := range targets {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		*dst = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}
	return c, nil
}

// hostProbe accumulates cells and the errors of the probes that failed, so
// one bad command does not cost the rest of the record.
type hostProbe struct {
	c    *Captures
	o    Options
	errs []error
}

func (p *hostProbe) fail(what string, err error) {
	p.errs = append(p.errs, fmt.Errorf("%s: %w", what, err))
}

func (p *hostProbe) latency() (avg, peak *string, reachable bool) {
	latencies := PingLatencies(strings.Join(p.c.Ping, "\n"))
	if len(latencies) == 0 {
		return nil, nil, false
	}
	a, m, err := SummariseLatencies(latencies)
	if err != nil {
		p.fail("ping", err)
		return nil, nil, true
	}
	return &a, &m, true
}

func (p *hostProbe) free() (mem, swap *string) {
	if p.c.Free == nil {
		return nil, nil
	}
	m, s, err := ParseFree(p.c.Free)
	if err != nil {
		p.fail("free", err)
		return nil, nil
	}
	return &m, &s
}

func (p *hostProbe) disk() *string {
	if p.c.Disk == nil {
		return nil
	}
	v, err := ParseDiskAvail(p.c.Disk)
	if err != nil {
		p.fail("df", err)
		return nil
	}
	return &v
}

// boot prefers `who -b` and falls back to `last reboot` when it printed
// nothing.
func (p *hostProbe) boot() *string {
	if len(p.c.WhoBoot) > 0 && strings.TrimSpace(p.c.WhoBoot[0]) != "" {
		v, err := ParseWhoBoot(p.c.WhoBoot[0], p.o.Now)
		if err != nil {
			p.fail("who -b", err)
			return nil
		}
		return &v
	}
	if p.c.LastReboot == nil {
		return nil
	}
	v, err := ParseLastReboot(p.c.LastReboot, p.o.Now)
	if err != nil {
		p.fail("last reboot", err)
		return nil
	}
	return &v
}

func (p *hostProbe) ports() *string {
	if p.c.Listening == nil {
		return nil
	}
	v, err := ListeningPorts(p.c.Listening, p.o.KnownPorts)
	if err != nil {
		p.fail("ss -tuln", err)
		return nil
	}
	return &v
}

func (p *hostProbe) peers() *string {
	if p.c.SSH == nil {
		return nil
	}
	v, err := SSHPeers(p.c.SSH, p.o.KnownPeers)
	if err != nil {
		p.fail("ss sport 22", err)
		return nil
	}
	return &v
}

func (p *hostProbe) gpus() *GPUStats {
	count := p.o.GPUCount
	if count < 1 {
		count = DefaultGPUCount
	}
	empty := &GPUStats{
		Temp:  make([]*string, count),
		Power: make([]*string, count),
		Mem:   make([]*string, count),
	}
	if p.c.NvidiaSMI == nil {
		return empty
	}
	stats, err := ParseNvidiaSMI(p.c.NvidiaSMI, count)
	if err != nil {
		p.fail("nvidia-smi", err)
		return empty
	}
	return stats
}

// Node builds a node record for addr. A host that answered no pings gets a
// record with only its time and address. The returned errors name each
// probe that could not be parsed.
func Node(addr string, c *Captures, o Options) (checks.NodeResult, []error) {
	p := &hostProbe{c: c, o: o}
	r := checks.NodeResult{Time: o.Time, Addr: addr}

	avg, peak, reachable := p.latency()
	if !reachable {
		return r, nil
	}
	r.Ping, r.PingMax = avg, peak
	r.HTTPMs, r.HTTPCode = c.HTTPMillis, c.HTTPCode
	r.MemAvail, r.SwapFree = p.free()
	r.DiskAvail = p.disk()
	r.LastBoot = p.boot()
	r.Ports = p.ports()
	r.SSHPeers = p.peers()
	return r, p.errs
}

// Miner builds a GPU rig record for addr, packing per-card readings into
// multi-component cells.
func Miner(addr string, c *Captures, o Options) (checks.MinerResult, []error) {
	p := &hostProbe{c: c, o: o}
	r := checks.MinerResult{Time: o.Time, Addr: addr}

	avg, peak, reachable := p.latency()
	if !reachable {
		return r, nil
	}
	r.Ping, r.PingMax = avg, peak
	gpu := p.gpus()
	r.MemAvail, _ = p.free()
	r.DiskAvail = p.disk()
	r.LastBoot = p.boot()
	r.GPUTemp = checks.JoinOptional(gpu.Temp)
	r.GPUMem = checks.JoinOptional(gpu.Mem)
	r.GPUPower = checks.JoinOptional(gpu.Power)
	r.SSHPeers = p.peers()
	return r, p.errs
}

// Record builds the record of the named unit type.
func Record(unit, addr string, c *Captures, o Options) (checks.Result, []error, error) {
	switch unit {
	case checks.UnitNode:
		r, errs := Node(addr, c, o)
		return r, errs, nil
	case checks.UnitMiner:
		r, errs := Miner(addr, c, o)
		return r, errs, nil
	default:
		_, err := checks.Lookup(unit)
		return nil, nil, err
	}
}
