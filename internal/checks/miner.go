package checks

import "strings"

// UnitMiner is the unit name of GPU mining rigs.
const UnitMiner = "miner"

var minerColumns = []string{
	"time", "ipv4", "ping", "ping_max",
	"mem_avail", "disk_avail", "last_boot",
	"g_tmp(°C)", "g_mem(MB)", "g_pwr", "ssh_peers",
}

// MinerResult is the check record of a GPU rig. The GPU cells carry one
// component per card, joined with JoinOptional.
type MinerResult struct {
	Time      string
	Addr      string
	Ping      *string
	PingMax   *string
	MemAvail  *string
	DiskAvail *string
	LastBoot  *string
	GPUTemp   *string
	GPUMem    *string
	GPUPower  *string
	SSHPeers  *string
}

func (r MinerResult) Header() string { return strings.Join(minerColumns, fieldSep) }
func (r MinerResult) Unit() string   { return UnitMiner }
func (r MinerResult) IPv4() string   { return FormatIPv4(r.Addr) }

func (r MinerResult) CSV() string {
	return strings.Join([]string{
		r.Time, FormatIPv4(r.Addr), opt(r.Ping), opt(r.PingMax),
		opt(r.MemAvail), opt(r.DiskAvail), opt(r.LastBoot),
		opt(r.GPUTemp), opt(r.GPUMem), opt(r.GPUPower), opt(r.SSHPeers),
	}, fieldSep)
}

func minerFromFields(f []*string) Result {
	return MinerResult{
		Time: *f[0], Addr: *f[1],
		Ping: f[2], PingMax: f[3],
		MemAvail: f[4], DiskAvail: f[5], LastBoot: f[6],
		GPUTemp: f[7], GPUMem: f[8], GPUPower: f[9],
		SSHPeers: f[10],
	}
}
