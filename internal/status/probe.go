package status

import (
	"fmt"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
)

// Sample is one point-in-time hardware reading: a human-readable label
// and a utilization percentage. Samples are independent of each other
// and of the counters model; nothing here is persisted.
type Sample struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Probe reads host CPU/memory/disk/swap/network utilization on demand.
type Probe struct {
	mu        sync.Mutex
	lastNet   *net.IOCountersStat
	lastNetAt time.Time
}

func NewProbe() *Probe {
	return &Probe{}
}

// All collects every sample, keyed by subsystem. Subsystems that fail
// to read are left out rather than failing the whole collection.
func (p *Probe) All() map[string]Sample {
	out := make(map[string]Sample, 5)
	if s, err := p.CPU(); err == nil {
		out["cpu"] = s
	}
	if s, err := p.Memory(); err == nil {
		out["memory"] = s
	}
	if s, err := p.Disk(); err == nil {
		out["disk"] = s
	}
	if s, err := p.Swap(); err == nil {
		out["swap"] = s
	}
	if s, err := p.Network(); err == nil {
		out["network"] = s
	}
	return out
}

func (p *Probe) CPU() (Sample, error) {
	counts, err := cpu.Counts(true)
	if err != nil {
		return Sample{}, err
	}

	name := "Unknown CPU"
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		name = infos[0].ModelName
	}

	// Percent since the previous call; non-blocking.
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return Sample{}, err
	}
	usage := 0.0
	if len(percents) > 0 {
		usage = percents[0]
	}

	return Sample{Name: fmt.Sprintf("%s (%d cores)", name, counts), Value: usage}, nil
}

func (p *Probe) Memory() (Sample, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Sample{}, err
	}
	return Sample{
		Name:  fmt.Sprintf("%s / %s", humanSize(vm.Used), humanSize(vm.Total)),
		Value: vm.UsedPercent,
	}, nil
}

func (p *Probe) Disk() (Sample, error) {
	parts, err := disk.Partitions(false)
	if err != nil {
		return Sample{}, err
	}

	var total, used uint64
	for _, part := range parts {
		if part.Fstype == "" {
			continue
		}
		usage, err := disk.Usage(part.Mountpoint)
		if err != nil {
			continue
		}
		total += usage.Total
		used += usage.Used
	}

	root, err := disk.Usage("/")
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Name:  fmt.Sprintf("%s / %s", humanSize(used), humanSize(total)),
		Value: root.UsedPercent,
	}, nil
}

func (p *Probe) Swap() (Sample, error) {
	swap, err := mem.SwapMemory()
	if err != nil {
		return Sample{}, err
	}
	usage := 0.0
	if swap.Total > 0 {
		usage = swap.UsedPercent
	}
	return Sample{
		Name:  fmt.Sprintf("%s / %s", humanSize(swap.Used), humanSize(swap.Total)),
		Value: usage,
	}, nil
}

// Network reports throughput since the previous call in Mbps, as a
// fraction of an assumed gigabit link. The first call establishes the
// baseline and reports zero.
func (p *Probe) Network() (Sample, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return Sample{}, err
	}
	if len(counters) == 0 {
		return Sample{}, fmt.Errorf("no network counters")
	}
	now := time.Now()
	current := counters[0]

	p.mu.Lock()
	defer p.mu.Unlock()

	const linkMbps = 1000.0

	if p.lastNet == nil {
		p.lastNet = &current
		p.lastNetAt = now
		return Sample{Name: fmt.Sprintf("%.0fMbps", linkMbps), Value: 0}, nil
	}

	elapsed := now.Sub(p.lastNetAt).Seconds()
	if elapsed <= 0 {
		elapsed = 1
	}
	delta, ok := counterDelta(p.lastNet, &current)

	p.lastNet = &current
	p.lastNetAt = now

	if !ok {
		// Kernel counters went backwards (interface bounce, container
		// restart); report zero against the fresh baseline.
		return Sample{Name: fmt.Sprintf("%.0fMbps", linkMbps), Value: 0}, nil
	}

	mbps := delta * 8 / 1e6 / elapsed
	usage := min(mbps/linkMbps*100, 100)
	return Sample{Name: fmt.Sprintf("%.0fMbps", linkMbps), Value: usage}, nil
}

// counterDelta returns the byte count accumulated between two readings,
// or ok=false when either counter moved backwards.
func counterDelta(prev, cur *net.IOCountersStat) (float64, bool) {
	if cur.BytesSent < prev.BytesSent || cur.BytesRecv < prev.BytesRecv {
		return 0, false
	}
	return float64(cur.BytesSent - prev.BytesSent + cur.BytesRecv - prev.BytesRecv), true
}

func humanSize(bytes uint64) string {
	gb := float64(bytes) / (1 << 30)
	if gb >= 1000 {
		return fmt.Sprintf("%.1fTB", gb/1024)
	}
	return fmt.Sprintf("%.1fGB", gb)
}
