package capture

import (
	"context"

	"github.com/aleister1102/screendiff/internal/config"
	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostCapability is a snapshot of the resources the serial/parallel
// heuristic looks at.
type HostCapability struct {
	Cores        int
	ClockMHz     float64
	FreeMemoryMB uint64
}

// CapabilityProbe reports host resources. It is an interface so tests can
// decide the execution mode without real hardware introspection.
type CapabilityProbe interface {
	Snapshot(ctx context.Context) (HostCapability, error)
}

// AllowsParallel applies the capability heuristic: every threshold in cfg
// must be met for concurrent execution.
func AllowsParallel(cfg config.CapabilityConfig, cap HostCapability) bool {
	return cap.Cores >= cfg.MinCores &&
		cap.ClockMHz > cfg.MinClockMHz &&
		cap.FreeMemoryMB >= cfg.MinFreeMemMB
}

// GopsutilProbe is the default CapabilityProbe backed by gopsutil
type GopsutilProbe struct{}

// NewGopsutilProbe creates a new host capability probe
func NewGopsutilProbe() *GopsutilProbe {
	return &GopsutilProbe{}
}

// Snapshot reads logical core count, per-core clock, and available memory
func (gp *GopsutilProbe) Snapshot(ctx context.Context) (HostCapability, error) {
	cores, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return HostCapability{}, errorwrapper.WrapError(err, "failed to read CPU core count")
	}

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return HostCapability{}, errorwrapper.WrapError(err, "failed to read CPU info")
	}
	clockMHz := 0.0
	if len(infos) > 0 {
		clockMHz = infos[0].Mhz
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return HostCapability{}, errorwrapper.WrapError(err, "failed to read memory stats")
	}

	return HostCapability{
		Cores:        cores,
		ClockMHz:     clockMHz,
		FreeMemoryMB: vm.Available / 1024 / 1024,
	}, nil
}
