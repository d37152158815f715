package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is the health snapshot served on /health.
type Status struct {
	Status         string  `json:"status"`
	DatabaseStatus string  `json:"database_status"`
	ResponseTimeMS int64   `json:"response_time_ms"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	DiskPercent    float64 `json:"disk_percent"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
}

type Checker struct {
	db      *pgxpool.Pool
	started time.Time
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db, started: time.Now()}
}

func (c *Checker) Check(ctx context.Context) *Status {
	status := &Status{Status: "ok", DatabaseStatus: "ok"}

	start := time.Now()
	if err := c.db.Ping(ctx); err != nil {
		status.Status = "degraded"
		status.DatabaseStatus = "unreachable"
	}
	status.ResponseTimeMS = time.Since(start).Milliseconds()
	status.UptimeSeconds = int64(time.Since(c.started).Seconds())

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		status.DiskPercent = du.UsedPercent
	}
	return status
}
