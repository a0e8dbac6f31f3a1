package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"sync"
	"time"

	"huddle-backend/internal/middleware"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// DBPinger is optional for health check. If nil, database is reported as disconnected.
type DBPinger interface {
	Ping() error
}

// Probe is an external URL whose reachability is reported but never affects Status.
type Probe struct {
	Name string
	URL  string
}

// Report is the body of GET /health/json.
type Report struct {
	Service      string               `json:"service"`
	Status       string               `json:"status"` // "ok" when database and redis are connected, else "issue"
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64  `json:"uptimeSeconds"`
	HeapAllocMB   int    `json:"heapAllocMb"`
	HeapInuseMB   int    `json:"heapInuseMb"`
	Goroutines    int    `json:"goroutines"`
	Platform      string `json:"platform"`
	GoVersion     string `json:"goVersion"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime string      `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// Collector gathers the health report.
type Collector struct {
	Redis  redis.UniversalClient
	DB     DBPinger
	Probes []Probe
	HTTP   *resty.Client // nil uses a client with a 3s timeout
}

func (c *Collector) http() *resty.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return resty.New().SetTimeout(3 * time.Second)
}

// Collect pings dependencies and probes concurrently and reads traffic stats from Redis.
func (c *Collector) Collect(ctx context.Context) Report {
	report := Report{
		Service:      "huddle-api",
		Dependencies: make(map[string]DepStatus),
		Traffic:      TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"},
	}
	startMs := time.Now().UnixMilli()

	var mu sync.Mutex
	setDep := func(name string, dep DepStatus) {
		mu.Lock()
		report.Dependencies[name] = dep
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		dep := DepStatus{Status: "disconnected"}
		if c.DB != nil {
			start := time.Now()
			if err := c.DB.Ping(); err == nil {
				ms := time.Since(start).Milliseconds()
				dep = DepStatus{Status: "connected", PingMs: &ms}
			} else {
				dep.Status = "error"
			}
		}
		setDep("database", dep)
		return nil
	})
	g.Go(func() error {
		dep := DepStatus{Status: "disconnected"}
		if c.Redis != nil {
			start := time.Now()
			if err := c.Redis.Ping(ctx).Err(); err == nil {
				ms := time.Since(start).Milliseconds()
				dep = DepStatus{Status: "connected", PingMs: &ms}
				traffic, started := readTraffic(ctx, c.Redis)
				mu.Lock()
				report.Traffic = traffic
				if started > 0 {
					startMs = started
				}
				mu.Unlock()
			} else {
				dep.Status = "error"
			}
		}
		setDep("redis", dep)
		return nil
	})
	client := c.http()
	for _, p := range c.Probes {
		g.Go(func() error {
			start := time.Now()
			resp, err := client.R().SetContext(ctx).Get(p.URL)
			if err != nil || resp.StatusCode() >= 500 {
				setDep(p.Name, DepStatus{Status: "unreachable"})
				return nil
			}
			ms := time.Since(start).Milliseconds()
			setDep(p.Name, DepStatus{Status: "reachable", PingMs: &ms})
			return nil
		})
	}
	_ = g.Wait()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptime := (time.Now().UnixMilli() - startMs) / 1000
	if uptime < 0 {
		uptime = 0
	}
	report.Runtime = RuntimeInfo{
		UptimeSeconds: uptime,
		HeapAllocMB:   int(m.HeapAlloc / 1024 / 1024),
		HeapInuseMB:   int(m.HeapInuse / 1024 / 1024),
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}

	if report.Dependencies["database"].Status == "connected" && report.Dependencies["redis"].Status == "connected" {
		report.Status = "ok"
	} else {
		report.Status = "issue"
	}
	return report
}

func readTraffic(ctx context.Context, rdb redis.UniversalClient) (TrafficInfo, int64) {
	stats := TrafficInfo{SuccessRate: "100", AvgResponseTime: "0"}
	vals, err := rdb.MGet(ctx,
		middleware.KeyReqTotal,
		middleware.KeyReqErrors,
		middleware.KeyResTime,
		middleware.KeyResCount,
		middleware.KeyStartTime,
		middleware.KeyLastReq,
	).Result()
	if err != nil {
		return stats, 0
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	if count, _ := strconv.Atoi(str(3)); count > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(count), 'f', 2, 64)
	}
	started, _ := strconv.ParseInt(str(4), 10, 64)
	if s := str(5); s != "" {
		var last map[string]interface{}
		if json.Unmarshal([]byte(s), &last) == nil {
			stats.LastRequest = last
		}
	}
	return stats, started
}
