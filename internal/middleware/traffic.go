package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys shared by TrafficStats and the health report.
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
)

func skipStats(path string) bool {
	return path == "/" || path == "/metrics" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon")
}

// TrafficStats keeps request totals in Redis so every API instance reports the same numbers.
// Writes are pipelined and their errors ignored; stats must never fail a request.
func TrafficStats(rdb redis.UniversalClient) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipStats(c.Path()) {
			return c.Next()
		}
		start := time.Now()
		lastReq, _ := json.Marshal(map[string]interface{}{
			"time":   start.UTC(),
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})

		err := c.Next()

		ctx := context.Background()
		pipe := rdb.Pipeline()
		pipe.Set(ctx, KeyLastReq, lastReq, 0)
		pipe.SetNX(ctx, KeyStartTime, start.UnixMilli(), 0)
		pipe.Incr(ctx, KeyReqTotal)
		pipe.Incr(ctx, KeyResCount)
		pipe.IncrByFloat(ctx, KeyResTime, float64(time.Since(start).Milliseconds()))
		if err != nil || c.Response().StatusCode() >= 500 {
			pipe.Incr(ctx, KeyReqErrors)
		}
		_, _ = pipe.Exec(ctx)
		return err
	}
}
