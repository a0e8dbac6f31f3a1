package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"huddle-backend/internal/middleware"
	"huddle-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping() error { return p.err }

func TestCollect_NoDependencies(t *testing.T) {
	r := (&Collector{}).Collect(context.Background())
	assert.Equal(t, "issue", r.Status)
	assert.Equal(t, "disconnected", r.Dependencies["database"].Status)
	assert.Equal(t, "disconnected", r.Dependencies["redis"].Status)
	assert.Equal(t, 0, r.Traffic.TotalRequests)
	assert.Equal(t, "100", r.Traffic.SuccessRate)
}

func TestCollect_WithTraffic(t *testing.T) {
	rdb, _ := testutil.OpenRedis(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqTotal, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyReqErrors, "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResTime, "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyResCount, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyStartTime, "1000000", 0).Err())
	require.NoError(t, rdb.Set(ctx, middleware.KeyLastReq, `{"method":"GET","path":"/x"}`, 0).Err())

	r := (&Collector{Redis: rdb, DB: pinger{}}).Collect(ctx)
	assert.Equal(t, "ok", r.Status)
	assert.Equal(t, "connected", r.Dependencies["database"].Status)
	assert.Equal(t, 10, r.Traffic.TotalRequests)
	assert.Equal(t, 2, r.Traffic.FailedCount)
	assert.Equal(t, 8, r.Traffic.SuccessCount)
	assert.Equal(t, "80.0", r.Traffic.SuccessRate)
	assert.Equal(t, "15.05", r.Traffic.AvgResponseTime)
	assert.Equal(t, map[string]interface{}{"method": "GET", "path": "/x"}, r.Traffic.LastRequest)
	assert.Greater(t, r.Runtime.UptimeSeconds, int64(0))
}

func TestCollect_DatabaseErrorAndProbes(t *testing.T) {
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))
	defer up.Close()
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }))
	defer down.Close()
	rdb, _ := testutil.OpenRedis(t)

	r := (&Collector{
		Redis:  rdb,
		DB:     pinger{err: errors.New("conn refused")},
		Probes: []Probe{{Name: "frontend", URL: up.URL}, {Name: "mail", URL: down.URL}},
	}).Collect(context.Background())

	assert.Equal(t, "issue", r.Status)
	assert.Equal(t, "error", r.Dependencies["database"].Status)
	assert.Equal(t, "reachable", r.Dependencies["frontend"].Status)
	assert.Equal(t, "unreachable", r.Dependencies["mail"].Status)
}
