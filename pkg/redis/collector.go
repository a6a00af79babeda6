package redis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var (
	poolHitsDesc     = prometheus.NewDesc("redis_pool_hits_total", "Times a free connection was found in the pool.", nil, nil)
	poolMissesDesc   = prometheus.NewDesc("redis_pool_misses_total", "Times a free connection was not found in the pool.", nil, nil)
	poolTimeoutsDesc = prometheus.NewDesc("redis_pool_timeouts_total", "Times a wait for a connection timed out.", nil, nil)
	poolTotalDesc    = prometheus.NewDesc("redis_pool_connections", "Connections currently in the pool.", nil, nil)
	poolIdleDesc     = prometheus.NewDesc("redis_pool_idle_connections", "Idle connections currently in the pool.", nil, nil)
)

type poolCollector struct {
	stats func() *redis.PoolStats
}

// Collector exposes the connection pool statistics. It reports nothing for a client
// without a live connection.
func (c *Client) Collector() prometheus.Collector {
	return &poolCollector{stats: func() *redis.PoolStats {
		if c.raw == nil {
			return nil
		}
		return c.raw.PoolStats()
	}}
}

func (p *poolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- poolHitsDesc
	ch <- poolMissesDesc
	ch <- poolTimeoutsDesc
	ch <- poolTotalDesc
	ch <- poolIdleDesc
}

func (p *poolCollector) Collect(ch chan<- prometheus.Metric) {
	stats := p.stats()
	if stats == nil {
		return
	}
	ch <- prometheus.MustNewConstMetric(poolHitsDesc, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(poolMissesDesc, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(poolTimeoutsDesc, prometheus.CounterValue, float64(stats.Timeouts))
	ch <- prometheus.MustNewConstMetric(poolTotalDesc, prometheus.GaugeValue, float64(stats.TotalConns))
	ch <- prometheus.MustNewConstMetric(poolIdleDesc, prometheus.GaugeValue, float64(stats.IdleConns))
}
