package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"scishare/internal/db"
)

var shareDesc = prometheus.NewDesc(
	"scishare_abstract_shares_total",
	"Total share attempts by abstract DOI and delivery outcome",
	[]string{"doi", "outcome"},
	nil,
)

// ShareCollector is a custom Prometheus collector that reads share counts
// from the database on each scrape. Counts are derived from the append-only
// share log, never cached, so they cannot drift from the history.
type ShareCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *ShareCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- shareDesc
}

// Collect queries the database for share counts and emits them as counters.
func (c *ShareCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.db.GetShareCountsByOutcome(context.Background())
	if err != nil {
		slog.Error("failed to collect share metrics", "error", err)
		return
	}
	for _, sc := range counts {
		outcome := "failed"
		if sc.Delivered {
			outcome = "delivered"
		}
		doi := sc.DOI
		if doi == "" {
			doi = sc.AbstractID.String()
		}
		ch <- prometheus.MustNewConstMetric(
			shareDesc,
			prometheus.CounterValue,
			float64(sc.Count),
			doi,
			outcome,
		)
	}
}

var initOnce sync.Once

// Init registers the custom collector. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(&ShareCollector{db: database})
	})
}
