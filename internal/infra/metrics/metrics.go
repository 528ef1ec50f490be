package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "documents_analyzed_total",
		Help: "Document analysis runs by outcome.",
	}, []string{"status"})

	MaterialMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "material_matches_total",
		Help: "Reconciliation outcomes per extracted material.",
	}, []string{"result"})

	StockUpserts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_item_upserts_total",
		Help: "Storage item upsert operations.",
	})
)
