package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	datasetLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aircli_dataset_loads_total",
		Help: "Number of successful dataset loads.",
	})

	datasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aircli_dataset_records",
		Help: "Number of readings in the currently loaded dataset.",
	})

	statQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aircli_stat_queries_total",
		Help: "Statistics queries served, by query kind.",
	}, []string{"kind"})
)
