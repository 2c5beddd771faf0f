package sql

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusClusterSave           prometheus.Counter
	prometheusClusterBatchSave      prometheus.Counter
	prometheusClusterGet            prometheus.Counter
	prometheusClusterGetCpfp        prometheus.Counter
	prometheusClusterDeleteFrom     prometheus.Counter
	prometheusClusterProgressMarker prometheus.Counter
	prometheusClusterErrors         *prometheus.CounterVec

	// only init the metrics once
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusClusterSave = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_cluster_save",
			Help: "Number of cluster save calls done to sql",
		},
	)
	prometheusClusterBatchSave = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_cluster_batch_save",
			Help: "Number of cluster batch save calls done to sql",
		},
	)
	prometheusClusterGet = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_cluster_get",
			Help: "Number of cluster get calls done to sql",
		},
	)
	prometheusClusterGetCpfp = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_cluster_get_cpfp",
			Help: "Number of cpfp info lookups done to sql",
		},
	)
	prometheusClusterDeleteFrom = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_cluster_delete_from",
			Help: "Number of cluster delete from height calls done to sql",
		},
	)
	prometheusClusterProgressMarker = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sql_cluster_progress_marker",
			Help: "Number of progress marker inserts done to sql",
		},
	)
	prometheusClusterErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sql_cluster_errors",
			Help: "Number of cluster store errors",
		},
		[]string{
			"function", // function raising the error
			"error",    // error returned
		},
	)
}
