package store

import (
	"github.com/VictoriaMetrics/metrics"
)

// Operation counters for all store instances in the process. They are
// exposed through the default metrics set and can be scraped with
// metrics.WritePrometheus.
var (
	metricSetOps         = metrics.NewCounter(`rkv_store_ops_total{op="set"}`)
	metricGetOps         = metrics.NewCounter(`rkv_store_ops_total{op="get"}`)
	metricObserveOps     = metrics.NewCounter(`rkv_store_ops_total{op="observe"}`)
	metricRemoveAllOps   = metrics.NewCounter(`rkv_store_ops_total{op="remove_all"}`)
	metricDestroyOps     = metrics.NewCounter(`rkv_store_ops_total{op="destroy"}`)
	metricSetErrors      = metrics.NewCounter(`rkv_store_op_errors_total{op="set"}`)
	metricStreamsCreated = metrics.NewCounter(`rkv_store_streams_created_total`)
)
