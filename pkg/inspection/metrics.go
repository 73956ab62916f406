package inspection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tankinspect_records_written_total",
			Help: "Inspection records written, by resource and operation",
		},
		[]string{"resource", "op"},
	)

	writeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tankinspect_write_failures_total",
			Help: "Rejected or failed writes, by resource and error kind",
		},
		[]string{"resource", "kind"},
	)
)

// observe counts the outcome of a write and returns err unchanged.
func observe(resource, op string, err error) error {
	if err == nil {
		recordsWritten.WithLabelValues(resource, op).Inc()
		return nil
	}
	writeFailures.WithLabelValues(resource, Kind(err)).Inc()
	return err
}
