// Package metrics defines the Prometheus collectors of streammsg.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Keys for streammsg metrics.
const (
	Fail = "fail"
	Ok   = "ok"
)

// Collectors for session.Session and transport.Transport metrics.
var (
	StreamsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streammsg_streams_created_total",
		Help: "Cumulative number of stream messages created, by session.",
	}, []string{"session"})
	DeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streammsg_deliveries_total",
		Help: "Cumulative number of stream message deliveries, by transport and status.",
	}, []string{"transport", "status"})
	DeliveredBytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streammsg_delivered_bytes_total",
		Help: "Cumulative number of encoded (and compressed) body bytes delivered, by transport.",
	}, []string{"transport"})
	DeliveredFieldsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "streammsg_delivered_fields_total",
		Help: "Cumulative number of delivered body fields, by field kind.",
	}, []string{"kind"})
	EncodedBodyBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "streammsg_encoded_body_bytes",
		Help:    "Size of encoded stream message bodies, before compression.",
		Buckets: prometheus.ExponentialBuckets(16, 4, 10),
	})
)

// Collectors returns all collectors of this package, for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		StreamsCreatedTotal,
		DeliveriesTotal,
		DeliveredBytesTotal,
		DeliveredFieldsTotal,
		EncodedBodyBytes,
	}
}

func init() {
	prometheus.MustRegister(Collectors()...)
}
