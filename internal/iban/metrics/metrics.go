package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for IBAN operations.
type Metrics struct {
	DecodesTotal     *prometheus.CounterVec
	EncodesTotal     *prometheus.CounterVec
	ChecksumFailures prometheus.Counter
	QRGenerated      prometheus.Counter
	CountryLookups   *prometheus.CounterVec

	DecodeDurationMs prometheus.Histogram
	EncodeDurationMs prometheus.Histogram
	BatchSize        prometheus.Histogram
}

// New registers and returns IBAN metrics collectors.
func New() *Metrics {
	return &Metrics{
		DecodesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ibanq_decodes_total",
			Help: "Total number of decode operations, by country and outcome",
		}, []string{"country", "outcome"}),
		EncodesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ibanq_encodes_total",
			Help: "Total number of encode operations, by country and outcome",
		}, []string{"country", "outcome"}),
		ChecksumFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ibanq_checksum_failures_total",
			Help: "Total number of decodes that failed checksum verification",
		}),
		QRGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ibanq_qr_generated_total",
			Help: "Total number of payment QR codes generated",
		}),
		CountryLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ibanq_country_lookups_total",
			Help: "Total number of country detail lookups, by result",
		}, []string{"result"}),

		DecodeDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ibanq_decode_duration_ms",
			Help:    "Duration of decode operations in milliseconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		EncodeDurationMs: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ibanq_encode_duration_ms",
			Help:    "Duration of encode operations in milliseconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ibanq_validate_batch_size",
			Help:    "Number of IBANs per batch validation request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
		}),
	}
}

func (m *Metrics) IncrementDecodes(country, outcome string) {
	m.DecodesTotal.WithLabelValues(country, outcome).Inc()
}

func (m *Metrics) IncrementEncodes(country, outcome string) {
	m.EncodesTotal.WithLabelValues(country, outcome).Inc()
}

func (m *Metrics) IncrementChecksumFailures() {
	m.ChecksumFailures.Inc()
}

func (m *Metrics) IncrementQRGenerated() {
	m.QRGenerated.Inc()
}

func (m *Metrics) IncrementCountryLookups(result string) {
	m.CountryLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveDecodeDuration(durationMs float64) {
	m.DecodeDurationMs.Observe(durationMs)
}

func (m *Metrics) ObserveEncodeDuration(durationMs float64) {
	m.EncodeDurationMs.Observe(durationMs)
}

func (m *Metrics) ObserveBatchSize(size int) {
	m.BatchSize.Observe(float64(size))
}
