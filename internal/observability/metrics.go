package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rowolff/bb-character-sheet/internal/game/generator"
)

// Metrics records generation and HTTP activity. It satisfies both
// generator.Observer and loot.Observer.
type Metrics struct {
	ItemsGenerated      *prometheus.CounterVec
	ElementalOutcomes   *prometheus.CounterVec
	RerollAttempts      prometheus.Histogram
	LootPiles           prometheus.Counter
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge
}

// NewMetrics registers every collector with reg.
//
// Precondition: reg must be non-nil and must not already hold these names.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ItemsGenerated: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameItemsGenerated,
				Help: HelpTextItemsGenerated,
			},
			[]string{LabelRarity, LabelManufacturer, LabelWeapon},
		),
		ElementalOutcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameElementalOutcomes,
				Help: HelpTextElementalOutcomes,
			},
			[]string{LabelType},
		),
		RerollAttempts: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    MetricNameElementalRerolls,
				Help:    HelpTextElementalRerolls,
				Buckets: RerollBuckets,
			},
		),
		LootPiles: f.NewCounter(
			prometheus.CounterOpts{
				Name: MetricNameLootPiles,
				Help: HelpTextLootPiles,
			},
		),
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricNameHTTPRequestsTotal,
				Help: HelpTextHTTPRequestsTotal,
			},
			[]string{LabelMethod, LabelPath, LabelStatus},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricNameHTTPRequestDuration,
				Help:    HelpTextHTTPRequestDuration,
				Buckets: HTTPLatencyBuckets,
			},
			[]string{LabelMethod, LabelPath},
		),
		HTTPInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: MetricNameHTTPInFlight,
				Help: HelpTextHTTPInFlight,
			},
		),
	}
}

// ItemGenerated counts the item and each of its damage types.
func (m *Metrics) ItemGenerated(item generator.Item) {
	m.ItemsGenerated.WithLabelValues(
		string(item.Rarity),
		item.Manufacturer.Key(),
		item.Weapon.Key(),
	).Inc()
	for _, t := range item.Element.Types {
		m.ElementalOutcomes.WithLabelValues(string(t)).Inc()
	}
}

// ElementalRerolls observes how many rolls a forced elemental took.
func (m *Metrics) ElementalRerolls(attempts int) {
	m.RerollAttempts.Observe(float64(attempts))
}

// LootGenerated adds the number of piles rolled.
func (m *Metrics) LootGenerated(_ int, piles int) {
	m.LootPiles.Add(float64(piles))
}
