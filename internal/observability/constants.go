package observability

// Metric names
const (
	MetricNameItemsGenerated      = "bbgen_items_generated_total"
	MetricNameElementalOutcomes   = "bbgen_elemental_outcomes_total"
	MetricNameElementalRerolls    = "bbgen_elemental_rerolls"
	MetricNameLootPiles           = "bbgen_loot_piles_total"
	MetricNameHTTPRequestsTotal   = "bbgen_http_requests_total"
	MetricNameHTTPRequestDuration = "bbgen_http_request_duration_seconds"
	MetricNameHTTPInFlight        = "bbgen_http_requests_in_flight"
)

// Metric help text
const (
	HelpTextItemsGenerated      = "Total number of guns generated"
	HelpTextElementalOutcomes   = "Damage types rolled onto generated guns"
	HelpTextElementalRerolls    = "Elemental rolls needed by always-elemental manufacturers"
	HelpTextLootPiles           = "Total number of loot piles rolled"
	HelpTextHTTPRequestsTotal   = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration = "HTTP request latency in seconds"
	HelpTextHTTPInFlight        = "Current number of HTTP requests being served"
)

// Label names
const (
	LabelRarity       = "rarity"
	LabelManufacturer = "manufacturer"
	LabelWeapon       = "weapon"
	LabelType         = "type"
	LabelMethod       = "method"
	LabelPath         = "path"
	LabelStatus       = "status"
)

// Buckets
var (
	RerollBuckets      = []float64{1, 2, 3, 5, 8, 13, 21, 50, 100}
	HTTPLatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1}
)
