package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CasesOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCasesOpened,
			Help: HelpTextCasesOpened,
		},
		[]string{LabelRarity},
	)

	ListingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsCreated,
			Help: HelpTextListingsCreated,
		},
	)

	ListingsSold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameListingsSold,
			Help: HelpTextListingsSold,
		},
	)

	ItemsRecycled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsRecycled,
			Help: HelpTextItemsRecycled,
		},
		[]string{LabelRarity},
	)

	ShopPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShopPurchases,
			Help: HelpTextShopPurchases,
		},
		[]string{LabelKind},
	)

	DailyClaims = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDailyClaims,
			Help: HelpTextDailyClaims,
		},
	)

	CoinsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsGranted,
			Help: HelpTextCoinsGranted,
		},
		[]string{LabelSource},
	)

	CoinsBurned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsBurned,
			Help: HelpTextCoinsBurned,
		},
		[]string{LabelSource},
	)
)

// RecordCaseOpened counts one opened case by drop rarity.
func RecordCaseOpened(rarity string) {
	CasesOpened.WithLabelValues(rarity).Inc()
}

// RecordListingCreated counts one new market listing.
func RecordListingCreated() {
	ListingsCreated.Inc()
}

// RecordSale counts a completed sale and the fee burned by it.
func RecordSale(fee int) {
	ListingsSold.Inc()
	CoinsBurned.WithLabelValues("market_fee").Add(float64(fee))
}

// RecordRecycle counts one recycled item and the coins minted for it.
func RecordRecycle(rarity string, payout int) {
	ItemsRecycled.WithLabelValues(rarity).Inc()
	CoinsGranted.WithLabelValues("recycle").Add(float64(payout))
}

// RecordShopPurchase counts tokens bought from the shop by kind.
func RecordShopPurchase(kind string, qty int) {
	ShopPurchases.WithLabelValues(kind).Add(float64(qty))
}

// RecordDailyClaim counts one claimed daily reward.
func RecordDailyClaim(coins int) {
	DailyClaims.Inc()
	CoinsGranted.WithLabelValues("daily").Add(float64(coins))
}
