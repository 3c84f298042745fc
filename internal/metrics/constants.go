package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCasesOpened     = "cases_opened_total"
	MetricNameListingsCreated = "market_listings_created_total"
	MetricNameListingsSold    = "market_listings_sold_total"
	MetricNameItemsRecycled   = "items_recycled_total"
	MetricNameShopPurchases   = "shop_purchases_total"
	MetricNameDailyClaims     = "daily_rewards_claimed_total"
	MetricNameCoinsGranted    = "coins_granted_total"
	MetricNameCoinsBurned     = "coins_burned_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCasesOpened     = "Total number of cases opened"
	HelpTextListingsCreated = "Total number of market listings created"
	HelpTextListingsSold    = "Total number of market listings sold"
	HelpTextItemsRecycled   = "Total number of items recycled"
	HelpTextShopPurchases   = "Total tokens purchased from the shop"
	HelpTextDailyClaims     = "Total number of daily rewards claimed"
	HelpTextCoinsGranted    = "Total coins credited to user balances"
	HelpTextCoinsBurned     = "Total coins removed from circulation"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelRarity = "rarity"
	LabelKind   = "kind"
	LabelSource = "source"
)

// HTTPLatencyBuckets covers fast API handlers through slow DB paths
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
