package metrics

import "time"

// Sink receives operational measurements. Implementations must be safe for
// concurrent use and must never block the caller.
type Sink interface {
	// UpstreamRequest records one call to the Wikimedia API. statusClass is
	// "2xx", "4xx", "5xx" or "error" for transport failures.
	UpstreamRequest(endpoint, statusClass string, duration time.Duration)

	// HTTPRequest records one inbound request served by route.
	HTTPRequest(route string, status int, duration time.Duration)

	// Aggregation records the number of upstream responses folded into one result.
	Aggregation(kind string, responses int)
}

// StatusClass maps an HTTP status code to its metrics label.
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	default:
		return "error"
	}
}
