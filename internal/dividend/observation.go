package dividend

// Observation is a raw table row handed from the scraper to the
// normalizer, all values kept exactly as printed on the page.
type Observation struct {
	Ticker       string
	Name         string
	RawDate      string // register-close cell
	RawYear      string // year cell on annual summary tables
	RawAmount    string // dividend cell
	RawPeriod    string // period cell when the table has one
	RawAnnounced string // announcement-date cell when present
	SiteForecast bool   // the row carries the site's own forecast marker
}
