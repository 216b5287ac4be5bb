package scrape

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dividendlab/divcast/internal/dividend"
)

var tickerRe = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// listing table headers on the dividend page: asset, register close,
// dividend
var listingKeywords = []string{"актив", "закрытие реестра", "дивиденд"}

// FetchSecurities downloads the dividend listing page and extracts the
// securities it links to, capped by the configured maximum.
func (c *Client) FetchSecurities(ctx context.Context) ([]Security, error) {
	c.log.WithField("url", c.listingURL).Info("Fetching security listing")

	doc, err := c.fetchDocument(ctx, c.listingURL)
	if err != nil {
		return nil, err
	}

	securities := c.parseListing(doc)
	if c.maxSecurities > 0 && len(securities) > c.maxSecurities {
		securities = securities[:c.maxSecurities]
	}

	c.log.WithField("count", len(securities)).Info("Found securities")
	return securities, nil
}

// parseListing locates the main dividend table and extracts one Security
// per linked row, deduplicated by ticker.
func (c *Client) parseListing(doc *goquery.Document) []Security {
	table := findListingTable(doc)
	if table == nil {
		c.log.Error("No usable table on the listing page")
		return nil
	}

	var securities []Security
	seen := make(map[string]bool)

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return // header
		}
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		assetCell := cells.Eq(0)
		link := assetCell.Find("a").First()
		href, ok := link.Attr("href")
		if !ok || href == "" {
			return
		}

		name := strings.TrimSpace(assetCell.Text())

		parts := strings.Split(strings.TrimRight(href, "/"), "/")
		ticker := parts[len(parts)-1]
		if ticker == "" {
			ticker = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
		}
		if !tickerRe.MatchString(ticker) || seen[ticker] {
			return
		}
		seen[ticker] = true

		securities = append(securities, Security{
			Ticker:  ticker,
			Name:    name,
			URL:     c.resolveURL(href),
			Summary: summaryObservation(ticker, name, cells),
		})
	})

	return securities
}

// summaryObservation captures the listing row's own period/dividend/date
// cells. It is used only when the detail page for the ticker yields no
// observations.
func summaryObservation(ticker, name string, cells *goquery.Selection) *dividend.Observation {
	if cells.Length() < 9 {
		return nil
	}

	amount := strings.TrimSpace(cells.Eq(3).Text())
	obs := &dividend.Observation{
		Ticker:    ticker,
		Name:      name,
		RawPeriod: strings.TrimSpace(cells.Eq(2).Text()),
		RawAmount: amount,
		RawDate:   strings.TrimSpace(cells.Eq(8).Text()),
	}
	if containsForecastMarker(amount) {
		obs.SiteForecast = true
	}
	return obs
}

// containsForecastMarker reports whether a cell carries the site's own
// forecast notation: the word itself or a parenthesised value.
func containsForecastMarker(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "прогноз") || strings.Contains(s, "(")
}

// findListingTable picks the main dividend table: first by header
// keywords, then by the table carrying the most dividend links, finally
// by row count.
func findListingTable(doc *goquery.Document) *goquery.Selection {
	var byHeader *goquery.Selection
	doc.Find("table").EachWithBreak(func(i int, table *goquery.Selection) bool {
		headers := headerTexts(table)
		matches := 0
		for _, keyword := range listingKeywords {
			for _, h := range headers {
				if strings.Contains(h, keyword) {
					matches++
					break
				}
			}
		}
		if matches >= 2 {
			byHeader = table
			return false
		}
		return true
	})
	if byHeader != nil {
		return byHeader
	}

	var byLinks *goquery.Selection
	mostLinks := 0
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		count := 0
		table.Find("a").Each(func(_ int, link *goquery.Selection) {
			if href, ok := link.Attr("href"); ok && strings.Contains(href, "dividend/") {
				count++
			}
		})
		if count > mostLinks {
			mostLinks = count
			byLinks = table
		}
	})
	if byLinks != nil {
		return byLinks
	}

	var largest *goquery.Selection
	mostRows := 0
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		rows := table.Find("tr").Length()
		if rows > mostRows {
			mostRows = rows
			largest = table
		}
	})
	return largest
}

// headerTexts returns the lowercased texts of a table's header row, taking
// th elements when present and the first row's td cells otherwise.
func headerTexts(table *goquery.Selection) []string {
	cells := table.Find("th")
	if cells.Length() == 0 {
		cells = table.Find("tr").First().Find("td")
	}

	var texts []string
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, strings.ToLower(strings.TrimSpace(cell.Text())))
	})
	return texts
}
