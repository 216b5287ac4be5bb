package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TableInfo describes the shape of one table on a page. Used by the
// tables debug command to eyeball unfamiliar page layouts.
type TableInfo struct {
	Index     int
	Headings  []string
	Rows      int
	Cells     int // cells of the first data row
	FirstLink string
}

// Inspect fetches an arbitrary page and reports the shape of every table
// on it.
func (c *Client) Inspect(ctx context.Context, pageURL string) ([]TableInfo, error) {
	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return inspectTables(doc), nil
}

func inspectTables(doc *goquery.Document) []TableInfo {
	var infos []TableInfo
	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		info := TableInfo{
			Index:    i,
			Headings: headerTexts(table),
			Rows:     table.Find("tr").Length(),
		}
		if info.Rows > 1 {
			info.Cells = table.Find("tr").Eq(1).Find("td").Length()
		}
		if href, ok := table.Find("a").First().Attr("href"); ok {
			info.FirstLink = strings.TrimSpace(href)
		}
		infos = append(infos, info)
	})
	return infos
}
