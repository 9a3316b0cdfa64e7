package boxscore

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TablePair holds the indices of the away and home tables for one category
// within a page's flat table list. Away always precedes home.
type TablePair struct {
	Away int
	Home int
}

// TableClassifier decides which of a page's tables belong to which stat
// category. The two strategies cover the two source layouts: pages with
// distinctive headers are classified by signature, pages with generic or
// repeated headers by position.
type TableClassifier interface {
	Classify(tables []*goquery.Selection) map[Category]TablePair
}

// PositionalClassifier assigns categories by walking the page's table list
// from a fixed start index, consuming two tables per slot in a fixed
// sequence. Slots marked CategorySkip consume their pair without emitting a
// mapping. Tables with fewer than two rows (a bare header, or nothing) are
// treated as empty placeholders: the cursor still advances past them so the
// remaining slots stay aligned.
type PositionalClassifier struct {
	Start    int
	Sequence []Category
}

// Classify maps categories to table pairs by position.
func (c *PositionalClassifier) Classify(tables []*goquery.Selection) map[Category]TablePair {
	out := make(map[Category]TablePair)
	idx := c.Start
	for _, cat := range c.Sequence {
		if idx+1 >= len(tables) {
			break
		}
		away, home := idx, idx+1
		idx += 2
		if tableRowCount(tables[away]) < 2 {
			continue
		}
		if cat == CategorySkip {
			continue
		}
		out[cat] = TablePair{Away: away, Home: home}
	}
	return out
}

func tableRowCount(table *goquery.Selection) int {
	return table.Find("tr").Length()
}

// SignatureClassifier assigns categories by matching each table's header row
// against known per-category header signatures. Categories are visited in
// Order; each matches the first two unclaimed tables whose headers start with
// the signature, taking them as away then home. A table index is never
// claimed twice, which is what disambiguates categories that share a
// signature (the two return disciplines): the earlier category in Order
// claims the earlier pair.
type SignatureClassifier struct {
	Signatures map[Category][]string
	Order      []Category
}

// Classify maps categories to table pairs by header signature.
func (c *SignatureClassifier) Classify(tables []*goquery.Selection) map[Category]TablePair {
	out := make(map[Category]TablePair)
	claimed := make(map[int]bool)

	for _, cat := range c.Order {
		sig, ok := c.Signatures[cat]
		if !ok {
			continue
		}
		var matched []int
		for i, table := range tables {
			if claimed[i] {
				continue
			}
			if headerMatches(table, sig) {
				matched = append(matched, i)
				if len(matched) == 2 {
					break
				}
			}
		}
		if len(matched) < 2 {
			continue
		}
		claimed[matched[0]] = true
		claimed[matched[1]] = true
		out[cat] = TablePair{Away: matched[0], Home: matched[1]}
	}
	return out
}

// headerMatches reports whether the table's header row starts with the given
// column names, ignoring the leading player-name column. Matching is literal
// and case-sensitive, the same as the column maps.
func headerMatches(table *goquery.Selection, sig []string) bool {
	headers := HeaderCells(table)
	if len(headers) == 0 {
		return false
	}
	// Drop the leading name column; signatures describe the stat columns.
	headers = headers[1:]
	if len(headers) < len(sig) {
		return false
	}
	for i, want := range sig {
		if headers[i] != want {
			return false
		}
	}
	return true
}

// HeaderCells returns the trimmed cell texts of a table's first row.
func HeaderCells(table *goquery.Selection) []string {
	var out []string
	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		out = append(out, strings.TrimSpace(cell.Text()))
	})
	return out
}

// DataRows returns every row after the header row.
func DataRows(table *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		out = append(out, row)
	})
	return out
}
