package boxscore

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Profile link patterns per source. FootballDB appends the player id to a
// slugged name (/players/alvin-kamara-kamaral01); PFA uses a bare id page
// (/players/kamaal01.html).
var (
	fdbPlayerIDPattern = regexp.MustCompile(`/players/[\w-]+-(\w+)$`)
	pfaPlayerIDPattern = regexp.MustCompile(`/players/(\w+)\.html$`)
)

// ExtractPlayerID parses the stable player id out of a profile link path and
// namespaces it with the source tag. Returns "" when the link does not match
// the source's pattern.
func ExtractPlayerID(href string, source Source) string {
	var m []string
	switch source {
	case SourceFDB:
		m = fdbPlayerIDPattern.FindStringSubmatch(href)
	case SourcePFA:
		m = pfaPlayerIDPattern.FindStringSubmatch(href)
	}
	if m == nil {
		return ""
	}
	return string(source) + "_" + m[1]
}

// CleanPlayerName recovers the full name from cells where the source
// concatenates the full name and an abbreviated repetition with no separator
// ("Alvin KamaraA. Kamara"). It scans backward for the last period,
// then walks further back over uppercase letters to find where the
// abbreviation begins; everything before that point is the full name. When
// no such boundary exists the raw text is returned with non-breaking spaces
// normalized. The heuristic is not foolproof (initialed names defeat it) and
// is deliberately kept as-is rather than special-cased per player.
func CleanPlayerName(text string) string {
	runes := []rune(text)
	for i := len(runes) - 1; i > 0; i-- {
		if runes[i] != '.' {
			continue
		}
		j := i - 1
		for j > 0 && unicode.IsUpper(runes[j]) {
			j--
		}
		if j > 0 && j < i {
			return strings.TrimSpace(string(runes[:j+1]))
		}
	}
	return strings.ReplaceAll(text, "\u00a0", " ")
}

// ResolveIdentity extracts the player reference from a data-row's player
// cell. Rows without a resolvable id (TOTAL rows, rows with no profile
// link) return false and are dropped by callers; no stat row is emitted.
func ResolveIdentity(cell *goquery.Selection, source Source, baseURL string) (Identity, bool) {
	text := strings.TrimSpace(cell.Text())
	if text == "" || text == "TOTAL" {
		return Identity{}, false
	}

	link := cell.Find("a").First()
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return Identity{}, false
	}

	id := ExtractPlayerID(href, source)
	if id == "" {
		return Identity{}, false
	}

	return Identity{
		PlayerID:   id,
		Name:       CleanPlayerName(text),
		ProfileURL: resolveURL(baseURL, href),
	}, true
}

// resolveURL joins a possibly-relative href against the source base URL.
func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
