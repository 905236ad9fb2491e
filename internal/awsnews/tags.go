package awsnews

import (
	"fmt"
	"regexp"
	"strconv"
)

// tagFormat is one historical encoding of "this item belongs to year Y".
// AWS has changed the encoding over time without migrating old items, so
// every known format is queried for every year and the results merged.
type tagFormat struct {
	name  string
	tagID func(year int) string
}

// tagFormats lists the known year-tag encodings. Slice order is the merge
// order: when the same item comes back under both formats, the occurrence
// from the earlier format wins deduplication.
var tagFormats = []tagFormat{
	{
		name:  "standard",
		tagID: func(year int) string { return fmt.Sprintf("whats-new-v2#year#%d", year) },
	},
	{
		name:  "global",
		tagID: func(year int) string { return fmt.Sprintf("GLOBAL#local-tags-whats-new-v2-year#%d", year) },
	},
}

var yearTagRe = regexp.MustCompile(`year#(\d{4})$`)

// taggedYears extracts every year claimed by an item's tags, across all
// known encodings. Used for diagnostics when an item's actual publish year
// disagrees with the partition it was found under.
func taggedYears(tags []tag) []int {
	var years []int
	for _, t := range tags {
		if m := yearTagRe.FindStringSubmatch(t.ID); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				years = append(years, year)
			}
		}
	}
	return years
}
