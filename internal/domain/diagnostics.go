package domain

import "time"

// FetchDiagnostics accumulates observability data for one news ingestion
// run. It is created fresh per invocation, logged at the end, and never
// persisted.
type FetchDiagnostics struct {
	Years []YearDiagnostics
}

// YearDiagnostics records what happened while fetching one year partition.
type YearDiagnostics struct {
	Year int

	// TagFormatResults counts items returned per tag format, summed across
	// pages. A format that failed every page reports zero.
	TagFormatResults map[string]int

	// DuplicatesRemoved counts items dropped because their source id had
	// already been seen in this partition (other format or earlier page).
	DuplicatesRemoved int

	// TotalFetched is the raw item count across all formats and pages,
	// before deduplication.
	TotalFetched int

	// MismatchedYearTags lists items whose resolved publish year disagrees
	// with the partition they were found under.
	MismatchedYearTags []MismatchedItem
}

// MismatchedItem is an item found under a year tag that does not match its
// actual publish date. The upstream tagging is known to be loose around the
// format migration, so these are diagnostic, not errors.
type MismatchedItem struct {
	SourceID    string
	Headline    string
	PublishedAt time.Time
	QueriedYear int
	TaggedYears []int
}

// DuplicatesRemoved sums duplicate removals across all year partitions.
func (d *FetchDiagnostics) DuplicatesRemoved() int {
	total := 0
	for _, y := range d.Years {
		total += y.DuplicatesRemoved
	}
	return total
}

// Mismatched sums year-tag mismatches across all year partitions.
func (d *FetchDiagnostics) Mismatched() int {
	total := 0
	for _, y := range d.Years {
		total += len(y.MismatchedYearTags)
	}
	return total
}
