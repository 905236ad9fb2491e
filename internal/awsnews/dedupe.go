package awsnews

// dedupeItems returns items retaining only the first occurrence of each
// source id, preserving relative order. The same item can legitimately
// appear more than once in a fetch batch: once per tag format and once per
// overlapping page.
func dedupeItems(items []rawItem) []rawItem {
	return dedupeAgainst(items, make(map[string]struct{}))
}

// dedupeAgainst is dedupeItems with an externally-owned seen set, so the
// pagination loop can deduplicate across pages as well as within one.
func dedupeAgainst(items []rawItem, seen map[string]struct{}) []rawItem {
	unique := items[:0:0]
	for _, item := range items {
		id := item.Item.ID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}
