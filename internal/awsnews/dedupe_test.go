package awsnews

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func item(id, headline string) rawItem {
	return rawItem{Item: itemBody{
		ID: id,
		AdditionalFields: additionalFields{
			Headline:    headline,
			HeadlineURL: "https://aws.amazon.com/about-aws/whats-new/" + id,
		},
	}}
}

func TestDedupeItems_FirstOccurrenceWins(t *testing.T) {
	items := []rawItem{
		item("a", "first a"),
		item("b", "first b"),
		item("a", "second a"),
		item("c", "first c"),
		item("b", "second b"),
	}

	unique := dedupeItems(items)

	ids := make([]string, len(unique))
	for i, it := range unique {
		ids[i] = it.Item.ID
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	assert.Equal(t, "first a", unique[0].Item.AdditionalFields.Headline)
	assert.Equal(t, "first b", unique[1].Item.AdditionalFields.Headline)
}

func TestDedupeItems_NoDuplicatesPassesThrough(t *testing.T) {
	items := []rawItem{item("a", "a"), item("b", "b")}
	assert.Equal(t, items, dedupeItems(items))
}

func TestDedupeItems_Empty(t *testing.T) {
	assert.Empty(t, dedupeItems(nil))
}

func TestDedupeAgainst_CrossPageSeenSet(t *testing.T) {
	seen := make(map[string]struct{})

	page1 := dedupeAgainst([]rawItem{item("a", "a"), item("b", "b")}, seen)
	assert.Len(t, page1, 2)

	// item "b" overlapping onto the next page is dropped
	page2 := dedupeAgainst([]rawItem{item("b", "b again"), item("c", "c")}, seen)
	assert.Len(t, page2, 1)
	assert.Equal(t, "c", page2[0].Item.ID)
}
