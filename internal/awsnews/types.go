package awsnews

// Wire types for the AWS content-search API envelope. The API is public but
// undocumented; every field is optional-by-default and absent fields decode
// to zero values.

type searchResponse struct {
	Metadata searchMetadata `json:"metadata"`
	Items    []rawItem      `json:"items"`
}

type searchMetadata struct {
	Count     int `json:"count"`
	TotalHits int `json:"totalHits"`
}

type rawItem struct {
	Item itemBody `json:"item"`
	Tags []tag    `json:"tags"`
}

type itemBody struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Author           string           `json:"author"`
	DateCreated      string           `json:"dateCreated"`
	DateUpdated      string           `json:"dateUpdated"`
	AdditionalFields additionalFields `json:"additionalFields"`
}

// additionalFields is the upstream's loosely-typed field bag. Which keys are
// present depends on the directory: announcements carry headline/postBody,
// blog posts carry title/link/postExcerpt. The normalizer is the only place
// this mixed shape is interpreted.
type additionalFields struct {
	// "What's New" announcement fields
	Headline     string `json:"headline"`
	HeadlineURL  string `json:"headlineUrl"`
	PostBody     string `json:"postBody"`
	PostDateTime string `json:"postDateTime"`
	PostSummary  string `json:"postSummary"`

	// Blog post fields
	Title       string `json:"title"`
	Link        string `json:"link"`
	PostExcerpt string `json:"postExcerpt"`
	CreatedDate string `json:"createdDate"`
}

type tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
