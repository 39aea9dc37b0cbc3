// Package elasticsearch implements a contacts.Source on Elasticsearch.
//
// Each record is one document carrying a numeric rank. Scan reads the index
// sorted by rank then id, paging with search_after so deep pages cost the
// same as the first.
package elasticsearch

// Config holds Elasticsearch connection parameters and source options.
type Config struct {
	// URLs is the list of Elasticsearch node URLs.
	URLs []string

	// Index is the name of the index holding contact documents.
	Index string

	// Username for basic authentication.
	Username string

	// Password for basic authentication.
	Password string

	// APIKey for API key authentication (alternative to username/password).
	APIKey string

	// PageSize is the number of documents per search request. Default: 500
	PageSize int

	// RefreshPolicy controls when stored contacts become visible to Scan.
	// Options: "true" (immediate), "false" (default), "wait_for".
	RefreshPolicy string
}

// setDefaults applies default values to config fields.
func (c *Config) setDefaults() {
	if c.Index == "" {
		c.Index = "contacts"
	}
	if c.PageSize <= 0 {
		c.PageSize = 500
	}
	if c.RefreshPolicy == "" {
		c.RefreshPolicy = "false"
	}
}
