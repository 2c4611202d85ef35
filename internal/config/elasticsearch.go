package config

// ElasticsearchConfig holds the optional search index settings.
// An empty URL means the catalog runs on SQL search alone.
type ElasticsearchConfig struct {
	URL        string
	Username   string
	Password   string
	Index      string
	MaxRetries int
}

// Enabled reports whether a search cluster is configured
func (c ElasticsearchConfig) Enabled() bool {
	return c.URL != ""
}
