package config

// DatasetConfig is the static echo table, as read from YAML.
type DatasetConfig struct {
	Entries []DatasetEntry `yaml:"entries"`
}

// DatasetEntry is one document of the static table
type DatasetEntry struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	Text     string         `yaml:"text"`
	URL      string         `yaml:"url"`
	Metadata map[string]any `yaml:"metadata"`
}
