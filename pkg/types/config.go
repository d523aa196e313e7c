package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ietf-weavers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// AcquisitionConfig holds settings for the mail archive acquisition stage.
type AcquisitionConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the mail archive API root (e.g. "https://mailarchive.ietf.org/api/v1").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// PageSize is the number of messages requested per API page (default 200).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// MaxMessages caps the number of messages fetched per list (0 = unlimited).
	MaxMessages int `json:"max_messages" yaml:"max_messages" mapstructure:"max_messages"`

	// DownloadDelay is the delay between consecutive page requests (default 1s).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay" mapstructure:"download_delay"`
}

// GraphBackend selects the interaction graph implementation.
type GraphBackend string

const (
	// BackendDense stores topology in a gonum weighted directed graph.
	BackendDense GraphBackend = "dense"

	// BackendAdjacency stores topology in plain adjacency maps.
	BackendAdjacency GraphBackend = "adjacency"
)

// GraphConfig holds settings for social graph construction.
type GraphConfig struct {
	// Backend selects the graph implementation: dense or adjacency.
	Backend GraphBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// AutomatedPatterns appends sender patterns classified as automated,
	// on top of the built-in set.
	AutomatedPatterns []string `json:"automated_patterns" yaml:"automated_patterns" mapstructure:"automated_patterns"`

	// RolePatterns appends sender patterns classified as role-based,
	// on top of the built-in set.
	RolePatterns []string `json:"role_patterns" yaml:"role_patterns" mapstructure:"role_patterns"`
}

// TopicsConfig holds settings for the topic modeling stage.
type TopicsConfig struct {
	// NTopics is the maximum number of topics to extract (default 50).
	NTopics int `json:"n_topics" yaml:"n_topics" mapstructure:"n_topics"`

	// TimeWindowMonths is the width of the per-person document window (default 6).
	TimeWindowMonths int `json:"time_window_months" yaml:"time_window_months" mapstructure:"time_window_months"`

	// MinEmailsPerDoc is the minimum number of emails required to keep a
	// per-person-per-window document (default 2).
	MinEmailsPerDoc int `json:"min_emails_per_doc" yaml:"min_emails_per_doc" mapstructure:"min_emails_per_doc"`

	// MinTokens is the minimum token count required to keep a document (default 50).
	MinTokens int `json:"min_tokens" yaml:"min_tokens" mapstructure:"min_tokens"`

	// TopKeywords is the number of keywords reported per topic (default 10).
	TopKeywords int `json:"top_keywords" yaml:"top_keywords" mapstructure:"top_keywords"`

	// TopParticipants is the number of participants reported per topic (default 10).
	TopParticipants int `json:"top_participants" yaml:"top_participants" mapstructure:"top_participants"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir receives data.json, topic_analysis.json, and summary.yaml
	// (default "visualisation").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// DataDir receives the identity mapping side tables (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`

	// WriteFeaturesCSV controls whether individual_features.csv is written.
	WriteFeaturesCSV bool `json:"write_features_csv" yaml:"write_features_csv" mapstructure:"write_features_csv"`
}

// StoreConfig holds settings for the network database.
type StoreConfig struct {
	// CacheDir is the directory holding ietf_network.db (default "cache").
	CacheDir string `json:"cache_dir" yaml:"cache_dir" mapstructure:"cache_dir"`
}

// PipelineConfig groups all stage configurations for the analysis pipeline.
type PipelineConfig struct {
	Acquisition AcquisitionConfig `json:"acquisition" yaml:"acquisition" mapstructure:"acquisition"`
	Graph       GraphConfig       `json:"graph" yaml:"graph" mapstructure:"graph"`
	Topics      TopicsConfig      `json:"topics" yaml:"topics" mapstructure:"topics"`
	Export      ExportConfig      `json:"export" yaml:"export" mapstructure:"export"`
	Store       StoreConfig       `json:"store" yaml:"store" mapstructure:"store"`
}
