// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Node is one participant record in the visualization export. Field
// names match what the D3 front end binds to.
type Node struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`

	DegreeCentrality      float64 `json:"degree_centrality"`
	BetweennessCentrality float64 `json:"betweenness_centrality"`
	ClosenessCentrality   float64 `json:"closeness_centrality"`
	EigenvectorCentrality float64 `json:"eigenvector_centrality"`
	PageRank              float64 `json:"pagerank"`

	Degree                int     `json:"degree"`
	ClusteringCoefficient float64 `json:"clustering_coefficient"`

	EmailCount           int `json:"email_count"`
	MailingListsCount    int `json:"mailing_lists_count"`
	ActivityDurationDays int `json:"activity_duration_days"`

	// Group duplicates Community for legacy front-end bindings.
	Group     int `json:"group"`
	Community int `json:"community"`

	FirstEmail string `json:"first_email"`
	LastEmail  string `json:"last_email"`

	MailingLists           []string `json:"mailing_lists"`
	TotalInteractionWeight float64  `json:"total_interaction_weight"`

	TopicEntropy   *float64        `json:"topic_entropy,omitempty"`
	DominantTopics []DominantTopic `json:"dominant_topics,omitempty"`
}

// DominantTopic is one entry in a participant's top-topics ranking.
type DominantTopic struct {
	TopicID     int     `json:"topic_id"`
	Probability float64 `json:"probability"`
}

// Link is one directed edge record in the visualization export.
type Link struct {
	Source           string  `json:"source"`
	Target           string  `json:"target"`
	Weight           int     `json:"weight"`
	Type             string  `json:"type"`
	IsReciprocal     bool    `json:"is_reciprocal"`
	ReciprocalWeight int     `json:"reciprocal_weight"`
	ReciprocityRatio float64 `json:"reciprocity_ratio"`
	SharedLists      int     `json:"shared_lists,omitempty"`
}

// TopicParticipant ranks one person within a topic.
type TopicParticipant struct {
	PersonID     string  `json:"person_id"`
	Name         string  `json:"name"`
	Probability  float64 `json:"probability"`
	PrimaryEmail string  `json:"primary_email"`
}

// Topic is one discussion topic record in the visualization export.
type Topic struct {
	TopicID         int                `json:"topic_id"`
	Keywords        []string           `json:"keywords"`
	TopParticipants []TopicParticipant `json:"top_participants"`
}

// NetworkStats summarizes the exported graph for the metadata block.
type NetworkStats struct {
	TotalNodes    int     `json:"total_nodes"`
	TotalLinks    int     `json:"total_links"`
	AvgDegree     float64 `json:"avg_degree"`
	MaxCentrality float64 `json:"max_centrality"`
	Communities   int     `json:"communities"`

	Density           float64  `json:"density"`
	Diameter          *float64 `json:"diameter"`
	AvgPathLength     *float64 `json:"average_path_length"`
	AverageClustering float64  `json:"average_clustering"`
}

// TopicStats summarizes the topic model for the metadata block.
type TopicStats struct {
	TotalTopics         int     `json:"total_topics"`
	AvgKeywordsPerTopic float64 `json:"avg_keywords_per_topic"`
	DocumentCount       int     `json:"document_count"`
}

// Metadata carries run provenance alongside the network and topic stats.
type Metadata struct {
	Network     NetworkStats `json:"network"`
	Topics      TopicStats   `json:"topics"`
	GeneratedAt string       `json:"generated_at"`
	RunID       string       `json:"run_id"`
	Version     string       `json:"version"`
}

// VisualizationData is the single JSON document the front end and the
// network database consume.
type VisualizationData struct {
	Nodes    []Node   `json:"nodes"`
	Links    []Link   `json:"links"`
	Topics   []Topic  `json:"topics"`
	Metadata Metadata `json:"metadata"`
}
