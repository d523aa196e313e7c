// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/internal/metrics"
	"github.com/JacckNew/ietf-weavers/internal/topics"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// Artifact file names. data.json and topic_analysis.json land in the
// output directory; the mapping dictionaries land in the data directory.
const (
	DataFile          = "data.json"
	TopicAnalysisFile = "topic_analysis.json"
	FeaturesFile      = "individual_features.csv"
	SummaryFile       = "summary.yaml"

	EmailToPersonFile = "emailID_pid_dict.json"
	PersonEmailsFile  = "pid_emailID_dict.json"
	PersonNameFile    = "pid_name_dict.json"
	PersonTrackerFile = "pid_datatracker_dict.json"
)

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteDataJSON writes the visualization document to outputDir.
func WriteDataJSON(outputDir string, data types.VisualizationData) error {
	return writeJSON(filepath.Join(outputDir, DataFile), data)
}

// topicAnalysisDoc is the standalone topic report, richer than the
// topics block embedded in data.json.
type topicAnalysisDoc struct {
	Topics         []types.Topic                    `json:"topics"`
	PersonEntropy  map[string]float64               `json:"person_entropy"`
	DominantTopics map[string][]types.DominantTopic `json:"person_dominant_topics"`
	DocumentCount  int                              `json:"document_count"`
	Empty          bool                             `json:"empty"`
}

// WriteTopicAnalysis writes the standalone topic report to outputDir.
// An empty analysis still writes a document, flagged Empty, so
// downstream consumers need no existence check.
func WriteTopicAnalysis(outputDir string, a topics.Analysis) error {
	doc := topicAnalysisDoc{
		Topics:         a.Topics,
		PersonEntropy:  make(map[string]float64, len(a.Entropy)),
		DominantTopics: a.Dominant,
		DocumentCount:  a.DocumentCount,
		Empty:          a.Empty,
	}
	for pid, h := range a.Entropy {
		doc.PersonEntropy[pid] = clean(h)
	}
	return writeJSON(filepath.Join(outputDir, TopicAnalysisFile), doc)
}

// WriteMappings writes the four identity dictionaries to dataDir.
func WriteMappings(dataDir string, m identity.Mappings) error {
	files := []struct {
		name string
		v    any
	}{
		{EmailToPersonFile, m.EmailToPerson},
		{PersonEmailsFile, m.PersonEmails},
		{PersonNameFile, m.PersonName},
		{PersonTrackerFile, m.PersonTracker},
	}
	for _, f := range files {
		if err := writeJSON(filepath.Join(dataDir, f.name), f.v); err != nil {
			return err
		}
	}
	return nil
}

// featureColumns is the fixed CSV column order. Readers bind by
// position, so it never changes without a version bump.
var featureColumns = []string{
	"person_id", "email",
	"degree_centrality", "betweenness_centrality", "closeness_centrality",
	"eigenvector_centrality", "pagerank",
	"community", "clustering_coefficient",
	"in_degree", "out_degree", "degree",
	"email_count", "mailing_lists_count", "activity_duration_days",
	"total_interaction_weight",
}

// WriteFeaturesCSV writes the per-person feature table to outputDir.
func WriteFeaturesCSV(outputDir string, rows []metrics.IndividualFeatures) error {
	path := filepath.Join(outputDir, FeaturesFile)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(featureColumns); err != nil {
		return fmt.Errorf("writing %s header: %w", path, err)
	}
	for _, row := range rows {
		record := []string{
			row.PersonID, row.Email,
			formatFloat(row.DegreeCentrality), formatFloat(row.BetweennessCentrality),
			formatFloat(row.ClosenessCentrality), formatFloat(row.EigenvectorCentrality),
			formatFloat(row.PageRank),
			strconv.Itoa(row.Community), formatFloat(row.ClusteringCoefficient),
			strconv.Itoa(row.InDegree), strconv.Itoa(row.OutDegree), strconv.Itoa(row.Degree),
			strconv.Itoa(row.EmailCount), strconv.Itoa(row.MailingListsCount),
			strconv.Itoa(row.ActivityDurationDays),
			formatFloat(row.TotalInteractionWeight),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing %s row: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(clean(f), 'f', 6, 64)
}

// Summary is the run report written alongside the data artifacts.
type Summary struct {
	RunID       string `yaml:"run_id"`
	GeneratedAt string `yaml:"generated_at"`
	Version     string `yaml:"version"`

	Status        string `yaml:"status"`
	FailureReason string `yaml:"failure_reason,omitempty"`

	EmailsLoaded  int `yaml:"emails_loaded"`
	EmailsDropped int `yaml:"emails_dropped"`
	Nodes         int `yaml:"nodes"`
	Links         int `yaml:"links"`
	Communities   int `yaml:"communities"`
	TopicCount    int `yaml:"topics"`
	Documents     int `yaml:"topic_documents"`

	PhaseDurations map[string]float64 `yaml:"phase_durations_seconds"`
}

// WriteSummary writes the run summary to outputDir.
func WriteSummary(outputDir string, s Summary) error {
	path := filepath.Join(outputDir, SummaryFile)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
