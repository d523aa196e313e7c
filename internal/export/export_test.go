package export

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/internal/metrics"
	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
	"github.com/JacckNew/ietf-weavers/internal/topics"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

func TestClean(t *testing.T) {
	assert.Equal(t, 0.0, clean(math.NaN()))
	assert.Equal(t, float64(infSentinel), clean(math.Inf(1)))
	assert.Equal(t, float64(-infSentinel), clean(math.Inf(-1)))
	assert.Equal(t, 1.5, clean(1.5))
}

func testInputs(t *testing.T) Inputs {
	t.Helper()
	resolver := identity.NewResolver()
	alice := resolver.AddMapping("alice@example.com", "Alice", "https://datatracker.ietf.org/person/alice")
	bob := resolver.AddMapping("bob@example.com", "Bob", "")

	g := socialgraph.New(types.BackendDense)
	g.EnsureNode(alice, "alice@example.com")
	g.EnsureNode(bob, "bob@example.com")
	g.AddReplyEdge(bob, alice)
	g.Attrs(alice).EmailCount = 3
	g.Attrs(alice).AddList("quic")
	g.Attrs(alice).ObserveDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	g.Attrs(alice).ObserveDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	entropy := map[string]float64{alice: 0.0}
	return Inputs{
		Graph:    g,
		Resolver: resolver,
		Report:   metrics.NewEngine().Compute(g),
		Topics: topics.Analysis{
			DocumentCount: 3,
			Topics:        []types.Topic{{TopicID: 0, Keywords: []string{"congestion"}}},
			Entropy:       entropy,
			Dominant:      map[string][]types.DominantTopic{alice: {{TopicID: 0, Probability: 1}}},
		},
		RunID:       "run-1",
		Version:     "1.0.0",
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildVisualization(t *testing.T) {
	in := testInputs(t)
	data := BuildVisualization(in)

	require.Len(t, data.Nodes, 2)
	require.Len(t, data.Links, 1)

	alice := data.Nodes[0]
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, 3, alice.EmailCount)
	assert.Equal(t, []string{"quic"}, alice.MailingLists)
	assert.Equal(t, 60, alice.ActivityDurationDays)
	assert.Equal(t, "2024-01-01T00:00:00Z", alice.FirstEmail)
	require.NotNil(t, alice.TopicEntropy)
	assert.Equal(t, 0.0, *alice.TopicEntropy)

	bob := data.Nodes[1]
	assert.Nil(t, bob.TopicEntropy, "no topic data, no entropy field")
	assert.Equal(t, "", bob.FirstEmail)

	link := data.Links[0]
	assert.Equal(t, "reply", link.Type)
	assert.Equal(t, 1, link.Weight)
	assert.False(t, link.IsReciprocal)
	assert.Equal(t, float64(infSentinel), link.ReciprocityRatio,
		"one-sided reciprocity is sanitized at the export boundary")

	assert.Equal(t, "run-1", data.Metadata.RunID)
	assert.Equal(t, "2026-08-01T12:00:00Z", data.Metadata.GeneratedAt)
	assert.Equal(t, 1, data.Metadata.Topics.TotalTopics)
	assert.Equal(t, 2, data.Metadata.Network.TotalNodes)
}

func TestWriteDataJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := testInputs(t)
	require.NoError(t, WriteDataJSON(dir, BuildVisualization(in)))

	raw, err := os.ReadFile(filepath.Join(dir, DataFile))
	require.NoError(t, err)

	var decoded types.VisualizationData
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded.Nodes, 2)
	assert.Equal(t, "run-1", decoded.Metadata.RunID)
}

func TestWriteTopicAnalysisEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteTopicAnalysis(dir, topics.Analysis{Empty: true, DocumentCount: 1}))

	raw, err := os.ReadFile(filepath.Join(dir, TopicAnalysisFile))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, true, doc["empty"])
	assert.Equal(t, float64(1), doc["document_count"])
}

func TestWriteMappings(t *testing.T) {
	dir := t.TempDir()
	resolver := identity.NewResolver()
	resolver.AddMapping("alice@example.com", "Alice", "https://datatracker.ietf.org/person/alice")

	require.NoError(t, WriteMappings(dir, resolver.Mappings()))

	for _, name := range []string{EmailToPersonFile, PersonEmailsFile, PersonNameFile, PersonTrackerFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, EmailToPersonFile))
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "person_000001", m["alice@example.com"])
}

func TestWriteFeaturesCSV(t *testing.T) {
	dir := t.TempDir()
	rows := []metrics.IndividualFeatures{
		{PersonID: "person_000001", Email: "alice@example.com", PageRank: 0.5, Degree: 2},
	}
	require.NoError(t, WriteFeaturesCSV(dir, rows))

	raw, err := os.ReadFile(filepath.Join(dir, FeaturesFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(featureColumns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "person_000001,alice@example.com,"))
}

func TestWriteSummary(t *testing.T) {
	dir := t.TempDir()
	s := Summary{
		RunID:          "run-1",
		Status:         "completed",
		EmailsLoaded:   10,
		Nodes:          4,
		PhaseDurations: map[string]float64{"load": 0.1},
	}
	require.NoError(t, WriteSummary(dir, s))

	raw, err := os.ReadFile(filepath.Join(dir, SummaryFile))
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(raw, &decoded))
	assert.Equal(t, s.RunID, decoded.RunID)
	assert.Equal(t, 10, decoded.EmailsLoaded)
	assert.NotContains(t, string(raw), "failure_reason", "omitted when empty")
}
