// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline orchestrates the analysis phases: load, graph
// construction, metrics, topics, and export. Phases gate hard — a phase
// that produces nothing usable fails the run rather than exporting an
// empty document.
// See docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JacckNew/ietf-weavers/internal/export"
	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/internal/mailparse"
	"github.com/JacckNew/ietf-weavers/internal/metrics"
	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
	"github.com/JacckNew/ietf-weavers/internal/topics"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// Gate errors. The run summary records which gate closed.
var (
	ErrNoEmails   = errors.New("no emails loaded from source")
	ErrEmptyGraph = errors.New("graph has no nodes after filtering")
)

// Pipeline runs the full analysis over one email source.
type Pipeline struct {
	cfg     types.PipelineConfig
	log     *zap.Logger
	version string
}

// New returns a Pipeline. A nil logger is replaced with a no-op one.
func New(cfg types.PipelineConfig, log *zap.Logger, version string) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: applyDefaults(cfg), log: log, version: version}
}

// Result is what a completed run hands back to the caller.
type Result struct {
	RunID   string
	Data    types.VisualizationData
	Summary export.Summary
}

// Run executes every phase against the email source (a JSON file or a
// directory of JSON files). The summary artifact is written even on
// failure, with the failure reason recorded.
func (p *Pipeline) Run(ctx context.Context, source string) (Result, error) {
	runID := uuid.NewString()
	log := p.log.With(zap.String("run_id", runID))
	log.Info("pipeline starting", zap.String("source", source))

	summary := export.Summary{
		RunID:          runID,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
		Version:        p.version,
		Status:         "running",
		PhaseDurations: make(map[string]float64),
	}
	fail := func(phase string, err error) (Result, error) {
		summary.Status = "failed"
		summary.FailureReason = err.Error()
		if werr := export.WriteSummary(p.cfg.Export.OutputDir, summary); werr != nil {
			log.Warn("writing failure summary", zap.Error(werr))
		}
		log.Error("pipeline failed", zap.String("phase", phase), zap.Error(err))
		return Result{RunID: runID}, fmt.Errorf("%s phase: %w", phase, err)
	}
	timed := func(phase string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		err := fn()
		summary.PhaseDurations[phase] = time.Since(start).Seconds()
		return err
	}

	// Load.
	var emails []types.Email
	if err := timed("load", func() error {
		var err error
		emails, err = LoadEmails(source)
		if err != nil {
			return err
		}
		if len(emails) == 0 {
			return ErrNoEmails
		}
		return nil
	}); err != nil {
		return fail("load", err)
	}
	summary.EmailsLoaded = len(emails)
	log.Info("emails loaded", zap.Int("count", len(emails)))

	// Graph construction.
	parser, err := mailparse.New(p.cfg.Graph.AutomatedPatterns, p.cfg.Graph.RolePatterns)
	if err != nil {
		return fail("graph", err)
	}
	resolver := identity.NewResolver()
	builder := socialgraph.NewBuilder(parser, resolver, socialgraph.New(p.cfg.Graph.Backend))
	if err := timed("graph", func() error {
		for _, e := range emails {
			builder.AddEmail(e)
		}
		builder.BuildInteractionGraph()
		builder.AddCoParticipationEdges()
		if builder.Graph().Order() == 0 {
			return ErrEmptyGraph
		}
		return nil
	}); err != nil {
		return fail("graph", err)
	}
	g := builder.Graph()
	summary.EmailsDropped = builder.Dropped()
	summary.Nodes = g.Order()
	summary.Links = g.Size()
	log.Info("graph built",
		zap.Int("nodes", g.Order()),
		zap.Int("links", g.Size()),
		zap.Int("dropped", builder.Dropped()))

	// Metrics.
	var report metrics.Report
	if err := timed("metrics", func() error {
		report = metrics.NewEngine().Compute(g)
		return nil
	}); err != nil {
		return fail("metrics", err)
	}
	summary.Communities = report.Communities.Count
	if !report.Eigenvector.Converged {
		log.Warn("eigenvector centrality did not converge",
			zap.Int("iterations", report.Eigenvector.Iterations))
	}
	if report.Communities.Fallback {
		log.Warn("community detection fell back to a single community")
	}

	// Topics.
	var analysis topics.Analysis
	if err := timed("topics", func() error {
		docs := topics.BuildDocuments(emails, resolver, p.cfg.Topics)
		var err error
		analysis, err = topics.Analyze(docs, topics.NewTermFrequencyModeler(), resolver, p.cfg.Topics)
		return err
	}); err != nil {
		return fail("topics", err)
	}
	summary.TopicCount = len(analysis.Topics)
	summary.Documents = analysis.DocumentCount
	if analysis.Empty {
		log.Info("topic analysis skipped", zap.Int("documents", analysis.DocumentCount))
	}

	// Export.
	data := export.BuildVisualization(export.Inputs{
		Graph:       g,
		Resolver:    resolver,
		Report:      report,
		Topics:      analysis,
		RunID:       runID,
		Version:     p.version,
		GeneratedAt: time.Now().UTC(),
	})
	if err := timed("export", func() error {
		if err := export.WriteDataJSON(p.cfg.Export.OutputDir, data); err != nil {
			return err
		}
		if err := export.WriteTopicAnalysis(p.cfg.Export.OutputDir, analysis); err != nil {
			return err
		}
		if err := export.WriteMappings(p.cfg.Export.DataDir, resolver.Mappings()); err != nil {
			return err
		}
		if p.cfg.Export.WriteFeaturesCSV {
			rows := metrics.IndividualFeatureRows(g, report)
			if err := export.WriteFeaturesCSV(p.cfg.Export.OutputDir, rows); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fail("export", err)
	}

	summary.Status = "completed"
	if err := export.WriteSummary(p.cfg.Export.OutputDir, summary); err != nil {
		return fail("export", err)
	}
	log.Info("pipeline completed",
		zap.Int("nodes", summary.Nodes),
		zap.Int("links", summary.Links),
		zap.Int("topics", summary.TopicCount))
	return Result{RunID: runID, Data: data, Summary: summary}, nil
}

// applyDefaults fills zero-valued tunables with production defaults.
func applyDefaults(cfg types.PipelineConfig) types.PipelineConfig {
	if cfg.Graph.Backend == "" {
		cfg.Graph.Backend = types.BackendDense
	}
	if cfg.Topics.NTopics == 0 {
		cfg.Topics.NTopics = 50
	}
	if cfg.Topics.TimeWindowMonths == 0 {
		cfg.Topics.TimeWindowMonths = 6
	}
	if cfg.Topics.MinEmailsPerDoc == 0 {
		cfg.Topics.MinEmailsPerDoc = 2
	}
	if cfg.Topics.MinTokens == 0 {
		cfg.Topics.MinTokens = 50
	}
	if cfg.Topics.TopKeywords == 0 {
		cfg.Topics.TopKeywords = 10
	}
	if cfg.Topics.TopParticipants == 0 {
		cfg.Topics.TopParticipants = 10
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = "visualisation"
	}
	if cfg.Export.DataDir == "" {
		cfg.Export.DataDir = "data"
	}
	if cfg.Store.CacheDir == "" {
		cfg.Store.CacheDir = "cache"
	}
	return cfg
}
