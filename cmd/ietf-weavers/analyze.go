// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JacckNew/ietf-weavers/internal/pipeline"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <data-source>",
	Short: "Run the full analysis pipeline over an email dump",
	Long: `Analyze reads email records from a JSON file or a directory of JSON
files, builds the interaction network, computes metrics and topics, and
writes data.json, topic_analysis.json, the identity mapping dictionaries,
and summary.yaml.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().Int("n-topics", 0, "maximum number of topics (default 50)")
	analyzeCmd.Flags().Int("time-window", 0, "topic document window in months (default 6)")
	analyzeCmd.Flags().String("output-dir", "", "directory for data.json and reports (default visualisation)")
	analyzeCmd.Flags().String("data-dir", "", "directory for identity mapping dictionaries (default data)")
	analyzeCmd.Flags().String("backend", "", "graph backend: dense or adjacency (default dense)")
	analyzeCmd.Flags().Bool("features-csv", false, "also write individual_features.csv")

	viper.BindPFlag("topics.n_topics", analyzeCmd.Flags().Lookup("n-topics"))
	viper.BindPFlag("topics.time_window_months", analyzeCmd.Flags().Lookup("time-window"))
	viper.BindPFlag("export.output_dir", analyzeCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("export.data_dir", analyzeCmd.Flags().Lookup("data-dir"))
	viper.BindPFlag("graph.backend", analyzeCmd.Flags().Lookup("backend"))
	viper.BindPFlag("export.write_features_csv", analyzeCmd.Flags().Lookup("features-csv"))

	rootCmd.AddCommand(analyzeCmd)
}

func pipelineConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.PipelineConfig{}, fmt.Errorf("parsing configuration: %w", err)
	}

	switch cfg.Graph.Backend {
	case "", types.BackendDense, types.BackendAdjacency:
	default:
		return types.PipelineConfig{}, fmt.Errorf("unknown graph backend %q", cfg.Graph.Backend)
	}
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}

	p := pipeline.New(cfg, logger, version)
	result, err := p.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run %s completed: %d nodes, %d links, %d topics\n",
		result.RunID, result.Summary.Nodes, result.Summary.Links, result.Summary.TopicCount)
	return nil
}
