// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JacckNew/ietf-weavers/internal/store"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the network SQLite database",
	Long: `Store imports an exported data.json into the network database and
reports what the database currently holds.`,
}

var storeImportCmd = &cobra.Command{
	Use:   "import <data.json>",
	Short: "Import a visualization export into the database",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreImport,
}

var storeStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print database contents summary",
	RunE:  runStoreStats,
}

func init() {
	storeCmd.PersistentFlags().String("cache-dir", "", "directory holding ietf_network.db (default cache)")
	viper.BindPFlag("store.cache_dir", storeCmd.PersistentFlags().Lookup("cache-dir"))

	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeStatsCmd)
	rootCmd.AddCommand(storeCmd)
}

func openStore() (*store.Store, error) {
	return store.NewStore(types.StoreConfig{CacheDir: viper.GetString("store.cache_dir")})
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	var data types.VisualizationData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	summary, err := s.ImportVisualization(cmd.Context(), data)
	if err != nil {
		return err
	}
	fmt.Printf("imported %d nodes, %d links, %d topics, %d topic participants\n",
		summary.Nodes, summary.Links, summary.Topics, summary.Participants)
	return nil
}

func runStoreStats(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Printf("nodes: %d\nlinks: %d\ntopics: %d\ncommunities: %d\n",
		stats.Nodes, stats.Links, stats.Topics, stats.Communities)
	if stats.RunID != "" {
		fmt.Printf("last import: run %s at %s\n", stats.RunID, stats.GeneratedAt)
	}
	return nil
}
