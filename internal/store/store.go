// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists the exported network into a SQLite database so
// downstream tooling can query participants and relationships without
// reparsing data.json.
// See docs/ARCHITECTURE § Network Database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/JacckNew/ietf-weavers/pkg/types"
)

const dbFile = "ietf_network.db"

// Store manages the network SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the network database at
// cacheDir/ietf_network.db, creating the schema if absent.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir = "cache"
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cacheDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY,
			email TEXT,
			name TEXT,
			degree_centrality REAL,
			betweenness_centrality REAL,
			closeness_centrality REAL,
			eigenvector_centrality REAL,
			pagerank REAL,
			degree INTEGER,
			clustering_coefficient REAL,
			email_count INTEGER,
			mailing_lists_count INTEGER,
			activity_duration_days INTEGER,
			community INTEGER,
			first_email TEXT,
			last_email TEXT,
			mailing_lists TEXT,
			total_interaction_weight REAL,
			topic_entropy REAL
		)`,
		`CREATE TABLE IF NOT EXISTS links (
			source TEXT NOT NULL REFERENCES nodes(id),
			target TEXT NOT NULL REFERENCES nodes(id),
			weight INTEGER,
			type TEXT,
			is_reciprocal INTEGER,
			reciprocal_weight INTEGER,
			reciprocity_ratio REAL,
			shared_lists INTEGER,
			PRIMARY KEY (source, target)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_links_source ON links(source)`,
		`CREATE INDEX IF NOT EXISTS idx_links_target ON links(target)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_community ON nodes(community)`,
		`CREATE TABLE IF NOT EXISTS topics (
			topic_id INTEGER PRIMARY KEY,
			keywords TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS topic_participants (
			topic_id INTEGER NOT NULL REFERENCES topics(topic_id),
			person_id TEXT NOT NULL,
			name TEXT,
			probability REAL,
			primary_email TEXT,
			PRIMARY KEY (topic_id, person_id)
		)`,
		`CREATE TABLE IF NOT EXISTS metadata (
			key TEXT PRIMARY KEY,
			value TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from one import run.
type ImportSummary struct {
	Nodes        int
	Links        int
	Topics       int
	Participants int
}

// ImportVisualization replaces the database contents with data, in one
// transaction. A failed import leaves the previous contents intact.
func (s *Store) ImportVisualization(ctx context.Context, data types.VisualizationData) (ImportSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"topic_participants", "topics", "links", "nodes", "metadata"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return ImportSummary{}, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	var summary ImportSummary

	nodeStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (id, email, name,
			degree_centrality, betweenness_centrality, closeness_centrality,
			eigenvector_centrality, pagerank, degree, clustering_coefficient,
			email_count, mailing_lists_count, activity_duration_days, community,
			first_email, last_email, mailing_lists, total_interaction_weight, topic_entropy)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing node insert: %w", err)
	}
	defer nodeStmt.Close()

	for _, n := range data.Nodes {
		listsJSON, _ := json.Marshal(n.MailingLists)
		var entropy any
		if n.TopicEntropy != nil {
			entropy = *n.TopicEntropy
		}
		if _, err := nodeStmt.ExecContext(ctx,
			n.ID, n.Email, n.Name,
			n.DegreeCentrality, n.BetweennessCentrality, n.ClosenessCentrality,
			n.EigenvectorCentrality, n.PageRank, n.Degree, n.ClusteringCoefficient,
			n.EmailCount, n.MailingListsCount, n.ActivityDurationDays, n.Community,
			n.FirstEmail, n.LastEmail, string(listsJSON), n.TotalInteractionWeight, entropy,
		); err != nil {
			return ImportSummary{}, fmt.Errorf("inserting node %s: %w", n.ID, err)
		}
		summary.Nodes++
	}

	linkStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO links (source, target, weight, type, is_reciprocal,
			reciprocal_weight, reciprocity_ratio, shared_lists)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing link insert: %w", err)
	}
	defer linkStmt.Close()

	for _, l := range data.Links {
		if _, err := linkStmt.ExecContext(ctx,
			l.Source, l.Target, l.Weight, l.Type, l.IsReciprocal,
			l.ReciprocalWeight, l.ReciprocityRatio, l.SharedLists,
		); err != nil {
			return ImportSummary{}, fmt.Errorf("inserting link %s->%s: %w", l.Source, l.Target, err)
		}
		summary.Links++
	}

	for _, topic := range data.Topics {
		keywordsJSON, _ := json.Marshal(topic.Keywords)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO topics (topic_id, keywords) VALUES (?, ?)`,
			topic.TopicID, string(keywordsJSON),
		); err != nil {
			return ImportSummary{}, fmt.Errorf("inserting topic %d: %w", topic.TopicID, err)
		}
		summary.Topics++

		for _, p := range topic.TopParticipants {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO topic_participants (topic_id, person_id, name, probability, primary_email)
				 VALUES (?, ?, ?, ?, ?)`,
				topic.TopicID, p.PersonID, p.Name, p.Probability, p.PrimaryEmail,
			); err != nil {
				return ImportSummary{}, fmt.Errorf("inserting participant %s: %w", p.PersonID, err)
			}
			summary.Participants++
		}
	}

	metaJSON, err := json.Marshal(data.Metadata)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("encoding metadata: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO metadata (key, value) VALUES ('run', ?)`, string(metaJSON),
	); err != nil {
		return ImportSummary{}, fmt.Errorf("inserting metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ImportSummary{}, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// Stats describes the current database contents.
type Stats struct {
	Nodes       int
	Links       int
	Topics      int
	Communities int
	RunID       string
	GeneratedAt string
}

// Stats reads summary counts and the provenance of the last import.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{`SELECT count(*) FROM nodes`, &stats.Nodes},
		{`SELECT count(*) FROM links`, &stats.Links},
		{`SELECT count(*) FROM topics`, &stats.Topics},
		{`SELECT count(DISTINCT community) FROM nodes`, &stats.Communities},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("counting: %w", err)
		}
	}

	var metaJSON string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = 'run'`).Scan(&metaJSON)
	if err == nil {
		var meta types.Metadata
		if jerr := json.Unmarshal([]byte(metaJSON), &meta); jerr == nil {
			stats.RunID = meta.RunID
			stats.GeneratedAt = meta.GeneratedAt
		}
	} else if err != sql.ErrNoRows {
		return Stats{}, fmt.Errorf("reading metadata: %w", err)
	}
	return stats, nil
}
