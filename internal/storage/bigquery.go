// Package storage keeps issue text in BigQuery so new issues can be compared against it.
package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/AobaIwaki123/simradar/internal/config"
	"github.com/AobaIwaki123/simradar/internal/triage"
	"google.golang.org/api/iterator"
)

// IssueRow represents a BigQuery row for issue data
type IssueRow struct {
	Repo      string    `bigquery:"repo"`
	IssueID   int64     `bigquery:"issue_id"`
	Title     string    `bigquery:"title"`
	Body      string    `bigquery:"body"`
	CreatedAt time.Time `bigquery:"created_at"`
}

// Candidate converts the row into the shape the analyzer scores.
func (r IssueRow) Candidate() triage.Candidate {
	return triage.Candidate{Number: int(r.IssueID), Title: r.Title, Body: r.Body}
}

// BQClient wraps BigQuery operations
type BQClient struct {
	client  *bigquery.Client
	dataset string
	table   string
	fqTable string
}

// NewBQClient creates a new BigQuery client
func NewBQClient(ctx context.Context, cfg *config.Config) (*BQClient, error) {
	log.Printf("DEBUG: Initializing BigQuery client for project %s", cfg.GCP.ProjectID)
	cli, err := bigquery.NewClient(ctx, cfg.GCP.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery client: %w", err)
	}
	log.Printf("DEBUG: BigQuery client initialized successfully")
	return &BQClient{
		client:  cli,
		dataset: cfg.GCP.BQDataset,
		table:   cfg.GCP.BQTable,
		fqTable: tableRef(cfg.GCP.ProjectID, cfg.GCP.BQDataset, cfg.GCP.BQTable),
	}, nil
}

// Close releases the underlying client.
func (b *BQClient) Close() error {
	return b.client.Close()
}

func tableRef(project, dataset, table string) string {
	return fmt.Sprintf("`%s.%s.%s`", project, dataset, table)
}

func listIssuesSQL(fqTable string) string {
	return fmt.Sprintf(`SELECT repo, issue_id, title, body, created_at
        FROM %s
        WHERE repo = @repo
        ORDER BY created_at DESC
        LIMIT @limit`, fqTable)
}

// ListIssues returns up to limit stored issues of repo, newest first.
func (b *BQClient) ListIssues(ctx context.Context, repo string, limit int) ([]IssueRow, error) {
	log.Printf("DEBUG: Listing stored issues for %s (limit=%d)", repo, limit)

	q := b.client.Query(listIssuesSQL(b.fqTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "repo", Value: repo},
		{Name: "limit", Value: int64(limit)},
	}

	it, err := q.Read(ctx)
	if err != nil {
		log.Printf("ERROR: BigQuery query execution failed: %v", err)
		return nil, fmt.Errorf("list issues: %w", err)
	}

	var rows []IssueRow
	for {
		var row IssueRow
		switch err := it.Next(&row); err {
		case iterator.Done:
			log.Printf("DEBUG: Completed reading %d stored issues from BigQuery", len(rows))
			return rows, nil
		case nil:
			rows = append(rows, row)
		default:
			log.Printf("ERROR: Error reading BigQuery results: %v", err)
			return nil, fmt.Errorf("read issues: %w", err)
		}
	}
}

// InsertIssue stores an issue's text.
func (b *BQClient) InsertIssue(ctx context.Context, row IssueRow) error {
	log.Printf("DEBUG: Inserting issue #%d of %s into %s.%s", row.IssueID, row.Repo, b.dataset, b.table)
	ins := b.client.Dataset(b.dataset).Table(b.table).Inserter()
	if err := ins.Put(ctx, &row); err != nil {
		log.Printf("ERROR: BigQuery insertion failed: %v", err)
		return fmt.Errorf("insert issue #%d: %w", row.IssueID, err)
	}
	log.Printf("DEBUG: BigQuery insertion successful for issue #%d", row.IssueID)
	return nil
}
