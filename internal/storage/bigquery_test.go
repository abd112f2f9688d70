package storage

import (
	"testing"
	"time"

	"github.com/AobaIwaki123/simradar/internal/triage"
	"github.com/stretchr/testify/assert"
)

func TestIssueRowCandidate(t *testing.T) {
	row := IssueRow{Repo: "octo/radar", IssueID: 42, Title: "Crash", Body: "on start", CreatedAt: time.Now()}
	assert.Equal(t, triage.Candidate{Number: 42, Title: "Crash", Body: "on start"}, row.Candidate())
}

func TestListIssuesSQL(t *testing.T) {
	ref := tableRef("proj", "ds", "issues")
	assert.Equal(t, "`proj.ds.issues`", ref)

	sql := listIssuesSQL(ref)
	assert.Contains(t, sql, "FROM `proj.ds.issues`")
	assert.Contains(t, sql, "WHERE repo = @repo")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT @limit")
}
