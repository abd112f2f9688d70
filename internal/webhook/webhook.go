// Package webhook provides functionality to handle GitHub webhooks
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AobaIwaki123/simradar/internal/config"
	ghclient "github.com/AobaIwaki123/simradar/internal/github"
	"github.com/AobaIwaki123/simradar/internal/storage"
	"github.com/AobaIwaki123/simradar/internal/triage"
	githubapi "github.com/google/go-github/v62/github"
)

const maxPayloadSize = 5 * 1024 * 1024 // 5MB limit

// IssueStore lists and records issues of a repository.
type IssueStore interface {
	ListIssues(ctx context.Context, repo string, limit int) ([]storage.IssueRow, error)
	InsertIssue(ctx context.Context, row storage.IssueRow) error
}

// Commenter posts issue comments.
type Commenter interface {
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) error
}

// Issue is the part of an issues event the radar acts on.
type Issue struct {
	Owner     string
	Repo      string
	FullName  string
	Number    int
	Title     string
	Body      string
	CreatedAt time.Time
}

// Handler handles GitHub webhooks
type Handler struct {
	config     *config.Config
	analyzer   *triage.Analyzer
	store      IssueStore
	commenter  Commenter
	signingKey []byte

	// Sync processes opened issues before responding instead of in a goroutine.
	Sync bool
}

// NewHandler creates a new webhook handler
func NewHandler(cfg *config.Config, store IssueStore, commenter Commenter, secret string) *Handler {
	log.Printf("DEBUG: Creating webhook handler")
	return &Handler{
		config: cfg,
		analyzer: &triage.Analyzer{
			Primary:       cfg.PrimaryMetric(),
			Thresholds:    cfg.MetricThresholds(),
			TopK:          cfg.GitHub.TopK,
			MaxTextLength: cfg.Similarity.MaxTextLength,
		},
		store:      store,
		commenter:  commenter,
		signingKey: []byte(secret),
	}
}

// HandleWebhook processes GitHub webhook requests
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	log.Printf("DEBUG: Received webhook request from %s %s", r.RemoteAddr, r.Method)

	if r.Method != http.MethodPost {
		log.Printf("ERROR: Received non-POST request: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
	if err != nil {
		log.Printf("ERROR: Failed to read request body: %v", err)
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	log.Printf("DEBUG: Read %d bytes from request body", len(payload))

	sig := strings.TrimPrefix(r.Header.Get("X-Hub-Signature-256"), "sha256=")
	if sig == "" {
		log.Printf("ERROR: Missing X-Hub-Signature-256 header")
		http.Error(w, "Missing signature", http.StatusUnauthorized)
		return
	}
	if !h.validSignature(payload, sig) {
		log.Printf("ERROR: Invalid webhook signature received")
		http.Error(w, "Invalid signature", http.StatusUnauthorized)
		return
	}

	eventType := githubapi.WebHookType(r)
	log.Printf("DEBUG: Webhook event type: %s", eventType)

	event, err := githubapi.ParseWebHook(eventType, payload)
	if err != nil {
		log.Printf("ERROR: Failed to parse webhook payload: %v", err)
		http.Error(w, "Failed to parse webhook payload", http.StatusBadRequest)
		return
	}

	if evt, ok := event.(*githubapi.IssuesEvent); ok {
		if action := evt.GetAction(); action == "opened" {
			issue := issueFromEvent(evt)
			log.Printf("DEBUG: Processing new issue #%d from repo %s", issue.Number, issue.FullName)
			if h.Sync {
				h.ProcessIssue(r.Context(), issue)
			} else {
				// The request context ends with the response.
				go h.ProcessIssue(context.Background(), issue)
			}
		} else {
			log.Printf("DEBUG: Ignoring issues event with action: %s", action)
		}
	} else {
		log.Printf("DEBUG: Ignoring non-issues event type: %T", event)
	}

	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) validSignature(payload []byte, sig string) bool {
	mac := hmac.New(sha256.New, h.signingKey)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(sig), []byte(expected))
}

func issueFromEvent(evt *githubapi.IssuesEvent) Issue {
	repo := evt.GetRepo()
	issue := evt.GetIssue()
	return Issue{
		Owner:     repo.GetOwner().GetLogin(),
		Repo:      repo.GetName(),
		FullName:  repo.GetFullName(),
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		CreatedAt: issue.GetCreatedAt().Time,
	}
}

// ProcessIssue compares a new issue with the stored ones, comments when
// likely duplicates exist, and stores the issue for later comparisons.
func (h *Handler) ProcessIssue(ctx context.Context, issue Issue) {
	text := triage.IssueText(issue.Title, issue.Body)
	log.Printf("DEBUG: [Issue #%d] Combined text length: %d characters", issue.Number, utf8.RuneCountInString(text))

	// 1) Load candidates
	rows, err := h.store.ListIssues(ctx, issue.FullName, h.config.Similarity.CandidateLimit)
	if err != nil {
		log.Printf("ERROR: Listing stored issues failed for issue #%d: %v", issue.Number, err)
	} else {
		cands := make([]triage.Candidate, 0, len(rows))
		for _, row := range rows {
			cands = append(cands, row.Candidate())
		}

		// 2) Rank
		matches := h.analyzer.Rank(issue.Number, text, cands)
		log.Printf("DEBUG: [Issue #%d] %d of %d stored issues passed %s thresholds",
			issue.Number, len(matches), len(cands), h.analyzer.Primary)
		for _, m := range matches {
			log.Printf("DEBUG: [Issue #%d] Similar issue #%d with %s %.4f", issue.Number, m.Number, h.analyzer.Primary, m.Score)
		}

		// 3) Comment if similar found
		if msg := ghclient.BuildSimilarIssuesComment(h.analyzer.Primary, matches); msg != "" {
			if err := h.commenter.CreateIssueComment(ctx, issue.Owner, issue.Repo, issue.Number, msg); err != nil {
				log.Printf("ERROR: Failed to create comment on issue #%d: %v", issue.Number, err)
			} else {
				log.Printf("DEBUG: [Issue #%d] Successfully posted comment", issue.Number)
			}
		} else {
			log.Printf("DEBUG: [Issue #%d] No similar issues found above threshold, skipping comment", issue.Number)
		}
	}

	// 4) Store
	row := storage.IssueRow{
		Repo:      issue.FullName,
		IssueID:   int64(issue.Number),
		Title:     issue.Title,
		Body:      issue.Body,
		CreatedAt: issue.CreatedAt,
	}
	if err := h.store.InsertIssue(ctx, row); err != nil {
		log.Printf("ERROR: Failed to store issue #%d: %v", issue.Number, err)
		return
	}
	log.Printf("DEBUG: [Issue #%d] Successfully stored issue", issue.Number)
}
