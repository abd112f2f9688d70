package webhook

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/AobaIwaki123/simradar/internal/similarity"
)

const maxCompareSize = 1 << 20 // 1MB

// CompareRequest is the body accepted by HandleCompare.
type CompareRequest struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Metric string `json:"metric,omitempty"`
}

// CompareResponse carries every score, or only the requested one.
type CompareResponse struct {
	Scores *similarity.Scores `json:"scores,omitempty"`
	Metric similarity.Metric  `json:"metric,omitempty"`
	Score  *float64           `json:"score,omitempty"`
}

// HandleCompare scores two snippets posted as JSON.
func HandleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCompareSize)).Decode(&req); err != nil {
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	var resp CompareResponse
	if req.Metric != "" {
		m, err := similarity.ParseMetric(req.Metric)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		score := similarity.Score(m, req.A, req.B)
		resp.Metric, resp.Score = m, &score
	} else {
		scores := similarity.Compare(req.A, req.B)
		resp.Scores = &scores
	}
	log.Printf("DEBUG: Compared %d and %d characters", len(req.A), len(req.B))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("ERROR: Failed to write compare response: %v", err)
	}
}
