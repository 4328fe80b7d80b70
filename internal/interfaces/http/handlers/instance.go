package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritext/frameunify/internal/application/browse"
	"github.com/veritext/frameunify/pkg/errors"
)

// defaultPageSize bounds unpaged listings.
const defaultPageSize = 50

// InstanceHandler serves unified corpus instances.
type InstanceHandler struct {
	store *browse.Store
}

func NewInstanceHandler(store *browse.Store) *InstanceHandler {
	return &InstanceHandler{store: store}
}

// instanceSummary is the list-view shape; the full record is fetched per ID.
type instanceSummary struct {
	InstanceID     string `json:"instance_id"`
	Frame          string `json:"frame"`
	Split          string `json:"split,omitempty"`
	HasDifferences bool   `json:"has_differences"`
}

type instanceListResponse struct {
	Instances []instanceSummary `json:"instances"`
	Total     int               `json:"total"`
	Offset    int               `json:"offset"`
	Limit     int               `json:"limit"`
}

// List handles GET /api/v1/instances with frame, split, differing, offset
// and limit query parameters.
func (h *InstanceHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	instances, total := h.store.List(browse.ListOptions{
		Frame:         q.Get("frame"),
		Split:         q.Get("split"),
		OnlyDiffering: q.Get("differing") == "true",
		Offset:        offset,
		Limit:         limit,
	})

	resp := instanceListResponse{
		Instances: make([]instanceSummary, 0, len(instances)),
		Total:     total,
		Offset:    offset,
		Limit:     limit,
	}
	for _, inst := range instances {
		resp.Instances = append(resp.Instances, instanceSummary{
			InstanceID:     inst.InstanceID,
			Frame:          inst.Frame,
			Split:          inst.Split,
			HasDifferences: inst.HasDifferences,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/instances/{id}, returning the full record.
func (h *InstanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	inst, err := h.store.Instance(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

type searchResponse struct {
	Query string      `json:"query"`
	Hits  []searchHit `json:"hits"`
}

type searchHit struct {
	InstanceID     string   `json:"instance_id"`
	Frame          string   `json:"frame"`
	Split          string   `json:"split,omitempty"`
	HasDifferences bool     `json:"has_differences"`
	Chunk          int      `json:"chunk"`
	Roles          []string `json:"roles"`
	ReportText     string   `json:"report_text"`
}

// Search handles GET /api/v1/search?q=...&limit=...
func (h *InstanceHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, errors.New(errors.ErrCodeBadRequest, "query parameter q is required"))
		return
	}
	limit, err := queryInt(r, "limit", defaultPageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	hits := h.store.Search(query, limit)
	resp := searchResponse{Query: query, Hits: make([]searchHit, 0, len(hits))}
	for _, e := range hits {
		resp.Hits = append(resp.Hits, searchHit{
			InstanceID:     e.InstanceID,
			Frame:          e.Frame,
			Split:          e.Split,
			HasDifferences: e.HasDifferences,
			Chunk:          e.Chunk,
			Roles:          e.Roles,
			ReportText:     e.ReportText,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Metadata handles GET /api/v1/metadata.
func (h *InstanceHandler) Metadata(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Metadata())
}
