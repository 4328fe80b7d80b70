package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritext/frameunify/internal/application/browse"
	"github.com/veritext/frameunify/internal/domain/ontology"
)

// OntologyHandler serves the frame ontology and its hierarchy.
type OntologyHandler struct {
	store *browse.Store
}

func NewOntologyHandler(store *browse.Store) *OntologyHandler {
	return &OntologyHandler{store: store}
}

type frameListResponse struct {
	Frames []string `json:"frames"`
	Total  int      `json:"total"`
}

// ListFrames handles GET /api/v1/frames.
func (h *OntologyHandler) ListFrames(w http.ResponseWriter, r *http.Request) {
	names := h.store.FrameNames()
	writeJSON(w, http.StatusOK, frameListResponse{Frames: names, Total: len(names)})
}

type frameResponse struct {
	ontology.FrameNode
	Instances []string `json:"instances"`
}

// GetFrame handles GET /api/v1/frames/{name}, returning the frame's node
// plus the IDs of corpus instances annotated with it.
func (h *OntologyHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	node, err := h.store.Frame(name)
	if err != nil {
		writeError(w, err)
		return
	}

	instances := h.store.FrameInstances(name)
	if instances == nil {
		instances = []string{}
	}
	writeJSON(w, http.StatusOK, frameResponse{FrameNode: node, Instances: instances})
}

// Hierarchy handles GET /api/v1/hierarchy.
func (h *OntologyHandler) Hierarchy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Hierarchy())
}
