package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gridwerk/gridwerk/pkg/document"
	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/reflow"
)

// createDocumentRequest is the POST /documents body.
type createDocumentRequest struct {
	Name     string         `json:"name"`
	Settings grid.Settings  `json:"settings"`
	Blocks   []reflow.Block `json:"blocks"`
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusOK, []*document.Document{})
		return
	}
	docs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if docs == nil {
		docs = []*document.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, r, errors.New(errors.ErrCodeStorage, "no document store configured"))
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document body"))
		return
	}

	doc, err := document.New(req.Name, req.Settings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	doc.Blocks = req.Blocks
	if err := doc.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		writeError(w, r, err)
		return
	}
	s.logger.Info("created document", "id", doc.ID, "name", doc.Name, "blocks", len(doc.Blocks))
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, r, document.ErrNotFound)
		return
	}
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, r, document.ErrNotFound)
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	s.logger.Info("deleted document", "id", id)
	w.WriteHeader(http.StatusNoContent)
}
