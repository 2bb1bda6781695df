// Package server exposes the list repository over HTTP. It is a thin
// request/response mapping layer: it parses identifiers, decodes request
// bodies, and translates repository errors into status codes. All state
// changes happen inside the repository.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/listmaker/internal/repository"
	"github.com/mesh-intelligence/listmaker/pkg/fields"
	"github.com/mesh-intelligence/listmaker/pkg/types"
)

// Server routes list, field, and item requests to a repository.
type Server struct {
	repo     *repository.ListRepository
	registry *fields.Registry
	logger   *log.Logger
	mux      *http.ServeMux
}

// New creates a server over the given repository and registry. A nil logger
// falls back to a stderr logger.
func New(repo *repository.ListRepository, registry *fields.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "[server] ", log.LstdFlags)
	}
	s := &Server{
		repo:     repo,
		registry: registry,
		logger:   logger,
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /field-types", s.handleFieldTypes)
	s.mux.HandleFunc("GET /lists", s.handleGetLists)
	s.mux.HandleFunc("POST /lists", s.handleCreateList)
	s.mux.HandleFunc("GET /lists/{listID}", s.handleGetList)
	s.mux.HandleFunc("PUT /lists/{listID}", s.handleUpdateList)
	s.mux.HandleFunc("DELETE /lists/{listID}", s.handleDeleteList)
	s.mux.HandleFunc("POST /lists/{listID}/fields", s.handleAddField)
	s.mux.HandleFunc("PUT /lists/{listID}/fields/order", s.handleReorderFields)
	s.mux.HandleFunc("DELETE /lists/{listID}/fields/{fieldID}", s.handleDeleteField)
	s.mux.HandleFunc("POST /lists/{listID}/fields/{fieldID}/move", s.handleMoveField)
	s.mux.HandleFunc("POST /lists/{listID}/items", s.handleAddItem)
	s.mux.HandleFunc("PUT /lists/{listID}/items/{itemID}", s.handleUpdateItem)
	s.mux.HandleFunc("DELETE /lists/{listID}/items/{itemID}", s.handleDeleteItem)
}

// Request bodies.

type listCreate struct {
	Name string `json:"name"`
}

type listUpdate struct {
	Name string `json:"name"`
}

type itemValues struct {
	FieldValues map[uuid.UUID]any `json:"field_values"`
}

type fieldOrders struct {
	Orders map[uuid.UUID]int `json:"orders"`
}

type fieldMove struct {
	Direction string `json:"direction"`
}

func (s *Server) handleFieldTypes(w http.ResponseWriter, r *http.Request) {
	meta := make(map[string]fields.Metadata)
	for _, h := range s.registry.Handlers() {
		meta[h.TypeName()] = h.Metadata()
	}
	s.respond(w, http.StatusOK, meta)
}

func (s *Server) handleGetLists(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, s.repo.GetAll())
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	var body listCreate
	if !s.decode(w, r, &body) {
		return
	}
	list, err := types.NewList(body.Name)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	added, err := s.repo.Add(list)
	if err != nil {
		s.fail(w, err, "")
		return
	}
	s.respond(w, http.StatusCreated, added)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	list, err := s.repo.Get(listID)
	if err != nil {
		s.fail(w, err, "List not found")
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	var body listUpdate
	if !s.decode(w, r, &body) {
		return
	}
	list, err := s.repo.Update(listID, &body.Name)
	if err != nil {
		s.fail(w, err, "List not found")
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	if err := s.repo.Delete(listID); err != nil {
		s.fail(w, err, "List not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddField(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	var body types.FieldCreate
	if !s.decode(w, r, &body) {
		return
	}
	list, err := s.repo.AddField(listID, body)
	if err != nil {
		s.fail(w, err, "List not found")
		return
	}
	s.respond(w, http.StatusCreated, list)
}

func (s *Server) handleDeleteField(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	fieldID, ok := s.pathUUID(w, r, "fieldID")
	if !ok {
		return
	}
	list, err := s.repo.DeleteField(listID, fieldID)
	if err != nil {
		s.fail(w, err, "List or field not found")
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleReorderFields(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	var body fieldOrders
	if !s.decode(w, r, &body) {
		return
	}
	list, err := s.repo.ReorderFields(listID, body.Orders)
	if err != nil {
		s.fail(w, err, "List not found")
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleMoveField(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	fieldID, ok := s.pathUUID(w, r, "fieldID")
	if !ok {
		return
	}
	var body fieldMove
	if !s.decode(w, r, &body) {
		return
	}
	list, err := s.repo.MoveField(listID, fieldID, body.Direction)
	if err != nil {
		s.fail(w, err, "List or field not found")
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	var body itemValues
	if !s.decode(w, r, &body) {
		return
	}
	list, err := s.repo.AddItem(listID, body.FieldValues)
	if err != nil {
		s.fail(w, err, "List not found")
		return
	}
	s.respond(w, http.StatusCreated, list)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	itemID, ok := s.pathUUID(w, r, "itemID")
	if !ok {
		return
	}
	var body itemValues
	if !s.decode(w, r, &body) {
		return
	}
	list, err := s.repo.UpdateItem(listID, itemID, body.FieldValues)
	if err != nil {
		s.fail(w, err, "List or item not found")
		return
	}
	s.respond(w, http.StatusOK, list)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := s.pathUUID(w, r, "listID")
	if !ok {
		return
	}
	itemID, ok := s.pathUUID(w, r, "itemID")
	if !ok {
		return
	}
	list, err := s.repo.DeleteItem(listID, itemID)
	if err != nil {
		s.fail(w, err, "List or item not found")
		return
	}
	s.respond(w, http.StatusOK, list)
}

// pathUUID parses a UUID path segment, writing a 400 response on failure.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.error(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// decode unmarshals the request body, writing a 400 response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.error(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// fail maps a repository error to a response: validation failures and
// unknown field types are client errors, missing entities are 404s with the
// given message, and anything else is a logged internal error.
func (s *Server) fail(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case types.IsValidation(err), errors.Is(err, types.ErrHandlerNotFound):
		s.error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrNotFound):
		s.error(w, http.StatusNotFound, notFoundMsg)
	default:
		s.logger.Printf("request failed: %v", err)
		s.error(w, http.StatusInternalServerError, "internal server error")
	}
}

func (s *Server) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Printf("encoding response: %v", err)
	}
}

func (s *Server) error(w http.ResponseWriter, status int, detail string) {
	s.respond(w, status, map[string]string{"detail": detail})
}
