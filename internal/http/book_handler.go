package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"librarydesk/internal/catalog"
	"librarydesk/internal/circulation"
	"librarydesk/internal/entity"
	"librarydesk/internal/httpx"
)

type BookHandler struct {
	mu      *sync.Mutex
	catalog *catalog.Catalog
	engine  *circulation.Engine
}

func NewBookHandler(mu *sync.Mutex, c *catalog.Catalog, e *circulation.Engine) *BookHandler {
	return &BookHandler{mu: mu, catalog: c, engine: e}
}

type createBookRequest struct {
	ID          int    `json:"id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	TotalCopies int    `json:"total_copies" validate:"required,gt=0"`
}

type updateBookRequest struct {
	Title    string `json:"title" validate:"required"`
	Author   string `json:"author" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Collection handles /books: GET lists (with optional title, category
// and sort=title query parameters), POST adds a book.
func (h *BookHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *BookHandler) list(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	category := r.URL.Query().Get("category")
	sortBy := r.URL.Query().Get("sort")

	h.mu.Lock()
	defer h.mu.Unlock()

	switch {
	case category != "":
		httpx.JSONSuccess(r, w, h.catalog.FindByCategory(category))
	case sortBy == "title":
		httpx.JSONSuccess(r, w, h.catalog.SortedByTitle())
	default:
		// empty title keyword matches everything, so this covers list-all
		httpx.JSONSuccess(r, w, h.catalog.FindByTitle(title))
	}
}

func (h *BookHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON", nil)
		return
	}
	if errs := ValidateStruct(req); errs != nil {
		writeValidationError(r, w, errs)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	book := entity.Book{
		ID:          req.ID,
		Title:       req.Title,
		Author:      req.Author,
		Category:    req.Category,
		Description: req.Description,
		TotalCopies: req.TotalCopies,
	}
	if err := h.catalog.Insert(book); err != nil {
		writeDomainError(r, w, err)
		return
	}
	stored, err := h.catalog.FindByID(book.ID)
	if err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, stored)
}

// Item handles /books/{id}: GET, PUT and DELETE.
func (h *BookHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, ok := bookIDFromPath(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.remove(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *BookHandler) get(w http.ResponseWriter, r *http.Request, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, err := h.catalog.FindByID(id)
	if err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, b)
}

func (h *BookHandler) update(w http.ResponseWriter, r *http.Request, id int) {
	var req updateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON", nil)
		return
	}
	if errs := ValidateStruct(req); errs != nil {
		writeValidationError(r, w, errs)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.catalog.UpdateDetails(id, req.Title, req.Author, req.Category); err != nil {
		writeDomainError(r, w, err)
		return
	}
	b, err := h.catalog.FindByID(id)
	if err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, b)
}

func (h *BookHandler) remove(w http.ResponseWriter, r *http.Request, id int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.RemoveBook(id); err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// bookIDFromPath extracts the numeric ID from /books/{id}, writing a
// 404 itself when the path does not carry one.
func bookIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	const prefix = "/books/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	if rest == "" || strings.Contains(rest, "/") {
		http.NotFound(w, r)
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}
