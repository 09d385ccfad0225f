package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"librarydesk/internal/circulation"
	"librarydesk/internal/entity"
	"librarydesk/internal/httpx"
	"librarydesk/internal/roster"
)

type StudentHandler struct {
	mu     *sync.Mutex
	roster *roster.Roster
	engine *circulation.Engine
}

func NewStudentHandler(mu *sync.Mutex, r *roster.Roster, e *circulation.Engine) *StudentHandler {
	return &StudentHandler{mu: mu, roster: r, engine: e}
}

type registerStudentRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// Register handles POST /students.
func (h *StudentHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req registerStudentRequest
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

	student := entity.Student{
		ID:          req.ID,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	}
	if err := h.roster.Register(student); err != nil {
		writeDomainError(r, w, err)
		return
	}
	stored, err := h.roster.FindByID(student.ID)
	if err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, stored)
}

// Item handles GET /students/{id} and GET /students/{id}/fine.
func (h *StudentHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	const prefix = "/students/"
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	switch sub {
	case "":
		h.get(w, r, id)
	case "fine":
		h.fine(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *StudentHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, err := h.roster.FindByID(id)
	if err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, s)
}

func (h *StudentHandler) fine(w http.ResponseWriter, r *http.Request, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	total, err := h.engine.CalculateTotalFine(id)
	if err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, map[string]interface{}{
		"student_id": id,
		"total_fine": total,
	})
}
