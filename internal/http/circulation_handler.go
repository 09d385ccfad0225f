package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"librarydesk/internal/circulation"
	"librarydesk/internal/httpx"
)

type CirculationHandler struct {
	mu     *sync.Mutex
	engine *circulation.Engine
}

func NewCirculationHandler(mu *sync.Mutex, e *circulation.Engine) *CirculationHandler {
	return &CirculationHandler{mu: mu, engine: e}
}

type loanRequest struct {
	BookID    int    `json:"book_id" validate:"required,gt=0"`
	StudentID string `json:"student_id" validate:"required"`
}

type returnRequest struct {
	BookID     int    `json:"book_id" validate:"required,gt=0"`
	StudentID  string `json:"student_id" validate:"required"`
	ReturnDate string `json:"return_date" validate:"required,isodate"`
}

// Borrow handles POST /loans.
func (h *CirculationHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !decodeLoanRequest(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.Borrow(req.BookID, req.StudentID); err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, map[string]interface{}{
		"book_id":    req.BookID,
		"student_id": req.StudentID,
	})
}

// Return handles POST /returns.
func (h *CirculationHandler) Return(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req returnRequest
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

	if err := h.engine.Return(req.BookID, req.StudentID, req.ReturnDate); err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, map[string]interface{}{
		"book_id":    req.BookID,
		"student_id": req.StudentID,
	})
}

// Renew handles POST /renewals.
func (h *CirculationHandler) Renew(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !decodeLoanRequest(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.Renew(req.BookID, req.StudentID); err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccess(r, w, map[string]interface{}{
		"book_id":    req.BookID,
		"student_id": req.StudentID,
	})
}

// Reserve handles POST /reservations.
func (h *CirculationHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req loanRequest
	if !decodeLoanRequest(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.engine.Reserve(req.BookID, req.StudentID); err != nil {
		writeDomainError(r, w, err)
		return
	}
	httpx.JSONSuccessCreated(r, w, map[string]interface{}{
		"book_id":    req.BookID,
		"student_id": req.StudentID,
	})
}

// Overdue handles GET /reports/overdue.
func (h *CirculationHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	httpx.JSONSuccess(r, w, h.engine.OverdueBooks())
}

func decodeLoanRequest(w http.ResponseWriter, r *http.Request, req *loanRequest) bool {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		httpx.JSONError(r, w, http.StatusBadRequest, "invalid_json", "request body is not valid JSON", nil)
		return false
	}
	if errs := ValidateStruct(*req); errs != nil {
		writeValidationError(r, w, errs)
		return false
	}
	return true
}
