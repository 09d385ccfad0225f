package http

import (
	"log"
	"net/http"
	"sync"

	"librarydesk/internal/httpx"
)

// AdminHandler exposes the save-to-file trigger. The save function is
// injected by main so this package stays ignorant of file paths.
type AdminHandler struct {
	mu   *sync.Mutex
	save func() error
}

func NewAdminHandler(mu *sync.Mutex, save func() error) *AdminHandler {
	return &AdminHandler{mu: mu, save: save}
}

// Save handles POST /admin/save.
func (h *AdminHandler) Save(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.save(); err != nil {
		log.Printf("save failed: %v", err)
		httpx.JSONError(r, w, http.StatusInternalServerError, "save_failed", "could not persist library data", nil)
		return
	}
	httpx.JSONSuccessNoContent(w)
}
