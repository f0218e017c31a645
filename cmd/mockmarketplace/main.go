package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"lsp-search-service/internal/datagenerators"
	"lsp-search-service/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gorilla/mux"
)

// Заглушка маркетплейса и Backend API для локальной разработки:
// отдаёт сгенерированные предложения провайдеров и хранит черновики в памяти.
func main() {
	addr := ":9090"

	store := &draftStore{drafts: make(map[string]models.DraftOrder)}

	r := mux.NewRouter()
	r.HandleFunc("/logistics/search", handleSearch).Methods(http.MethodPost)
	r.HandleFunc("/draft_orders/get/{draft_order_id}", store.handleGet).Methods(http.MethodGet)
	r.HandleFunc("/draft_orders/create", store.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/draft_orders", store.handleList).Methods(http.MethodGet)

	log.Printf("Mock marketplace listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Mock marketplace failed: %v", err)
	}
}

// handleSearch возвращает случайный набор предложений для любого запроса поиска
func handleSearch(w http.ResponseWriter, r *http.Request) {
	var request models.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid search request"})
		return
	}

	quotes := datagenerators.GenerateQuotes(gofakeit.Number(0, 8))
	log.Printf("Search for city=%q area_code=%q -> %d quotes",
		request.Context.City, request.Context.AreaCode, len(quotes))

	writeJSON(w, http.StatusOK, quotes)
}

// draftStore — потокобезопасное in-memory хранилище черновиков
type draftStore struct {
	mu     sync.RWMutex
	drafts map[string]models.DraftOrder
}

func (s *draftStore) handleGet(w http.ResponseWriter, r *http.Request) {
	draftID := mux.Vars(r)["draft_order_id"]

	s.mu.RLock()
	draft, exists := s.drafts[draftID]
	s.mu.RUnlock()

	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "draft order not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": draft})
}

func (s *draftStore) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft models.DraftOrder
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid draft order"})
		return
	}

	if draft.ID == "" {
		draft.ID = gofakeit.UUID()
	}

	s.mu.Lock()
	s.drafts[draft.ID] = draft
	s.mu.Unlock()

	log.Printf("Draft order created: %s", draft.ID)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"data": draft})
}

func (s *draftStore) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	drafts := make([]models.DraftOrder, 0, len(s.drafts))
	for _, draft := range s.drafts {
		drafts = append(drafts, draft)
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": drafts})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
