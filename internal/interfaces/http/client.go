package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"crediario/internal/domain/client"
	"crediario/internal/shared/middleware"
)

type ClientHandler struct {
	clientRepo client.Repository
}

func NewClientHandler(clientRepo client.Repository) *ClientHandler {
	return &ClientHandler{clientRepo: clientRepo}
}

type CreateClientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// HandleClients dispatches the client collection: list on GET, register on POST.
func (h *ClientHandler) HandleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListClients(w, r)
	case http.MethodPost:
		h.handleCreateClient(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ClientHandler) handleListClients(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	clients, err := h.clientRepo.ListByOwnerID(r.Context(), ownerID)
	if err != nil {
		log.Printf("Error listing clients for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to list clients", http.StatusInternalServerError)
		return
	}
	if clients == nil {
		clients = []*client.Client{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clients)
}

func (h *ClientHandler) handleCreateClient(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create client request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := client.CreateParams{
		OwnerID: ownerID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.clientRepo.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating client for owner %d: %v", ownerID, err)
		http.Error(w, "Failed to create client", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// HandleClientByID dispatches a single client: fetch on GET, remove on DELETE.
func (h *ClientHandler) HandleClientByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := r.Context().Value(middleware.OwnerIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	clientID := strings.TrimPrefix(r.URL.Path, "/api/clients/")
	if clientID == "" {
		http.Error(w, "Client ID is required", http.StatusBadRequest)
		return
	}

	found, err := h.clientRepo.GetByID(r.Context(), clientID)
	if err != nil {
		log.Printf("Error getting client %s: %v", clientID, err)
		http.Error(w, "Failed to get client", http.StatusInternalServerError)
		return
	}
	if found == nil {
		http.Error(w, "Client not found", http.StatusNotFound)
		return
	}
	if found.OwnerID != ownerID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(found)
	case http.MethodDelete:
		if err := h.clientRepo.Delete(r.Context(), clientID); err != nil {
			log.Printf("Error deleting client %s: %v", clientID, err)
			http.Error(w, "Failed to delete client", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
