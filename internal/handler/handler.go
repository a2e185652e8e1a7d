package handler

import (
	"github.com/gorilla/mux"

	"pairchat/internal/config"
	"pairchat/internal/store"
)

// Handler holds application dependencies
type Handler struct {
	Config   config.Config
	Messages store.MessageStore
	Files    *store.AttachmentStore
	Registry *Registry
}

// New creates a new Handler with the given dependencies
func New(cfg config.Config, messages store.MessageStore, files *store.AttachmentStore) *Handler {
	return &Handler{
		Config:   cfg,
		Messages: messages,
		Files:    files,
		Registry: NewRegistry(),
	}
}

// SetupRouter configures and returns the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// 添付ファイルのダウンロード
	r.HandleFunc("/files/{name}", h.DownloadFile).Methods("GET")

	// WebSocket
	r.HandleFunc("/ws", h.HandleWebSocket).Methods("GET")

	return r
}
