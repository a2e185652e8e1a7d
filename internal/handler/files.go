package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// DownloadFile handles GET /files/{name}
// 保存済み添付ファイルをアップロードディレクトリから返す
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	log.Printf("[GET /files/%s] Request received from %s", name, r.RemoteAddr)

	path, err := h.Files.Resolve(name)
	if err != nil {
		log.Printf("[GET /files/%s] ❌ Rejected path: %v", name, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "File not found"})
		return
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		log.Printf("[GET /files/%s] ❌ Not Found", name)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "File not found"})
		return
	}

	log.Printf("[GET /files/%s] ✅ Serving %d bytes", name, info.Size())
	http.ServeFile(w, r, path)
}
