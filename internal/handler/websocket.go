package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"pairchat/internal/model"
)

// sendBufferSize is the per-connection outbound queue. Broadcast drops a
// frame for a peer whose queue is full rather than blocking every sender.
const sendBufferSize = 256

// createUpgrader creates a WebSocket upgrader with the given allowed origins
func createUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowedMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		allowedMap[origin] = true
	}

	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowedMap[origin]
		},
	}
}

// HandleWebSocket handles GET /ws. One reader loop runs on this goroutine,
// one writer goroutine drains the connection's private outbound channel.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := createUpgrader(h.Config.AllowedOrigins)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan []byte, sendBufferSize)
	id := h.Registry.Add(send)
	log.Printf("[WebSocket] New connection (client %d). Total clients: %d", id, h.Registry.Len())

	go writePump(conn, send)

	h.readPump(conn)

	// 読み取りループが終わったら登録を外す。Removeがチャネルをcloseし、
	// writer側はそれで止まる
	h.Registry.Remove(id)
	log.Printf("[WebSocket] Client %d disconnected. Total clients: %d", id, h.Registry.Len())
}

// readPump consumes inbound frames until the connection closes or errors.
func (h *Handler) readPump(conn *websocket.Conn) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		h.handleFrame(data)
	}
}

// handleFrame runs the fixed per-frame pipeline: decode, save the attachment
// for file messages, append to the message log, broadcast. Attachment and
// persist failures are logged and the message is still relayed.
func (h *Handler) handleFrame(data []byte) {
	msg, err := model.Decode(data)
	if err != nil {
		log.Printf("[WebSocket] ❌ Dropping malformed frame: %v", err)
		return
	}

	if msg.MessageType == model.TypeFile && msg.FileData != nil {
		if msg.FilePath == nil {
			log.Printf("[WebSocket] ❌ File message without file_path, attachment skipped")
		} else if path, err := h.Files.Save(*msg.FileData, *msg.FilePath); err != nil {
			log.Printf("[WebSocket] ❌ Failed to save attachment: %v", err)
		} else {
			log.Printf("[WebSocket] 💾 Attachment saved: %s", path)
		}
	}

	if err := h.Messages.SaveMessage(msg); err != nil {
		log.Printf("[WebSocket] ❌ Failed to save message: %v", err)
	}

	// 受信したフレームそのものではなく、正規化済みメッセージを配信する
	frame, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[WebSocket] ❌ Failed to encode frame: %v", err)
		return
	}

	n := h.Registry.Broadcast(frame)
	log.Printf("[WebSocket] 📢 Broadcast message for chat %d to %d clients", int(msg.ChatID), n)
}

// writePump writes queued frames to the connection in arrival order. It
// stops when the channel is closed or a write fails.
func writePump(conn *websocket.Conn, send <-chan []byte) {
	for frame := range send {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}
