package store

import (
	"database/sql"
	"time"

	"pairchat/internal/model"
)

// MessageStore persists relayed messages. The relay only ever appends;
// reading history is the REST layer's business.
type MessageStore interface {
	SaveMessage(msg model.Message) error
}

// MessageLog writes messages to the relational store.
type MessageLog struct {
	DB *sql.DB
}

// NewMessageLog creates a MessageLog backed by the given database
func NewMessageLog(db *sql.DB) *MessageLog {
	return &MessageLog{DB: db}
}

// SaveMessage inserts one message row. created_at はクライアント値を信用せず
// サーバー側で採番する。file_path が無いメッセージは NULL で保存される。
func (l *MessageLog) SaveMessage(msg model.Message) error {
	_, err := l.DB.Exec(
		"INSERT INTO messages (chat_id, user_id, content, created_at, file_path, message_type) VALUES (?, ?, ?, ?, ?, ?)",
		int(msg.ChatID),
		int(msg.UserID),
		msg.Content,
		time.Now(),
		msg.FilePath,
		msg.MessageType,
	)
	return err
}
