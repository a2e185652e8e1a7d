package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Message types carried in the message_type field. The codec does not
// enforce a closed set; unknown types pass through untouched.
const (
	TypeText = "text"
	TypeFile = "file"
)

// FlexInt is an integer that accepts either a JSON number or a JSON string
// of digits on the wire. クライアントによって chat_id が "5" だったり 5 だったり
// するため、両方を同じ int に正規化する。
type FlexInt int

// UnmarshalJSON decodes a JSON number or a numeric string into an integer.
// Any other JSON shape (null, float, bool, object, array) is an error.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty value, expected number or numeric string")
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		*f = FlexInt(n)
		return nil
	}

	// json.Unmarshal は "null" を int に展開せず成功扱いにするため先に弾く
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("null is not a valid id, expected number or numeric string")
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected number or numeric string: %w", err)
	}
	*f = FlexInt(n)
	return nil
}

// Message is one websocket frame exchanged between clients. Outbound frames
// echo the normalized inbound structure, so optional fields serialize as
// null rather than being omitted.
type Message struct {
	ChatID      FlexInt `json:"chat_id"`
	UserID      FlexInt `json:"user_id"`
	Content     string  `json:"content"`
	FileData    *string `json:"file_data"`
	FilePath    *string `json:"file_path"`
	MessageType string  `json:"message_type"`
}

// wireMessage mirrors Message with pointers so Decode can tell a missing
// required field from a zero value.
type wireMessage struct {
	ChatID      *FlexInt `json:"chat_id"`
	UserID      *FlexInt `json:"user_id"`
	Content     *string  `json:"content"`
	FileData    *string  `json:"file_data"`
	FilePath    *string  `json:"file_path"`
	MessageType *string  `json:"message_type"`
}

// Decode parses a raw text frame into a Message. chat_id, user_id, content
// and message_type are required; file_data and file_path are optional.
func Decode(data []byte) (Message, error) {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return Message{}, fmt.Errorf("invalid frame: %w", err)
	}

	if w.ChatID == nil {
		return Message{}, fmt.Errorf("missing required field chat_id")
	}
	if w.UserID == nil {
		return Message{}, fmt.Errorf("missing required field user_id")
	}
	if w.Content == nil {
		return Message{}, fmt.Errorf("missing required field content")
	}
	if w.MessageType == nil {
		return Message{}, fmt.Errorf("missing required field message_type")
	}

	return Message{
		ChatID:      *w.ChatID,
		UserID:      *w.UserID,
		Content:     *w.Content,
		FileData:    w.FileData,
		FilePath:    w.FilePath,
		MessageType: *w.MessageType,
	}, nil
}
