package models

// ChatMessage is exchanged with the chat helper over HTTP and websocket
type ChatMessage struct {
	Message string `json:"message"`
}
