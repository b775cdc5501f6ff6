package realtime

import (
	"encoding/json"
	"strconv"
)

// Event names exchanged on the socket besides the change events.
const (
	EventAuthenticate  = "authenticate"
	EventAuthenticated = "authenticated"
	EventAuthError     = "auth_error"
	EventError         = "error"
)

// inbound is a client→server frame.
type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Message is a server→client frame.
type Message struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type authenticatedData struct {
	OK bool `json:"ok"`
}

type errorData struct {
	Error string `json:"error"`
}

// RoomName returns the room a user's sockets join after authenticating.
func RoomName(userID int64) string {
	return "user-" + strconv.FormatInt(userID, 10)
}

func encode(event string, data any) ([]byte, error) {
	return json.Marshal(Message{Event: event, Data: data})
}
