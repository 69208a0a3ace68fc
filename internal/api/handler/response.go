package handler

// statusResponse is the success envelope shared by all endpoints:
// {"status": true, "data": ...} with an optional human-readable message.
// The error side of the envelope is rendered by the central error handler.
type statusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func okResponse(data any) statusResponse {
	return statusResponse{Status: true, Data: data}
}

func okMessage(message string) statusResponse {
	return statusResponse{Status: true, Message: message}
}
