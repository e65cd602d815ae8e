package assistant

import (
	"net/http"
)

// ChatRequest is the single inbound message shape.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse carries the assistant's reply.
type ChatResponse struct {
	Response string `json:"response"`
}

func (m *Module) handleChat(r *http.Request, req ChatRequest) (any, error) {
	reply := m.svc.Handle(r.Context(), req.Message)
	return ChatResponse{Response: reply}, nil
}
