package dto

type SendChatRequest struct {
	SessionId string `json:"session_id" validate:"required"`
	Chat      string `json:"chat" validate:"required"`
}

type SendChatResponse struct {
	SessionId  string `json:"session_id"`
	Reply      string `json:"reply"`
	State      string `json:"state"`
	Iterations int    `json:"iterations"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type GetChatHistoryResponse struct {
	Role string `json:"role"`
	Chat string `json:"chat"`
}

type ClearSessionRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}
