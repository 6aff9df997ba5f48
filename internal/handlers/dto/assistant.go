package dto

type AssistantChatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type AssistantCommandRequest struct {
	Message     string `json:"message"`
	RecipientID string `json:"recipient_id"`
}

type AssistantResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	Error    string `json:"error,omitempty"`
}
