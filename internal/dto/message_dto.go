package dto

type SendMessageInput struct {
	Content string `json:"content" binding:"required"`
}
