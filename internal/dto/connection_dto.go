package dto

type SendConnectionInput struct {
	AddresseeID string `json:"addressee_id" binding:"required,uuid"`
}

type ActOnConnectionInput struct {
	ConnectionID string `json:"connection_id" binding:"required,uuid"`
	Action       string `json:"action" binding:"required,oneof=ACCEPT"`
}
