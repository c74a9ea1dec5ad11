package dto

type SetUserStatusInput struct {
	Status string  `json:"status" binding:"required,oneof=pending approved rejected"`
	Role   *string `json:"role" binding:"omitempty,oneof=user admin"`
}

type AdminStatsResponse struct {
	Users   int64 `json:"users"`
	Pending int64 `json:"pending"`
	Posts   int64 `json:"posts"`
}
