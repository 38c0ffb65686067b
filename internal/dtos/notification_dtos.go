package dtos

type NotifyUpcomingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Created int    `json:"created"`
}
