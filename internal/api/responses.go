package api

type ErrorResponse struct {
	Error string `json:"error" example:"Slot already booked"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Booking canceled"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
