package views

type SuspiciousIPRequest struct {
	IP string `json:"ip" binding:"required"`
}

type SuspiciousIPResponse struct {
	ID int64  `json:"id"`
	IP string `json:"ip"`
}

type StolenCardRequest struct {
	Number string `json:"number" binding:"required"`
}

type StolenCardResponse struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
