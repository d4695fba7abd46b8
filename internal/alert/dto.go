package alert

type ScheduleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

type ScheduleResponse struct {
	Message string `json:"message"`
	Enabled bool   `json:"enabled"`
}

type SendAlertsResponse struct {
	Message      string `json:"message"`
	TotalOverdue int    `json:"totalOverdue"`
	Sent         int    `json:"sent"`
	Failed       int    `json:"failed"`
	NoEmail      int    `json:"noEmail"`
}

type TestEmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
