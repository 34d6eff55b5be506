package report

type GenerateReportRequest struct {
	Period    string `json:"period" binding:"required,oneof=daily weekly monthly custom"`
	Format    string `json:"format" binding:"required,oneof=pdf csv"`
	StartDate string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	UserID    string `json:"user_id" binding:"omitempty,uuid"`
}

type ReportResponse struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Name         string  `json:"name"`
	Period       string  `json:"period"`
	Format       string  `json:"format"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       string  `json:"status"`
	FileSize     *int64  `json:"file_size"`
	ErrorMessage *string `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
