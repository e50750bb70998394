package dto

type TaskItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Completed     bool    `json:"completed"`
	RemindAt      *string `json:"remindAt,omitempty"`
	RemindHasTime *bool   `json:"remindHasTime,omitempty"`
	Note          *string `json:"note,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type CreateTaskRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	RemindAt      *string `json:"remindAt"`
	RemindHasTime *bool   `json:"remindHasTime"`
	Note          *string `json:"note"`
}

// UpdateTaskRequest is a changed-fields-only patch. Whether a nil pointer
// means "absent" or "JSON null" is decided against the raw body in the
// validation package.
type UpdateTaskRequest struct {
	Name          *string `json:"name"`
	Completed     *bool   `json:"completed"`
	RemindAt      *string `json:"remindAt"`
	RemindHasTime *bool   `json:"remindHasTime"`
	Note          *string `json:"note"`
}

type DeleteTaskResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type DayView struct {
	Date  string     `json:"date"`
	Tasks []TaskItem `json:"tasks"`
}

type MonthView struct {
	Month string    `json:"month"`
	Days  []DayView `json:"days"`
}

type ScheduleResponse struct {
	Months []MonthView `json:"months"`
	Drafts []TaskItem  `json:"drafts"`
}
