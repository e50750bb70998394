package mapper

import (
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/schedule"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Name:      task.Name,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if task.RemindAt != nil {
		value := task.RemindAt.UTC().Format(time.RFC3339)
		item.RemindAt = &value
		if task.RemindHasTime != nil {
			hasTime := *task.RemindHasTime
			item.RemindHasTime = &hasTime
		}
	}

	if task.Note != nil {
		value := *task.Note
		item.Note = &value
	}

	return item
}

func ToScheduleResponse(cal schedule.Calendar) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		Months: make([]dto.MonthView, 0, len(cal.Months)),
		Drafts: ToTaskItems(cal.Drafts),
	}
	for _, month := range cal.Months {
		view := dto.MonthView{
			Month: month.Key,
			Days:  make([]dto.DayView, 0, len(month.Days)),
		}
		for _, day := range month.Days {
			view.Days = append(view.Days, dto.DayView{
				Date:  day.Key,
				Tasks: ToTaskItems(day.Tasks),
			})
		}
		resp.Months = append(resp.Months, view)
	}
	return resp
}
