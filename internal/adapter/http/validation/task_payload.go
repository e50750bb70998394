package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/schedule"
)

const MaxNoteLength = 280

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidRemindAt    = errors.New("invalid remind date")
	ErrNoteTooLong        = errors.New("note too long")
)

var bareDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BuildCreateTaskInput validates and normalizes a create request. The name
// must be non-empty after trimming; a note is trimmed, dropped when empty
// and capped at MaxNoteLength; a reminder stamp is normalized to a
// canonical instant, with a bare date recorded as a whole-day reminder.
func BuildCreateTaskInput(req dto.CreateTaskRequest, loc *time.Location) (domain.CreateTaskInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	note, err := normalizeNote(req.Note)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	input := domain.CreateTaskInput{Name: name, Note: note}

	if req.RemindAt != nil && *req.RemindAt != "" {
		at, hasTime, err := normalizeRemindAt(*req.RemindAt, req.RemindHasTime, loc)
		if err != nil {
			return domain.CreateTaskInput{}, err
		}
		input.RemindAt = at
		input.RemindHasTime = hasTime
	} else if req.RemindHasTime != nil {
		// The flag is meaningless without a reminder.
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return input, nil
}

// BuildUpdateTaskInput validates a changed-fields-only patch. The raw field
// map distinguishes an absent field (untouched) from an explicit JSON null
// (cleared, for remindAt and note). A null name is rejected: a task never
// loses its name.
func BuildUpdateTaskInput(id string, req dto.UpdateTaskRequest, raw map[string]json.RawMessage, loc *time.Location) (domain.UpdateTaskInput, error) {
	if !hasTaskUpdateFields(raw) {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	input := domain.UpdateTaskInput{ID: id}

	if hasJSONField(raw, "name") {
		if req.Name == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Name = &name
	}

	if hasJSONField(raw, "completed") {
		if req.Completed == nil {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		input.Completed = req.Completed
	}

	if hasJSONField(raw, "remindAt") {
		input.RemindAtSet = true
		if !isJSONNull(raw["remindAt"]) {
			if req.RemindAt == nil || *req.RemindAt == "" {
				return domain.UpdateTaskInput{}, ErrInvalidRemindAt
			}
			at, hasTime, err := normalizeRemindAt(*req.RemindAt, req.RemindHasTime, loc)
			if err != nil {
				return domain.UpdateTaskInput{}, err
			}
			input.RemindAt = at
			input.RemindHasTime = hasTime
		}
	} else if req.RemindHasTime != nil {
		input.RemindHasTime = req.RemindHasTime
	}

	if hasJSONField(raw, "note") {
		input.NoteSet = true
		if !isJSONNull(raw["note"]) {
			if req.Note == nil {
				return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
			}
			note, err := normalizeNote(req.Note)
			if err != nil {
				return domain.UpdateTaskInput{}, err
			}
			input.Note = note
		}
	}

	return input, nil
}

func normalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*note)
	if len([]rune(trimmed)) > MaxNoteLength {
		return nil, ErrNoteTooLong
	}
	if trimmed == "" {
		return nil, nil
	}
	return &trimmed, nil
}

func normalizeRemindAt(value string, hasTimeFlag *bool, loc *time.Location) (*time.Time, *bool, error) {
	at, ok := schedule.ParseStamp(value, loc)
	if !ok {
		return nil, nil, ErrInvalidRemindAt
	}

	hasTime := hasTimeFlag
	if hasTime == nil && bareDateRe.MatchString(value) {
		v := false
		hasTime = &v
	}
	return &at, hasTime, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	return hasJSONField(raw, "name") ||
		hasJSONField(raw, "completed") ||
		hasJSONField(raw, "remindAt") ||
		hasJSONField(raw, "remindHasTime") ||
		hasJSONField(raw, "note")
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
