package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/schedule"
)

func TestGroupByMonth_PayRentScenario(t *testing.T) {
	task := domain.Task{ID: "1", Name: "Pay rent", RemindAt: at("2025-01-05T09:00:00Z")}

	months := schedule.GroupByMonth([]domain.Task{task}, time.UTC)
	require.Len(t, months, 1)
	assert.Equal(t, "2025-01", months[0].Key)
	require.Len(t, months[0].Tasks, 1)
	assert.Equal(t, "Pay rent", months[0].Tasks[0].Name)

	days := schedule.GroupByDate(months[0].Tasks, time.UTC)
	require.Len(t, days, 1)
	assert.Equal(t, "2025-01-05", days[0].Key)
	require.Len(t, days[0].Tasks, 1)
	assert.Equal(t, "Pay rent", days[0].Tasks[0].Name)
}

func TestGroupByMonth_KeysAscendingAndDraftsExcluded(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", RemindAt: at("2025-03-10T09:00:00Z")},
		{ID: "2", RemindAt: at("2025-01-05T09:00:00Z")},
		{ID: "3"}, // draft
		{ID: "4", RemindAt: at("2024-12-31T09:00:00Z")},
		{ID: "5", RemindAt: at("2025-01-20T09:00:00Z")},
	}

	months := schedule.GroupByMonth(tasks, time.UTC)
	keys := make([]string, 0, len(months))
	for _, m := range months {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"2024-12", "2025-01", "2025-03"}, keys)
	assert.Len(t, months[1].Tasks, 2)
}

func TestGroupByMonth_UsesLocalCalendarMonth(t *testing.T) {
	// 16:00Z on Jan 31 is already February in JST.
	task := domain.Task{ID: "1", RemindAt: at("2025-01-31T16:00:00Z")}

	months := schedule.GroupByMonth([]domain.Task{task}, tokyo)
	require.Len(t, months, 1)
	assert.Equal(t, "2025-02", months[0].Key)
}

func TestGrouping_Completeness(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", RemindAt: at("2025-01-05T09:00:00Z")},
		{ID: "2", RemindAt: at("2025-01-05T10:00:00Z")},
		{ID: "3", RemindAt: at("2025-01-06T09:00:00Z")},
		{ID: "4", RemindAt: at("2025-02-01T09:00:00Z")},
		{ID: "5"},
	}

	months := schedule.GroupByMonth(tasks, time.UTC)
	dates := schedule.GroupByDate(tasks, time.UTC)

	countIn := func(buckets []schedule.Bucket, id string) int {
		n := 0
		for _, b := range buckets {
			for _, task := range b.Tasks {
				if task.ID == id {
					n++
				}
			}
		}
		return n
	}

	for _, id := range []string{"1", "2", "3", "4"} {
		assert.Equal(t, 1, countIn(months, id), "month buckets for %s", id)
		assert.Equal(t, 1, countIn(dates, id), "date buckets for %s", id)
	}
	assert.Zero(t, countIn(months, "5"))
	assert.Zero(t, countIn(dates, "5"))

	monthTotal, dateTotal := 0, 0
	for _, b := range months {
		monthTotal += len(b.Tasks)
	}
	for _, b := range dates {
		dateTotal += len(b.Tasks)
	}
	assert.Equal(t, monthTotal, dateTotal)
}

func TestBuildCalendar_Pipeline(t *testing.T) {
	tasks := []domain.Task{
		{ID: "timed", Name: "timed", RemindAt: at("2025-01-05T09:00:00Z"), RemindHasTime: boolPtr(true)},
		{ID: "draft", Name: "draft"},
		{ID: "whole", Name: "whole", RemindAt: at("2025-01-05T00:00:00Z"), RemindHasTime: boolPtr(false)},
		{ID: "feb", Name: "feb", RemindAt: at("2025-02-10T09:00:00Z")},
	}

	cal := schedule.BuildCalendar(tasks, time.UTC)

	require.Len(t, cal.Months, 2)
	assert.Equal(t, "2025-01", cal.Months[0].Key)
	assert.Equal(t, "2025-02", cal.Months[1].Key)

	require.Len(t, cal.Months[0].Days, 1)
	assert.Equal(t, "2025-01-05", cal.Months[0].Days[0].Key)
	// Whole-day entry sorts before the timed one.
	assert.Equal(t, []string{"whole", "timed"}, names(cal.Months[0].Days[0].Tasks))

	require.Len(t, cal.Drafts, 1)
	assert.Equal(t, "draft", cal.Drafts[0].Name)
}

func TestBuildCalendar_RepeatedCallsIdentical(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Name: "a", RemindAt: at("2025-01-05T09:00:00Z")},
		{ID: "2", Name: "b", RemindAt: at("2025-01-05T09:00:00Z")},
		{ID: "3", Name: "c"},
	}
	first := schedule.BuildCalendar(tasks, time.UTC)
	second := schedule.BuildCalendar(tasks, time.UTC)
	assert.Equal(t, first, second)
}
