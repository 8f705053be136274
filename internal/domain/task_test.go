package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"Pending", StatusPending, false},
		{"in_progress", StatusInProgress, false},
		{"InProgress", StatusInProgress, false},
		{"IN_PROGRESS", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"COMPLETED", StatusCompleted, false},
		{"", "", true},
		{"done", "", true},
		{"in progress", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"Medium", PriorityMedium, false},
		{"HIGH", PriorityHigh, false},
		{"", "", true},
		{"urgent", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPriority)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    SortField
		wantErr bool
	}{
		{"", "", false},
		{"dueDate", SortByDueDate, false},
		{"duedate", SortByDueDate, false},
		{"DUEDATE", SortByDueDate, false},
		{"priority", SortByPriority, false},
		{"status", SortByStatus, false},
		{"created_at", "", true},
		{"title", "", true},
		{"due_date; DROP TABLE tasks", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseSortField(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSortField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	dueDate := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid task with explicit fields", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(userID, "Write report", "Quarterly numbers", &dueDate, StatusInProgress, PriorityHigh)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, userID, task.UserID)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, "Quarterly numbers", task.Description)
		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(dueDate))
		assert.Equal(t, StatusInProgress, task.Status)
		assert.Equal(t, PriorityHigh, task.Priority)
		assert.False(t, task.CreatedAt.IsZero())
		assert.Nil(t, task.UpdatedAt)
	})

	t.Run("empty status and priority fall back to defaults", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask(userID, "Defaults", "", nil, "", "")
		require.NoError(t, err)

		assert.Equal(t, StatusPending, task.Status)
		assert.Equal(t, PriorityMedium, task.Priority)
		assert.Nil(t, task.DueDate)
	})

	t.Run("title limit counts runes, not bytes", func(t *testing.T) {
		t.Parallel()

		title := strings.Repeat("ё", MaxTitleLength)
		require.Greater(t, len(title), MaxTitleLength)

		task, err := NewTask(userID, title, "", nil, "", "")
		require.NoError(t, err)
		assert.Equal(t, title, task.Title)
	})

	t.Run("rejects invalid data", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			userID   uuid.UUID
			title    string
			desc     string
			status   Status
			priority Priority
			wantErr  error
		}{
			{"missing owner", uuid.Nil, "Title", "", "", "", ErrEmptyTaskOwner},
			{"empty title", userID, "", "", "", "", ErrEmptyTitle},
			{"title too long", userID, strings.Repeat("t", MaxTitleLength+1), "", "", "", ErrTitleTooLong},
			{"multibyte title past the limit", userID, strings.Repeat("ё", MaxTitleLength+1), "", "", "", ErrTitleTooLong},
			{"description too long", userID, "Title", strings.Repeat("d", MaxDescriptionLength+1), "", "", ErrDescriptionTooLong},
			{"unknown status", userID, "Title", "", Status("archived"), "", ErrInvalidStatus},
			{"unknown priority", userID, "Title", "", "", Priority("critical"), ErrInvalidPriority},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				task, err := NewTask(tt.userID, tt.title, tt.desc, nil, tt.status, tt.priority)
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
			})
		}
	})
}
