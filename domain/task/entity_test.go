package task

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Status
		wantErr bool
	}{
		{name: "pending", input: "Pending", want: StatusPending},
		{name: "completed", input: "Completed", want: StatusCompleted},
		{name: "lowercase is rejected", input: "pending", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "unknown", input: "In Progress", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidStatus))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *time.Time
		wantErr bool
	}{
		{name: "empty means no due date", input: "", want: nil},
		{name: "whitespace means no due date", input: "   ", want: nil},
		{
			name:  "datetime-local",
			input: "2024-05-01T10:30",
			want:  ptr(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:  "datetime-local with seconds",
			input: "2024-05-01T10:30:15",
			want:  ptr(time.Date(2024, 5, 1, 10, 30, 15, 0, time.UTC)),
		},
		{
			name:  "rfc3339",
			input: "2024-05-01T10:30:00Z",
			want:  ptr(time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)),
		},
		{
			name:  "date only",
			input: "2024-05-01",
			want:  ptr(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		},
		{name: "garbage", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %v, want %v", got, tt.want)
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
