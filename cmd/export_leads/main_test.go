package main

import (
	"testing"
	"time"

	"autostream-assistant/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFlags_Request(t *testing.T) {
	tests := []struct {
		name    string
		flags   exportFlags
		want    dto.ExportLeadsRequest
		wantErr bool
	}{
		{
			name:  "no filters",
			flags: exportFlags{},
			want:  dto.ExportLeadsRequest{},
		},
		{
			name:  "all filters",
			flags: exportFlags{plan: "pro", platform: "YouTube", since: "2026-02-01", limit: 10, newest: true},
			want: dto.ExportLeadsRequest{
				Plan:     "pro",
				Platform: "YouTube",
				From:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
				Limit:    10,
				Newest:   true,
			},
		},
		{
			name:    "bad date",
			flags:   exportFlags{since: "01/02/2026"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.request()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportCmd_Flags(t *testing.T) {
	cmd := newExportCmd()

	out, err := cmd.Flags().GetString("out")
	require.NoError(t, err)
	assert.Equal(t, "leads.xlsx", out)
	assert.NotNil(t, cmd.Flags().Lookup("newest"))
}
