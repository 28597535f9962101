package chat

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	when := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	log := AuditLog{
		{Timestamp: when, Role: RoleUser, Content: "hello", Model: DefaultModel},
		{Timestamp: when.Add(time.Second), Role: RoleAssistant, Content: "hi, \"you\"", Model: DefaultModel},
	}

	data, err := log.ExportCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"Timestamp", "Role", "Content", "Model"}, records[0])
	assert.Equal(t, []string{"2026-08-31 09:30:00", "user", "hello", DefaultModel}, records[1])
	assert.Equal(t, []string{"2026-08-31 09:30:01", "assistant", `hi, "you"`, DefaultModel}, records[2])
}

func TestExportCSVEmptyLog(t *testing.T) {
	data, err := AuditLog(nil).ExportCSV()
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,Role,Content,Model\n", string(data))
}

func TestExportFilename(t *testing.T) {
	when := time.Date(2026, 8, 31, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "chat_log_20260831_093005.csv", ExportFilename(when))
}
