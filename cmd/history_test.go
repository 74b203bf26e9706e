package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshab/marskit/internal/audit"
)

func writeAuditLog(t *testing.T, events ...audit.Event) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)

	auditDir := filepath.Join(home, ".marskit")
	require.NoError(t, os.MkdirAll(auditDir, 0o750))

	logPath := filepath.Join(auditDir, "audit.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	require.NoError(t, err)
	defer f.Close()
	for _, event := range events {
		b, err := json.Marshal(event)
		require.NoError(t, err)
		_, err = f.Write(append(b, '\n'))
		require.NoError(t, err)
	}
}

func TestHistoryCmd_WithEvents_NoError(t *testing.T) {
	writeAuditLog(t, audit.Event{
		Timestamp:  "2026-03-02T10:00:00Z",
		Operation:  "emit",
		OutputDir:  "./prints",
		Args:       []string{"marskit", "-o", "./prints"},
		Result:     "success",
		ExitCode:   0,
		DurationMs: 12,
	})

	_, stderr, runErr := executeCommandWithProcessIO(t, "history", "--limit", "1")
	assert.NoError(t, runErr)
	assert.Contains(t, stderr, "op=emit")
	assert.Contains(t, stderr, "dir=./prints")
}

func TestHistoryCmd_OpFilter(t *testing.T) {
	writeAuditLog(t,
		audit.Event{
			Timestamp:  "2026-03-02T10:00:00Z",
			Operation:  "emit",
			Args:       []string{"marskit"},
			Result:     "success",
			ExitCode:   0,
			DurationMs: 12,
		},
		audit.Event{
			Timestamp:  "2026-03-02T10:05:00Z",
			Operation:  "verify",
			Args:       []string{"marskit", "verify"},
			Result:     "failure",
			ExitCode:   4,
			DurationMs: 8,
		},
	)

	_, stderr, runErr := executeCommandWithProcessIO(t, "history", "--op", "verify", "--limit", "10")
	assert.NoError(t, runErr)
	assert.Contains(t, stderr, "op=verify")
	assert.NotContains(t, stderr, "op=emit")
}

func TestHistoryCmd_OpFilter_NoMatch(t *testing.T) {
	writeAuditLog(t, audit.Event{
		Timestamp:  "2026-03-02T10:00:00Z",
		Operation:  "emit",
		Args:       []string{"marskit"},
		Result:     "success",
		ExitCode:   0,
		DurationMs: 12,
	})

	_, stderr, runErr := executeCommandWithProcessIO(t, "history", "--op", "watch", "--limit", "10")
	assert.NoError(t, runErr)
	assert.Contains(t, stderr, "No audit events found")
}

func TestHistoryCmd_LimitKeepsLatest(t *testing.T) {
	writeAuditLog(t,
		audit.Event{
			Timestamp:  "2026-03-02T10:00:00Z",
			Operation:  "emit",
			Args:       []string{"marskit"},
			Result:     "success",
			ExitCode:   0,
			DurationMs: 12,
		},
		audit.Event{
			Timestamp:  "2026-03-02T11:00:00Z",
			Operation:  "list",
			Args:       []string{"marskit", "list"},
			Result:     "success",
			ExitCode:   0,
			DurationMs: 3,
		},
	)

	_, stderr, runErr := executeCommandWithProcessIO(t, "history", "--limit", "1")
	assert.NoError(t, runErr)
	assert.Contains(t, stderr, "op=list")
	assert.NotContains(t, stderr, "op=emit")
}

func TestHistoryCmd_EmptyLog(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, stderr, runErr := executeCommandWithProcessIO(t, "history")
	assert.NoError(t, runErr)
	assert.Contains(t, stderr, "No audit events found")
}
