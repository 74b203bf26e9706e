package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEvent_InfersFieldsFromArgs(t *testing.T) {
	event := BuildEvent([]string{"marskit", "verify", "--output-dir", "/srv/kit"}, "failure", 4, 1500*time.Millisecond)

	assert.Equal(t, "verify", event.Operation)
	assert.Equal(t, "/srv/kit", event.OutputDir)
	assert.Equal(t, 4, event.ExitCode)
	assert.Equal(t, int64(1500), event.DurationMs)
	assert.NotEmpty(t, event.CorrelationID)
}

func TestBuildEvent_BareInvocationIsEmit(t *testing.T) {
	event := BuildEvent([]string{"marskit"}, "success", 0, 12*time.Millisecond)
	assert.Equal(t, "emit", event.Operation)
	assert.Empty(t, event.OutputDir)
}

func TestBuildEvent_FlagValueIsNotOperation(t *testing.T) {
	// "-o list" names a directory, not the list subcommand.
	event := BuildEvent([]string{"marskit", "-o", "list"}, "success", 0, time.Millisecond)
	assert.Equal(t, "emit", event.Operation)
	assert.Equal(t, "list", event.OutputDir)
}

func TestInferFromArgs_OutputDirForms(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short flag", []string{"marskit", "-o", "/tmp/kit"}, "/tmp/kit"},
		{"long flag", []string{"marskit", "--output-dir", "/tmp/kit"}, "/tmp/kit"},
		{"long flag equals", []string{"marskit", "--output-dir=/tmp/kit"}, "/tmp/kit"},
		{"short flag equals", []string{"marskit", "-o=/tmp/kit"}, "/tmp/kit"},
		{"absent", []string{"marskit", "verify"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outputDir := inferFromArgs(tt.args)
			assert.Equal(t, tt.want, outputDir)
		})
	}
}

func TestWriteAndReadUserAudit(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	first := BuildEvent([]string{"marskit", "-o", "/srv/kit"}, "success", 0, 8*time.Millisecond)
	second := BuildEvent([]string{"marskit", "verify", "-o", "/srv/kit"}, "failure", 4, 3*time.Millisecond)

	require.NoError(t, Write(first))
	require.NoError(t, Write(second))

	events, err := ReadUserAudit()
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "emit", events[0].Operation)
	assert.Equal(t, "success", events[0].Result)
	assert.Equal(t, "verify", events[1].Operation)
	assert.Equal(t, 4, events[1].ExitCode)
	assert.NotEqual(t, events[0].CorrelationID, events[1].CorrelationID)
}

func TestReadUserAudit_MissingLog(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	events, err := ReadUserAudit()
	require.NoError(t, err)
	assert.Nil(t, events)
}
