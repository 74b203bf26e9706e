// Package audit appends one JSONL record per marskit invocation to the
// user's audit log. Audit failures never fail the command being audited.
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event is one audit log record.
type Event struct {
	Timestamp     string   `json:"timestamp"`
	Operation     string   `json:"operation"`
	OutputDir     string   `json:"outputDir,omitempty"`
	Args          []string `json:"args"`
	Result        string   `json:"result"`
	ExitCode      int      `json:"exitCode"`
	DurationMs    int64    `json:"durationMs"`
	CorrelationID string   `json:"correlationId"`
}

// BuildEvent assembles an audit record from the raw process arguments and
// the command outcome.
func BuildEvent(args []string, result string, exitCode int, duration time.Duration) Event {
	op, outputDir := inferFromArgs(args)
	return Event{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Operation:     op,
		OutputDir:     outputDir,
		Args:          args,
		Result:        result,
		ExitCode:      exitCode,
		DurationMs:    duration.Milliseconds(),
		CorrelationID: uuid.NewString(),
	}
}

// Write appends the event to the user audit log, creating it on first use.
func Write(event Event) error {
	path, err := userAuditPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(append(line, '\n'))
	return err
}

// ReadUserAudit returns every parseable event in the user audit log, oldest
// first. A missing log is not an error.
func ReadUserAudit() ([]Event, error) {
	path, err := userAuditPath()
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var out []Event
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var event Event
		if err := json.Unmarshal([]byte(line), &event); err == nil {
			out = append(out, event)
		}
	}
	return out, scanner.Err()
}

func userAuditPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".marskit", "audit.log"), nil
}

// knownOps are the marskit subcommands. Anything else on the command line
// is a flag or a flag value; a bare invocation is an emit.
var knownOps = map[string]bool{
	"list":       true,
	"show":       true,
	"verify":     true,
	"watch":      true,
	"history":    true,
	"schema":     true,
	"version":    true,
	"completion": true,
	"help":       true,
}

func inferFromArgs(args []string) (operation, outputDir string) {
	operation = "emit"
	for i := 1; i < len(args); i++ {
		if knownOps[args[i]] {
			operation = args[i]
			break
		}
	}
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-o" || a == "--output-dir":
			if i+1 < len(args) {
				outputDir = args[i+1]
			}
		case strings.HasPrefix(a, "--output-dir="):
			outputDir = strings.TrimPrefix(a, "--output-dir=")
		case strings.HasPrefix(a, "-o="):
			outputDir = strings.TrimPrefix(a, "-o=")
		}
	}
	return operation, outputDir
}
