package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gowrivallaban/account-open-agenticAI/observability"
	"github.com/gowrivallaban/account-open-agenticAI/orchestrator"
)

func executeCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Apex Financial API")
	assert.Contains(t, stdout, "2.0.0")
}

func TestChatRequiresEngine(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := executeCLI(t, "chat", "--message", "Hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no engine configured")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Orchestrator.MaxIterations)
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "sk-test", cfg.Orchestrator.Engine.APIKey)
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accountd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
orchestrator:
  max_iterations: 5
  engine:
    model: gpt-4o-mini
server:
  addr: ":9090"
logging:
  level: debug
`), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Orchestrator.MaxIterations)
	assert.Equal(t, "gpt-4o-mini", cfg.Orchestrator.Engine.Model)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep defaults
	assert.Equal(t, "memory", cfg.Orchestrator.Session.Backend)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestAuditObserver_RecordsOnlyAccountCreation(t *testing.T) {
	var buf bytes.Buffer
	obs := auditObserver{logger: slog.New(slog.NewTextHandler(&buf, nil))}

	obs.OnEvent(context.Background(), observability.Event{
		Type: orchestrator.EventIterationStart,
		Data: map[string]any{"iteration": 1},
	})
	assert.Empty(t, buf.String(), "loop telemetry must not reach the audit log")

	obs.OnEvent(context.Background(), observability.Event{
		Type: orchestrator.EventAccountCreated,
		Data: map[string]any{"account_type": "Checking"},
	})
	out := buf.String()
	assert.Contains(t, out, string(orchestrator.EventAccountCreated))
	assert.Contains(t, out, "account_type=Checking")
}

func TestPrintAccountLine(t *testing.T) {
	var out bytes.Buffer
	printAccountLine(&out, &orchestrator.Result{Reply: "All done!"})
	assert.Empty(t, out.String())

	printAccountLine(&out, &orchestrator.Result{
		Metadata: orchestrator.Metadata{
			AccountCreated: true,
			AccountNumber:  "1234567890",
			RoutingNumber:  "987654321",
		},
	})
	assert.Equal(t, "[account 1234567890 opened, routing 987654321]\n", out.String())
}
