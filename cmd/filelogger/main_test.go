package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnnynv/filelogger/pkg/filelog"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func logLines(t *testing.T, path string) []filelog.Entry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []filelog.Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		e, err := filelog.ParseLine(scanner.Text())
		require.NoError(t, err)
		entries = append(entries, e)
	}
	return entries
}

func ageFile(t *testing.T, path string, days int) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))
	mtime := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestRootCmd_FlagKeysNameRealFlags(t *testing.T) {
	var cmd *cobra.Command
	require.NotPanics(t, func() { cmd = NewRootCmd() })
	for flag, key := range flagKeys {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag --%s for %s", flag, key)
	}
}

func TestVersionInfo(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, BuildTime)
	assert.NotEmpty(t, GitCommit)
}

func TestVersionCmd_JSON(t *testing.T) {
	out, err := execute(t, "version", "-o", "json")
	require.NoError(t, err)

	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, Version, info.Version)
}

func TestWriteCmd(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "app.log")

	_, err := execute(t, "--log-path", logPath, "write", "-s", "success", "-c", "api", "hello", "world")
	require.NoError(t, err)

	entries := logLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, filelog.Success, entries[0].Severity)
	assert.Equal(t, "hello world", entries[0].Message)
	assert.Equal(t, "api", entries[0].Component)
	assert.Equal(t, os.Getpid(), entries[0].PID)
}

func TestWriteCmd_DefaultsAndConsole(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")

	out, err := execute(t, "--log-path", logPath, "--console", "--color", "never", "--default-component", "MyApp", "write", "boot")
	require.NoError(t, err)
	assert.Equal(t, "boot\n", out)

	entries := logLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, filelog.Information, entries[0].Severity)
	assert.Equal(t, "MyApp", entries[0].Component)
}

func TestWriteCmd_EnvironmentPath(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "env.log")
	t.Setenv("FL_LOG_PATH", logPath)

	_, err := execute(t, "write", "from env")
	require.NoError(t, err)
	assert.Len(t, logLines(t, logPath), 1)
}

func TestWriteCmd_MissingPath(t *testing.T) {
	_, err := execute(t, "write", "nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.path")
}

func TestWriteCmd_BadSeverity(t *testing.T) {
	_, err := execute(t, "--log-path", filepath.Join(t.TempDir(), "a.log"), "write", "-s", "fatal", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}

func TestWriteCmd_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "cfg.log")
	cfgPath := filepath.Join(dir, "filelogger.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  path: "+logPath+"\n  component: FromFile\n"), 0644))

	_, err := execute(t, "--config", cfgPath, "write", "configured")
	require.NoError(t, err)

	entries := logLines(t, logPath)
	require.Len(t, entries, 1)
	assert.Equal(t, "FromFile", entries[0].Component)
}

func TestWriteCmd_ConfigFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "envcfg.log")
	cfgPath := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  path: "+logPath+"\n"), 0644))
	t.Setenv("FL_CONFIG", cfgPath)

	_, err := execute(t, "write", "via FL_CONFIG")
	require.NoError(t, err)
	assert.Len(t, logLines(t, logPath), 1)
}

func TestWriteCmd_MissingConfigFromEnvironment(t *testing.T) {
	t.Setenv("FL_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := execute(t, "--log-path", filepath.Join(t.TempDir(), "a.log"), "write", "x")
	assert.Error(t, err)
}

func TestWriteCmd_MalformedDefaultConfigIsReported(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("log:\n  retention_days: [oops\n"), 0644))
	t.Chdir(dir)

	_, err := execute(t, "write", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.NotContains(t, err.Error(), "log.path")
}

func TestCleanCmd(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")
	ageFile(t, filepath.Join(dir, "a.log"), 61)
	ageFile(t, filepath.Join(dir, "b.log"), 10)
	ageFile(t, filepath.Join(dir, "c.txt"), 100)

	out, err := execute(t, "--log-path", logPath, "clean", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "would remove "+filepath.Join(dir, "a.log"))
	assert.FileExists(t, filepath.Join(dir, "a.log"))

	out, err = execute(t, "--log-path", logPath, "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "1 log file(s) removed")
	assert.NoFileExists(t, filepath.Join(dir, "a.log"))
	assert.FileExists(t, filepath.Join(dir, "b.log"))
	assert.FileExists(t, filepath.Join(dir, "c.txt"))
}

func TestCleanCmd_RetentionFlag(t *testing.T) {
	dir := t.TempDir()
	ageFile(t, filepath.Join(dir, "b.log"), 10)

	_, err := execute(t, "--log-path", filepath.Join(dir, "app.log"), "--retention-days", "5", "clean")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "b.log"))
}

func TestCleanCmd_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh")

	out, err := execute(t, "--log-path", filepath.Join(dir, "app.log"), "clean")
	require.NoError(t, err)
	assert.Contains(t, out, "created log directory")
	assert.DirExists(t, dir)
}

func TestDemoCmd(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "demo.log")

	_, err := execute(t, "--log-path", logPath, "--default-component", "MyApp", "demo")
	require.NoError(t, err)

	entries := logLines(t, logPath)
	require.Len(t, entries, 8)
	assert.Equal(t, strings.Repeat("=", 60), entries[0].Message)
	assert.Equal(t, filelog.Success, entries[3].Severity)
	assert.Equal(t, filelog.Warning, entries[4].Severity)
	assert.Equal(t, filelog.Error, entries[5].Severity)
	for _, e := range entries {
		assert.Equal(t, "MyApp", e.Component)
	}
}

func TestConfigShowCmd(t *testing.T) {
	out, err := execute(t, "--log-path", "/var/log/app.log", "--retention-days", "7", "config", "show", "-o", "json")
	require.NoError(t, err)

	var cfg map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	logCfg := cfg["log"].(map[string]interface{})
	assert.Equal(t, "/var/log/app.log", logCfg["path"])
	assert.Equal(t, float64(7), logCfg["retention_days"])
}

func TestConfigShowCmd_Text(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "filelogger.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  path: app.log\njanitor:\n  interval: 6h\n"), 0644))

	out, err := execute(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Log path:        app.log")
	assert.Contains(t, out, "Janitor every:   6h0m0s")
}

func TestConfigValidateCmd(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(good, []byte("log:\n  path: app.log\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("log:\n  color: purple\n"), 0644))

	out, err := execute(t, "config", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	out, err = execute(t, "config", "validate", bad)
	require.Error(t, err)
	assert.Contains(t, out, "log.path")
	assert.Contains(t, out, "log.color")
}

func TestJanitorCmd_SweepsUntilContextDone(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.log")
	ageFile(t, stale, 90)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"janitor", "--log-path", filepath.Join(dir, "app.log"), "--interval", "50ms"})

	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.NoFileExists(t, stale)
	assert.Contains(t, buf.String(), "1 removed")
}

func TestJanitorCmd_RejectsZeroInterval(t *testing.T) {
	_, err := execute(t, "janitor", "--log-path", filepath.Join(t.TempDir(), "app.log"), "--interval", "0s")
	assert.Error(t, err)
}
