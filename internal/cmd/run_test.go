package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/codecat/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to execute a subcommand with args, capturing all output
func executeCommand(t *testing.T, args []string) (string, error) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "codecat", SilenceUsage: true}
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewValidateCommand())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

// setupWorkspace moves the test into an empty directory with no config
// discovery, and returns a source tree inside it
func setupWorkspace(t *testing.T) (workDir, root string) {
	t.Helper()

	workDir = t.TempDir()
	chdir(t, workDir)
	t.Setenv(config.ConfigEnvVar, "")

	root = filepath.Join(workDir, "src")
	files := map[string]string{
		"a.py":       "print(1)",
		"b.txt":      "ignore",
		"sub/c.js":   "x=1;",
		"sub/d.java": "class D{}",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return workDir, root
}

func TestNewRunCommand(t *testing.T) {
	cmd := NewRunCommand()

	assert.Equal(t, "run [root]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.NotNil(t, cmd.RunE)

	flags := []string{"config", "root", "output", "ext", "missing-root", "invalid-bytes",
		"no-lock", "summary-file", "log-level", "log-dir", "verbose"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %s should exist", flag)
	}
	assert.NotNil(t, cmd.Flags().ShorthandLookup("o"))
	assert.NotNil(t, cmd.Flags().ShorthandLookup("e"))
}

func TestRunCommand_DefaultOutput(t *testing.T) {
	workDir, root := setupWorkspace(t)

	output, err := executeCommand(t, []string{"run", root})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(workDir, config.DefaultOutputFile))
	require.NoError(t, err)

	want := "\n\n===== a.py =====\n\nprint(1)" +
		"\n\n===== sub/c.js =====\n\nx=1;" +
		"\n\n===== sub/d.java =====\n\nclass D{}"
	assert.Equal(t, want, string(data))
	assert.Contains(t, output, "Wrote 3 files to all_code.txt")
	assert.Contains(t, output, "Run Summary")
}

func TestRunCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		args      func(root, out string) []string
		wantFiles string
	}{
		{
			name:      "root flag and repeated ext",
			args:      func(root, out string) []string { return []string{"run", "--root", root, "-o", out, "-e", ".py", "-e", ".js"} },
			wantFiles: "\n\n===== a.py =====\n\nprint(1)\n\n===== sub/c.js =====\n\nx=1;",
		},
		{
			name:      "comma separated ext",
			args:      func(root, out string) []string { return []string{"run", root, "--output", out, "--ext", ".java, .js"} },
			wantFiles: "\n\n===== sub/c.js =====\n\nx=1;\n\n===== sub/d.java =====\n\nclass D{}",
		},
		{
			name:      "no matches",
			args:      func(root, out string) []string { return []string{"run", root, "-o", out, "-e", ".rs"} },
			wantFiles: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir, root := setupWorkspace(t)
			out := filepath.Join(workDir, "out.txt")

			_, err := executeCommand(t, tt.args(root, out))
			require.NoError(t, err)

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFiles, string(data))
		})
	}
}

func TestRunCommand_Errors(t *testing.T) {
	tests := []struct {
		name           string
		args           func(root string) []string
		wantErrContain string
	}{
		{
			name:           "no root",
			args:           func(root string) []string { return []string{"run"} },
			wantErrContain: "root_dir is required",
		},
		{
			name:           "root flag and argument",
			args:           func(root string) []string { return []string{"run", root, "--root", root} },
			wantErrContain: "cannot use both --root and a root argument",
		},
		{
			name:           "extension without dot",
			args:           func(root string) []string { return []string{"run", root, "-e", "py"} },
			wantErrContain: "invalid extension",
		},
		{
			name:           "unknown invalid-bytes policy",
			args:           func(root string) []string { return []string{"run", root, "--invalid-bytes", "ignore"} },
			wantErrContain: "invalid invalid_bytes",
		},
		{
			name:           "missing config file",
			args:           func(root string) []string { return []string{"run", root, "--config", "nope.yaml"} },
			wantErrContain: "nope.yaml",
		},
		{
			name:           "missing root with fail policy",
			args:           func(root string) []string { return []string{"run", root + "-missing", "--missing-root", "fail"} },
			wantErrContain: "root directory is not usable",
		},
		{
			name:           "too many args",
			args:           func(root string) []string { return []string{"run", root, root} },
			wantErrContain: "accepts at most 1 arg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir, root := setupWorkspace(t)

			_, err := executeCommand(t, tt.args(root))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrContain)

			_, statErr := os.Stat(filepath.Join(workDir, config.DefaultOutputFile))
			assert.True(t, os.IsNotExist(statErr), "no output should be written on %s", tt.name)
		})
	}
}

func TestRunCommand_MissingRootWarns(t *testing.T) {
	workDir, root := setupWorkspace(t)

	output, err := executeCommand(t, []string{"run", root + "-missing"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(workDir, config.DefaultOutputFile))
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Contains(t, output, "Warning: Root directory")
	assert.Contains(t, output, "--missing-root=fail")
	assert.Contains(t, output, "Wrote 0 files")
}

func TestRunCommand_Verbose(t *testing.T) {
	_, root := setupWorkspace(t)

	output, err := executeCommand(t, []string{"run", root, "--verbose"})
	require.NoError(t, err)

	assert.Contains(t, output, "Writing all_code.txt:")
	assert.Contains(t, output, "[1] a.py")
	assert.Contains(t, output, "[2] sub/c.js")
	assert.Contains(t, output, "[DEBUG] Appended a.py")
}

func TestRunCommand_ConfigFile(t *testing.T) {
	workDir, root := setupWorkspace(t)

	cfgDir := filepath.Join(workDir, config.ConfigDirName)
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	cfgContent := "root_dir: " + root + "\n" +
		"output_file: bundle.txt\n" +
		"extensions: [\".java\"]\n" +
		"log_level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, config.ConfigFileName), []byte(cfgContent), 0644))

	output, err := executeCommand(t, []string{"run"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(workDir, "bundle.txt"))
	require.NoError(t, err)
	assert.Equal(t, "\n\n===== sub/d.java =====\n\nclass D{}", string(data))
	assert.NotContains(t, output, "Run Summary", "warn level hides the summary")

	// Flags override the config file
	_, err = executeCommand(t, []string{"run", "-e", ".py"})
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(workDir, "bundle.txt"))
	require.NoError(t, err)
	assert.Equal(t, "\n\n===== a.py =====\n\nprint(1)", string(data))
}

func TestRunCommand_SummaryAndLogDir(t *testing.T) {
	workDir, root := setupWorkspace(t)
	summaryPath := filepath.Join(workDir, "reports", "summary.yaml")
	logDir := filepath.Join(workDir, "logs")

	_, err := executeCommand(t, []string{"run", root, "--summary-file", summaryPath, "--log-dir", logDir, "--no-lock"})
	require.NoError(t, err)

	data, err := os.ReadFile(summaryPath)
	require.NoError(t, err)
	var summary map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &summary))
	assert.Equal(t, []interface{}{"a.py", "sub/c.js", "sub/d.java"}, summary["files"])
	assert.Equal(t, false, summary["root_missing"])

	logData, err := os.ReadFile(filepath.Join(logDir, "latest.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "Run ID: "+summary["run_id"].(string))
	assert.Contains(t, string(logData), "=== Run Summary ===")
}

func TestRunCommand_InvalidBytesDrop(t *testing.T) {
	workDir, root := setupWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "bad.py"), []byte("a\xffb"), 0644))
	out := filepath.Join(workDir, "out.txt")

	_, err := executeCommand(t, []string{"run", root, "-o", out, "-e", ".py", "--invalid-bytes", "drop"})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "===== bad.py =====\n\nab")
}

func TestRunCommand_SkippedFileWarning(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	workDir, root := setupWorkspace(t)
	secret := filepath.Join(root, "secret.py")
	require.NoError(t, os.WriteFile(secret, []byte("s"), 0000))
	t.Cleanup(func() { os.Chmod(secret, 0644) })

	output, err := executeCommand(t, []string{"run", root, "-e", ".py"})
	require.NoError(t, err, "unreadable files must not fail the run")

	assert.Contains(t, output, "1 matched file could not be read")
	assert.Contains(t, output, "secret.py")

	data, err := os.ReadFile(filepath.Join(workDir, config.DefaultOutputFile))
	require.NoError(t, err)
	assert.Equal(t, "\n\n===== a.py =====\n\nprint(1)", string(data))
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("failed to restore working directory: %v", err)
		}
	})
}
