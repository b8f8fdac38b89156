package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHookScript(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			script, err := HookScript(shell)
			if err != nil {
				t.Fatalf("failed to get %s hooks: %v", shell, err)
			}
			if !strings.Contains(script, "recall record") {
				t.Errorf("%s hook never calls recall record", shell)
			}
			if !strings.Contains(script, "RECALL_SESSION_ID") {
				t.Errorf("%s hook never exports a session id", shell)
			}
		})
	}

	if _, err := HookScript("tcsh"); err == nil {
		t.Error("expected an error for an unsupported shell")
	}
}

// The DEBUG trap fires for the precmd itself and for everything else run from
// PROMPT_COMMAND; without these guards the hook records "__recall_precmd"
// instead of the user's commands.
func TestBashHookGuardsOwnPrecmd(t *testing.T) {
	script, err := HookScript("bash")
	if err != nil {
		t.Fatalf("failed to get bash hooks: %v", err)
	}

	for _, guard := range []string{
		`[ "${BASH_COMMAND}" = "__recall_precmd" ] && return`,
		`case "${PROMPT_COMMAND}" in *"${BASH_COMMAND}"*) return ;; esac`,
		"builtin fc -ln -0",
	} {
		if !strings.Contains(script, guard) {
			t.Errorf("bash hook missing guard %q", guard)
		}
	}
}

func TestBashHookRecordsUserCommands(t *testing.T) {
	bashPath, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not installed")
	}

	dir, err := os.MkdirTemp("", "recall-hook-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	logPath := filepath.Join(dir, "recorded.log")
	stub := "#!/bin/sh\necho \"$@\" >> " + logPath + "\n"
	if err := os.WriteFile(filepath.Join(dir, "recall"), []byte(stub), 0755); err != nil {
		t.Fatalf("failed to write recall stub: %v", err)
	}

	script, err := HookScript("bash")
	if err != nil {
		t.Fatalf("failed to get bash hooks: %v", err)
	}
	hookPath := filepath.Join(dir, "hooks.bash")
	if err := os.WriteFile(hookPath, []byte(script), 0644); err != nil {
		t.Fatalf("failed to write hook script: %v", err)
	}

	cmd := exec.Command(bashPath, "--norc", "-i")
	cmd.Env = append(os.Environ(), "PATH="+dir+":"+os.Getenv("PATH"), "HOME="+dir)
	cmd.Stdin = strings.NewReader("source " + hookPath + "\nls " + dir + "\nfalse\nexit\n")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("interactive bash unavailable: %v (%s)", err, out)
	}

	// recording is backgrounded, so poll for the stub's log
	var log string
	for i := 0; i < 20; i++ {
		data, _ := os.ReadFile(logPath)
		log = string(data)
		if strings.Contains(log, "--exit 1") {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	if strings.Contains(log, "__recall_precmd") {
		t.Fatalf("hook recorded its own precmd:\n%s", log)
	}
	if !strings.Contains(log, "record ls "+dir) {
		t.Errorf("user command was not recorded:\n%s", log)
	}
	if !strings.Contains(log, "record false --exit 1") {
		t.Errorf("failing command was not recorded with its exit code:\n%s", log)
	}
}

func TestFishHookSessionID(t *testing.T) {
	script, err := HookScript("fish")
	if err != nil {
		t.Fatalf("failed to get fish hooks: %v", err)
	}
	if strings.Contains(script, "%self") {
		t.Errorf("fish hook uses the removed %%self expansion")
	}
	if !strings.Contains(script, "$fish_pid") {
		t.Error("fish hook should derive the session id from $fish_pid")
	}
}
