package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Shell hook scripts. Each hook captures the command line before execution,
// then records it with exit code and wall time from the post-command hook.
// Recording runs in the background so the prompt never waits on the store.

const bashHooks = `# recall bash hooks
export RECALL_SESSION_ID="${RECALL_SESSION_ID:-bash-$$-$(date +%s)}"

# The DEBUG trap fires for every simple command, including __recall_precmd
# itself and anything else in PROMPT_COMMAND. Only the first fire after a
# prompt marks the start of a user command; the command line itself is read
# back from history in the precmd.
__recall_preexec() {
    [ -n "${COMP_LINE}" ] && return
    [ "${BASH_COMMAND}" = "__recall_precmd" ] && return
    case "${PROMPT_COMMAND}" in *"${BASH_COMMAND}"*) return ;; esac
    [ -z "${__RECALL_AT_PROMPT}" ] && return
    unset __RECALL_AT_PROMPT
    __RECALL_START="${EPOCHSECONDS}"
    __RECALL_RUNNING=1
}

__recall_precmd() {
    local exit_code=$?
    __RECALL_AT_PROMPT=1
    [ -z "${__RECALL_RUNNING}" ] && return
    unset __RECALL_RUNNING
    local cmd
    cmd="$(builtin fc -ln -0 2>/dev/null)"
    cmd="${cmd#"${cmd%%[![:space:]]*}"}"
    [ -z "${cmd}" ] && return
    local duration_ms=$(( (EPOCHSECONDS - __RECALL_START) * 1000 ))
    recall record "${cmd}" --exit ${exit_code} --duration-ms ${duration_ms} >/dev/null 2>&1 &
    unset __RECALL_START
}

if [ -n "${BASH_VERSION}" ]; then
    PROMPT_COMMAND="${PROMPT_COMMAND:+$PROMPT_COMMAND; }__recall_precmd"
    __RECALL_AT_PROMPT=1
    trap '__recall_preexec' DEBUG
fi
`

const zshHooks = `# recall zsh hooks
export RECALL_SESSION_ID="${RECALL_SESSION_ID:-zsh-$$-$(date +%s)}"
autoload -Uz add-zsh-hook
zmodload zsh/datetime

__recall_preexec() {
    __RECALL_CMD="$1"
    __RECALL_START=$EPOCHREALTIME
}

__recall_precmd() {
    local exit_code=$?
    [[ -z "$__RECALL_CMD" ]] && return
    local duration_ms=$(( (EPOCHREALTIME - __RECALL_START) * 1000 ))
    recall record "$__RECALL_CMD" --exit $exit_code --duration-ms ${duration_ms%.*} >/dev/null 2>&1 &!
    unset __RECALL_CMD __RECALL_START
}

add-zsh-hook preexec __recall_preexec
add-zsh-hook precmd __recall_precmd
`

const fishHooks = `# recall fish hooks
if not set -q RECALL_SESSION_ID
    set -gx RECALL_SESSION_ID "fish-$fish_pid-"(date +%s)
end

function __recall_preexec --on-event fish_preexec
    set -g __recall_cmd "$argv"
    set -g __recall_start (date +%s%3N)
end

function __recall_postexec --on-event fish_postexec
    set -l exit_code $status
    if not set -q __recall_cmd
        return
    end
    set -l duration_ms (math (date +%s%3N) - $__recall_start)
    recall record "$__recall_cmd" --exit $exit_code --duration-ms $duration_ms >/dev/null 2>&1 &
    set -e __recall_cmd
    set -e __recall_start
end
`

// HookScript returns the hook script for a shell.
func HookScript(shell string) (string, error) {
	switch shell {
	case "bash":
		return bashHooks, nil
	case "zsh":
		return zshHooks, nil
	case "fish":
		return fishHooks, nil
	default:
		return "", fmt.Errorf("unsupported shell %q (expected bash, zsh, or fish)", shell)
	}
}

// DetectShell guesses the user's shell from $SHELL, defaulting to bash.
func DetectShell() string {
	shell := filepath.Base(os.Getenv("SHELL"))
	switch shell {
	case "zsh", "fish":
		return shell
	default:
		return "bash"
	}
}

// InstallHook writes the hook script under the config directory and adds a
// source line to the shell's rc file unless one is already present.
func InstallHook(shell string) (string, error) {
	script, err := HookScript(shell)
	if err != nil {
		return "", err
	}

	dir, err := configDir()
	if err != nil {
		return "", err
	}

	hookPath := filepath.Join(dir, "hooks."+shell)
	if err := os.WriteFile(hookPath, []byte(script), 0644); err != nil {
		return "", fmt.Errorf("failed to write hook script: %w", err)
	}

	rcPath, sourceLine, err := rcFileFor(shell, hookPath)
	if err != nil {
		return "", err
	}

	existing, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to read %s: %w", rcPath, err)
	}
	if strings.Contains(string(existing), sourceLine) {
		return rcPath, nil
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", rcPath, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n# recall shell integration\n%s\n", sourceLine); err != nil {
		return "", fmt.Errorf("failed to update %s: %w", rcPath, err)
	}
	return rcPath, nil
}

func rcFileFor(shell, hookPath string) (rcPath, sourceLine string, err error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch shell {
	case "bash":
		return filepath.Join(homeDir, ".bashrc"), fmt.Sprintf("source %q", hookPath), nil
	case "zsh":
		return filepath.Join(homeDir, ".zshrc"), fmt.Sprintf("source %q", hookPath), nil
	case "fish":
		return filepath.Join(homeDir, ".config", "fish", "config.fish"),
			fmt.Sprintf("source %q", hookPath), nil
	default:
		return "", "", fmt.Errorf("unsupported shell %q", shell)
	}
}
