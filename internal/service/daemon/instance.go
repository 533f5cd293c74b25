package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/alarm-clock/internal/config"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// ErrAlreadyRunning is returned when another daemon holds the PID file.
var ErrAlreadyRunning = errors.New("alarm clock is already running")

// processFinder looks up a process by PID; replaced in tests.
type processFinder func(pid int) (ps.Process, error)

// acquireInstance claims path for the current process. A PID file left by a
// process that is gone, or that now belongs to another executable, is stale
// and gets overwritten. The returned function removes the file.
func acquireInstance(ctx context.Context, path string, find processFinder) (func(), error) {
	self, err := find(os.Getpid())
	if err != nil {
		return nil, fmt.Errorf("inspect current process: %w", err)
	}

	raw, err := os.ReadFile(path)

	switch {
	case err == nil:
		if pid, parseErr := strconv.Atoi(strings.TrimSpace(string(raw))); parseErr == nil && pid != os.Getpid() {
			owner, findErr := find(pid)
			if findErr != nil {
				return nil, fmt.Errorf("inspect process %d: %w", pid, findErr)
			}

			if owner != nil && sameExecutable(owner, self) {
				return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
			}
		}

		logger.InfoKV(ctx, "Replacing stale PID file", "pid_file", path)
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read PID file: %w", err)
	}

	pid := strconv.Itoa(os.Getpid())
	if err = os.WriteFile(path, []byte(pid+"\n"), config.DefaultFilePermissions); err != nil {
		return nil, fmt.Errorf("write PID file: %w", err)
	}

	release := func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.WarnKV(ctx, "Failed to remove PID file", "pid_file", path, "error", err)
		}
	}

	return release, nil
}

// sameExecutable compares executable names. A nil self matches anything
// because the current process could not be inspected.
func sameExecutable(owner, self ps.Process) bool {
	if self == nil {
		return true
	}

	return owner.Executable() == self.Executable()
}
