// Package process inspects running processes.
package process

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another instance of the executable is running.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Others returns the IDs of processes, other than this one, running executable.
func Others(executable string) ([]int, error) {
	processList, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	thisProcessID := os.Getpid()

	var pids []int

	for _, p := range processList {
		if p.Pid() == thisProcessID || p.Executable() != executable {
			continue
		}

		pids = append(pids, p.Pid())
	}

	return pids, nil
}

// EnsureSingleInstance fails with ErrAlreadyRunning when another process runs executable.
func EnsureSingleInstance(executable string) error {
	pids, err := Others(executable)
	if err != nil {
		return err
	}

	if len(pids) > 0 {
		return fmt.Errorf("%w: %s (pid %d)", ErrAlreadyRunning, executable, pids[0])
	}

	return nil
}

// SelfExecutable returns the file name this process was started with.
func SelfExecutable() string {
	return filepath.Base(os.Args[0])
}
