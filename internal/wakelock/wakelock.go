// Package wakelock keeps the machine awake while an observation is running
// by holding an inhibitor process such as `systemd-inhibit` or `caffeinate`
package wakelock

import (
	"fmt"
	"log/slog"
	"os/exec"
	"sync"

	"github.com/kballard/go-shellquote"
)

// Command holds the lock by running a command for as long as the lock is
// held. The command is expected to run until it is killed.
type Command struct {
	cmd  *exec.Cmd
	done chan struct{}
	name string
	args []string
	mu   sync.Mutex
}

// New parses cmdLine with shell quoting rules. An empty command line gives a
// lock that does nothing.
func New(cmdLine string) (*Command, error) {
	cmdSlice, err := shellquote.Split(cmdLine)
	if err != nil {
		return nil, fmt.Errorf("unable to parse wake_lock_cmd option: %w", err)
	}

	c := &Command{}

	if len(cmdSlice) > 0 {
		c.name = cmdSlice[0]
		c.args = cmdSlice[1:]
	}

	return c, nil
}

// Acquire starts the inhibitor unless it is already running. Failures are
// logged, never returned.
func (c *Command) Acquire() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.name == "" || c.cmd != nil {
		return
	}

	cmd := exec.Command(c.name, c.args...)

	if err := cmd.Start(); err != nil {
		slog.Warn(
			"wake lock command failed to start",
			slog.String("cmd", c.name),
			slog.Any("error", err),
		)

		return
	}

	done := make(chan struct{})

	go func() {
		err := cmd.Wait()

		c.mu.Lock()
		if c.cmd == cmd {
			c.cmd = nil
			c.done = nil

			// exited on its own
			slog.Warn(
				"wake lock command exited",
				slog.String("cmd", c.name),
				slog.Any("error", err),
			)
		}
		c.mu.Unlock()

		close(done)
	}()

	c.cmd = cmd
	c.done = done

	slog.Debug("wake lock acquired", slog.Int("pid", cmd.Process.Pid))
}

// Release stops the inhibitor if it is running and waits for it to exit.
func (c *Command) Release() {
	c.mu.Lock()

	cmd, done := c.cmd, c.done
	c.cmd, c.done = nil, nil

	c.mu.Unlock()

	if cmd == nil {
		return
	}

	if err := cmd.Process.Kill(); err != nil {
		slog.Warn("wake lock command could not be stopped", slog.Any("error", err))
	}

	<-done

	slog.Debug("wake lock released", slog.Int("pid", cmd.Process.Pid))
}

// Held reports whether the inhibitor is running.
func (c *Command) Held() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cmd != nil
}
