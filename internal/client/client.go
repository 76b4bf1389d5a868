// Package client runs a single installed Minecraft version as a child
// process. Grounded in the original's client.rs Client/ClientBuilder: a
// builder assembles GameOptions and a version id, build() hands off a
// Client, and start/is_running/exit manage the one child process it owns.
package client

import (
	"os/exec"

	"github.com/quasar/mc-installer/internal/command"
	"github.com/quasar/mc-installer/internal/launcherr"
	"github.com/quasar/mc-installer/internal/model"
)

// Client owns at most one running game process for a single installed
// version. exec.Cmd has no portable non-blocking try-wait, so Start spawns
// a goroutine that calls Wait() once and reports the result on done;
// IsRunning and Exit both read from it without calling Wait() themselves.
type Client struct {
	options   *model.GameOptions
	versionID string
	root      string
	cmd       *exec.Cmd
	done      chan error
}

// IsRunning non-blockingly polls the child. A terminated child clears the
// handle and reports false, mirroring try_wait's Ok(Some(_)) arm.
func (c *Client) IsRunning() (bool, error) {
	if c.cmd == nil {
		return false, nil
	}
	select {
	case <-c.done:
		c.cmd = nil
		c.done = nil
		return false, nil
	default:
		return true, nil
	}
}

// Start builds the launch command for versionID and spawns it. It fails
// if a child is already tracked.
func (c *Client) Start() error {
	if c.cmd != nil {
		return launcherr.General("a minecraft instance is already running")
	}

	java, args, err := command.BuildLaunchCommand(c.versionID, c.root, c.options)
	if err != nil {
		return err
	}

	cmd := exec.Command(java, args...)
	if err := cmd.Start(); err != nil {
		return launcherr.OS("failed to launch minecraft", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	c.cmd = cmd
	c.done = done
	return nil
}

// Exit blocks until the child exits and clears the handle.
func (c *Client) Exit() error {
	if c.cmd == nil {
		return nil
	}
	err := <-c.done
	c.cmd = nil
	c.done = nil
	if err != nil {
		return launcherr.OS("minecraft was not running", err)
	}
	return nil
}
