package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"consultq/internal/config"
	"consultq/internal/ipc"
	"consultq/internal/queue"
	"consultq/internal/queueaccess"
)

const requesterEnvVar = "CONSULTQ_REQUESTER_ID"

type commandContext struct {
	socketFlag    *string
	configFlag    *string
	requesterFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(socketFlag, configFlag, requesterFlag *string) *commandContext {
	return &commandContext{
		socketFlag:    socketFlag,
		configFlag:    configFlag,
		requesterFlag: requesterFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// requesterID resolves the identity the command acts as: the --as flag
// first, then CONSULTQ_REQUESTER_ID.
func (c *commandContext) requesterID() (string, error) {
	if c.requesterFlag != nil {
		if id := strings.TrimSpace(*c.requesterFlag); id != "" {
			return id, nil
		}
	}
	if id := strings.TrimSpace(os.Getenv(requesterEnvVar)); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("no requester id: pass --as or set %s", requesterEnvVar)
}

func (c *commandContext) socketPath() string {
	if c.socketFlag != nil && strings.TrimSpace(*c.socketFlag) != "" {
		return *c.socketFlag
	}
	return defaultSocketPath()
}

func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	client, err := c.dialClient()
	if err != nil {
		return err
	}
	defer client.Close()
	return fn(client)
}

func (c *commandContext) dialClient() (*ipc.Client, error) {
	socket := c.socketPath()
	client, err := ipc.Dial(socket)
	if err != nil {
		return nil, wrapDialError(err, socket)
	}
	return client, nil
}

// withAccess runs fn against the daemon socket when consultqd is up,
// or directly against the store otherwise.
func (c *commandContext) withAccess(fn func(queueaccess.Access) error) error {
	session, err := queueaccess.OpenWithFallback(
		c.dialClient,
		func() (*queue.Store, queueaccess.Access, error) {
			cfg, err := c.ensureConfig()
			if err != nil {
				return nil, nil, err
			}
			store, err := queue.Open(cfg)
			if err != nil {
				return nil, nil, err
			}
			access, err := queueaccess.NewStoreAccess(store, cfg)
			if err != nil {
				store.Close()
				return nil, nil, err
			}
			return store, access, nil
		},
	)
	if err != nil {
		return err
	}
	defer session.Close()
	return fn(session.Access)
}

func wrapDialError(err error, socket string) error {
	switch {
	case errors.Is(err, syscall.ENOENT) || os.IsNotExist(err):
		return fmt.Errorf("connect to daemon: socket %s not found; start the daemon with `consultqd`", socket)
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Errorf("connect to daemon: socket %s refused the connection; verify the daemon is running", socket)
	default:
		return fmt.Errorf("connect to daemon: %w", err)
	}
}

func defaultSocketPath() string {
	cfg, _, _, err := config.Load("")
	if err == nil {
		return cfg.SocketPath()
	}

	stateDir, err2 := config.ExpandPath("~/.local/share/consultq")
	if err2 != nil {
		return filepath.Join(os.TempDir(), "consultqd.sock")
	}
	return filepath.Join(stateDir, "consultqd.sock")
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
