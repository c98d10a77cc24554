package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"vnrename/internal/config"
	"vnrename/internal/history"
	"vnrename/internal/logging"
	"vnrename/internal/vndb"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	sessionOnce sync.Once
	sessionID   string
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
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
		if c.verboseFlag != nil && *c.verboseFlag {
			cfg.Logging.Level = "debug"
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// session returns the identifier shared by log lines and history rows of
// this invocation.
func (c *commandContext) session() string {
	c.sessionOnce.Do(func() {
		c.sessionID = uuid.NewString()
	})
	return c.sessionID
}

// logger builds the invocation logger. The returned func closes the log file
// and must be deferred by the caller.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, c.session(), cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return logger, func() {
		if err := closer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: close log file: %v\n", err)
		}
	}, nil
}

func (c *commandContext) catalog() (*vndb.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return vndb.New(cfg.VNDB.BaseURL,
		vndb.WithTimeout(time.Duration(cfg.VNDB.TimeoutSeconds)*time.Second),
		vndb.WithUserAgent(cfg.VNDB.UserAgent),
		vndb.WithToken(cfg.VNDB.Token),
	)
}

func (c *commandContext) withHistory(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func isTerminal(stream any) bool {
	file, ok := stream.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func shouldColorize(writer io.Writer) bool {
	return isTerminal(writer)
}
