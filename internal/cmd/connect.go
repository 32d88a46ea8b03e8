package cmd

import (
	"context"
	"fmt"

	"camshell/internal/camera"
	"camshell/internal/config"
	"camshell/internal/errors"
	"camshell/internal/event"
	"camshell/internal/logging"
	"camshell/internal/shell"
)

// connection bundles everything a connected subcommand needs: the
// session, its event bus, and the resources torn down on exit.
type connection struct {
	cfg     *config.Config
	logger  *logging.Logger
	bus     *event.Bus
	session *camera.Session

	lock   *shell.PortLock
	cancel context.CancelFunc
}

// connect loads the configuration, takes the port lock, spawns the
// shell (or the simulator), starts the poll loop, and waits for the
// first prompt. The caller must Close the connection.
func connect() (*connection, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verrs := cfg.Validate(); len(verrs) > 0 {
		return nil, config.ValidationErrors(verrs)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	lock, err := shell.AcquirePortLock(cfg.Paths.StateDir, cfg.Shell.Port, logger)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}

	transport, err := openTransport(cfg, logger)
	if err != nil {
		_ = lock.Release()
		_ = logger.Close()
		return nil, err
	}

	bus := event.NewBus()
	sess := camera.NewSession(transport, bus, logger, camera.SessionOptions{
		ShellID:         cfg.Shell.ID,
		WorkDir:         cfg.Capture.Dir,
		PreviewFilename: cfg.Capture.PreviewFilename,
		PollInterval:    cfg.PollInterval(),
	})

	runCtx, cancel := context.WithCancel(context.Background())
	go func() { _ = sess.Run(runCtx) }()

	c := &connection{
		cfg:     cfg,
		logger:  logger,
		bus:     bus,
		session: sess,
		lock:    lock,
		cancel:  cancel,
	}

	waitCtx, waitCancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout())
	defer waitCancel()
	if err := sess.WaitIdle(waitCtx); err != nil {
		c.Close()
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("shell did not produce a prompt within %s: %w",
				cfg.ConnectTimeout(), errors.ErrSessionFailed)
		}
		return nil, err
	}
	return c, nil
}

// openTransport picks the simulated or the real shell transport.
func openTransport(cfg *config.Config, logger *logging.Logger) (shell.Transport, error) {
	if cfg.Shell.Simulate != "" {
		script, err := shell.LoadScript(cfg.Shell.Simulate)
		if err != nil {
			return nil, err
		}
		logger.Info("running simulated shell", "script", cfg.Shell.Simulate)
		return shell.NewSimTransport(script, cfg.Shell.ID), nil
	}
	return shell.Start(shell.Options{
		Binary:    cfg.Shell.Binary,
		Port:      cfg.Shell.Port,
		ExtraArgs: cfg.Shell.ExtraArgs,
		Dir:       cfg.Capture.Dir,
	}, logger)
}

// drain waits for the session to settle back to idle with nothing
// pending, bounded by the configured command timeout.
func (c *connection) drain() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.CommandTimeout())
	defer cancel()
	return c.session.WaitIdle(ctx)
}

// Close tears the connection down in reverse order of construction.
func (c *connection) Close() {
	c.cancel()
	_ = c.session.Close()
	_ = c.lock.Release()
	_ = c.logger.Close()
}
