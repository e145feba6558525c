package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"scriptsync/internal/pipeline"
	"scriptsync/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var maxConcurrent int

	cmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "Watch a directory and subtitle media as scripts arrive",
		Long:  "Monitors a directory for media files and companion scripts (same base name, .txt extension) and runs the generation pipeline for each completed pair. Stops on SIGINT or SIGTERM.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dir := cfg.Paths.WatchDir
			if len(args) == 1 {
				dir = args[0]
			}
			if strings.TrimSpace(dir) == "" {
				return fmt.Errorf("no directory given and paths.watch_dir is not configured")
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runner, closeCache, err := ctx.newRunner()
			if err != nil {
				return err
			}
			if closeCache != nil {
				defer func() { _ = closeCache() }()
			}

			handler := func(runCtx context.Context, mediaPath, scriptPath string) error {
				_, err := runner.Run(runCtx, pipeline.Request{
					MediaPath:  mediaPath,
					ScriptPath: scriptPath,
				})
				return err
			}

			watcher, err := watch.New(dir, handler, logger, watch.Options{MaxConcurrent: maxConcurrent})
			if err != nil {
				return err
			}
			defer watcher.Close()

			signalCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := watcher.Run(signalCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxConcurrent, "max-concurrent", 0, "How many pairs to process at once (default 2)")
	return cmd
}
