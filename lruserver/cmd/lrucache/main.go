package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"gitlab.com/slon/lrucache/lruclient"
	"gitlab.com/slon/lrucache/lruserver"
	"gitlab.com/slon/lrucache/replay"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lrucache",
		Short:         "Fixed-capacity LRU cache: server, client and trace runner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd(), newReplayCmd())
	root.AddCommand(newClientCmds()...)
	return root
}

func newServeCmd() *cobra.Command {
	var (
		configPath string
		listen     string
		capacity   int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an LRU cache over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := lruserver.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = lruserver.LoadConfig(configPath); err != nil {
					return err
				}
			}

			// Флаги важнее файла.
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listen
			}
			if cmd.Flags().Changed("capacity") {
				cfg.Capacity = capacity
			}

			logger, err := lruserver.NewLogger(cfg)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			gin.SetMode(gin.ReleaseMode)

			srv, err := lruserver.New(cfg, logger)
			if err != nil {
				logger.Error("failed to create server", "error", err)
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to YAML config")
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides config")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "cache capacity, overrides config")
	return cmd
}

func newReplayCmd() *cobra.Command {
	var capacity int

	cmd := &cobra.Command{
		Use:   "replay FILE...",
		Short: "Run operation traces against a fresh cache and print results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				if err := replayFile(cmd, path, capacity); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 16, "capacity used when a trace has no cap directive")
	return cmd
}

func replayFile(cmd *cobra.Command, path string, capacity int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := replay.Run(cmd.Context(), f, cmd.OutOrStdout(), capacity); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func newClientCmds() []*cobra.Command {
	var addr string

	client := func() *lruclient.Client { return lruclient.New(addr) }

	cmds := []*cobra.Command{
		{
			Use:   "get KEY",
			Short: "Fetch a key (counts as an access)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, ok, err := client().Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("key %q not found", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
				return nil
			},
		},
		{
			Use:   "put KEY VALUE",
			Short: "Store a value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return client().Put(cmd.Context(), args[0], args[1])
			},
		},
		{
			Use:   "contains KEY",
			Short: "Check presence without touching recency",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := client().Contains(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			},
		},
		{
			Use:   "remove KEY",
			Short: "Delete a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ok, err := client().Remove(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ok)
				return nil
			},
		},
		{
			Use:   "stats",
			Short: "Print size and capacity",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				stats, err := client().Stats(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "size=%d capacity=%d\n", stats.Size, stats.Capacity)
				return nil
			},
		},
	}

	for _, cmd := range cmds {
		cmd.Flags().StringVar(&addr, "addr", "http://localhost:8080", "server base URL")
	}
	return cmds
}
