package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tripmind/backend"
	"tripmind/config"
	"tripmind/logging"
	"tripmind/normalize"
	"tripmind/planner"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tripmind",
		Short:         "Trip planning API and plan tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newNormalizeCmd(), newAdjustCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()
			return serve(cfg, logger)
		},
	}
}

func newNormalizeCmd() *cobra.Command {
	var savedID, token string
	cmd := &cobra.Command{
		Use:   "normalize [file]",
		Short: "Print the views extracted from a backend response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp map[string]any
			var err error
			if savedID != "" {
				resp, err = fetchSaved(cmd.Context(), savedID, token)
			} else {
				resp, err = readResponse(cmd.InOrStdin(), args)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), normalize.Normalize(resp))
		},
	}
	cmd.Flags().StringVar(&savedID, "saved", "", "fetch a saved trip from the backend instead of reading a file")
	cmd.Flags().StringVar(&token, "token", os.Getenv("TRIPMIND_TOKEN"), "bearer token for --saved")
	return cmd
}

func newAdjustCmd() *cobra.Command {
	var flight int
	cmd := &cobra.Command{
		Use:   "adjust [file]",
		Short: "Print the schedule fitted to one flight candidate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := readResponse(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			d := planner.NewDraft(resp)
			if err := d.SelectFlight(flight); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d.Schedule())
		},
	}
	cmd.Flags().IntVar(&flight, "flight", 0, "index of the flight candidate")
	return cmd
}

func fetchSaved(ctx context.Context, id, token string) (map[string]any, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	logger.Debug("fetching saved trip", zap.String("id", id), zap.String("backend", cfg.BackendURL))
	return backend.NewClient(cfg.BackendURL, nil).Saved(ctx, token, id)
}

// readResponse reads a JSON response from the named file, or stdin when no
// file or "-" is given.
func readResponse(stdin io.Reader, args []string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var resp map[string]any
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return resp, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
