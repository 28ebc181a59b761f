package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/metinatakli/esim-marketplace/internal/domain"
	"github.com/metinatakli/esim-marketplace/internal/poller"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputYAML = "yaml"
)

func statusCmd() *cobra.Command {
	var (
		server         string
		requestTimeout time.Duration
		verbose        bool
		output         string
		cfg            = poller.DefaultConfig
	)

	cmd := &cobra.Command{
		Use:   "status [checkoutId]",
		Short: "Poll a checkout until its payment settles",
		Long: `Poll the checkout status endpoint at a fixed interval until an order is
attached, the payment fails or the checkout expires.

Exit codes:
  0  the checkout reached a terminal state
  1  the checkout does not exist or the request failed
  2  attempts or time ran out while the payment was still processing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checkoutID := args[0]

			if output != outputText && output != outputYAML {
				return fmt.Errorf("unsupported output format %q", output)
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
			}

			p := poller.New(poller.NewClient(server, requestTimeout), cfg, poller.WithLogger(logger))

			status, err := p.Poll(cmd.Context(), checkoutID)
			if err != nil {
				if errors.Is(err, poller.ErrStillProcessing) {
					if status != nil {
						if err := printStatus(cmd.OutOrStdout(), output, status); err != nil {
							return err
						}
					}
					return &exitCodeError{code: exitStillProcessing, err: err}
				}

				return err
			}

			return printStatus(cmd.OutOrStdout(), output, status)
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:3000", "Base URL of the marketplace API")
	cmd.Flags().DurationVar(&cfg.Interval, "interval", cfg.Interval, "Delay between status requests")
	cmd.Flags().UintVar(&cfg.MaxAttempts, "max-attempts", cfg.MaxAttempts, "Maximum number of status requests (0 for no limit)")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Give up after this much time (0 for no limit)")
	cmd.Flags().DurationVar(&requestTimeout, "request-timeout", 15*time.Second, "Timeout of a single status request")
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format (text|yaml)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every attempt to stderr")

	return cmd
}

type statusView struct {
	CheckoutID    string  `yaml:"checkoutId"`
	Status        string  `yaml:"status"`
	PaymentStatus string  `yaml:"paymentStatus"`
	OrderID       *string `yaml:"orderId"`
	PaymentURL    *string `yaml:"paymentUrl"`
}

func printStatus(w io.Writer, format string, status *domain.ResolvedStatus) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(w)
		defer enc.Close()

		return enc.Encode(statusView{
			CheckoutID:    status.CheckoutID,
			Status:        string(status.Status),
			PaymentStatus: string(status.PaymentStatus),
			OrderID:       status.OrderID,
			PaymentURL:    status.PaymentURL,
		})
	}

	fmt.Fprintf(w, "checkout:       %s\n", status.CheckoutID)
	fmt.Fprintf(w, "status:         %s\n", status.Status)
	fmt.Fprintf(w, "payment status: %s\n", status.PaymentStatus)
	fmt.Fprintf(w, "order:          %s\n", valueOrDash(status.OrderID))
	fmt.Fprintf(w, "payment url:    %s\n", valueOrDash(status.PaymentURL))

	return nil
}

func valueOrDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
