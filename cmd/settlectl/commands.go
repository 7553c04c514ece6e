package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/toolshare/services/payment/handler/scheduler"
	"github.com/piresc/toolshare/services/payment/repository"
	"github.com/spf13/cobra"
)

const commandTimeout = 5 * time.Minute

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the settlement schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openDatabase()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()
			if err := repository.Migrate(ctx, a.postgres.GetDB()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func payoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payouts",
		Short: "Inspect and run owner payouts",
	}
	cmd.AddCommand(payoutsRunCmd())
	cmd.AddCommand(payoutsStatusCmd())
	return cmd
}

func payoutsRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sweep every payout that is due, sharing the scheduler's lease",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			s := scheduler.NewPayoutScheduler(a.paymentUC, a.redis, a.cfg.Scheduler, nil)
			summary, err := s.RunOnce(ctx)
			if err != nil {
				return err
			}
			if summary == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "another payout run holds the lease, nothing done")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}
}

func payoutsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [payout-id]",
		Short: "Ask the provider where a payout stands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payoutID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid payout id: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			status, err := a.paymentUC.GetPayoutStatus(ctx, payoutID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

func depositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Manage security deposits",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "refund [rental-id]",
		Short: "Return the security deposit of a rental",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rentalID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid rental id: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.paymentUC.RefundSecurityDeposit(ctx, rentalID)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Success {
				return fmt.Errorf("deposit refund not applied: %s", result.Code)
			}
			return nil
		},
	})
	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
