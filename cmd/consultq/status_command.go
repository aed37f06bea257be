package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"consultq/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), kvTable(
					[2]string{"Running", yesNo(status.Running)},
					[2]string{"Session", status.SessionID},
					[2]string{"Queue length", strconv.Itoa(status.QueueLength)},
					[2]string{"Operator configured", yesNo(status.OperatorSet)},
					[2]string{"Message limit", strconv.Itoa(status.MessageLimit)},
					[2]string{"Database", status.QueueDBPath},
					[2]string{"Lock file", status.LockPath},
				))
				return nil
			})
		},
	}
}
