package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"consultq/internal/queueaccess"
)

func newJoinCommand(ctx *commandContext) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "join [note...]",
		Short: "Join the waiting list",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.requesterID()
			if err != nil {
				return err
			}
			name := strings.TrimSpace(displayName)
			if name == "" {
				name = id
			}
			note := strings.TrimSpace(strings.Join(args, " "))

			return ctx.withAccess(func(access queueaccess.Access) error {
				resp, err := access.Join(cmd.Context(), id, name, note)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				if !resp.Ok {
					return errSilentFailure
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name recorded with the entry (defaults to the requester id)")
	return cmd
}

func newLeaveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the waiting list",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.requesterID()
			if err != nil {
				return err
			}
			return ctx.withAccess(func(access queueaccess.Access) error {
				resp, err := access.Leave(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				if !resp.Ok {
					return errSilentFailure
				}
				return nil
			})
		},
	}
}

func newPositionCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "position",
		Short: "Show your current position in the waiting list",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.requesterID()
			if err != nil {
				return err
			}
			return ctx.withAccess(func(access queueaccess.Access) error {
				resp, err := access.Position(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
				if !resp.Ok {
					return errSilentFailure
				}
				return nil
			})
		},
	}
}
