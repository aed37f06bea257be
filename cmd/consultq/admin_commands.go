package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"consultq/internal/queueaccess"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every waiting entry (operator only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.requesterID()
			if err != nil {
				return err
			}
			return ctx.withAccess(func(access queueaccess.Access) error {
				resp, err := access.List(cmd.Context(), id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !resp.Ok {
					fmt.Fprintln(out, resp.Message)
					return errSilentFailure
				}
				if len(resp.Entries) == 0 {
					fmt.Fprintln(out, resp.Message)
					return nil
				}
				if raw || !stdoutIsTerminal() {
					fmt.Fprintln(out, resp.Block)
				} else {
					fmt.Fprintln(out, entryTable(resp.Entries))
				}
				if resp.Truncated {
					fmt.Fprintln(cmd.ErrOrStderr(), "listing block truncated at the configured message limit")
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the bounded message block instead of a table")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <requester-id>",
		Short: "Remove an entry from the waiting list (operator only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := ctx.requesterID()
			if err != nil {
				return err
			}
			return ctx.withAccess(func(access queueaccess.Access) error {
				resp, err := access.Remove(cmd.Context(), id, args[0])
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

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
