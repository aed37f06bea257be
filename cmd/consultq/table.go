package main

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"consultq/internal/api"
)

// entryTable renders the operator listing for interactive terminals.
// Piped output gets the bounded message block instead, so this never
// needs a width limit.
func entryTable(entries []api.Entry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Requester", "Name", "Joined", "Note"})
	for _, entry := range entries {
		tw.AppendRow(table.Row{
			entry.Position,
			entry.RequesterID,
			entry.DisplayName,
			entry.CreatedTime().Format(time.RFC3339),
			entry.Note,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// kvTable renders field/value pairs for the status command.
func kvTable(rows ...[2]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Field", "Value"})
	for _, row := range rows {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	return tw.Render()
}
