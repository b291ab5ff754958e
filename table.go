package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/shirerpeton/srtReflow/internal/common"
)

func renderRules(rules []common.Rule) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	// patterns are case sensitive, keep headers as written too
	tw.Style().Format.Header = text.FormatDefault
	tw.AppendHeader(table.Row{"#", "pattern", "replacement"})
	for i, rule := range rules {
		tw.AppendRow(table.Row{strconv.Itoa(i + 1), rule.Pattern, rule.Replacement})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
