package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"subfix/internal/fixup"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable draws a rounded go-pretty table. footer may be nil.
func renderTable(headers []string, rows [][]string, aligns []columnAlignment, footer []string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(toRow(headers, columns))
	for _, row := range rows {
		tw.AppendRow(toRow(row, columns))
	}
	if footer != nil {
		tw.AppendFooter(toRow(footer, columns))
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

func toRow(values []string, columns int) table.Row {
	row := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(values) {
			row[i] = values[i]
		} else {
			row[i] = ""
		}
	}
	return row
}

// renderStatsTable summarises a fixup session per rule. Rules that never
// matched are left out.
func renderStatsTable(stats fixup.Stats) string {
	headers := []string{"Rule", "Matched", "Accepted", "Rejected", "Edited", "Errored"}
	aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}

	var rows [][]string
	for _, rs := range stats.Rules {
		if rs.Matched == 0 && rs.Errored == 0 {
			continue
		}
		rows = append(rows, []string{
			rs.Rule.Pattern,
			strconv.Itoa(rs.Matched),
			strconv.Itoa(rs.Accepted),
			strconv.Itoa(rs.Rejected),
			strconv.Itoa(rs.Edited),
			strconv.Itoa(rs.Errored),
		})
	}
	total := stats.Totals()
	footer := []string{
		fmt.Sprintf("%d lines, %d changed", stats.Lines, stats.ChangedLines),
		strconv.Itoa(total.Matched),
		strconv.Itoa(total.Accepted),
		strconv.Itoa(total.Rejected),
		strconv.Itoa(total.Edited),
		strconv.Itoa(total.Errored),
	}
	return renderTable(headers, rows, aligns, footer)
}
