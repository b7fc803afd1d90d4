package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subfix/internal/rules"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect rule tables",
	}
	rulesCmd.AddCommand(newRulesListCommand())
	return rulesCmd
}

func newRulesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "list <rules.csv>",
		Short:       "Compile every rule and show how it will run",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := rules.LoadFile(args[0])
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(table))
			invalid := 0
			for i, rule := range table {
				compiledForm := ""
				status := "ok"
				compiled, err := rules.Compile(rule)
				if err != nil {
					invalid++
					status = err.Error()
				} else {
					compiledForm = compiled.Source()
				}
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					rule.Pattern,
					rule.Replacement,
					strconv.Itoa(rule.Flags),
					compiledForm,
					status,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Match", "Replace", "Flags", "Compiled", "Status"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				nil,
			))
			fmt.Fprintf(out, "%d rules, %d invalid\n", len(table), invalid)
			return nil
		},
	}
}
