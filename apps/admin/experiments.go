package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func (cli *commandLine) experimentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "experiments",
		Short: "List the experiments of the catalog",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return cli.listExperiments()
		},
	}
}

func (cli *commandLine) listExperiments() error {
	exps := cli.catalog.List()
	rows := make([][]string, 0, len(exps))
	for _, exp := range exps {
		rows = append(rows, []string{exp.ID, exp.Title, strconv.Itoa(len(exp.SubTopics))})
	}
	return cli.writeTable([]string{"id", "title", "subtopics"}, rows)
}
