package main

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trezcool/fluidlab/core/quiz"
)

func (cli *commandLine) quizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Quiz bank tools",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [FILE]",
		Short: "Validate the quiz banks (the embedded ones unless FILE is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return cli.checkQuizzes(path)
		},
	})
	return cmd
}

func (cli *commandLine) loadBanks(path string) (*quiz.Banks, error) {
	if path == "" {
		return quiz.LoadBanks()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return quiz.DecodeBanks(f)
}

// checkQuizzes validates every bank and makes sure each one belongs to a catalog experiment.
func (cli *commandLine) checkQuizzes(path string) error {
	banks, err := cli.loadBanks(path)
	if err != nil {
		return err
	}

	list := banks.List()
	rows := make([][]string, 0, len(list))
	for _, bank := range list {
		if !cli.catalog.Exists(bank.ExperimentID) {
			return errors.Errorf("quiz %q: unknown experiment", bank.ExperimentID)
		}
		rows = append(rows, []string{bank.ExperimentID, strconv.Itoa(len(bank.Questions)), "ok"})
	}
	return cli.writeTable([]string{"experiment", "questions", "status"}, rows)
}
