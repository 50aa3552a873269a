package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/core/catalog"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	out      io.Writer
	tty      bool
	catalog  *catalog.Catalog
	validate *validator.Validate
}

func newCommandLine(out io.Writer, fd int) (*commandLine, error) {
	cat, err := catalog.New()
	if err != nil {
		return nil, err
	}
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	return &commandLine{
		out:      out,
		tty:      isTerminalFunc(fd),
		catalog:  cat,
		validate: validate,
	}, nil
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Fluid Lab maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.SetOut(cli.out)
	root.SetErr(cli.out)

	root.AddCommand(
		cli.experimentsCmd(),
		cli.calcCmd(),
		cli.referenceCmd(),
		cli.quizCmd(),
	)
	return root
}

// run executes the command line in args; args[0] is the program name.
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	return root.Execute()
}

// writeTable prints rows aligned on a terminal and tab-separated otherwise.
func (cli *commandLine) writeTable(header []string, rows [][]string) error {
	if !cli.tty {
		for _, row := range append([][]string{header}, rows...) {
			if _, err := fmt.Fprintln(cli.out, strings.Join(row, "\t")); err != nil {
				return err
			}
		}
		return nil
	}

	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.ToUpper(strings.Join(header, "\t")))
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}
