package main

import (
	"fmt"
	"os"

	"github.com/trezcool/fluidlab/core"
	"github.com/trezcool/fluidlab/services/logger"
)

func main() {
	conf := core.NewConfig()
	zapLogger, err := logsvc.NewZapLogger(conf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	logger := logsvc.NewRollbarLogger(zapLogger.Named("admin"), conf)
	defer logger.Sync()

	cli, err := newCommandLine(os.Stdout, int(os.Stdout.Fd()))
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up CLI: %v", err), err)
	}
	if err = cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
}
