package main

import (
	"github.com/gagarinchain/liveness/cmd"
	golog "github.com/ipfs/go-log"
	logging "github.com/op/go-logging"
	"os"
)

var stdoutLogFormat = logging.MustStringFormatter(
	`%{color:reset}%{color}%{time:15:04:05.000} [%{shortfunc}] [%{level}] %{message}`,
)

func main() {
	// LibP2P code uses golog to log messages. They log with different
	// string IDs (i.e. "swarm"). We can control the verbosity level for
	// all loggers with:
	if err := golog.SetLogLevel("*", "warn"); err != nil {
		println(err.Error())
	}

	backend := logging.NewLogBackend(os.Stdout, "", 0)
	formatted := logging.NewBackendFormatter(backend, stdoutLogFormat)
	logging.SetBackend(formatted)

	cmd.Execute()
}
