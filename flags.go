package main

import (
	"log/slog"

	"github.com/spf13/pflag"
)

var (
	FlagVerbose string // log level
	FlagTable   bool   // render devices as tables
	FlagHuman   bool   // append IEC sizes to memory values
	FlagFixture string // YAML fixture for the simulated driver
)

func addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&FlagVerbose, "log-verbose", slog.LevelInfo.String(), "Log verbosity level (DEBUG, INFO, WARN, ERROR)")
	fs.BoolVar(&FlagTable, "table", false, "Render each device as a table")
	fs.BoolVar(&FlagHuman, "human", false, "Append human-readable sizes to memory values")
	fs.StringVar(&FlagFixture, "fixture", "", "Query a simulated driver described by a YAML file instead of libcuda")
}

func validateFlags() error {
	if _, err := parseLevel(FlagVerbose); err != nil {
		return err
	}
	return nil
}
