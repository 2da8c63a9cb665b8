package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	BaselineDir      string
	NewDir           string
	DiffDir          string
	GlobalConfigFile string
	Mode             string
}

func ParseFlags() AppFlags {
	baselineDir := flag.String("baseline", "", "Directory holding previously accepted reference images (compare mode).")
	baselineDirAlias := flag.String("b", "", "Alias for -baseline")

	newDir := flag.String("new", "", "Directory holding freshly captured images to validate (compare mode).")
	newDirAlias := flag.String("n", "", "Alias for -new")

	diffDir := flag.String("diff", "", "Directory receiving composed diff artifacts. Defaults to <new>/diff.")
	diffDirAlias := flag.String("d", "", "Alias for -diff")

	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Mode to run the tool: compare or capture (overrides config file if set)")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")

	flag.Parse()

	flags := AppFlags{}

	if *baselineDir != "" {
		flags.BaselineDir = *baselineDir
	} else if *baselineDirAlias != "" {
		flags.BaselineDir = *baselineDirAlias
	}

	if *newDir != "" {
		flags.NewDir = *newDir
	} else if *newDirAlias != "" {
		flags.NewDir = *newDirAlias
	}

	if *diffDir != "" {
		flags.DiffDir = *diffDir
	} else if *diffDirAlias != "" {
		flags.DiffDir = *diffDirAlias
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *modeFlag != "" {
		flags.Mode = *modeFlag
	} else if *modeFlagAlias != "" {
		flags.Mode = *modeFlagAlias
	}

	if flags.Mode == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] --mode argument is required (compare or capture)")
		os.Exit(1)
	}

	return flags
}
