package main

import (
	"errors"
	"flag"
	"os"
	"time"

	"grimm.is/apptrial/cmd"
	"grimm.is/apptrial/internal/brand"
	"grimm.is/apptrial/internal/config"
	"grimm.is/apptrial/internal/logging"
)

var printer = cmd.Printer

// configFlag registers -config and -c on fs.
func configFlag(fs *flag.FlagSet) *string {
	configFile := fs.String("config", brand.GetConfigPath(), "Configuration file")
	fs.StringVar(configFile, "c", brand.GetConfigPath(), "Configuration file (short)")
	return configFile
}

// withEnv opens the environment for configFile, runs fn and flushes the
// history before returning fn's error.
func withEnv(configFile string, fn func(*cmd.Env) error) error {
	env, err := cmd.Open(configFile)
	if err != nil {
		printer.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer env.Close()
	return fn(env)
}

func fail(what string, err error) {
	if err != nil {
		printer.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		os.Exit(1)
	}
}

func main() {
	logging.SetProcessName(brand.BinaryName)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "status":
		statusFlags := flag.NewFlagSet("status", flag.ExitOnError)
		configFile := configFlag(statusFlags)
		output := statusFlags.String("output", "text", "Output format: text, json, yaml")
		statusFlags.StringVar(output, "o", "text", "Output format (short)")
		statusFlags.Parse(os.Args[2:])

		fail("Status", withEnv(*configFile, func(env *cmd.Env) error {
			return cmd.RunStatus(env, *output)
		}))

	case "extend":
		extendFlags := flag.NewFlagSet("extend", flag.ExitOnError)
		configFile := configFlag(extendFlags)
		extendFlags.Parse(os.Args[2:])

		if extendFlags.NArg() != 1 {
			printer.Fprintf(os.Stderr, "Usage: %s extend <days>\n", brand.BinaryName)
			os.Exit(1)
		}
		fail("Extend", withEnv(*configFile, func(env *cmd.Env) error {
			return cmd.RunExtend(env, extendFlags.Arg(0))
		}))

	case "reset":
		resetFlags := flag.NewFlagSet("reset", flag.ExitOnError)
		configFile := configFlag(resetFlags)
		resetFlags.Parse(os.Args[2:])

		fail("Reset", withEnv(*configFile, cmd.RunReset))

	case "expire":
		expireFlags := flag.NewFlagSet("expire", flag.ExitOnError)
		configFile := configFlag(expireFlags)
		expireFlags.Parse(os.Args[2:])

		fail("Expire", withEnv(*configFile, cmd.RunExpire))

	case "share":
		shareFlags := flag.NewFlagSet("share", flag.ExitOnError)
		configFile := configFlag(shareFlags)
		yes := shareFlags.Bool("yes", false, "Accept the offer without asking")
		shareFlags.BoolVar(yes, "y", false, "Accept the offer without asking (short)")
		shareFlags.Parse(os.Args[2:])

		err := withEnv(*configFile, func(env *cmd.Env) error {
			return cmd.RunShare(env, *yes, cmd.TerminalConfirm)
		})
		if errors.Is(err, cmd.ErrOfferUnavailable) {
			printer.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(2)
		}
		fail("Share", err)

	case "watch":
		watchFlags := flag.NewFlagSet("watch", flag.ExitOnError)
		configFile := configFlag(watchFlags)
		interval := watchFlags.Duration("interval", time.Second, "Refresh interval")
		watchFlags.Parse(os.Args[2:])

		fail("Watch", withEnv(*configFile, func(env *cmd.Env) error {
			return cmd.RunWatch(env, *interval)
		}))

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		configFile := configFlag(checkFlags)
		checkFlags.Parse(os.Args[2:])

		store, err := cmd.OpenStore(*configFile)
		fail("Check", err)
		err = cmd.RunCheck(store, os.Stdout)
		if errors.Is(err, cmd.ErrSettingsDiffer) {
			os.Exit(2)
		}
		fail("Check", err)

	case "metrics":
		metricsFlags := flag.NewFlagSet("metrics", flag.ExitOnError)
		configFile := configFlag(metricsFlags)
		metricsFlags.Parse(os.Args[2:])

		fail("Metrics", withEnv(*configFile, cmd.RunMetrics))

	case "history":
		historyFlags := flag.NewFlagSet("history", flag.ExitOnError)
		configFile := configFlag(historyFlags)
		limit := historyFlags.Int("n", 20, "Number of entries (0 for all)")
		output := historyFlags.String("output", "text", "Output format: text, json")
		historyFlags.StringVar(output, "o", "text", "Output format (short)")
		historyFlags.Parse(os.Args[2:])

		fail("History", withEnv(*configFile, func(env *cmd.Env) error {
			return cmd.RunHistory(env, *limit, *output)
		}))

	case "config":
		// Print the effective configuration
		configFlags := flag.NewFlagSet("config", flag.ExitOnError)
		configFile := configFlag(configFlags)
		configFlags.Parse(os.Args[2:])

		cfg, err := config.LoadFile(*configFile)
		fail("Config", err)
		fail("Config", cmd.RunShowConfig(os.Stdout, cfg))

	case "init-config":
		initFlags := flag.NewFlagSet("init-config", flag.ExitOnError)
		force := initFlags.Bool("force", false, "Overwrite an existing file")
		initFlags.BoolVar(force, "f", false, "Overwrite an existing file (short)")
		initFlags.Parse(os.Args[2:])

		fail("Init config", cmd.RunInitConfig(os.Stdout, initFlags.Arg(0), *force))

	case "version", "-v", "--version":
		cmd.RunVersion(os.Stdout)

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Printf("Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s <command> [options]

Trial Commands:
  status       Show the trial state
               Options: --output (-o) text|json|yaml
  watch        Live countdown, re-reading the settings file
               Options: --interval <duration>
  share        Extend the trial through the share offer
               Options: --yes (-y)

Admin Commands:
  extend       Add days to the trial (negative to shorten)
  reset        Start a fresh trial now
  expire       End the trial immediately

Utility Commands:
  history      Show recorded trial changes
               Options: -n <count>, --output (-o) text|json
  check        Diff the settings file against its normalized form
  metrics      Print Prometheus metrics
  config       Print the effective configuration
  init-config  Write the default configuration
               Options: --force (-f) [path]
  version      Show version

All trial and utility commands accept --config (-c) <file>.

Examples:
  %s status -o json
  %s extend 7
  %s init-config

`,
		brand.Name, brand.Description,
		brand.LowerName,
		brand.LowerName, brand.LowerName, brand.LowerName)
}
