package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"spark/internal/app"
	"spark/internal/metrics"
	"spark/internal/services/message"
)

var log = logging.Logger("spark/cli")

// cli holds flag values and the wired app for one invocation.
type cli struct {
	home        string
	configPath  string
	passphrase  string
	logLevel    string
	showMetrics bool

	wire *app.Wire
}

// Execute runs the CLI against os.Args.
func Execute() error {
	return run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	c := &cli{}
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if c.wire != nil {
		if c.showMetrics {
			c.printMetrics(stderr)
		}
		if cerr := c.wire.Close(); cerr != nil {
			log.Warnw("closing key store", "err", cerr)
		}
	}
	if err != nil {
		fmt.Fprintln(stderr, errText.Sprint("error:"), message.Describe(err))
		log.Debugw("command failed", "err", err)
	}
	return err
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "spark",
		Short:         "End-to-end encryption keys and envelopes for Spark chat",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(c.home, c.configPath)
			if err != nil {
				return err
			}
			if c.logLevel != "" {
				cfg.LogLevel = c.logLevel
			}
			if err := setLogLevel(cfg.LogLevel); err != nil {
				return err
			}
			cfg.Passphrase = c.passphrase

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			c.wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.home, "home", "", "data dir (default ~/.spark)")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default <home>/config.yaml)")
	root.PersistentFlags().StringVarP(&c.passphrase, "passphrase", "p", "", "passphrase sealing the private key at rest")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "debug, info, warn or error")
	root.PersistentFlags().BoolVar(&c.showMetrics, "metrics", false, "print operation counters on exit")

	root.AddCommand(
		c.initCmd(),
		c.pubkeyCmd(),
		c.fingerprintCmd(),
		c.encryptCmd(),
		c.decryptCmd(),
		c.resetCmd(),
	)
	return root
}

func setLogLevel(level string) error {
	lvl, err := logging.LevelFromString(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	logging.SetAllLoggers(lvl)
	return nil
}

func (c *cli) printMetrics(w io.Writer) {
	snap, err := metrics.Snapshot(c.wire.Registry)
	if err != nil {
		log.Warnw("gather metrics", "err", err)
		return
	}
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s %g\n", labelText.Sprint(name), snap[name])
	}
}
