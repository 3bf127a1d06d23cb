package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/braunma/netbox-baseline/internal/constants"
	"github.com/braunma/netbox-baseline/pkg/client"
	"github.com/braunma/netbox-baseline/pkg/config"
	"github.com/braunma/netbox-baseline/pkg/loader"
	"github.com/braunma/netbox-baseline/pkg/reconciler"
	"github.com/braunma/netbox-baseline/pkg/report"
	"github.com/braunma/netbox-baseline/pkg/utils"
)

const (
	outputConsole = "console"
	outputJSON    = "json"
)

type options struct {
	credsFile    string
	baselineFile string
	envFile      string
	dryRun       bool
	output       string
	tag          string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "netbox-baseline",
		Short:         "Seed NetBox with a baseline inventory",
		Long:          `Creates the manufacturers, device roles, device types, sites, racks and devices described in a baseline YAML file, skipping anything that already exists`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBaseline(opts, stdout, stderr)
		},
	}

	rootCmd.Flags().StringVar(&opts.credsFile, "creds", constants.DefaultCredsFile, "Credentials file (host, token)")
	rootCmd.Flags().StringVar(&opts.baselineFile, "baseline", constants.DefaultBaselineFile, "Baseline inventory file")
	rootCmd.Flags().StringVar(&opts.envFile, "env-file", constants.DefaultEnvFile, "Optional .env file with NETBOX_* overrides")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Simulate changes without applying them")
	rootCmd.Flags().StringVar(&opts.output, "output", outputConsole, "Diagnostics format: console or json")
	rootCmd.Flags().StringVar(&opts.tag, "tag", "", "Tag slug attached to every created object (disabled when empty)")

	return rootCmd
}

func runBaseline(opts *options, stdout, stderr io.Writer) error {
	logger, renderer, err := newOutput(opts, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return err
	}
	defer renderer.Close()

	// Load credentials
	creds, err := config.LoadCredentials(opts.credsFile, opts.envFile)
	if err != nil {
		logger.Error("Failed to load credentials", err)
		return err
	}
	logger.Debug("Loaded credentials: %s", creds)

	// Load the baseline
	baseline, diags, err := loader.NewDataLoader(logger).LoadBaseline(opts.baselineFile)
	if err != nil {
		logger.Error("Failed to load baseline", err)
		return err
	}

	// Initialize NetBox client
	logger.Info("Initializing NetBox client...")
	clientOpts := []client.Option{
		client.WithLogger(logger),
		client.WithInsecureSkipVerify(creds.InsecureSkipVerify),
	}
	if opts.tag != "" {
		clientOpts = append(clientOpts, client.WithManagedTag(utils.Slugify(opts.tag)))
	}

	c, err := client.NewClient(creds.URL(), creds.Token, opts.dryRun, clientOpts...)
	if err != nil {
		logger.Error("Failed to initialize NetBox client", err)
		return err
	}
	if opts.tag != "" && !opts.dryRun {
		logger.Info("Tagging created objects with %s (id %d)", utils.Slugify(opts.tag), c.ManagedTagID())
	}

	for _, d := range diags {
		renderer.Emit(d)
	}

	summary, err := reconciler.NewReconciler(c, renderer).Reconcile(baseline)
	if err != nil {
		logger.Error("Baseline aborted", err)
		return err
	}

	// Records dropped while loading count as skipped
	for _, d := range diags {
		summary.Add(d)
	}

	renderer.Summarize(summary)
	return nil
}

// newOutput builds the logger and the diagnostics renderer. In JSON mode
// stdout carries only JSON, human output goes to stderr.
func newOutput(opts *options, stdout, stderr io.Writer) (*utils.Logger, report.Renderer, error) {
	switch opts.output {
	case outputConsole:
		logger := utils.NewLoggerTo(stdout, stderr, opts.dryRun)
		return logger, report.NewConsoleSink(logger), nil
	case outputJSON:
		logger := utils.NewLoggerTo(stderr, stderr, opts.dryRun)
		return logger, report.NewJSONSink(stdout, opts.dryRun), nil
	default:
		return nil, nil, fmt.Errorf("unknown output format %q (want %s or %s)", opts.output, outputConsole, outputJSON)
	}
}
