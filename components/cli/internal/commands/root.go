// Copyright (c) 2026 DLT TalentHub. All rights reserved.
// Use of this source code is governed by the Elastic License 2.0
// that can be found in the LICENSE file.

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dlt-talenthub/talenthub/pkg/listing"

	"github.com/spf13/cobra"
)

const (
	envAPIURL = "TALENTHUB_API_URL"
	envToken  = "TALENTHUB_TOKEN"

	defaultAPIURL = "http://localhost:4005"

	// List fetches carry no deadline unless --timeout is given.
	defaultTimeout time.Duration = 0

	outputTable = "table"
	outputJSON  = "json"
)

var errUnknownOutput = errors.New("unknown output format")

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	apiURL  string
	token   string
	output  string
	timeout time.Duration
}

func (o *globalOptions) validate() error {
	switch o.output {
	case outputTable, outputJSON:
	default:
		return fmt.Errorf("%w %q: use %s or %s", errUnknownOutput, o.output, outputTable, outputJSON)
	}

	if strings.TrimSpace(o.apiURL) == "" {
		return fmt.Errorf("api url is empty: set --api-url or %s", envAPIURL)
	}

	return nil
}

func (o *globalOptions) client() *listing.Client {
	return listing.NewClient(o.apiURL, listing.WithBearerToken(o.token), listing.WithTimeout(o.timeout))
}

// RootCmd builds the talenthub command tree.
func RootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "talenthub",
		Short:         "Browse DLT TalentHub jobs and talents from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.validate()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", envOrDefault(envAPIURL, defaultAPIURL), "TalentHub API base URL")
	flags.StringVar(&opts.token, "token", os.Getenv(envToken), "access token sent as a Bearer credential")
	flags.StringVarP(&opts.output, "output", "o", outputTable, "output format: table or json")
	flags.DurationVar(&opts.timeout, "timeout", defaultTimeout, "request timeout, 0 for none")

	root.AddCommand(
		jobsCmd(opts),
		talentsCmd(opts),
	)

	return root
}

// Execute runs the command tree and reports a failure on stderr. It returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := RootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		printError(stderr, err)

		return 1
	}

	return 0
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}
