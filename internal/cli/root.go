// Package cli implements the akademus command line client.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/akademus/akademus-api/internal/client"
)

const defaultAPIURL = "http://localhost:3000"

type options struct {
	apiURL    string
	tokenFile string
	asJSON    bool
}

type app struct {
	opts   options
	client *client.Client
	out    io.Writer
}

// NewRootCommand builds the akademus command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "akademus",
		Short:         "Command line client for the Akademus API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	apiURL := os.Getenv("AKADEMUS_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.opts.apiURL, "api", apiURL, "API base URL (env AKADEMUS_API_URL)")
	flags.StringVar(&a.opts.tokenFile, "token-file", "", "session token file (default ~/.akademus/token)")
	flags.BoolVar(&a.opts.asJSON, "json", false, "print raw JSON")

	root.AddCommand(
		a.registerCommand(),
		a.loginCommand(),
		a.logoutCommand(),
		a.whoamiCommand(),
		a.coursesCommand(),
		a.nodesCommand(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	path := a.opts.tokenFile
	if path == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		path = p
	}
	a.client = client.New(a.opts.apiURL, client.WithTokenStore(client.NewFileTokenStore(path)))
	return nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes rows under header, or v as JSON when --json is set.
func (a *app) printTable(v any, header []string, rows [][]string) error {
	if a.opts.asJSON {
		return a.printJSON(v)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

func (a *app) printf(format string, args ...any) {
	if a.opts.asJSON {
		return
	}
	fmt.Fprintf(a.out, format, args...)
}
