// Command ortdiff compares two schema files and prints the structured
// diff report.
package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/ortschema/ort/diff"
	"github.com/ortschema/ort/internal/cliutil"
)

const (
	fromFlag = "from"
	intoFlag = "into"
)

var flags = map[string]cobraflags.Flag{
	fromFlag: &cobraflags.StringFlag{
		Name:  fromFlag,
		Value: "",
		Usage: "Path to the old revision's schema file (required)",
	},
	intoFlag: &cobraflags.StringFlag{
		Name:  intoFlag,
		Value: "",
		Usage: "Path to the new revision's schema file (required)",
	},
}

var rootCmd = &cobra.Command{
	Use:   "ortdiff",
	Short: "Diff two schema revisions",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func main() {
	cobraflags.RegisterMap(rootCmd, flags)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(_ *cobra.Command, _ []string) error {
	fromPath := flags[fromFlag].GetString()
	intoPath := flags[intoFlag].GetString()
	if fromPath == "" || intoPath == "" {
		return fmt.Errorf("ortdiff: --from and --into are required")
	}

	from, err := cliutil.LoadSchema(fromPath)
	if err != nil {
		return err
	}
	into, err := cliutil.LoadSchema(intoPath)
	if err != nil {
		return err
	}

	q := diff.Compare(from, into)
	return diff.WriteReport(os.Stdout, q)
}
