// Command ortsql turns a diff between two schema revisions into a SQL
// migration script, refusing destructive changes unless explicitly
// permitted.
package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/ortschema/ort/diff"
	"github.com/ortschema/ort/internal/cliutil"
	"github.com/ortschema/ort/sqlmigrate"
)

const (
	fromFlag        = "from"
	intoFlag        = "into"
	destructiveFlag = "destructive"
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
	destructiveFlag: &cobraflags.BoolFlag{
		Name:  destructiveFlag,
		Value: false,
		Usage: "Permit DROP TABLE / DROP COLUMN emission and other destructive changes",
	},
}

var rootCmd = &cobra.Command{
	Use:   "ortsql",
	Short: "Generate a SQL migration between two schema revisions",
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
	settings, err := cliutil.LoadSettings()
	if err != nil {
		return err
	}
	logger := settings.NewLogger()

	fromPath := flags[fromFlag].GetString()
	intoPath := flags[intoFlag].GetString()
	if fromPath == "" || intoPath == "" {
		return fmt.Errorf("ortsql: --from and --into are required")
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

	opts := sqlmigrate.DefaultOptions()
	if flags[destructiveFlag].(*cobraflags.BoolFlag).Value {
		opts = opts.WithDestructive()
	}

	diags := sqlmigrate.Validate(q, opts)
	for _, m := range diags.Messages() {
		logger.Warn(m.Text, "file", m.Pos.File, "line", m.Pos.Line)
	}
	if diags.HasErrors() {
		return fmt.Errorf("ortsql: migration has %d refused change(s): destructive ones need --destructive, irreconcilable ones must be resolved first", len(diags.Errors()))
	}

	return sqlmigrate.Emit(os.Stdout, q)
}
