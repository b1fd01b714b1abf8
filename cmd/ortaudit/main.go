// Command ortaudit runs the audit pass for one role against a schema file,
// emitting either a text report, a JSON document, or a standalone
// browser-embeddable JS file.
package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/ortschema/ort/audit"
	"github.com/ortschema/ort/internal/cliutil"
)

const (
	schemaFlag     = "schema"
	roleFlag       = "role"
	formatFlag     = "format"
	standaloneFlag = "standalone"
)

var flags = map[string]cobraflags.Flag{
	schemaFlag: &cobraflags.StringFlag{
		Name:  schemaFlag,
		Value: "",
		Usage: "Path to the schema file (required)",
	},
	roleFlag: &cobraflags.StringFlag{
		Name:  roleFlag,
		Value: "",
		Usage: "Role to audit (required)",
	},
	formatFlag: &cobraflags.StringFlag{
		Name:  formatFlag,
		Value: "text",
		Usage: "Output format: text or json",
	},
	standaloneFlag: &cobraflags.BoolFlag{
		Name:  standaloneFlag,
		Value: false,
		Usage: "Wrap JSON output in a standalone browser IIFE (format=json only)",
	},
}

var rootCmd = &cobra.Command{
	Use:   "ortaudit",
	Short: "Audit a role's reachable operations against a schema",
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

	schemaPath := flags[schemaFlag].GetString()
	roleName := flags[roleFlag].GetString()
	if schemaPath == "" || roleName == "" {
		return fmt.Errorf("ortaudit: --schema and --role are required")
	}

	cfg, err := cliutil.LoadSchema(schemaPath)
	if err != nil {
		return err
	}
	role, err := cliutil.ResolveRole(cfg, roleName)
	if err != nil {
		return err
	}

	q, err := audit.New().WithLogger(logger).Build(role, cfg)
	if err != nil {
		return fmt.Errorf("ortaudit: %w", err)
	}

	switch flags[formatFlag].GetString() {
	case "json":
		opts := audit.DefaultOptions()
		if flags[standaloneFlag].(*cobraflags.BoolFlag).Value {
			opts = audit.WithStandalone()
		}
		doc := audit.BuildDocument(role, q)
		if opts.Standalone {
			return audit.WriteStandaloneJS(os.Stdout, doc)
		}
		return audit.WriteJSON(os.Stdout, doc)
	default:
		return audit.WriteText(os.Stdout, q)
	}
}
