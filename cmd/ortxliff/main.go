// Command ortxliff manages XLIFF translation bundles for a schema file:
// extracting labels for translation, joining translated files back in,
// and regenerating a bundle against a schema's current label set.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/ortschema/ort/internal/cliutil"
	"github.com/ortschema/ort/xliff"
)

const schemaFlag = "schema"

var schemaFlags = map[string]cobraflags.Flag{
	schemaFlag: &cobraflags.StringFlag{
		Name:  schemaFlag,
		Value: "",
		Usage: "Path to the schema file (required)",
	},
}

const (
	copyFlag = "copy"
)

var updateFlags = map[string]cobraflags.Flag{
	schemaFlag: schemaFlags[schemaFlag],
	copyFlag: &cobraflags.BoolFlag{
		Name:  copyFlag,
		Value: false,
		Usage: "Copy source text into untranslated target elements",
	},
}

var joinFlags = map[string]cobraflags.Flag{
	schemaFlag: schemaFlags[schemaFlag],
	copyFlag: &cobraflags.BoolFlag{
		Name:  copyFlag,
		Value: false,
		Usage: "Fall back to source text for a queue with no match in any input file",
	},
}

var rootCmd = &cobra.Command{
	Use:   "ortxliff",
	Short: "Manage XLIFF translation bundles for a schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

func main() {
	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newJoinCommand())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write an XLIFF document with one <file> per non-default language",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := schemaFlags[schemaFlag].GetString()
			if path == "" {
				return fmt.Errorf("ortxliff extract: --schema is required")
			}
			cfg, err := cliutil.LoadSchema(path)
			if err != nil {
				return err
			}
			return xliff.Extract(os.Stdout, cfg)
		},
	}
	cobraflags.RegisterMap(cmd, schemaFlags)
	return cmd
}

func newUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <xliff-file>",
		Short: "Regenerate an XLIFF file for one target language against a schema's current labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := updateFlags[schemaFlag].GetString()
			if path == "" {
				return fmt.Errorf("ortxliff update: --schema is required")
			}
			cfg, err := cliutil.LoadSchema(path)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("ortxliff update: %w", err)
			}
			defer f.Close()

			settings, err := cliutil.LoadSettings()
			if err != nil {
				return err
			}
			copySource := updateFlags[copyFlag].(*cobraflags.BoolFlag).Value
			return xliff.Update(os.Stdout, f, cfg, copySource, settings.NewLogger())
		},
	}
	cobraflags.RegisterMap(cmd, updateFlags)
	return cmd
}

func newJoinCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join <xliff-file>...",
		Short: "Merge one or more translated XLIFF files into a schema and print the enriched schema's labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := joinFlags[schemaFlag].GetString()
			if path == "" {
				return fmt.Errorf("ortxliff join: --schema is required")
			}
			cfg, err := cliutil.LoadSchema(path)
			if err != nil {
				return err
			}

			readers := make([]*os.File, 0, len(args))
			for _, a := range args {
				f, err := os.Open(a)
				if err != nil {
					return fmt.Errorf("ortxliff join: %w", err)
				}
				defer f.Close()
				readers = append(readers, f)
			}
			ioReaders := make([]io.Reader, len(readers))
			for i, f := range readers {
				ioReaders[i] = f
			}

			copySource := joinFlags[copyFlag].(*cobraflags.BoolFlag).Value
			merged, err := xliff.Join(cfg, copySource, ioReaders...)
			if err != nil {
				return fmt.Errorf("ortxliff join: %w", err)
			}
			return xliff.Extract(os.Stdout, merged)
		},
	}
	cobraflags.RegisterMap(cmd, joinFlags)
	return cmd
}
