// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cardex/internal/extract"
	"github.com/pdiddy/cardex/internal/parse"
	"github.com/pdiddy/cardex/internal/render"
	"github.com/pdiddy/cardex/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract -i <input.pdf> -o <output.{csv,pdf}>",
	Short: "Extract quiz cards from a PDF into CSV or a reformatted PDF",
	Long: `Extract parses the two-column card layout of the input PDF and writes
the completed cards to the output file. Cards missing a required field
(type, ref, question, or answer) are dropped and reported on stderr.

The schema variant controls the recognized card layout: "standard" has the
five base fields, "sit" adds an Extra Info column fed by the chapter:verse
rule. A custom layout can be supplied with --schema-file.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("input", "i", "", "input PDF file path (required)")
	extractCmd.Flags().StringP("output", "o", "", "output file path (required)")
	extractCmd.Flags().StringP("output-type", "t", "csv", "output format: csv or pdf")
	extractCmd.Flags().String("variant", "", "schema variant: standard or sit (default standard)")
	extractCmd.Flags().String("schema-file", "", "YAML schema descriptor overriding the built-in variant")
	extractCmd.Flags().String("template", "", "HTML card template for PDF output (default embedded)")
	extractCmd.MarkFlagRequired("input")
	extractCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	outputType, _ := cmd.Flags().GetString("output-type")

	format, err := render.ParseFormat(outputType)
	if err != nil {
		return err
	}
	// Fail on a mismatched output path before any parsing work.
	if err := render.CheckExtension(output, format); err != nil {
		return err
	}

	schema, err := extractSchema(cmd)
	if err != nil {
		return err
	}

	cards, err := extract.Extract(input, schema, os.Stderr)
	if err != nil {
		return err
	}

	switch format {
	case types.OutputCSV:
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		if err := render.WriteCSV(f, schema, cards); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	case types.OutputPDF:
		template := templatePath(cmd)
		if err := render.WritePDF(output, cards, template); err != nil {
			return err
		}
	}

	fmt.Printf("Saved %d quiz cards to %s as %s\n", len(cards), output, format)
	return nil
}

// extractSchema resolves the active schema: an explicit schema file wins,
// then the --variant flag, then the extract.variant config key, then the
// standard variant.
func extractSchema(cmd *cobra.Command) (parse.Schema, error) {
	schemaFile, _ := cmd.Flags().GetString("schema-file")
	if schemaFile == "" {
		schemaFile = viper.GetString("extract.schema_file")
	}
	if schemaFile != "" {
		return parse.LoadSchemaFile(schemaFile)
	}

	variant, _ := cmd.Flags().GetString("variant")
	if variant == "" {
		variant = viper.GetString("extract.variant")
	}
	if variant == "" {
		variant = "standard"
	}
	return parse.ByVariant(variant)
}

func templatePath(cmd *cobra.Command) string {
	template, _ := cmd.Flags().GetString("template")
	if template == "" {
		template = viper.GetString("render.template_path")
	}
	return template
}
