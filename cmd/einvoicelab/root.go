package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// cliOptions son los flags globales de la CLI.
type cliOptions struct {
	output  string
	noColor bool
	seed    int64
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "einvoicelab",
		Short: "E-invoice sandbox API for testing and learning",
		Long: `einvoicelab expone una API de e-invoicing (IRN, cancelación, búsqueda,
estadísticas) con datos sintéticos y varios esquemas de autenticación.

Examples:
  # Arrancar el servidor HTTP
  einvoicelab serve

  # Listar los samples en YAML
  einvoicelab samples --output yaml

  # Generar 3 notas de crédito
  einvoicelab generate --count 3 --scenario credit_note`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case outputTable, outputJSON, outputYAML:
				return nil
			default:
				return fmt.Errorf("unknown output format %q (table|json|yaml)", opts.output)
			}
		},
	}

	root.PersistentFlags().StringVarP(&opts.output, "output", "o", outputTable, "Output format: table|json|yaml")
	root.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colors")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "Random seed for generated data (0 = time based)")

	root.AddCommand(
		newServeCmd(),
		newSamplesCmd(opts),
		newGenerateCmd(opts),
		newValidateCmd(opts),
	)
	return root
}
