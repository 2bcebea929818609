package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davicafu/einvoicelab/internal/invoice/application"
	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/invoice/generator"
	sharedUtils "github.com/davicafu/einvoicelab/internal/shared/infra/utils"
)

func newGenerateCmd(opts *cliOptions) *cobra.Command {
	var (
		count    int
		scenario string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random e-invoice payloads offline",
		Long: "Generate random e-invoice payloads without starting the server.\n\nScenarios: " +
			strings.Join(generator.Scenarios(), ", "),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scenario != "" && !generator.IsScenario(scenario) {
				return fmt.Errorf("%w: %s (available: %s)", invoiceDomain.ErrUnknownScenario, scenario, strings.Join(generator.Scenarios(), ", "))
			}
			if count < 1 || count > application.MaxDynamicCount {
				return fmt.Errorf("count must be between 1 and %d", application.MaxDynamicCount)
			}

			seed := sharedUtils.Ternary(opts.seed != 0, opts.seed, time.Now().UnixNano())
			payloads := generatePayloads(generator.New(seed), count, scenario)

			p := newPrinter(cmd.OutOrStdout(), opts)
			if done, err := p.structured(payloads); done {
				return err
			}

			rows := make([][]string, 0, len(payloads))
			for _, pl := range payloads {
				sum := invoiceDomain.NewSummary(invoiceDomain.Invoice{InvoiceData: pl})
				rows = append(rows, []string{
					sum.InvoiceNo,
					sum.DocumentType,
					sum.SupplyType,
					sum.SellerState + " → " + sum.BuyerState,
					strconv.Itoa(sum.ItemCount),
					strconv.FormatFloat(sum.TotalValue, 'f', 2, 64),
				})
			}
			return p.table([]string{"INVOICE NO", "DOC", "TYPE", "STATES", "ITEMS", "TOTAL"}, rows)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of invoices to generate")
	cmd.Flags().StringVarP(&scenario, "scenario", "s", "", "Scenario to generate (empty = random mix)")
	return cmd
}

func generatePayloads(gen *generator.Generator, count int, scenario string) []invoiceDomain.Payload {
	if scenario == "" {
		return gen.GenerateMultiple(count)
	}
	out := make([]invoiceDomain.Payload, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, gen.GenerateScenario(scenario))
	}
	return out
}
