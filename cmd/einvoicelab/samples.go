package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
	"github.com/davicafu/einvoicelab/internal/invoice/generator"
)

func newSamplesCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples [id]",
		Short: "List the built-in sample invoices or print one of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd.OutOrStdout(), opts)
			if len(args) == 1 {
				return printSample(p, args[0])
			}
			return listSamples(p)
		},
	}
	return cmd
}

func listSamples(p *printer) error {
	views := make([]invoiceDomain.SampleView, 0, len(generator.SampleIDs()))
	for _, id := range generator.SampleIDs() {
		payload, _ := generator.Sample(id)
		views = append(views, invoiceDomain.NewSampleView(id, generator.SampleDescription(id), payload))
	}

	if done, err := p.structured(views); done {
		return err
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			strconv.Itoa(v.ID),
			v.Type,
			v.DocumentType,
			v.InvoiceNo,
			strconv.FormatFloat(v.TotalValue, 'f', 2, 64),
			v.Description,
		})
	}
	return p.table([]string{"ID", "TYPE", "DOC", "INVOICE NO", "TOTAL", "DESCRIPTION"}, rows)
}

// printSample siempre imprime el documento completo; en modo tabla usa JSON.
func printSample(p *printer, rawID string) error {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return fmt.Errorf("invalid sample id %q", rawID)
	}
	payload, ok := generator.Sample(id)
	if !ok {
		return fmt.Errorf("sample %d not found. Available samples: 1-%d", id, len(generator.SampleIDs()))
	}

	if p.format == outputTable {
		p.format = outputJSON
	}
	_, err = p.structured(payload)
	return err
}
