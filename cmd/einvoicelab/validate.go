package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	invoiceDomain "github.com/davicafu/einvoicelab/internal/invoice/domain"
)

// errInvalidDocument hace que el comando salga con código distinto de cero.
var errInvalidDocument = errors.New("invoice is not valid")

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|->",
		Short: "Validate an e-invoice JSON document with the basic rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readDocument(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			var payload invoiceDomain.Payload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("invalid JSON: %w", err)
			}
			errs := invoiceDomain.ValidateBasic(payload)
			if errs == nil {
				errs = []string{}
			}

			p := newPrinter(cmd.OutOrStdout(), opts)
			result := map[string]interface{}{
				"isValid": len(errs) == 0,
				"errors":  errs,
			}
			if done, err := p.structured(result); done {
				if err != nil {
					return err
				}
			} else if len(errs) == 0 {
				p.success("Invoice is valid")
			} else {
				for _, e := range errs {
					p.failure("%s", e)
				}
			}

			if len(errs) > 0 {
				return errInvalidDocument
			}
			return nil
		},
	}
}

func readDocument(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(io.LimitReader(stdin, int64(invoiceDomain.MaxPayloadSize)+1))
	}
	return os.ReadFile(path)
}
