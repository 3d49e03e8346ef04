package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newReceiptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <doc-id>",
		Short: "Show the stored registry response for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			if env.journal == nil {
				return fmt.Errorf("no receipt backend configured")
			}

			receipt, err := env.journal.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(receipt)
		},
	}
}
