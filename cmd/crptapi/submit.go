package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajiwo/crptapi"
)

func newSubmitCommand() *cobra.Command {
	var (
		documentPath string
		signature    string
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a document read from a JSON file",
		Long:  `Submit a document read from a JSON file ("-" for stdin) and print the registry response.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if signature == "" {
				signature = os.Getenv("CRPTAPI_SIGNATURE")
			}
			if signature == "" {
				return fmt.Errorf("signature is required (--signature or CRPTAPI_SIGNATURE)")
			}

			doc, err := readDocument(cmd, documentPath)
			if err != nil {
				return err
			}

			env, err := setup(cmd)
			if err != nil {
				return err
			}

			client, err := newClient(env)
			if err != nil {
				env.Close()
				return fmt.Errorf("failed to create client: %w", err)
			}
			// client.Close also closes the receipt journal
			defer client.Close()

			resp, err := client.CreateDocument(cmd.Context(), doc, signature)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "status: %d\n%s\n", resp.StatusCode, resp.Body)
			if !resp.OK() {
				return fmt.Errorf("registry rejected document %q with status %d", doc.DocID, resp.StatusCode)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&documentPath, "document", "d", "", "Document JSON file, - for stdin")
	cmd.Flags().StringVarP(&signature, "signature", "s", "", "Document signature")
	_ = cmd.MarkFlagRequired("document")

	return cmd
}

func readDocument(cmd *cobra.Command, path string) (*crptapi.Document, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open document: %w", err)
		}
		defer f.Close()
		r = f
	}

	var doc crptapi.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return &doc, nil
}
