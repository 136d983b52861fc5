package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"resume-editor/internal/model"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "validate FILE",
		Short: "Check that a resume JSON file parses and has the required fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0], os.Stdout)
		},
	})
}

func runValidate(path string, out io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := model.Parse(raw)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			_, _ = fmt.Fprintf(out, "%s: %s\n", verr.Kind, verr.Message())
			return fmt.Errorf("%s is not a valid resume", path)
		}
		return err
	}
	_, _ = fmt.Fprintf(out, "ok: %s (%d experiences, %d skill categories)\n",
		doc.Contact.Name, len(doc.Experiences), len(doc.Skills))
	return nil
}
