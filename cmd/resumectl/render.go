package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"resume-editor/internal/model"
	"resume-editor/internal/usecase"
	infra "resume-editor/pkg/infrastructure"
)

func init() {
	var outFlag, chromeFlag string
	renderCmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a resume to HTML or PDF (by --out extension)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
			defer cancel()
			var r usecase.Renderer
			if strings.EqualFold(filepath.Ext(outFlag), ".pdf") {
				path := chromeFlag
				if path == "" {
					path = chromePath
				}
				r = infra.NewChromedpRenderer(path)
			}
			return runRender(ctx, args[0], outFlag, r)
		},
	}
	renderCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file, .html or .pdf (required)")
	renderCmd.Flags().StringVar(&chromeFlag, "chrome", "", "Chrome binary for PDF output (default RESUME_CHROME_PATH)")
	_ = renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

func runRender(ctx context.Context, in, out string, r usecase.Renderer) error {
	raw, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	doc, err := model.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}

	x := usecase.NewExporter(r, zerolog.Nop())
	var data []byte
	switch strings.ToLower(filepath.Ext(out)) {
	case ".html", ".htm":
		data, err = x.HTML(doc)
	case ".pdf":
		data, err = x.PDF(ctx, doc)
	default:
		return fmt.Errorf("unsupported output %q: use .html or .pdf", out)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
