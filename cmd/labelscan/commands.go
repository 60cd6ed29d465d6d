package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/infrastructure/bootstrap"
	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
)

type rootOptions struct {
	verbose bool
	asJSON  bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "labelscan",
		Short:         "Analyze food ingredient labels",
		Long:          `Extract ingredients from label text or photos and rate them safe, caution or harmful.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				return common.InitLogger("debug")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "write debug logs")
	cmd.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print JSON instead of tables")

	cmd.AddCommand(
		newAnalyzeCommand(opts),
		newExtractCommand(opts),
		newTipsCommand(opts),
		newLookupCommand(opts),
	)
	return cmd
}

func newAnalyzeCommand(root *rootOptions) *cobra.Command {
	var (
		allergies []string
		offline   bool
		isImage   bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze label text (or a label photo with --image)",
		Long:  `Analyze a label. Reads the file argument, or stdin when the argument is "-" or missing.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			cfg := &config.Config{}
			if !offline {
				if cfg, err = config.LoadConfig(); err != nil {
					return err
				}
			}

			components, err := bootstrap.Build(cmd.Context(), cfg, bootstrap.Options{Offline: offline})
			if err != nil {
				return err
			}
			defer components.Close()

			labelText := string(input)
			if isImage {
				if components.OCR == nil {
					return fmt.Errorf("image analysis needs an OCR provider; check OCR_PROVIDER and OPENROUTER_API_KEY")
				}
				labelText, err = components.OCR.ExtractText(cmd.Context(), base64.StdEncoding.EncodeToString(input))
				if err != nil {
					return err
				}
			}

			report := components.Analyzer.AnalyzeText(cmd.Context(), labelText, allergies)
			if root.asJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&allergies, "allergy", "a", nil, "allergen to flag (repeatable or comma separated)")
	cmd.Flags().BoolVar(&offline, "offline", false, "use only the built-in lookup table")
	cmd.Flags().BoolVar(&isImage, "image", false, "treat the input as a label photo and run OCR first")
	return cmd
}

func newExtractCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract [file]",
		Short: "List the ingredient candidates found in label text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			extraction := ingredient.Extract(string(input))
			if root.asJSON {
				return writeJSON(cmd.OutOrStdout(), extraction)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "Ingredient"})
			for i, name := range extraction.Ingredients {
				t.AppendRow(table.Row{i + 1, name})
			}
			marker := extraction.Marker
			if marker == "" {
				marker = "(none)"
			}
			t.AppendFooter(table.Row{"", fmt.Sprintf("marker %s, confidence %s", marker, extraction.Confidence)})
			t.Render()
			return nil
		},
	}
}

func newTipsCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tips",
		Short: "Show label reading tips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tips := ingredient.DefaultTable.Tips()
			if root.asJSON {
				return writeJSON(cmd.OutOrStdout(), tips)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"#", "Tip"})
			for i, tip := range tips {
				t.AppendRow(table.Row{i + 1, tip})
			}
			t.Render()
			return nil
		},
	}
}

func newLookupCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <ingredient>",
		Short: "Look an ingredient up in the built-in table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			match, ok := ingredient.DefaultTable.Lookup(name)
			if !ok {
				return fmt.Errorf("%q is not in the lookup table", name)
			}
			if root.asJSON {
				return writeJSON(cmd.OutOrStdout(), match)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendRow(table.Row{"Ingredient", match.Name})
			t.AppendRow(table.Row{"Category", match.Category.String()})
			t.AppendRow(table.Row{"Description", match.Entry.Description})
			t.AppendRow(table.Row{"Alternatives", strings.Join(match.Entry.Alternatives, ", ")})
			t.Render()
			return nil
		},
	}
}

// readInput 讀取檔案參數，沒有參數或為 "-" 時讀 stdin
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return data, nil
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 48},
		{Number: 4, WidthMax: 64},
	})
	return t
}

func renderReport(w io.Writer, report ingredient.Report) {
	if report.Status == ingredient.StatusEmpty {
		fmt.Fprintln(w, "No ingredients found.")
		fmt.Fprintf(w, "Overall: %s (%s)\n", report.Overall.Score, report.Overall.Reason)
		return
	}

	t := newTable(w)
	t.AppendHeader(table.Row{"#", "Ingredient", "Category", "Description", "Alternatives"})
	for i, r := range report.Results {
		t.AppendRow(table.Row{
			i + 1,
			r.Ingredient,
			categoryColor(r.Category).Sprint(r.Category.String()),
			r.Description,
			strings.Join(r.Alternatives, ", "),
		})
	}
	t.AppendFooter(table.Row{"", "Overall", report.Overall.Score.String(), report.Overall.Reason, ""})
	t.Render()

	for _, note := range report.Misleading {
		fmt.Fprintf(w, "Note on %q: %s Usually made of: %s\n", note.Product, note.Description, note.RealIngredients)
	}
	if report.Tip != "" {
		fmt.Fprintf(w, "Tip: %s\n", report.Tip)
	}
}

func categoryColor(c ingredient.Category) text.Colors {
	switch c {
	case ingredient.CategorySafe:
		return text.Colors{text.FgGreen}
	case ingredient.CategoryCaution:
		return text.Colors{text.FgYellow}
	case ingredient.CategoryHarmful:
		return text.Colors{text.FgRed, text.Bold}
	default:
		return text.Colors{text.FgHiBlack}
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
