package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/erginozdemir/tools4audit/internal/adapter/http/dto"
	"github.com/erginozdemir/tools4audit/internal/adapter/spreadsheet"
	"github.com/erginozdemir/tools4audit/internal/domain"
	"github.com/erginozdemir/tools4audit/internal/infrastructure/idgen"
	"github.com/erginozdemir/tools4audit/internal/usecase"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tools4audit-cli",
		Short:         "Tools4Audit CLI tool",
		Long:          `Aging and cash-risk reports for ledger exports, run locally or against a Tools4Audit server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Tools4Audit server")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	cmd.AddCommand(agingCmd(), cashCmd(), sampleCmd(), downloadCmd())
	return cmd
}

func agingCmd() *cobra.Command {
	var file, out string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "aging",
		Short: "Build the aging pivot of a ledger workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, warnings, err := readWorkbook(file)
			if err != nil {
				return err
			}

			report, err := usecase.ComputeAging(table, warnings)
			if err != nil {
				return err
			}

			if out != "" {
				data, err := spreadsheet.AgingXLSX(report)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return err
				}
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), dto.AgingReportFromDomain(report, false))
			}
			printWarnings(cmd.ErrOrStderr(), warnings)
			return printMatrix(cmd.OutOrStdout(), report.Matrix)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Ledger workbook (.xlsx)")
	cmd.Flags().StringVar(&out, "out", "", "Write the pivot workbook to this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func cashCmd() *cobra.Command {
	var file, threshold, out string
	var keywords []string

	cmd := &cobra.Command{
		Use:   "cash",
		Short: "Run the cash-risk analysis of a ledger workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := dto.ParseThreshold(threshold)
			if err != nil {
				return err
			}

			table, warnings, err := readWorkbook(file)
			if err != nil {
				return err
			}

			report, err := usecase.NewCashUseCase(spreadsheet.NewReader(), usecase.WithRiskKeywords(keywords)).
				Analyze(usecase.AnalyzeCashInput{Table: table, Warnings: warnings, Threshold: limit})
			if err != nil {
				return err
			}

			if out != "" {
				data, err := spreadsheet.CashXLSX(report)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, data, 0o644); err != nil {
					return err
				}
			}

			return printJSON(cmd.OutOrStdout(), dto.CashReportFromDomain(report))
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Ledger workbook (.xlsx)")
	cmd.Flags().StringVar(&threshold, "threshold", "", "Large-transaction threshold (default 5000)")
	cmd.Flags().StringSliceVar(&keywords, "keyword", nil, "Risk keyword, repeatable (replaces the defaults)")
	cmd.Flags().StringVar(&out, "out", "", "Write the sectioned workbook to this path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func sampleCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the example ledger workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := spreadsheet.SampleXLSX()
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", spreadsheet.SampleFileName, "Output path")
	return cmd
}

func downloadCmd() *cobra.Command {
	var id, out string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the pivot workbook of a report stored on the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !idgen.Valid(id) {
				return fmt.Errorf("invalid report id %q", id)
			}

			client := &http.Client{Timeout: timeout}
			resp, err := client.Get(strings.TrimRight(baseURL, "/") + "/aging/" + id + "/download")
			if err != nil {
				return fmt.Errorf("error making request: %w", err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("download failed (status: %d)", resp.StatusCode)
			}

			if err := os.WriteFile(out, body, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(body))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Report handle returned by the server")
	cmd.Flags().StringVar(&out, "out", spreadsheet.AgingFileName, "Output path")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func readWorkbook(path string) (*domain.Table, []domain.ParseWarning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return spreadsheet.NewReader().ReadTable(f)
}

func printMatrix(w io.Writer, m *domain.Matrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(m.Headers, "\t")+"\t")
	for _, row := range m.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}

func printWarnings(w io.Writer, warnings []domain.ParseWarning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
