package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleberrangel/project-estimator-api/internal/middleware"
	"github.com/cleberrangel/project-estimator-api/internal/service"
)

const (
	targetEstimate = "estimate"
	targetKPI      = "kpi"
)

var validTargets = []string{targetEstimate, targetKPI}

func (r *RootCommand) newSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Mostra os totais da estimativa e os KPIs da semana",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			doc := r.app.Estimate.Document()
			fmt.Fprintf(out, "%s (%d itens)\n", doc.Title, len(doc.Items))
			fmt.Fprintf(out, "  Desktop: %s\n", service.FormatHourRange(doc.Totals.DesktopMin, doc.Totals.DesktopMax))
			fmt.Fprintf(out, "  Mobile:  %s\n", service.FormatHourRange(doc.Totals.MobileMin, doc.Totals.MobileMax))
			fmt.Fprintf(out, "  Total:   %s\n", service.FormatHourRange(doc.Totals.TotalMin, doc.Totals.TotalMax))

			report := r.app.KPI.Report()
			fmt.Fprintf(out, "\n%s (%s a %s)\n", report.Title, report.Week.Start, report.Week.End)
			fmt.Fprintf(out, "  Horas:      %.1f\n", report.Summary.TotalHours)
			fmt.Fprintf(out, "  Concluídas: %d/%d\n", report.Summary.CompletedTasks, report.Summary.TotalTasks)
			fmt.Fprintf(out, "  No prazo:   %.1f%%\n", report.Summary.OnTimePercentage)
			return nil
		},
	}
}

func (r *RootCommand) newExportCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:       "export estimate|kpi",
		Short:     "Gera a planilha .xlsx da estimativa ou do relatório",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: validTargets,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var (
				res *service.ExportResult
				err error
			)
			if args[0] == targetEstimate {
				res, err = r.app.ExportEstimate(ctx)
			} else {
				res, err = r.app.ExportKPI(ctx)
			}
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("criar diretório %s: %w", outDir, err)
			}
			path := filepath.Join(outDir, middleware.SanitizeFilename(res.FileName))
			if err := os.WriteFile(path, res.Data, 0644); err != nil {
				return fmt.Errorf("gravar %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d linhas)\n", path, res.Rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "Diretório de saída")
	return cmd
}

func (r *RootCommand) newResetCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:       "reset estimate|kpi",
		Short:     "Limpa a estimativa ou as tarefas da semana",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: validTargets,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var err error
			if args[0] == targetEstimate {
				err = r.app.Estimate.Reset(ctx, yes)
			} else {
				err = r.app.KPI.Reset(ctx, yes)
			}
			if err != nil {
				return fmt.Errorf("%w (use --yes)", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s limpo\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirma a limpeza")
	return cmd
}
