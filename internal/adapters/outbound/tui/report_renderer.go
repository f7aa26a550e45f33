package tui

import (
	"fmt"
	"strings"

	"github.com/sniffgate/sniffgate/internal/domain"
)

// RenderBatchReport renders one block per reported file followed by the
// aggregate line and, when errors remain, the block instruction.
func RenderBatchReport(report *domain.BatchReport) string {
	var b strings.Builder

	if len(report.Files) == 0 {
		b.WriteString("  " + passStyle.Render("✓") + " " + titleStyle.Render("No violations found") + "\n")
		return b.String()
	}

	for _, f := range report.Files {
		renderFileBlock(&b, f)
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n")
	b.WriteString(renderTotals(report))

	if report.TotalErrors > 0 {
		b.WriteString("\n  " + failStyle.Render("✗ Commit blocked.") +
			" " + dimStyle.Render("Fix the remaining errors, then re-run."))
		if report.TotalFixable > 0 {
			b.WriteString("\n  " + dimStyle.Render(fmt.Sprintf(
				"%d of them can be fixed automatically with `sniffgate fix <file>`.",
				report.TotalFixable)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func renderFileBlock(b *strings.Builder, f domain.FileReport) {
	counts := dimStyle.Render(fmt.Sprintf("(%s, %s)",
		plural(f.ErrorCount, "error"), plural(f.WarningCount, "warning")))
	fmt.Fprintf(b, "  %s %s\n", fileStyle.Render(f.Path), counts)

	for _, m := range f.Messages {
		pos := faintStyle.Render(fmt.Sprintf("%4d:%-3d", m.Line, m.Column))
		tag := warnTagStyle.Render("WARNING")
		if m.Category == domain.CategoryError {
			tag = errorTagStyle.Render("ERROR  ")
		}
		line := fmt.Sprintf("    %s %s %s", pos, tag, m.Message)
		if m.Fixable {
			line += " " + fixableStyle.Render("[fixable]")
		}
		line += " " + dimStyle.Render("("+humanizeSource(m.Source)+")")
		b.WriteString(line + "\n")
	}
}

func renderTotals(report *domain.BatchReport) string {
	totals := fmt.Sprintf("%s, %s in %s, %d auto-fixable",
		plural(report.TotalErrors, "error"),
		plural(report.TotalWarnings, "warning"),
		plural(len(report.Files), "file"),
		report.TotalFixable)
	if report.TotalErrors == 0 {
		return "  " + passStyle.Render("✓") + " " + totals + "\n"
	}
	return "  " + failStyle.Render("✗") + " " + totals + "\n"
}

// RenderFixResult renders the outcome of fixing one file.
func RenderFixResult(result *domain.FixResult) string {
	var b strings.Builder

	switch {
	case !result.Attempted:
		b.WriteString("  " + passStyle.Render("✓") + " " +
			titleStyle.Render(result.Path) + dimStyle.Render(" — already clean, fixer not invoked") + "\n")
	case result.Changed:
		b.WriteString("  " + passStyle.Render("✎") + " " +
			titleStyle.Render(result.Path) + dimStyle.Render(" — fixes applied") + "\n")
	default:
		b.WriteString("  " + warnTagStyle.Render("•") + " " +
			titleStyle.Render(result.Path) + dimStyle.Render(" — nothing auto-fixable changed") + "\n")
	}

	if !result.Remaining.Clean() {
		b.WriteString("\n")
		b.WriteString(RenderBatchReport(result.Remaining))
	}
	return b.String()
}

// RenderPreCommitResult prepends the fixed-path list and the re-stage
// status to the final report.
func RenderPreCommitResult(result *domain.PreCommitResult) string {
	var b strings.Builder

	if len(result.FixedPaths) > 0 {
		b.WriteString("  " + titleStyle.Render("Auto-fixed") +
			dimStyle.Render(fmt.Sprintf(" (%d)", len(result.FixedPaths))) + "\n")
		for _, p := range result.FixedPaths {
			b.WriteString("    " + passStyle.Render("✎") + " " + p + "\n")
		}
		if result.Restaged {
			b.WriteString("  " + dimStyle.Render("Fixed files re-staged.") + "\n")
		} else if result.Restage != nil {
			b.WriteString("  " + dimStyle.Render("Re-stage them with: git add "+
				strings.Join(result.Restage.Paths, " ")) + "\n")
		}
		b.WriteString("\n")
	}

	for _, d := range result.Diagnostics {
		b.WriteString("  " + warnTagStyle.Render("!") + " " + d + "\n")
	}
	if len(result.Diagnostics) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(RenderBatchReport(result.FinalReport))
	return b.String()
}
