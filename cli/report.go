package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/viant/afs/url"
	"github.com/viant/testid/annotator"
)

var (
	annotatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	quietStyle     = lipgloss.NewStyle().Faint(true)
)

func statusLabel(file *annotator.FileResult, dryRun bool) string {
	switch file.Status {
	case annotator.StatusAnnotated:
		if dryRun {
			return annotatedStyle.Render("pending")
		}
		return annotatedStyle.Render(string(file.Status))
	case annotator.StatusFailed:
		return failedStyle.Render(string(file.Status))
	}
	return quietStyle.Render(string(file.Status))
}

// displayPath shortens a storage URL to a path relative to the working directory
func displayPath(URL string) string {
	location := url.Path(URL)
	if wd, err := os.Getwd(); err == nil {
		if rel, err := filepath.Rel(wd, location); err == nil && !filepath.IsAbs(rel) && len(rel) < len(location) {
			return rel
		}
	}
	return location
}

func renderReport(w io.Writer, report *annotator.Report, attributeName string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Status", "Tags"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, file := range report.Files {
		table.Append([]string{displayPath(file.URL), statusLabel(file, report.DryRun), fmt.Sprintf("%d", len(file.Tags))})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		fmt.Sprintf("Changed %d", report.Changed()),
		fmt.Sprintf("%d", report.Tagged()),
	})
	table.Render()

	for _, file := range report.Files {
		if file.Err != nil {
			fmt.Fprintln(w, failedStyle.Render("error")+"  "+file.Err.Error())
		}
	}
	if report.DryRun {
		fmt.Fprintf(w, "dry run: %d file(s) would receive %s\n", report.Changed(), attributeName)
		return
	}
	fmt.Fprintf(w, "annotated %d file(s) with %s (%d cached)\n", report.Changed(), attributeName, report.Cached())
}
