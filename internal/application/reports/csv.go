package reports

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
)

// csvHeader is the fixed export header row.
const csvHeader = "ID,Date,Developer,Total Hours,Notes,Projects (Name: Details [Hours])"

// ExportFilename returns the export file name with the export date
// embedded, e.g. work_tracker_export_2026-09-01.csv.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("work_tracker_export_%s.csv", now.Format(entities.DateLayout))
}

// WriteCSV writes the one-way CSV projection of the given records. Every
// free-text field is wrapped in double quotes with internal quotes doubled;
// the projects column joins each entry as "name: details [Nh]" with " | ".
func WriteCSV(w io.Writer, records []entities.WorkRecord) error {
	if _, err := fmt.Fprintln(w, csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := strings.Join([]string{
			r.ID,
			r.Date,
			quote(r.DeveloperName),
			formatHours(r.TotalHours),
			quote(r.Notes),
			quote(projectsField(r.Projects)),
		}, ",")
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

// ExportCSV renders the projection to a string.
func ExportCSV(records []entities.WorkRecord) string {
	var b strings.Builder
	// strings.Builder writes never fail.
	_ = WriteCSV(&b, records)
	return b.String()
}

func projectsField(projects []entities.ProjectEntry) string {
	parts := make([]string, 0, len(projects))
	for _, p := range projects {
		parts = append(parts, fmt.Sprintf("%s: %s [%sh]", p.ProjectName, p.TaskDetails, formatHours(p.WorkingHours)))
	}
	return strings.Join(parts, " | ")
}

// quote always wraps the field and doubles embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
