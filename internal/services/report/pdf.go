package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/ternarybob/scrutari/internal/models"
)

// severityColors maps severity to an RGB header color
var severityColors = map[string][3]int{
	"critical": {218, 54, 51},
	"high":     {240, 136, 62},
	"medium":   {139, 148, 158},
	"low":      {139, 148, 158},
}

// RenderPDF writes the people report to outputPath. One section per
// person, severity color-coded, with allegations as bullets and source
// filenames in smaller gray text.
func RenderPDF(people []*models.ReportPerson, docCount int, outputPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, "Public Figures Named in the Document Corpus", "", "L", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.MultiCell(0, 5, fmt.Sprintf("Compiled from %d document summaries on %s", docCount, time.Now().Format("2006-01-02")), "", "L", false)
	pdf.Ln(4)

	for _, person := range people {
		color, ok := severityColors[person.Severity]
		if !ok {
			color = severityColors["low"]
		}

		pdf.SetTextColor(color[0], color[1], color[2])
		pdf.SetFont("Helvetica", "B", 13)
		pdf.MultiCell(0, 7, fmt.Sprintf("%s  [%s]", person.Name, strings.ToUpper(person.Severity)), "", "L", false)

		pdf.SetTextColor(60, 60, 60)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 5, person.Role, "", "L", false)
		pdf.Ln(1)

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 10)
		for _, allegation := range person.Allegations {
			pdf.MultiCell(0, 5, "- "+allegation, "", "L", false)
		}

		if len(person.Sources) > 0 {
			pdf.SetTextColor(130, 130, 130)
			pdf.SetFont("Helvetica", "", 8)
			pdf.MultiCell(0, 4, "Sources: "+strings.Join(person.Sources, ", "), "", "L", false)
		}

		pdf.Ln(4)
	}

	pdf.SetTextColor(110, 110, 110)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, "Based on publicly released documents.", "", "L", false)

	return pdf.OutputFileAndClose(outputPath)
}
