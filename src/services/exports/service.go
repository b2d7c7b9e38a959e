// Package exports renders admin spreadsheets and submission receipts. The
// builders are pure: they take already-loaded documents and produce a
// workbook or PDF, so the rendering is testable without a database.
package exports

import (
	"fmt"
	"io"
	"sort"
	"time"

	"Backend-FormDesk/src/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const dateFormat = "02/01/2006"

// BuildFormsWorkbook renders every form template into one sheet. Field
// labels across all forms become a column union, marked "Yes" where a form
// declares that field.
func BuildFormsWorkbook(forms []models.Form) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Forms"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	labels := labelUnion(forms)
	header := append([]string{
		"Form ID", "Form Name", "Start Date", "End Date",
		"Status", "Payment Required", "Amount",
	}, labels...)
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, form := range forms {
		has := make(map[string]bool, len(form.Fields))
		for _, field := range form.Fields {
			has[field.Label] = true
		}

		amount := "N/A"
		if form.PaymentAmount != nil {
			amount = fmt.Sprintf("%.2f", *form.PaymentAmount)
		}
		row := []string{
			form.ID.Hex(),
			form.FormName,
			form.StartDate.Format(dateFormat),
			form.EndDate.Format(dateFormat),
			string(form.Status),
			yesNo(form.PaymentRequired),
			amount,
		}
		for _, label := range labels {
			if has[label] {
				row = append(row, "Yes")
			} else {
				row = append(row, "")
			}
		}
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// BuildSubmissionsWorkbook renders one form's submissions. Response columns
// are the union of keys seen across the submissions, in stable order.
func BuildSubmissionsWorkbook(formName string, subs []models.Submission) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Submissions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	keys := responseKeyUnion(subs)
	header := append([]string{"Submission ID", "Form Name"}, keys...)
	header = append(header, "Payment Status", "Uploaded Files", "Submitted At")
	if err := writeRow(f, sheet, 1, header); err != nil {
		return nil, err
	}

	for i, sub := range subs {
		name := sub.FormSnapshot.FormName
		if name == "" {
			name = formName
		}
		row := []string{sub.ID.Hex(), name}
		for _, key := range keys {
			row = append(row, sub.Responses[key])
		}

		status := ""
		if sub.PaymentStatus != nil {
			status = string(*sub.PaymentStatus)
		}
		row = append(row, status, fileSummary(sub.UploadedFiles), sub.CreatedAt.Format(time.RFC3339))

		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// BuildReceipt writes a PDF receipt for one submission to w.
func BuildReceipt(sub *models.Submission, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Form Submission Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Form: "+sub.FormSnapshot.FormName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Submission ID: "+sub.ID.Hex(), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Date: "+sub.CreatedAt.Format("2 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	if sub.PaymentStatus != nil {
		pdf.CellFormat(0, 8, "Payment Status: "+string(*sub.PaymentStatus), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Submitted Details", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)

	// Snapshot order, not map order, so receipts are reproducible.
	for _, field := range sub.FormSnapshot.Fields {
		value, ok := sub.Responses[field.Name]
		if !ok {
			continue
		}
		pdf.MultiCell(0, 7, fmt.Sprintf("%s: %s", field.Label, value), "", "L", false)
	}

	if len(sub.UploadedFiles) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, "Uploaded Files", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, file := range sub.UploadedFiles {
			pdf.CellFormat(0, 7, fmt.Sprintf("%s (%s)", file.FieldName, file.OriginalName), "", 1, "L", false, 0, "")
		}
	}

	return pdf.Output(w)
}

func labelUnion(forms []models.Form) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, form := range forms {
		for _, field := range form.Fields {
			if !seen[field.Label] {
				seen[field.Label] = true
				labels = append(labels, field.Label)
			}
		}
	}
	return labels
}

func responseKeyUnion(subs []models.Submission) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, sub := range subs {
		// Prefer snapshot order for the keys this submission declares.
		for _, field := range sub.FormSnapshot.Fields {
			if _, ok := sub.Responses[field.Name]; ok && !seen[field.Name] {
				seen[field.Name] = true
				keys = append(keys, field.Name)
			}
		}
	}
	if len(keys) == 0 {
		// No snapshots (legacy rows): fall back to sorted key union.
		for _, sub := range subs {
			for k := range sub.Responses {
				if !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}
		sort.Strings(keys)
	}
	return keys
}

func fileSummary(files []models.UploadedFile) string {
	if len(files) == 0 {
		return ""
	}
	out := ""
	for i, f := range files {
		if i > 0 {
			out += "; "
		}
		out += fmt.Sprintf("%s (%s)", f.FieldName, f.OriginalName)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
