package report

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Subdirectories of the reports tree, one per artifact format.
const (
	CSVDir   = "csv"
	HTMLDir  = "html"
	ImageDir = "images"
)

// Writer persists tables and charts under a reports directory, split by
// format the way the dashboards expect to find them.
type Writer struct {
	root string
	log  *logrus.Entry
}

// NewWriter creates the format subdirectories under root.
func NewWriter(root string, log *logrus.Logger) (*Writer, error) {
	for _, sub := range []string{CSVDir, HTMLDir, ImageDir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("creating reports directory: %w", err)
		}
	}
	return &Writer{root: root, log: log.WithField("component", "report")}, nil
}

// Root returns the reports directory.
func (w *Writer) Root() string { return w.root }

// CSVPath returns the path a table's CSV artifact lands at.
func (w *Writer) CSVPath(code string) string {
	return filepath.Join(w.root, CSVDir, code+".csv")
}

// HTMLPath returns the path for an HTML artifact.
func (w *Writer) HTMLPath(code string) string {
	return filepath.Join(w.root, HTMLDir, code+".html")
}

// ImagePath returns the path for an image artifact.
func (w *Writer) ImagePath(code string) string {
	return filepath.Join(w.root, ImageDir, code+".png")
}

// WriteTable renders the table as CSV, HTML and a PNG image under the
// given code. Empty tables are skipped with a log message.
func (w *Writer) WriteTable(code string, t *Table) error {
	if t.Empty() {
		w.log.WithField("table", code).Info("skipping empty table")
		return nil
	}
	if err := w.writeCSV(code, t); err != nil {
		return err
	}
	if err := w.writeHTML(code, t); err != nil {
		return err
	}
	if err := RenderTableImage(w.ImagePath(code), t); err != nil {
		return fmt.Errorf("rendering table image %s: %w", code, err)
	}
	w.log.WithFields(logrus.Fields{"table": code, "rows": len(t.Rows)}).Info("table written")
	return nil
}

func (w *Writer) writeCSV(code string, t *Table) error {
	f, err := os.Create(w.CSVPath(code))
	if err != nil {
		return fmt.Errorf("creating csv %s: %w", code, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing csv header %s: %w", code, err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing csv rows %s: %w", code, err)
	}
	cw.Flush()
	return cw.Error()
}

var tableTemplate = template.Must(template.New("table").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<table border="1" cellspacing="0" cellpadding="4">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

func (w *Writer) writeHTML(code string, t *Table) error {
	f, err := os.Create(w.HTMLPath(code))
	if err != nil {
		return fmt.Errorf("creating html %s: %w", code, err)
	}
	defer f.Close()
	if err := tableTemplate.Execute(f, t); err != nil {
		return fmt.Errorf("rendering html %s: %w", code, err)
	}
	return nil
}

// WritePage writes a composed HTML page that embeds a table and a set of
// image artifacts, mirroring the combined regression report pages.
func (w *Writer) WritePage(code, title string, t *Table, imageCodes []string) error {
	f, err := os.Create(w.HTMLPath(code))
	if err != nil {
		return fmt.Errorf("creating page %s: %w", code, err)
	}
	defer f.Close()

	type img struct {
		Src template.URL
		Alt string
	}
	data := struct {
		Title  string
		Table  *Table
		Images []img
	}{Title: title, Table: t}
	for _, ic := range imageCodes {
		data.Images = append(data.Images, img{
			Src: template.URL("../" + ImageDir + "/" + ic + ".png"),
			Alt: ic,
		})
	}
	if err := pageTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("rendering page %s: %w", code, err)
	}
	w.log.WithField("page", code).Info("report page written")
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .Table}}<h2>Evaluation Table</h2>
<table border="1" cellspacing="0" cellpadding="4">
<thead><tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>{{end}}
{{range .Images}}<h2>{{.Alt}}</h2>
<img src="{{.Src}}" alt="{{.Alt}}">
{{end}}</body>
</html>
`))
