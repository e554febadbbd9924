package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/seller-atlas/pkg/models/domain"
)

// Reporter prints a report as plain numbered lists, one per section.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(report *domain.Report) error {
	funcMap := template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}

	tmpl := `{{.Title}}
Period: {{.Period.Start}} to {{.Period.End}} ({{.Period.Days}} days, {{.Lines}} order lines)
Total Revenue: {{.Currency}} {{.TotalAmount.StringFixed 2}}
{{range .Sections}}
{{.Title}}
{{range $key, $value := .Summary}}  {{$key}}: {{$value}}
{{end}}{{range $i, $d := .Details}}  {{inc $i}}. {{$d.Name}}: {{$d.Value}}{{if $d.Unit}} {{$d.Unit}}{{end}}{{if $d.Description}} ({{$d.Description}}){{end}}
{{end}}{{end}}`

	t, err := template.New("plain").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
