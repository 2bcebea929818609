package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// printer escribe resultados en el formato elegido con --output.
type printer struct {
	w       io.Writer
	format  string
	ok      *color.Color
	fail    *color.Color
	heading *color.Color
}

func newPrinter(w io.Writer, opts *cliOptions) *printer {
	p := &printer{
		w:       w,
		format:  opts.output,
		ok:      color.New(color.FgGreen, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
		heading: color.New(color.FgCyan, color.Bold),
	}
	if opts.noColor {
		p.ok.DisableColor()
		p.fail.DisableColor()
		p.heading.DisableColor()
	}
	return p
}

// structured devuelve true si se imprimió v como JSON o YAML.
// Para tabla no hace nada y el comando pinta su propia vista.
func (p *printer) structured(v interface{}) (bool, error) {
	switch p.format {
	case outputJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case outputYAML:
		// yaml.v3 no entiende tags json: pasamos por JSON para respetar los nombres de la API.
		raw, err := json.Marshal(v)
		if err != nil {
			return true, err
		}
		var generic interface{}
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return true, err
		}
		enc := yaml.NewEncoder(p.w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(generic)
	}
	return false, nil
}

// table pinta una tabla con cabecera coloreada.
func (p *printer) table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, p.heading.Sprint(h))
	}
	fmt.Fprintln(tw)

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func (p *printer) success(format string, a ...interface{}) {
	fmt.Fprintln(p.w, p.ok.Sprintf("✔ "+format, a...))
}

func (p *printer) failure(format string, a ...interface{}) {
	fmt.Fprintln(p.w, p.fail.Sprintf("✘ "+format, a...))
}
