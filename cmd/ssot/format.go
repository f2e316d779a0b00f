package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/ssot/config"
	"github.com/kbukum/ssot/util"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTOML  = "toml"
	formatEnv   = "env"
	formatTable = "table"
)

// outputFlags control how the resolved configuration is printed.
type outputFlags struct {
	Format     string `json:"format" validate:"required,oneof=json yaml toml env table"`
	ShowSource bool   `json:"show_source"`
	Mask       bool   `json:"mask"`
}

// entry is one printed key.
type entry struct {
	Key    string
	Value  any
	Source config.Source
}

// sourcedValue is the encoded form of a value with --show-source.
type sourcedValue struct {
	Value  any    `json:"value" yaml:"value" toml:"value"`
	Source string `json:"source" yaml:"source" toml:"source"`
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// entries lists r in key order, masking secrets when asked.
func entries(r *config.Resolved, mask bool) []entry {
	keys := r.Keys()
	out := make([]entry, 0, len(keys))
	for _, k := range keys {
		v, _ := r.Get(k)
		src, _ := r.Origin(k)
		if mask && util.LooksSecret(k) {
			v = util.Mask(displayValue(v))
		}
		out = append(out, entry{Key: k, Value: v, Source: src})
	}
	return out
}

// render writes r to w in the requested format.
func render(w io.Writer, r *config.Resolved, o outputFlags) error {
	list := entries(r, o.Mask)

	switch o.Format {
	case formatJSON:
		data, err := json.MarshalIndent(document(list, o.ShowSource, false), "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document(list, o.ShowSource, false)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()

	case formatTOML:
		data, err := toml.Marshal(document(list, o.ShowSource, true))
		if err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		_, err = w.Write(data)
		return err

	case formatEnv:
		return renderEnv(w, list, o.ShowSource)

	case formatTable:
		_, err := fmt.Fprintln(w, renderTable(list, o.ShowSource))
		return err
	}
	return fmt.Errorf("unknown format %q", o.Format)
}

// document builds the value encoded by json, yaml and toml. TOML has no
// null, so nil values become empty strings there.
func document(list []entry, showSource, noNil bool) map[string]any {
	doc := make(map[string]any, len(list))
	for _, e := range list {
		v := e.Value
		if v == nil && noNil {
			v = ""
		}
		if showSource {
			doc[e.Key] = sourcedValue{Value: v, Source: e.Source.String()}
			continue
		}
		doc[e.Key] = v
	}
	return doc
}

// renderEnv writes KEY="value" lines, preceded by a source comment with showSource.
func renderEnv(w io.Writer, list []entry, showSource bool) error {
	if !showSource {
		pairs := make(map[string]string, len(list))
		for _, e := range list {
			pairs[e.Key] = displayValue(e.Value)
		}
		content, err := godotenv.Marshal(pairs)
		if err != nil {
			return fmt.Errorf("encode env: %w", err)
		}
		_, err = fmt.Fprintln(w, content)
		return err
	}

	var buf bytes.Buffer
	for _, e := range list {
		line, err := godotenv.Marshal(map[string]string{e.Key: displayValue(e.Value)})
		if err != nil {
			return fmt.Errorf("encode env: %w", err)
		}
		fmt.Fprintf(&buf, "# %s\n%s\n", e.Source, line)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func renderTable(list []entry, showSource bool) string {
	headers := []string{"KEY", "VALUE"}
	if showSource {
		headers = append(headers, "SOURCE")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, e := range list {
		row := []string{e.Key, displayValue(e.Value)}
		if showSource {
			row = append(row, e.Source.String())
		}
		t.Row(row...)
	}
	return t.String()
}

// displayValue renders a value on one line. Composite values are JSON.
func displayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return strings.TrimSpace(fmt.Sprint(v))
	}
	return s
}
