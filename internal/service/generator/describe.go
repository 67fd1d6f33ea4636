package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/verstamp/internal/logger"
)

// Format selects how Describe prints bindings.
type Format string

const (
	// FormatTable prints an aligned table.
	FormatTable Format = "table"
	// FormatYAML prints a YAML mapping.
	FormatYAML Format = "yaml"
	// FormatJSON prints a JSON object.
	FormatJSON Format = "json"
)

// describeValueWidth wraps long values such as license text in the table.
const describeValueWidth = 60

// errUnknownFormat is returned for an unsupported Describe format.
var errUnknownFormat = errors.New("unknown output format")

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want table, yaml or json)", errUnknownFormat, s)
	}
}

// Describe resolves every binding of a run without rendering the template
// into a file and prints them to w in the requested format.
func Describe(ctx context.Context, opts *Options, format Format, w io.Writer) error {
	ctx = logger.WithName(ctx, "describe")

	r, err := prepare(ctx, opts)
	if err != nil {
		return err
	}

	if w == nil {
		w = os.Stdout
	}

	switch format {
	case FormatTable:
		return describeTable(r.bindings, w)
	case FormatYAML:
		return describeYAML(r.bindings, w)
	case FormatJSON:
		return describeJSON(r.bindings, w)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

// describeTable renders name, value and source columns.
func describeTable(b *ResolvedBindings, w io.Writer) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Value", "Source"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: describeValueWidth},
	})

	for _, name := range b.Names() {
		tw.AppendRow(table.Row{name, b.Values[name], string(b.Sources[name])})
	}

	tw.Render()

	return nil
}

// describeYAML prints bindings as a YAML mapping.
func describeYAML(b *ResolvedBindings, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(map[string]string(b.Values)); err != nil {
		return fmt.Errorf("encode bindings: %w", err)
	}

	return encoder.Close()
}

// describeJSON prints bindings as a JSON object.
func describeJSON(b *ResolvedBindings, w io.Writer) error {
	fields := make(map[string]any, len(b.Values))
	for name, value := range b.Values {
		fields[name] = value
	}

	message, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("convert bindings: %w", err)
	}

	options := protojson.MarshalOptions{
		Multiline: true,
		Indent:    "  ",
	}

	data, err := options.Marshal(message)
	if err != nil {
		return fmt.Errorf("encode bindings: %w", err)
	}

	if _, err = w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write bindings: %w", err)
	}

	return nil
}
