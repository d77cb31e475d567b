package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/greyh4t/groupsum/reducer"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

type document struct {
	Source string `yaml:"source"`
	Count  int    `yaml:"count"`
	Sums   []int  `yaml:"sums,flow"`
	Top    int    `yaml:"top"`
}

// Render formats the result of one dataset. header adds a "==> name <=="
// line in text mode and is used when several datasets are reported.
func Render(format, name string, res *reducer.Result, header bool) ([]byte, error) {
	switch format {
	case FormatText, "":
		return text(name, res, header), nil
	case FormatYAML:
		return yamlDoc(name, res)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

func text(name string, res *reducer.Result, header bool) []byte {
	var buf bytes.Buffer
	if header {
		fmt.Fprintf(&buf, "==> %s <==\n", name)
	}
	buf.WriteString(List(res.Sums))
	buf.WriteByte('\n')
	buf.WriteString(strconv.Itoa(res.Top))
	buf.WriteByte('\n')
	return buf.Bytes()
}

func yamlDoc(name string, res *reducer.Result) ([]byte, error) {
	data, err := yaml.Marshal(&document{
		Source: name,
		Count:  len(res.Sums),
		Sums:   res.Sums,
		Top:    res.Top,
	})
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return append([]byte("---\n"), data...), nil
}

// List renders sums as "[a, b, c]".
func List(sums []int) string {
	parts := make([]string, len(sums))
	for i, s := range sums {
		parts[i] = strconv.Itoa(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
