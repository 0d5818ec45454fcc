package runner

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jparise/gh-isofields/internal/isodate"
	"gopkg.in/yaml.v3"
)

// namedInput is one scalar or column decoded from a source.
type namedInput struct {
	name  string
	input isodate.Input
}

// resolveFormat picks a concrete format for path when format is auto.
func resolveFormat(format Format, path string) Format {
	if format != FormatAuto && format != "" {
		return format
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatLines
	}
}

// decode splits data into inputs. Multi-column formats name each column
// "name#column".
func decode(name string, format Format, data []byte, csvColumn string) ([]namedInput, error) {
	switch format {
	case FormatLines:
		return decodeLines(name, data)
	case FormatCSV:
		return decodeCSV(name, data, csvColumn)
	case FormatJSON, FormatYAML:
		// JSON documents are valid YAML, and the node API keeps mapping order.
		return decodeYAML(name, data)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func decodeLines(name string, data []byte) ([]namedInput, error) {
	values := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}

	return []namedInput{{name: name, input: isodate.Series(isodate.Column[string]{Name: name, Values: values})}}, nil
}

func decodeCSV(name string, data []byte, column string) ([]namedInput, error) {
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV has no header row")
	}

	header := records[0]
	indexes := make([]int, 0, len(header))
	if column != "" {
		i := slices.Index(header, column)
		if i < 0 {
			return nil, fmt.Errorf("CSV has no column %q (columns: %s)", column, strings.Join(header, ", "))
		}
		indexes = append(indexes, i)
	} else {
		for i := range header {
			indexes = append(indexes, i)
		}
	}

	inputs := make([]namedInput, 0, len(indexes))
	for _, i := range indexes {
		colName := name + "#" + header[i]
		values := make([]string, 0, len(records)-1)
		for _, record := range records[1:] {
			values = append(values, record[i])
		}
		inputs = append(inputs, namedInput{
			name:  colName,
			input: isodate.Series(isodate.Column[string]{Name: colName, Values: values}),
		})
	}

	return inputs, nil
}

func decodeYAML(name string, data []byte) ([]namedInput, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	// An empty document is an empty column.
	if root.Kind == 0 || len(root.Content) == 0 {
		return []namedInput{{name: name, input: isodate.Series(isodate.NewColumn[string](name))}}, nil
	}

	doc := root.Content[0]
	if doc.Kind == yaml.AliasNode {
		doc = doc.Alias
	}

	if doc.Kind != yaml.MappingNode {
		in, err := inputFromNode(name, doc)
		if err != nil {
			return nil, err
		}
		return []namedInput{{name: name, input: in}}, nil
	}

	inputs := make([]namedInput, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		colName := name + "#" + doc.Content[i].Value
		in, err := inputFromNode(colName, doc.Content[i+1])
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, namedInput{name: colName, input: in})
	}

	return inputs, nil
}

func inputFromNode(name string, node *yaml.Node) (isodate.Input, error) {
	v, err := nodeValue(node)
	if err != nil {
		return isodate.Input{}, err
	}
	return isodate.InputFrom(name, v)
}

// nodeValue converts a node to plain Go values. Strings, including plain
// scalars that YAML would resolve as timestamps, stay strings.
func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!str", "!!timestamp":
			return node.Value, nil
		}
	case yaml.SequenceNode:
		values := make([]any, len(node.Content))
		for i, child := range node.Content {
			v, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode line %d: %w", node.Line, err)
	}
	return v, nil
}
