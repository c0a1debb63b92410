// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Jsonvalidate validates instance documents against a JSON schema.
//
// Usage:
//
//	jsonvalidate -schema schema.json [flags] [instance.json ...]
//
// Instances are read from the named files, or from standard input
// when no files are given. Files ending in .yaml or .yml are parsed
// as YAML, everything else as JSON. The exit status is 0 when all
// instances are valid, 1 when any instance is invalid, and 2 for
// usage or input errors.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/validata/jsonschema/pkg/jsonschema"
	"github.com/validata/jsonschema/pkg/validerr"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: jsonvalidate -schema file [flags] [instance ...]\n")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	schemaFile := flag.String("schema", "", "schema `file` to validate against (JSON or YAML)")
	dialect := flag.String("dialect", "", "dialect `URI` overriding the schema's $schema")
	check := flag.Bool("check", false, "check the schema against its meta-schema and exit")
	failFast := flag.Bool("fail-fast", false, "report only the first error per instance")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *schemaFile == "" {
		usage()
	}

	schemaData, err := loadJSONBytes(*schemaFile)
	if err != nil {
		slog.Error("read schema", "file", *schemaFile, "err", err)
		os.Exit(2)
	}

	if *check {
		if err := jsonschema.CheckSchema(schemaData, *dialect); err != nil {
			if se, ok := err.(*jsonschema.SchemaError); ok {
				for _, ve := range validerr.Errors(se.Err) {
					fmt.Printf("%s: %s\n", *schemaFile, ve)
				}
				os.Exit(1)
			}
			slog.Error("check schema", "file", *schemaFile, "err", err)
			os.Exit(2)
		}
		slog.Debug("schema conforms to its meta-schema", "file", *schemaFile)
		os.Exit(0)
	}

	v, err := jsonschema.Compile(schemaData, &jsonschema.CompileOpts{Dialect: *dialect})
	if err != nil {
		slog.Error("compile schema", "file", *schemaFile, "err", err)
		os.Exit(2)
	}
	slog.Debug("compiled schema", "file", *schemaFile, "dialect", v.Dialect())

	files := flag.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	invalid := false
	for _, file := range files {
		instance, err := loadDocument(file)
		if err != nil {
			slog.Error("read instance", "file", file, "err", err)
			os.Exit(2)
		}

		if *failFast {
			if !v.IsValid(instance) {
				fmt.Printf("%s: invalid\n", file)
				invalid = true
			}
			continue
		}

		n := 0
		for ve := range v.IterErrors(instance) {
			fmt.Printf("%s: %s\n", file, ve)
			n++
		}
		if n > 0 {
			invalid = true
		} else {
			slog.Debug("instance is valid", "file", file)
		}
	}
	if invalid {
		os.Exit(1)
	}
}

// loadDocument reads and decodes an instance or schema document.
// The name "-" means standard input, decoded as JSON.
func loadDocument(file string) (any, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, err
	}

	var v any
	if isYAML(file) {
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
		return normalizeYAML(v), nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return v, nil
}

// loadJSONBytes reads a document and returns it as JSON bytes,
// converting from YAML when the file name says so.
func loadJSONBytes(file string) ([]byte, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, err
	}
	if !isYAML(file) {
		return data, nil
	}

	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	return json.Marshal(normalizeYAML(v))
}

func readFile(file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(file)
}

func isYAML(file string) bool {
	ext := strings.ToLower(filepath.Ext(file))
	return ext == ".yaml" || ext == ".yml"
}

// normalizeYAML rewrites the map[any]any values the YAML decoder
// can produce into the map[string]any form the validator expects.
func normalizeYAML(v any) any {
	switch v := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[k] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range v {
			v[i] = normalizeYAML(val)
		}
		return v
	}
	return v
}
