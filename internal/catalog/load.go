package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/contributorsambhav/portfolio/internal/errors"
)

//go:embed default.yaml
var defaultCatalog []byte

var validate = validator.New()

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file. An empty path loads the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected so
// typos in hand-authored content surface at startup.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, errors.NewInvalidCatalog([]string{err.Error()})
	}

	if problems := Validate(&c); len(problems) > 0 {
		return nil, errors.NewInvalidCatalog(problems)
	}
	return &c, nil
}

// Validate returns every problem found in c: struct tag violations and
// duplicate ids. An empty result means the catalog is usable.
func Validate(c *Catalog) []string {
	var problems []string

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				problems = append(problems, formatFieldError(fe))
			}
		} else {
			problems = append(problems, err.Error())
		}
	}

	problems = append(problems, duplicateIDs("project", len(c.Projects), func(i int) string { return c.Projects[i].ID })...)
	problems = append(problems, duplicateIDs("experience", len(c.Experience), func(i int) string { return c.Experience[i].ID })...)
	problems = append(problems, duplicateIDs("achievement", len(c.Achievements), func(i int) string { return c.Achievements[i].ID })...)
	problems = append(problems, duplicateIDs("web3", len(c.Web3), func(i int) string { return c.Web3[i].ID })...)

	return problems
}

func duplicateIDs(kind string, n int, id func(int) string) []string {
	var problems []string
	seen := make(map[string]bool, n)
	for i := range n {
		v := id(i)
		if v == "" {
			continue
		}
		if seen[v] {
			problems = append(problems, fmt.Sprintf("duplicate %s id %q", kind, v))
		}
		seen[v] = true
	}
	return problems
}

// formatFieldError renders a validation failure with its catalog path,
// e.g. "Projects[2].Category must be one of: web web3 ai fullstack blockchain".
func formatFieldError(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Catalog.")

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
