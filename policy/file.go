package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileDoc is the YAML schema for a policy document. All sections are
// optional; omitted sections keep the defaults.
type fileDoc struct {
	Eligibility *EligibilityCriteria `yaml:"eligibility"`
	Programs    []Program            `yaml:"programs"`
	Loan        *LoanPolicy          `yaml:"loan"`
	Templates   map[string]string    `yaml:"templates"`
}

// LoadFile reads a YAML policy document into a Static source. Missing
// sections fall back to the documented defaults; an unreadable or
// unparseable file is an error because a caller pointing at a policy file
// expects it to be honored.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML policy document into a Static source.
func Parse(data []byte) (*Static, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse policy file: %w", err)
	}

	var opts []StaticOption
	if doc.Eligibility != nil {
		criteria := *doc.Eligibility
		if len(criteria.RequiredDocuments) == 0 {
			criteria.RequiredDocuments = DefaultEligibility().RequiredDocuments
		}
		opts = append(opts, WithEligibility(criteria))
	}
	for _, p := range doc.Programs {
		opts = append(opts, WithProgram(p))
	}
	if doc.Loan != nil {
		opts = append(opts, WithLoan(*doc.Loan))
	}
	for name, text := range doc.Templates {
		opts = append(opts, WithTemplate(name, text))
	}
	return NewStatic(opts...), nil
}
