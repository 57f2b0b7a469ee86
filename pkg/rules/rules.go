package rules

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/validation"
)

// File is the top-level rules document.
type File struct {
	Rules []Definition `yaml:"rules"`
}

// Definition is one rule entry in a rules file.
type Definition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	JSON        string `yaml:"json"`
	Template    string `yaml:"template"`
	SQL         string `yaml:"sql"`
	SQLPart     string `yaml:"sql_part"`
}

// Parse reads a rules document from r.
func Parse(r io.Reader) ([]Definition, error) {
	var file File
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}
	return file.Rules, nil
}

// LoadResult contains the results of loading a rules file
type LoadResult struct {
	Created []string
	Updated []string
}

// Loader upserts rule definitions into the rule_names table by name.
type Loader struct {
	db     *gorm.DB
	dryRun bool
}

// NewLoader creates a new rules loader
func NewLoader(db *gorm.DB) *Loader {
	return &Loader{db: db}
}

// WithDryRun sets whether to validate only without applying changes
func (l *Loader) WithDryRun(dryRun bool) *Loader {
	l.dryRun = dryRun
	return l
}

// LoadFromReader parses and loads rules from an io.Reader
func (l *Loader) LoadFromReader(r io.Reader) (*LoadResult, error) {
	defs, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.Load(defs)
}

// LoadFile parses and loads rules from a file on disk
func (l *Loader) LoadFile(path string) (*LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return l.LoadFromReader(f)
}

// Load applies rule definitions. Rules are matched by name: unknown
// names are created, known names have their fields overwritten.
func (l *Loader) Load(defs []Definition) (*LoadResult, error) {
	result := &LoadResult{}

	for i, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("rule %d has no name", i+1)
		}

		record := toRecord(def)
		if errs := validation.Struct(record); errs != nil {
			return nil, fmt.Errorf("rule %q: %s", def.Name, flatten(errs))
		}

		var existing model.RuleName
		err := l.db.Where("name = ?", def.Name).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if !l.dryRun {
				if err := l.db.Create(&record).Error; err != nil {
					return nil, fmt.Errorf("failed to create rule %q: %w", def.Name, err)
				}
			}
			result.Created = append(result.Created, def.Name)
		case err != nil:
			return nil, fmt.Errorf("failed to look up rule %q: %w", def.Name, err)
		default:
			record.ID = existing.ID
			if !l.dryRun {
				if err := l.db.Save(&record).Error; err != nil {
					return nil, fmt.Errorf("failed to update rule %q: %w", def.Name, err)
				}
			}
			result.Updated = append(result.Updated, def.Name)
		}
	}

	return result, nil
}

func toRecord(def Definition) model.RuleName {
	return model.RuleName{
		Name:        def.Name,
		Description: def.Description,
		JSON:        def.JSON,
		Template:    def.Template,
		SQLStr:      def.SQL,
		SQLPart:     def.SQLPart,
	}
}

func flatten(errs validation.Errors) string {
	var parts []string
	for field, messages := range errs {
		for _, msg := range messages {
			parts = append(parts, field+": "+msg)
		}
	}
	return strings.Join(parts, "; ")
}
