package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pevans/newbooks/layout"
	"github.com/pevans/newbooks/records"
	"gopkg.in/yaml.v3"
)

// Custom errors for configuration validation
var (
	ErrMissingURL       = errors.New("catalog url is required")
	ErrNoAuthors        = errors.New("at least one author is required")
	ErrUnknownMediaType = errors.New("unknown media type code")
)

// KnownMediaCodes maps catalog media codes to what they select.
var KnownMediaCodes = map[string]string{
	"a": "book",
	"g": "video",
	"i": "audiobook",
	"j": "music",
	"z": "ebook",
}

// MediaType is the {type, code} pair the catalog uses to limit results.
type MediaType struct {
	Type string `yaml:"type"`
	Code string `yaml:"code"`
}

// Validate checks that the pair names a known media code.
func (m MediaType) Validate() error {
	if strings.TrimSpace(m.Type) == "" {
		return fmt.Errorf("media type is empty")
	}
	if _, ok := KnownMediaCodes[m.Code]; !ok {
		return fmt.Errorf("%w %q (known: %s)", ErrUnknownMediaType, m.Code, knownCodes())
	}
	return nil
}

func knownCodes() string {
	codes := make([]string, 0, len(KnownMediaCodes))
	for code := range KnownMediaCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return strings.Join(codes, ", ")
}

// Patterns holds ignore patterns. In YAML it may be a single string or a
// list of strings.
type Patterns []string

// UnmarshalYAML accepts a scalar or a sequence.
func (p *Patterns) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*p = Patterns{s}
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*p = list
	default:
		return fmt.Errorf("line %d: ignore must be a string or a list of strings", value.Line)
	}
	return nil
}

// Author is one configured author to check.
type Author struct {
	LastName  string     `yaml:"last_name"`
	FirstName string     `yaml:"first_name"`
	MediaType *MediaType `yaml:"media_type,omitempty"`
	Ignore    Patterns   `yaml:"ignore,omitempty"`
}

// DisplayName is the name as the catalog prints it in titles.
func (a Author) DisplayName() string {
	return a.FirstName + " " + a.LastName
}

// Media returns the author's media type, or def when none is set.
func (a Author) Media(def MediaType) MediaType {
	if a.MediaType != nil {
		return *a.MediaType
	}
	return def
}

// IgnoreSet compiles the author's ignore patterns.
func (a Author) IgnoreSet() (*records.IgnoreSet, error) {
	return records.NewIgnoreSet(a.Ignore)
}

// Authors is the author list. In YAML a single mapping is accepted as a list
// of one.
type Authors []Author

// UnmarshalYAML accepts a mapping or a sequence of mappings.
func (a *Authors) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		var one Author
		if err := value.Decode(&one); err != nil {
			return err
		}
		*a = Authors{one}
	case yaml.SequenceNode:
		var list []Author
		if err := value.Decode(&list); err != nil {
			return err
		}
		*a = list
	default:
		return fmt.Errorf("line %d: authors must be a mapping or a list of mappings", value.Line)
	}
	return nil
}

// Config is the contents of the configuration file. Layouts holds extra
// results page descriptors that --layout can select by name.
type Config struct {
	URL       string              `yaml:"url"`
	MediaType MediaType           `yaml:"media_type"`
	Authors   Authors             `yaml:"authors"`
	Layouts   []layout.Descriptor `yaml:"layouts,omitempty"`
}

// RegisterLayouts adds the configured descriptors to the layout registry.
func (c *Config) RegisterLayouts() error {
	for _, d := range c.Layouts {
		if err := layout.Register(d); err != nil {
			return fmt.Errorf("failed to register layout: %w", err)
		}
	}
	return nil
}

// Validate checks everything the checker assumes about its input.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return ErrMissingURL
	}
	if err := c.MediaType.Validate(); err != nil {
		return fmt.Errorf("default media_type: %w", err)
	}
	if len(c.Authors) == 0 {
		return ErrNoAuthors
	}

	for i, d := range c.Layouts {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("layout %d: %w", i+1, err)
		}
	}

	for i, author := range c.Authors {
		if strings.TrimSpace(author.LastName) == "" {
			return fmt.Errorf("author %d: last_name is required", i+1)
		}
		if strings.TrimSpace(author.FirstName) == "" {
			return fmt.Errorf("author %d (%s): first_name is required", i+1, author.LastName)
		}
		if author.MediaType != nil {
			if err := author.MediaType.Validate(); err != nil {
				return fmt.Errorf("author %d (%s): media_type: %w", i+1, author.DisplayName(), err)
			}
		}
		if _, err := author.IgnoreSet(); err != nil {
			return fmt.Errorf("author %d (%s): %w", i+1, author.DisplayName(), err)
		}
	}

	return nil
}
