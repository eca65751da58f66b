package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper: a config that passes validation
func validConfig() *Config {
	return &Config{
		URL:       "catalog.example.org/search?term=",
		MediaType: MediaType{Type: "LM01", Code: "a"},
		Authors: Authors{
			{LastName: "Beaton", FirstName: "M.C.", Ignore: Patterns{"policeman"}},
		},
	}
}

// TestValidate_Success verifies a complete config passes
func TestValidate_Success(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

// TestValidate_Failures verifies each rule is enforced
func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing url", func(c *Config) { c.URL = "  " }, "catalog url is required"},
		{"empty media type", func(c *Config) { c.MediaType.Type = "" }, "media type is empty"},
		{"unknown media code", func(c *Config) { c.MediaType.Code = "x" }, "unknown media type code"},
		{"no authors", func(c *Config) { c.Authors = nil }, "at least one author"},
		{"missing last name", func(c *Config) { c.Authors[0].LastName = "" }, "author 1: last_name is required"},
		{"missing first name", func(c *Config) { c.Authors[0].FirstName = "" }, "author 1 (Beaton): first_name is required"},
		{"bad author media", func(c *Config) { c.Authors[0].MediaType = &MediaType{Type: "LM01", Code: "nope"} }, "author 1 (M.C. Beaton): media_type"},
		{"bad ignore pattern", func(c *Config) { c.Authors[0].Ignore = Patterns{"(oops"} }, "invalid ignore pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestAuthor_Media verifies per-author overrides and the default
func TestAuthor_Media(t *testing.T) {
	def := MediaType{Type: "LM01", Code: "a"}

	plain := Author{LastName: "Beaton", FirstName: "M.C."}
	assert.Equal(t, def, plain.Media(def))

	audio := MediaType{Type: "LM01", Code: "i"}
	override := Author{LastName: "Penny", FirstName: "Louise", MediaType: &audio}
	assert.Equal(t, audio, override.Media(def))
}

// TestAuthor_IgnoreSet verifies patterns compile into a working set
func TestAuthor_IgnoreSet(t *testing.T) {
	author := Author{LastName: "Beaton", FirstName: "M.C.", Ignore: Patterns{"policeman"}}

	set, err := author.IgnoreSet()
	require.NoError(t, err)
	assert.True(t, set.Matches("Death of a Dishonest Policeman"))
}
