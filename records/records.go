// Package records turns located catalog records into the list of titles an
// author published in a given year.
package records

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pevans/newbooks/catalog"
)

// Cell positions within a RawRecord.
const (
	TitleCell   = 2
	YearCell    = 4
	AltYearCell = 5
)

// MarkerSuffix is the placeholder the catalog appends to some titles.
const MarkerSuffix = "\u00a0*"

var bylinePattern = regexp.MustCompile(`^by\s`)

// PublicationRecord is the normalized view of one RawRecord.
type PublicationRecord struct {
	Title     string
	YearField string
}

// Normalizer cleans records for one author. The author-suffix pattern is
// compiled once.
type Normalizer struct {
	suffix *regexp.Regexp
}

// NewNormalizer creates a normalizer for author, matched exactly as
// configured. An empty author strips no suffix.
func NewNormalizer(author string) *Normalizer {
	if author == "" {
		return &Normalizer{}
	}
	return &Normalizer{
		suffix: regexp.MustCompile(`\s*/\s*(?:by\s+)?` + regexp.QuoteMeta(author) + `\.?\s*$`),
	}
}

// Normalize extracts the title and year field from raw and strips the
// author's name and the trailing placeholder marker from the title.
func (n *Normalizer) Normalize(raw catalog.RawRecord) PublicationRecord {
	yearField := raw.Cell(YearCell)
	if bylinePattern.MatchString(yearField) {
		yearField = raw.Cell(AltYearCell)
	}

	title := n.StripAuthor(raw.Cell(TitleCell))
	title = StripMarker(title)

	return PublicationRecord{
		Title:     title,
		YearField: yearField,
	}
}

// StripAuthor removes a trailing "/ [by ]<author>[.]" from title.
func (n *Normalizer) StripAuthor(title string) string {
	if n.suffix == nil {
		return title
	}
	return n.suffix.ReplaceAllString(title, "")
}

// Normalize is NewNormalizer(author).Normalize(raw).
func Normalize(raw catalog.RawRecord, author string) PublicationRecord {
	return NewNormalizer(author).Normalize(raw)
}

// StripAuthor is NewNormalizer(author).StripAuthor(title).
func StripAuthor(title, author string) string {
	return NewNormalizer(author).StripAuthor(title)
}

// StripMarker removes a trailing non-breaking space plus asterisk.
func StripMarker(title string) string {
	return strings.TrimSuffix(title, MarkerSuffix)
}

// IgnoreSet suppresses titles matching any of its patterns. Patterns are
// unanchored and case-insensitive.
type IgnoreSet struct {
	patterns []*regexp.Regexp
}

// NewIgnoreSet compiles patterns into an IgnoreSet.
func NewIgnoreSet(patterns []string) (*IgnoreSet, error) {
	set := &IgnoreSet{}
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", p, err)
		}
		set.patterns = append(set.patterns, re)
	}
	return set, nil
}

// Matches reports whether title contains any pattern. A nil set matches
// nothing.
func (s *IgnoreSet) Matches(title string) bool {
	if s == nil {
		return false
	}
	for _, re := range s.patterns {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}

// ExtractAndFilter returns the titles of records published in year, in page
// order. Records are expected newest first, so the first record whose year
// field lacks year ends the scan; later records are never examined.
func ExtractAndFilter(raws []catalog.RawRecord, author, year string, ignore *IgnoreSet) []string {
	normalizer := NewNormalizer(author)
	titles := []string{}
	for _, raw := range raws {
		record := normalizer.Normalize(raw)
		if !strings.Contains(record.YearField, year) {
			break
		}
		if ignore.Matches(record.Title) {
			continue
		}
		titles = append(titles, record.Title)
	}
	return titles
}
