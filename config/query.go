package config

import (
	"net/url"
)

// BuildQueryURL appends the author's "Last,First" search term to base and,
// when sortByMedia is set, a limitbox_1 term for the media type.
func BuildQueryURL(base string, author Author, media MediaType, sortByMedia bool) string {
	query := base + url.QueryEscape(author.LastName) + "," + url.QueryEscape(author.FirstName)
	if sortByMedia {
		query += "&limitbox_1=" + url.QueryEscape(media.Type+" = "+media.Code)
	}
	return query
}
