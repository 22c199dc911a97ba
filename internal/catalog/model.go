package catalog

import "strings"

// Episode is a single watchable item discovered under a season.
type Episode struct {
	Title       string
	Number      int
	Description string
	PageURL     string
	Thumbnail   string
}

// Season groups episodes under the season label the platform reports.
// Episodes keep discovery order, which is not necessarily numeric order.
type Season struct {
	Title    string
	Poster   string
	Episodes []Episode
}

// Series is one program with its discovered seasons.
type Series struct {
	Title       string
	Link        string
	Poster      string
	Description string
	Seasons     []*Season
}

// EnsureSeason returns the season with the given title, creating it on
// first sight. Titles are compared exactly: casing and whitespace
// variants count as distinct seasons. The first-seen poster wins.
func (s *Series) EnsureSeason(title, poster string) *Season {
	for _, season := range s.Seasons {
		if season.Title == title {
			return season
		}
	}
	season := &Season{Title: title, Poster: poster}
	s.Seasons = append(s.Seasons, season)
	return season
}

// EpisodeCount returns the total number of episodes across all seasons.
func (s *Series) EpisodeCount() int {
	total := 0
	for _, season := range s.Seasons {
		total += len(season.Episodes)
	}
	return total
}

// Slug derives the trailing path segment of the series link, used as a
// compact identifier in listings. Empty when the link has no path.
func (s *Series) Slug() string {
	trimmed := strings.TrimRight(s.Link, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	return trimmed[idx+1:]
}
