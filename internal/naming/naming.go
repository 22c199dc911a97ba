// Package naming derives release-style output filenames from episode slugs.
package naming

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonAlnum       = regexp.MustCompile(`[^a-zA-Z0-9]`)
	multiDot       = regexp.MustCompile(`\.{2,}`)
	dottedSeasonEp = regexp.MustCompile(`S(\d{1,3})\.A(\d{1,3})`)
	seasonEpisode  = regexp.MustCompile(`S(\d{1,3})A(\d{1,3})`)

	titleCaser = cases.Title(language.Dutch)
)

// FromSlug turns an episode slug such as "ik-vraag-het-aan-s1-a1" into a
// dotted, title-cased filename: "Ik.Vraag.Het.Aan.S01E01". Slugs without a
// season/episode marker keep their title-cased dotted form.
func FromSlug(slug string) string {
	name := nonAlnum.ReplaceAllString(slug, ".")
	name = multiDot.ReplaceAllString(name, ".")
	name = strings.Trim(name, ".")
	name = titleCaser.String(name)
	// The slug form "s1-a1" arrives here as "S1.A1"; join it so the SxxEyy
	// rewrite below sees both dotted and already-joined variants.
	name = dottedSeasonEp.ReplaceAllString(name, "S${1}A${2}")
	name = seasonEpisode.ReplaceAllStringFunc(name, func(match string) string {
		parts := seasonEpisode.FindStringSubmatch(match)
		season, _ := strconv.Atoi(parts[1])
		episode, _ := strconv.Atoi(parts[2])
		return fmt.Sprintf("S%02dE%02d", season, episode)
	})
	return name
}
