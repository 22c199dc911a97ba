package vrtmax

import (
	"regexp"
	"strconv"
)

// Component kinds the traversal engine dispatches on. Anything else is
// either pruned (known layout noise) or walked generically through its
// nested items.
const (
	kindEpisodeTile       = "EpisodeTile"
	kindProgramTile       = "ProgramTile"
	kindPaginatedTileList = "PaginatedTileList"
	kindStaticTileList    = "StaticTileList"
	kindLazyTileList      = "LazyTileList"
)

// prunedKinds are layout-only component kinds dropped without recursion.
var prunedKinds = map[string]struct{}{
	"PageHeader":     {},
	"Banner":         {},
	"Text":           {},
	"TagsList":       {},
	"PresentersList": {},
}

// Meta is one entry of a tile's positional metadata.
type Meta struct {
	Type       string `json:"type"`
	Value      string `json:"value"`
	ShortValue string `json:"shortValue"`
	LongValue  string `json:"longValue"`
}

// PageInfo carries the cursor state of a paginated list.
type PageInfo struct {
	EndCursor       string `json:"endCursor"`
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
}

// Edge wraps one node of a paginated list.
type Edge struct {
	Cursor string    `json:"cursor"`
	Node   Component `json:"node"`
}

// PaginatedItems is the materialized page of a paginated list.
type PaginatedItems struct {
	PageInfo PageInfo `json:"pageInfo"`
	Edges    []Edge   `json:"edges"`
}

// Component is the decoded union over all component-tree node kinds.
// Only the fields relevant to a node's kind are populated; the rest stay
// at their zero values.
type Component struct {
	TypeName    string `json:"__typename"`
	ObjectID    string `json:"objectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	ListID      string `json:"listId"`
	Link        string `json:"link"`

	Image struct {
		TemplateURL string `json:"templateUrl"`
	} `json:"image"`

	PrimaryMeta []Meta `json:"primaryMeta"`

	PlayAction struct {
		PageURL string `json:"pageUrl"`
	} `json:"playAction"`

	Episode struct {
		ObjectID string `json:"objectId"`
		Program  struct {
			ObjectID string `json:"objectId"`
			Link     string `json:"link"`
		} `json:"program"`
	} `json:"episode"`

	// Items holds a static list's tiles or a container's navigation
	// entries; Components holds a navigation entry's nested components.
	Items          []Component    `json:"items"`
	Components     []Component    `json:"components"`
	PaginatedItems PaginatedItems `json:"paginatedItems"`
}

var episodeNumber = regexp.MustCompile(`\d+`)

// episodeMeta extracts the season title and episode number from an
// EpisodeTile's positional metadata: index 0 carries the season label,
// index 1 an episode label containing a digit group. The second return
// is false when either is missing or unparseable.
func (c *Component) episodeMeta() (seasonTitle string, number int, ok bool) {
	if len(c.PrimaryMeta) < 2 {
		return "", 0, false
	}
	seasonTitle = c.PrimaryMeta[0].Value
	digits := episodeNumber.FindString(c.PrimaryMeta[1].Value)
	if seasonTitle == "" || digits == "" {
		return "", 0, false
	}
	number, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return seasonTitle, number, true
}

// Response envelopes for the named GraphQL operations.

type videoPageResponse struct {
	Data struct {
		Page struct {
			Episode struct {
				ID          string `json:"id"`
				Title       string `json:"title"`
				Name        string `json:"name"`
				WatchAction struct {
					StreamID string `json:"streamId"`
					VideoID  string `json:"videoId"`
				} `json:"watchAction"`
			} `json:"episode"`
		} `json:"page"`
	} `json:"data"`
}

type seriesListResponse struct {
	Data struct {
		List struct {
			TypeName       string         `json:"__typename"`
			ListID         string         `json:"listId"`
			PaginatedItems PaginatedItems `json:"paginatedItems"`
		} `json:"list"`
	} `json:"data"`
}

type programPageResponse struct {
	Data struct {
		Page struct {
			ObjectID   string      `json:"objectId"`
			Permalink  string      `json:"permalink"`
			Components []Component `json:"components"`
		} `json:"page"`
	} `json:"data"`
}

type lazyListResponse struct {
	Data struct {
		List struct {
			TypeName string      `json:"__typename"`
			ListID   string      `json:"listId"`
			ObjectID string      `json:"objectId"`
			Title    string      `json:"title"`
			Items    []Component `json:"items"`
		} `json:"list"`
	} `json:"data"`
}
