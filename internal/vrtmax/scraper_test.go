package vrtmax

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testSeriesListID = "series-facet"

// seriesListPage renders one page of the series listing with program
// tiles named after the given slugs.
func seriesListPage(slugs []string, endCursor string, hasNext bool) string {
	var edges []string
	for _, slug := range slugs {
		edges = append(edges, fmt.Sprintf(`{
			"cursor": "c-%s",
			"node": {
				"__typename": "ProgramTile",
				"objectId": "%s",
				"title": "Series %s",
				"description": "About %s",
				"link": "/vrtmax/a-z/%s/",
				"image": {"templateUrl": "https://images.vrt.be/%s.jpg"}
			}
		}`, slug, slug, slug, slug, slug, slug))
	}
	return fmt.Sprintf(`{"data":{"list":{
		"__typename": "PaginatedTileList",
		"listId": %q,
		"paginatedItems": {
			"edges": [%s],
			"pageInfo": {"endCursor": %q, "hasNextPage": %t}
		}
	}}}`, testSeriesListID, strings.Join(edges, ","), endCursor, hasNext)
}

func episodeTile(title string, meta ...string) string {
	var metas []string
	for _, m := range meta {
		metas = append(metas, fmt.Sprintf(`{"type":"default","value":%q}`, m))
	}
	return fmt.Sprintf(`{
		"__typename": "EpisodeTile",
		"title": %q,
		"primaryMeta": [%s],
		"playAction": {"pageUrl": "/vrtmax/a-z/s1/1/%s/"},
		"image": {"templateUrl": "https://images.vrt.be/ep.jpg"}
	}`, title, strings.Join(metas, ","), strings.ToLower(strings.ReplaceAll(title, " ", "-")))
}

// scrapeTestServer serves a three-page series listing followed by
// per-series component trees. Series s2 always fails its page query.
func scrapeTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc(graphqlPath, func(w http.ResponseWriter, r *http.Request) {
		req := decodeGraphQL(t, r)

		switch req.OperationName {
		case "PaginatedTileListPage":
			if got := req.Variables["listId"]; got != testSeriesListID {
				t.Errorf("unexpected listId %v", got)
			}
			after, _ := req.Variables["after"].(string)
			switch after {
			case "":
				fmt.Fprint(w, seriesListPage([]string{"s1", "s2"}, "p1", true))
			case "p1":
				fmt.Fprint(w, seriesListPage([]string{"s3", "s4"}, "p2", true))
			case "p2":
				fmt.Fprint(w, seriesListPage([]string{"s5"}, "p3", false))
			default:
				t.Errorf("unexpected cursor %q", after)
				http.Error(w, "bad cursor", http.StatusBadRequest)
			}

		case "VideoProgramPage":
			pageID, _ := req.Variables["pageId"].(string)
			switch {
			case pageID == "/vrtmax/a-z/s1.model.json":
				fmt.Fprintf(w, `{"data":{"page":{"components":[
					{"__typename": "PageHeader", "title": "Series s1"},
					{"__typename": "PaginatedTileList", "paginatedItems": {"edges": [
						{"node": %s},
						{"node": %s}
					]}},
					{"__typename": "ContainerNavigation", "items": [
						{"title": "Extra", "components": [%s]}
					]},
					{"__typename": "LazyTileList", "listId": "s1-more-seasons"}
				]}}}`,
					episodeTile("Pilot", "Season 1", "Episode 3"),
					episodeTile("Broken Tile", "Season 1"),
					episodeTile("Nested", "Season 1", "Aflevering 4"))
			case pageID == "/vrtmax/a-z/s2.model.json":
				http.Error(w, "upstream broke", http.StatusInternalServerError)
			case strings.HasSuffix(pageID, ".model.json"):
				fmt.Fprint(w, `{"data":{"page":{"components":[]}}}`)
			default:
				t.Errorf("unexpected pageId %q", pageID)
				http.Error(w, "bad page", http.StatusBadRequest)
			}

		case "MoreSeasons":
			if got := req.Variables["listId"]; got != "s1-more-seasons" {
				t.Errorf("unexpected lazy listId %v", got)
			}
			fmt.Fprintf(w, `{"data":{"list":{
				"__typename": "StaticTileList",
				"listId": "s1-more-seasons",
				"items": [%s]
			}}}`, episodeTile("Opener", "Season 2", "Aflevering 1"))

		default:
			t.Errorf("unexpected operation %q", req.OperationName)
			http.Error(w, "bad operation", http.StatusBadRequest)
		}
	})

	return httptest.NewServer(mux)
}

func TestSeriesTilesPagination(t *testing.T) {
	server := scrapeTestServer(t)
	defer server.Close()

	scraper := NewScraper(testClient(t, server.URL), testSeriesListID, nil)
	tiles, err := scraper.seriesTiles(context.Background())
	if err != nil {
		t.Fatalf("seriesTiles returned error: %v", err)
	}

	if len(tiles) != 5 {
		t.Fatalf("expected 5 tiles across 3 pages, got %d", len(tiles))
	}
	want := []string{"s1", "s2", "s3", "s4", "s5"}
	for i, tile := range tiles {
		if tile.ObjectID != want[i] {
			t.Errorf("tile %d = %q, want %q (page order must be preserved)", i, tile.ObjectID, want[i])
		}
	}
}

func TestAllSeries(t *testing.T) {
	server := scrapeTestServer(t)
	defer server.Close()

	scraper := NewScraper(testClient(t, server.URL), testSeriesListID, nil)
	series, err := scraper.AllSeries(context.Background())
	if err != nil {
		t.Fatalf("AllSeries returned error: %v", err)
	}

	// s2's page query fails, so only that series drops out.
	if len(series) != 4 {
		t.Fatalf("expected 4 series, got %d", len(series))
	}
	for _, sr := range series {
		if strings.Contains(sr.Link, "/s2/") {
			t.Errorf("failed series must be skipped, found %q", sr.Link)
		}
	}

	first := series[0]
	if first.Title != "Series s1" {
		t.Fatalf("unexpected first series %q", first.Title)
	}
	if first.Link != server.URL+"/vrtmax/a-z/s1/" {
		t.Errorf("series link not absolute: %q", first.Link)
	}
	if len(first.Seasons) != 2 {
		t.Fatalf("expected 2 seasons, got %d", len(first.Seasons))
	}

	seasonOne := first.Seasons[0]
	if seasonOne.Title != "Season 1" {
		t.Errorf("season title = %q", seasonOne.Title)
	}
	// Pilot from the paginated list, Nested from the container walk.
	// The single-meta tile is skipped with a warning.
	if len(seasonOne.Episodes) != 2 {
		t.Fatalf("expected 2 episodes in season 1, got %d", len(seasonOne.Episodes))
	}
	if seasonOne.Episodes[0].Title != "Pilot" || seasonOne.Episodes[0].Number != 3 {
		t.Errorf("unexpected first episode: %+v", seasonOne.Episodes[0])
	}
	if seasonOne.Episodes[1].Title != "Nested" || seasonOne.Episodes[1].Number != 4 {
		t.Errorf("unexpected nested episode: %+v", seasonOne.Episodes[1])
	}
	if !strings.HasPrefix(seasonOne.Episodes[0].PageURL, server.URL+"/") {
		t.Errorf("episode page url not absolute: %q", seasonOne.Episodes[0].PageURL)
	}

	seasonTwo := first.Seasons[1]
	if seasonTwo.Title != "Season 2" {
		t.Errorf("lazy season title = %q", seasonTwo.Title)
	}
	if len(seasonTwo.Episodes) != 1 || seasonTwo.Episodes[0].Number != 1 {
		t.Errorf("lazy season episodes: %+v", seasonTwo.Episodes)
	}
}

func TestEpisodeMeta(t *testing.T) {
	tile := Component{PrimaryMeta: []Meta{{Value: "Seizoen 3"}, {Value: "Aflevering 12"}}}
	season, number, ok := tile.episodeMeta()
	if !ok || season != "Seizoen 3" || number != 12 {
		t.Errorf("episodeMeta() = %q, %d, %t", season, number, ok)
	}

	for name, bad := range map[string]Component{
		"single meta":  {PrimaryMeta: []Meta{{Value: "Seizoen 3"}}},
		"no digits":    {PrimaryMeta: []Meta{{Value: "Seizoen 3"}, {Value: "Aflevering"}}},
		"empty season": {PrimaryMeta: []Meta{{Value: ""}, {Value: "Aflevering 2"}}},
	} {
		if _, _, ok := bad.episodeMeta(); ok {
			t.Errorf("%s: expected rejection", name)
		}
	}
}
