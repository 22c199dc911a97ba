package vrtmax

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"zender/internal/catalog"
)

// seriesPageSize is the page size requested from paginated lists.
const seriesPageSize = 30

// Scraper enumerates the platform catalog: all series through the
// cursor-paginated listing, then seasons and episodes through each
// series' component tree.
type Scraper struct {
	client       *Client
	seriesListID string
	logger       *slog.Logger
}

// NewScraper builds a Scraper over a platform client.
func NewScraper(client *Client, seriesListID string, logger *slog.Logger) *Scraper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scraper{client: client, seriesListID: seriesListID, logger: logger}
}

// AllSeries walks the whole catalog. A failure fetching a listing page
// aborts the run; a failure discovering one series' seasons is logged
// and skips only that series.
func (s *Scraper) AllSeries(ctx context.Context) ([]catalog.Series, error) {
	tiles, err := s.seriesTiles(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("series enumerated", slog.Int("count", len(tiles)))

	series := make([]catalog.Series, 0, len(tiles))
	for _, tile := range tiles {
		entry := catalog.Series{
			Title:       tile.Title,
			Link:        s.absoluteURL(tile.Link),
			Poster:      tile.Image.TemplateURL,
			Description: tile.Description,
		}
		if entry.Link == "" {
			s.logger.Warn("series tile without link skipped", slog.String("title", tile.Title))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.discoverSeasons(ctx, &entry); err != nil {
			s.logger.Warn("season discovery failed, skipping series",
				slog.String("series", entry.Title),
				slog.String("error", err.Error()))
			continue
		}
		s.logger.Debug("series discovered",
			slog.String("series", entry.Title),
			slog.Int("seasons", len(entry.Seasons)),
			slog.Int("episodes", entry.EpisodeCount()))
		series = append(series, entry)
	}
	return series, nil
}

// seriesTiles drains the cursor-paginated series listing. Termination
// relies on the server eventually reporting no next page; there is no
// local iteration cap.
func (s *Scraper) seriesTiles(ctx context.Context) ([]Component, error) {
	var tiles []Component
	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		variables := map[string]any{
			"listId":        s.seriesListID,
			"lazyItemCount": seriesPageSize,
		}
		if cursor != "" {
			variables["after"] = cursor
		}

		var resp seriesListResponse
		if err := s.client.graphql(ctx, "PaginatedTileListPage", seriesListQuery, variables, &resp); err != nil {
			return nil, fmt.Errorf("list series page (after=%q): %w", cursor, err)
		}

		page := resp.Data.List.PaginatedItems
		for _, edge := range page.Edges {
			tiles = append(tiles, edge.Node)
		}
		s.logger.Debug("series page fetched",
			slog.Int("items", len(page.Edges)),
			slog.Bool("has_next", page.PageInfo.HasNextPage))

		if !page.PageInfo.HasNextPage {
			return tiles, nil
		}
		cursor = page.PageInfo.EndCursor
	}
}

// discoverSeasons loads one series' component tree and walks it.
func (s *Scraper) discoverSeasons(ctx context.Context, series *catalog.Series) error {
	pagePath, err := pagePathOf(series.Link)
	if err != nil {
		return err
	}

	var resp programPageResponse
	err = s.client.graphql(ctx, "VideoProgramPage", programPageQuery, map[string]any{
		"pageId":        pagePath + ".model.json",
		"lazyItemCount": seriesPageSize,
	}, &resp)
	if err != nil {
		return err
	}

	for _, component := range resp.Data.Page.Components {
		if err := s.walk(ctx, series, component); err != nil {
			return err
		}
	}
	return nil
}

// walk dispatches one component-tree node by kind. Episode tiles are
// leaves; list kinds recurse into their items; lazy lists materialize
// through a secondary query first. Known layout kinds are pruned, and
// anything unrecognized recurses into whatever nesting it exposes or is
// dropped with a log line.
func (s *Scraper) walk(ctx context.Context, series *catalog.Series, component Component) error {
	switch component.TypeName {
	case kindEpisodeTile:
		s.addEpisode(series, component)
		return nil

	case kindPaginatedTileList:
		for _, edge := range component.PaginatedItems.Edges {
			if err := s.walk(ctx, series, edge.Node); err != nil {
				return err
			}
		}
		return nil

	case kindStaticTileList:
		return s.walkAll(ctx, series, component.Items)

	case kindLazyTileList:
		items, err := s.lazyItems(ctx, component.ListID)
		if err != nil {
			return err
		}
		return s.walkAll(ctx, series, items)

	case kindProgramTile:
		// Cross-links to other programs inside a series page are noise.
		return nil
	}

	if _, pruned := prunedKinds[component.TypeName]; pruned {
		return nil
	}
	if len(component.Items) > 0 || len(component.Components) > 0 {
		if err := s.walkAll(ctx, series, component.Items); err != nil {
			return err
		}
		return s.walkAll(ctx, series, component.Components)
	}

	s.logger.Debug("unhandled component dropped",
		slog.String("kind", component.TypeName),
		slog.String("series", series.Title))
	return nil
}

func (s *Scraper) walkAll(ctx context.Context, series *catalog.Series, components []Component) error {
	for _, component := range components {
		if err := s.walk(ctx, series, component); err != nil {
			return err
		}
	}
	return nil
}

// lazyItems materializes a deferred tile list through its dedicated
// query.
func (s *Scraper) lazyItems(ctx context.Context, listID string) ([]Component, error) {
	var resp lazyListResponse
	err := s.client.graphql(ctx, "MoreSeasons", lazyListQuery, map[string]any{
		"listId": listID,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("materialize list %s: %w", listID, err)
	}
	return resp.Data.List.Items, nil
}

// addEpisode files an episode tile under its season. Tiles without the
// two positional meta fields, or whose episode label has no digits, are
// skipped with a warning.
func (s *Scraper) addEpisode(series *catalog.Series, tile Component) {
	seasonTitle, number, ok := tile.episodeMeta()
	if !ok {
		s.logger.Warn("episode tile missing usable meta, skipped",
			slog.String("series", series.Title),
			slog.String("episode", tile.Title),
			slog.Int("meta_fields", len(tile.PrimaryMeta)))
		return
	}

	season := series.EnsureSeason(seasonTitle, series.Poster)
	season.Episodes = append(season.Episodes, catalog.Episode{
		Title:       tile.Title,
		Number:      number,
		Description: tile.Description,
		PageURL:     s.absoluteURL(tile.PlayAction.PageURL),
		Thumbnail:   tile.Image.TemplateURL,
	})
}

// absoluteURL resolves a platform-relative link against the site root.
func (s *Scraper) absoluteURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" || strings.Contains(link, "://") {
		return link
	}
	if !strings.HasPrefix(link, "/") {
		link = "/" + link
	}
	return s.client.baseURL + link
}

// pagePathOf extracts the path component of a series link.
func pagePathOf(link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parse series link %q: %w", link, err)
	}
	if parsed.Path == "" {
		return "", fmt.Errorf("series link %q carries no path", link)
	}
	return strings.TrimRight(parsed.Path, "/"), nil
}
