package vrtmax

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// Resolution is the immutable outcome of resolving one episode page.
type Resolution struct {
	Title       string
	StreamID    string
	ManifestURL string
	// DRMToken is empty for non-DRM content.
	DRMToken string
	// ManifestBody is populated only when requested and the fetch
	// succeeded.
	ManifestBody string
	PageURL      string
}

// IdentityProvider supplies the platform identity token, normally backed
// by an authenticated browser session.
type IdentityProvider interface {
	IdentityToken(ctx context.Context) (string, error)
}

// Resolver turns an episode page URL into its playable manifest and DRM
// parameters.
type Resolver struct {
	client   *Client
	identity IdentityProvider
	logger   *slog.Logger
}

// NewResolver builds a Resolver around a platform client and an identity
// source.
func NewResolver(client *Client, identity IdentityProvider, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{client: client, identity: identity, logger: logger}
}

// ResolveOptions tune a single resolution.
type ResolveOptions struct {
	// IncludeManifestBody also fetches the manifest document itself. A
	// failed body fetch is logged, not fatal.
	IncludeManifestBody bool
}

// Resolve runs the full resolution pipeline for one episode page URL.
// Failures carry the step they occurred in as a ResolveError.
func (r *Resolver) Resolve(ctx context.Context, pageURL string, opts ResolveOptions) (*Resolution, error) {
	pagePath, err := episodePagePath(pageURL)
	if err != nil {
		return nil, resolveErr(StepMetadata, err)
	}

	title, streamID, err := r.metadata(ctx, pagePath)
	if err != nil {
		return nil, resolveErr(StepMetadata, err)
	}
	r.logger.Info("resolved episode metadata",
		slog.String("title", title),
		slog.String("stream_id", streamID))

	identityToken, err := r.identity.IdentityToken(ctx)
	if err != nil {
		return nil, resolveErr(StepToken, err)
	}

	playerInfo := r.client.PlayerInfo(ctx)
	playerToken, err := r.client.PlayerToken(ctx, identityToken, playerInfo)
	if err != nil {
		return nil, resolveErr(StepToken, err)
	}

	item, err := r.client.MediaItem(ctx, streamID, playerToken)
	if err != nil {
		return nil, resolveErr(StepManifest, err)
	}
	manifestURL, err := item.ManifestURL()
	if err != nil {
		return nil, resolveErr(StepManifest, err)
	}

	resolution := &Resolution{
		Title:       title,
		StreamID:    streamID,
		ManifestURL: manifestURL,
		PageURL:     pageURL,
	}
	if item.DRM != nil {
		resolution.DRMToken = *item.DRM
	}

	if opts.IncludeManifestBody {
		start := time.Now()
		body, err := r.client.FetchBody(ctx, manifestURL)
		if err != nil {
			r.logger.Warn("manifest body fetch failed",
				slog.String("manifest_url", manifestURL),
				slog.Duration("elapsed", time.Since(start)),
				slog.String("error", err.Error()))
		} else {
			resolution.ManifestBody = body
		}
	}

	r.logger.Info("resolution complete",
		slog.String("manifest_url", manifestURL),
		slog.Bool("drm", resolution.DRMToken != ""))
	return resolution, nil
}

// metadata resolves the episode title and internal stream id through the
// VideoPage operation keyed by the page path.
func (r *Resolver) metadata(ctx context.Context, pagePath string) (title, streamID string, err error) {
	var resp videoPageResponse
	err = r.client.graphql(ctx, "VideoPage", videoPageQuery, map[string]any{
		"pageId": pagePath + ".model.json",
	}, &resp)
	if err != nil {
		return "", "", err
	}

	episode := resp.Data.Page.Episode
	if episode.WatchAction.StreamID == "" {
		return "", "", fmt.Errorf("page %s carries no stream id", pagePath)
	}
	name := episode.Name
	if name == "" {
		name = episode.Title
	}
	return name, episode.WatchAction.StreamID, nil
}

// episodePagePath validates an episode page URL and extracts its path,
// rejecting malformed input before any network traffic.
func episodePagePath(pageURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("page url %q is not an http(s) url", pageURL)
	}
	path := strings.TrimRight(parsed.Path, "/")
	if parsed.Host == "" || path == "" {
		return "", errors.New("page url carries no episode path")
	}
	return path, nil
}
