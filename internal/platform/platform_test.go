package platform_test

import (
	"testing"

	"zender/internal/platform"
)

func TestForURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want platform.Platform
	}{
		{"vrtmax episode page", "https://www.vrt.be/vrtmax/a-z/terzake/2024/terzake-d20240101/", platform.VRTMax},
		{"vrt apex domain", "https://vrt.be/vrtmax/", platform.VRTMax},
		{"vtmgo", "https://www.vtmgo.be/vtmgo/afspelen/abc", platform.VTMGo},
		{"streamz", "https://www.streamz.be/streamz/afspelen/abc", platform.Streamz},
		{"goplay", "https://www.goplay.be/video/de-mol", platform.GoPlay},
		{"youtube", "https://www.youtube.com/watch?v=abc", platform.YouTube},
		{"youtube short link", "https://youtu.be/abc", platform.YouTube},
		{"bare dash manifest", "https://cdn.example.com/stream/manifest.mpd", platform.GenericManifest},
		{"bare hls manifest", "https://cdn.example.com/stream/master.M3U8", platform.GenericManifest},
		{"lookalike domain", "https://notvrt.be.evil.example/x", platform.Unknown},
		{"unrelated", "https://example.com/", platform.Unknown},
		{"garbage", "::not a url::", platform.Unknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := platform.ForURL(tc.url); got != tc.want {
				t.Fatalf("ForURL(%q) = %s, want %s", tc.url, got, tc.want)
			}
		})
	}
}
