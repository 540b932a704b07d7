package content

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sample = `{
  "gameName": "Red Moon",
  "description": "A multiplayer survival game under a blood red sky. Gather, build and hold out until dawn.",
  "playLink": "https://example.com/play",
  "discordLink": "https://example.com/discord",
  "features": [
    {"title": "Co-op", "description": "Play with up to eight friends.", "icon": "users"},
    {"title": "Crafting", "description": "Hundreds of recipes.", "icon": "hammer"}
  ],
  "team": [{"name": "Ada", "role": "Code"}, {"name": "Lin", "role": "Art"}],
  "howToPlay": {
    "platforms": {
      "windows": {"title": "Windows", "steps": ["Download the client", "Run it"]},
      "linux": {"title": "Linux", "steps": ["Install wine", "Run the client"]}
    }
  }
}`

func writeSample(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	c, err := Load(writeSample(t, sample))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.GameName != "Red Moon" {
		t.Errorf("game name = %q", c.GameName)
	}
	if len(c.Features) != 2 || len(c.Team) != 2 || len(c.HowToPlay.Platforms) != 2 {
		t.Errorf("content = %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file: want error")
	}
	if _, err := Load(writeSample(t, "{not json")); err == nil {
		t.Error("malformed file: want error")
	}
}

func TestLoadAsync(t *testing.T) {
	path := writeSample(t, sample)
	select {
	case res := <-LoadAsync(context.Background(), path):
		if res.Err != nil {
			t.Fatalf("LoadAsync: %v", res.Err)
		}
		if res.Content.GameName != "Red Moon" {
			t.Errorf("game name = %q", res.Content.GameName)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("LoadAsync timed out")
	}
}

func TestLoadAsyncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ch := LoadAsync(ctx, writeSample(t, sample))

	// either the result won the race or the channel closed empty
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("channel never closed")
	}
}

func TestSectionsLayout(t *testing.T) {
	c, err := Load(writeSample(t, sample))
	if err != nil {
		t.Fatal(err)
	}

	sections := c.Sections(600)
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID
	}
	want := "hero,how-to-play,features,team,community,feedback,footer"
	if got := strings.Join(ids, ","); got != want {
		t.Errorf("sections = %s, want %s", got, want)
	}
	if h := sections[0].Height(); h != 600 {
		t.Errorf("hero height = %d, want the viewport height 600", h)
	}
	// platforms are listed in key order
	how := strings.Join(sections[1].Lines, "\n")
	if strings.Index(how, "Linux") > strings.Index(how, "Windows") {
		t.Error("platforms not sorted")
	}
}

func TestHeightGrowsWithViewport(t *testing.T) {
	c, err := Load(writeSample(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	small, large := c.Height(400), c.Height(900)
	if large-small != 500 {
		t.Errorf("height delta = %d, want 500", large-small)
	}
	if small <= 400 {
		t.Errorf("document height %d should exceed the viewport", small)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "   ", 10, nil},
		{"fits", "hello world", 20, []string{"hello world"}},
		{"breaks", "the quick brown fox", 10, []string{"the quick", "brown fox"}},
		{"long word", "a supercalifragilistic b", 5, []string{"a", "supercalifragilistic", "b"}},
		{"multibyte", "héllo wörld", 11, []string{"héllo wörld"}},
		{"multibyte breaks", "日本 の 星空 ゲーム", 5, []string{"日本 の", "星空", "ゲーム"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}
