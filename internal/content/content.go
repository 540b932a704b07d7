// Package content loads the promo page text and lays it out as sections.
package content

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iburimskiy/starfield/internal/config"
)

// Content is the page text, as stored in content.json.
type Content struct {
	GameName    string    `json:"gameName"`
	Description string    `json:"description"`
	PlayLink    string    `json:"playLink"`
	DiscordLink string    `json:"discordLink"`
	Features    []Feature `json:"features"`
	Team        []Member  `json:"team"`
	HowToPlay   HowToPlay `json:"howToPlay"`
}

type Feature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type Member struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type HowToPlay struct {
	Platforms     map[string]Platform `json:"platforms"`
	VhostDownload string              `json:"vhostDownload,omitempty"`
}

type Platform struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

// Load reads and decodes a content file.
func Load(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content file: %w", err)
	}
	var c Content
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing content file: %w", err)
	}
	return &c, nil
}

// Result is the outcome of LoadAsync.
type Result struct {
	Content *Content
	Err     error
	Elapsed time.Duration
}

// LoadAsync loads path on its own goroutine. The channel receives exactly
// one Result unless ctx is cancelled first, and is then closed.
func LoadAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		start := time.Now()
		c, err := Load(path)
		select {
		case out <- Result{Content: c, Err: err, Elapsed: time.Since(start)}:
		case <-ctx.Done():
		}
	}()
	return out
}

// Section is one block of the page, top to bottom.
type Section struct {
	ID    string
	Title string
	Lines []string
	// MinHeight is the height the section takes even when its text is short.
	MinHeight int
}

// Height returns the rendered height of s.
func (s Section) Height() int {
	h := config.SectionMargin*2 + config.LineHeight*(len(s.Lines)+1)
	return max(h, s.MinHeight)
}

// wrapWidth is the column count text lines are wrapped at.
const wrapWidth = 72

// Sections lays out the page for a viewport of the given height.
func (c *Content) Sections(viewportH int) []Section {
	hero := Section{ID: "hero", Title: c.GameName, MinHeight: viewportH}
	hero.Lines = append(hero.Lines, Wrap(c.Description, wrapWidth)...)
	hero.Lines = append(hero.Lines, "", "[ Play Now ] "+c.PlayLink, "[ Join Discord ] "+c.DiscordLink)

	how := Section{ID: "how-to-play", Title: "How to Play"}
	how.Lines = append(how.Lines, "Connect to "+c.GameName+" in just a few steps")
	keys := make([]string, 0, len(c.HowToPlay.Platforms))
	for k := range c.HowToPlay.Platforms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		p := c.HowToPlay.Platforms[k]
		how.Lines = append(how.Lines, "", p.Title)
		for i, step := range p.Steps {
			how.Lines = append(how.Lines, Wrap(fmt.Sprintf("  %d. %s", i+1, step), wrapWidth)...)
		}
	}
	if c.HowToPlay.VhostDownload != "" {
		how.Lines = append(how.Lines, "", "Download: "+c.HowToPlay.VhostDownload)
	}

	features := Section{ID: "features", Title: "Features"}
	for _, f := range c.Features {
		features.Lines = append(features.Lines, Wrap(f.Title+" - "+f.Description, wrapWidth)...)
	}

	team := Section{ID: "team", Title: "Team"}
	for _, m := range c.Team {
		team.Lines = append(team.Lines, m.Name+" / "+m.Role)
	}

	community := Section{ID: "community", Title: "Community", Lines: []string{"Join us on Discord: " + c.DiscordLink}}
	feedback := Section{ID: "feedback", Title: "Feedback", Lines: []string{"Tell us what you think of " + c.GameName + "."}}
	footer := Section{ID: "footer", Lines: []string{fmt.Sprintf("(c) %d %s. All rights reserved.", time.Now().Year(), c.GameName)}}

	return []Section{hero, how, features, team, community, feedback, footer}
}

// Height returns the document height: the navigation bar plus every section.
func (c *Content) Height(viewportH int) int {
	return LayoutHeight(c.Sections(viewportH))
}

// LayoutHeight returns the document height of already laid out sections.
func LayoutHeight(sections []Section) int {
	h := config.NavBarHeight
	for _, s := range sections {
		h += s.Height()
	}
	return h
}

// Wrap breaks text into lines of at most width runes on word boundaries.
// Words longer than width get a line of their own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	var b strings.Builder
	cols := 0
	for _, w := range words {
		n := utf8.RuneCountInString(w)
		if cols > 0 && cols+1+n > width {
			lines = append(lines, b.String())
			b.Reset()
			cols = 0
		}
		if cols > 0 {
			b.WriteByte(' ')
			cols++
		}
		b.WriteString(w)
		cols += n
	}
	return append(lines, b.String())
}
