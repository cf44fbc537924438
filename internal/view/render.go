package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/aanand-mishra/timezone-buddy/internal/zone"
)

const (
	nameWidth = 22
	zoneWidth = 28
)

type styles struct {
	title   lipgloss.Style
	name    lipgloss.Style
	dim     lipgloss.Style
	zone    lipgloss.Style
	empty   lipgloss.Style
	failure lipgloss.Style
	tags    map[zone.Color]lipgloss.Style
}

// newStyles binds every style to r. Renderers made for a writer that is
// not a terminal (files, pipes, tests) emit no escape codes.
func newStyles(r *lipgloss.Renderer) styles {
	tag := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color(c)).Padding(0, 1)
	}

	return styles{
		title:   r.NewStyle().Bold(true),
		name:    r.NewStyle().Bold(true).Width(nameWidth),
		dim:     r.NewStyle().Faint(true),
		zone:    r.NewStyle().Width(zoneWidth),
		empty:   r.NewStyle().Italic(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")),
		tags: map[zone.Color]lipgloss.Style{
			zone.Green:  tag("2"),
			zone.Yellow: tag("3"),
			zone.Red:    tag("1"),
		},
	}
}

// RenderList draws the list view: a title with the viewer's own time,
// then one line per buddy.
func RenderList(w io.Writer, rows []Row, now time.Time, use24h bool) error {
	return RenderSearch(w, rows, "", now, use24h)
}

// RenderSearch is RenderList limited to the rows matching query (see
// FilterRows). An empty query lists everything.
func RenderSearch(w io.Writer, rows []Row, query string, now time.Time, use24h bool) error {
	st := newStyles(lipgloss.NewRenderer(w))

	var b strings.Builder
	b.WriteString(st.title.Render("Current Time: "+zone.FormatClock(now, use24h)) + "\n\n")

	switch shown := FilterRows(rows, query); {
	case len(rows) == 0:
		b.WriteString(st.empty.Render(EmptyTitle) + "\n")
		b.WriteString(st.dim.Render("Add one with: timezone-buddy add --name <name> --tz <zone>") + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	case len(shown) == 0:
		b.WriteString(st.empty.Render(fmt.Sprintf("No buddies match %q", query)) + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	default:
		rows = shown
	}

	for _, row := range rows {
		fmt.Fprintf(&b, "%3d. %s", row.Index+1, st.name.Render(truncate(row.Buddy.Name, nameWidth-1)))

		if row.Info == nil {
			b.WriteString(st.zone.Render(truncate(zone.DisplayName(row.Buddy.TZ), zoneWidth-1)))
			b.WriteString(st.failure.Render(row.Error) + "\n")
			continue
		}

		info := row.Info
		b.WriteString(st.dim.Render(fmt.Sprintf("%-11s", info.Offset)))
		b.WriteString(st.zone.Render(truncate(info.ZoneName, zoneWidth-1)))
		b.WriteString(st.tags[info.Color].Render(info.LocalTime))
		b.WriteString(" " + info.Icon.Glyph() + " ")
		b.WriteString(st.dim.Render(info.Tooltip) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMenuBar draws the compact summary.
func RenderMenuBar(w io.Writer, mb MenuBar) error {
	_, err := io.WriteString(w, menuBarString(newStyles(lipgloss.NewRenderer(w)), mb))
	return err
}

func menuBarString(st styles, mb MenuBar) string {
	var b strings.Builder
	b.WriteString(st.title.Render(mb.Tooltip) + "\n")

	if mb.Empty {
		b.WriteString("  " + st.empty.Render(mb.Title) + "\n")
		return b.String()
	}

	for _, item := range mb.Items {
		glyph := zone.Moon.Glyph()
		if item.Bucket != "" {
			glyph = item.Bucket.Icon().Glyph()
		}
		fmt.Fprintf(&b, "  %s %s%s\n", glyph, st.title.Render(item.Title), item.Subtitle)
		b.WriteString("      " + st.dim.Render(item.Tooltip) + "\n")
	}
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
