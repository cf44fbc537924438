// Package view builds and renders the two ways of looking at the buddy
// list: the full list view and the compact menu-bar summary.
//
// The *Rows / BuildMenuBar functions produce plain values shared by the
// terminal renderer and the HTTP API; Render* draw them with lipgloss.
package view

import (
	"strings"
	"time"

	"github.com/aanand-mishra/timezone-buddy/internal/types"
	"github.com/aanand-mishra/timezone-buddy/internal/zone"
)

// EmptyTitle is shown by both views when there are no buddies.
const EmptyTitle = "No buddies added"

// MenuBarTooltip is the tooltip of the menu-bar entry itself.
const MenuBarTooltip = "Your buddies"

// Row is one line of the list view.
type Row struct {
	Index int         `json:"index"`
	Buddy types.Buddy `json:"buddy"`
	Info  *zone.Info  `json:"info,omitempty"`

	// Error replaces Info when the stored zone no longer resolves.
	Error string `json:"error,omitempty"`
}

// ListRows describes every buddy at now. A record with a bad zone still
// gets a row so it can be edited or deleted.
func ListRows(list []types.Buddy, now time.Time, use24h bool) []Row {
	rows := make([]Row, 0, len(list))
	for i, b := range list {
		rows = append(rows, NewRow(i, b, now, use24h))
	}
	return rows
}

// FilterRows keeps the rows whose name or Twitter handle contains query,
// ignoring case. Rows keep their list positions.
func FilterRows(rows []Row, query string) []Row {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Buddy.Name), q) ||
			strings.Contains(strings.ToLower(row.Buddy.TwitterHandle), q) {
			out = append(out, row)
		}
	}
	return out
}

// NewRow describes a single buddy.
func NewRow(index int, b types.Buddy, now time.Time, use24h bool) Row {
	row := Row{Index: index, Buddy: b}
	info, err := zone.Describe(b.TZ, now, use24h)
	if err != nil {
		row.Error = err.Error()
		return row
	}
	row.Info = &info
	return row
}

// MenuBarItem is one entry of the menu-bar summary.
type MenuBarItem struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Tooltip  string      `json:"tooltip"`
	Icon     string      `json:"icon"`
	Bucket   zone.Bucket `json:"bucket,omitempty"`
}

// MenuBar is the whole summary.
type MenuBar struct {
	Tooltip string        `json:"tooltip"`
	Empty   bool          `json:"empty"`
	Title   string        `json:"title,omitempty"`
	Items   []MenuBarItem `json:"items"`
}

// BuildMenuBar summarizes list at now.
func BuildMenuBar(list []types.Buddy, now time.Time, use24h bool) MenuBar {
	mb := MenuBar{Tooltip: MenuBarTooltip, Items: make([]MenuBarItem, 0, len(list))}
	if len(list) == 0 {
		mb.Empty = true
		mb.Title = EmptyTitle
		return mb
	}

	for _, b := range list {
		item := MenuBarItem{Title: b.Name, Icon: b.Avatar}

		info, err := zone.Describe(b.TZ, now, use24h)
		if err != nil {
			item.Subtitle = " – " + zone.DisplayName(b.TZ)
			item.Tooltip = err.Error()
		} else {
			item.Subtitle = " – " + info.LocalTime + " (" + info.ZoneName + ")"
			item.Tooltip = info.Tooltip
			item.Bucket = info.Bucket
		}
		mb.Items = append(mb.Items, item)
	}
	return mb
}
