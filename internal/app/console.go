package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prowlers/logtracker/internal/catalog"
	"github.com/prowlers/logtracker/internal/history"
	"github.com/prowlers/logtracker/internal/state"
)

// console prints progress and live events as single styled lines.
type console struct {
	out     io.Writer
	label   lipgloss.Style
	accent  lipgloss.Style
	success lipgloss.Style
	muted   lipgloss.Style
}

func newConsole(out io.Writer) *console {
	return &console{
		out:     out,
		label:   lipgloss.NewStyle().Bold(true),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")),
	}
}

// progress counts read entries that exist in the catalog.
func progress(cat *catalog.Catalog, read state.ReadSet) (int, int) {
	done := 0
	for _, e := range cat.Entries() {
		if read.Has(e.ID) {
			done++
		}
	}
	return done, cat.Len()
}

func (c *console) summary(cat *catalog.Catalog, snap state.Snapshot) {
	done, total := progress(cat, snap.Read)
	source := string(snap.Source)
	if snap.LogFile != "" {
		source += ": " + snap.LogFile
	}
	fmt.Fprintf(c.out, "%s %s\n",
		c.label.Render(fmt.Sprintf("%d/%d Read", done, total)),
		c.muted.Render("("+source+")"))
}

func (c *console) unread(cat *catalog.Catalog, read state.ReadSet, level string) {
	for _, e := range cat.Entries() {
		if read.Has(e.ID) {
			continue
		}
		for _, loc := range e.Locations {
			if level != "" && !strings.EqualFold(loc.Code(), level) {
				continue
			}
			fmt.Fprintf(c.out, "  %s %s %s\n",
				c.accent.Render(loc.Code()),
				c.muted.Render(zones(loc.Zones)),
				loc.Name)
		}
	}
}

func (c *console) logRead(cat *catalog.Catalog, id uint32, snap state.Snapshot) {
	name := fmt.Sprintf("#%d", id)
	if e, ok := cat.Entry(id); ok && len(e.Locations) > 0 {
		name = fmt.Sprintf("%s %s (#%d)", e.Locations[0].Code(), e.Locations[0].Name, id)
	}
	done, total := progress(cat, snap.Read)
	fmt.Fprintf(c.out, "%s %s %s\n",
		c.success.Render("read"),
		name,
		c.muted.Render(fmt.Sprintf("[%d/%d]", done, total)))
}

func (c *console) levelSelected(code string) {
	fmt.Fprintf(c.out, "%s %s\n", c.label.Render("level"), c.accent.Render(code))
}

func (c *console) discoveries(cat *catalog.Catalog, list []history.Discovery) {
	for _, d := range list {
		name := ""
		if e, ok := cat.Entry(d.LogID); ok && len(e.Locations) > 0 {
			name = e.Locations[0].Code() + " " + e.Locations[0].Name
		}
		fmt.Fprintf(c.out, "%s %6d %-7s %s\n",
			c.muted.Render(d.DiscoveredAt.Local().Format("2006-01-02 15:04:05")),
			d.LogID, d.Source, name)
	}
}

func zones(z []uint16) string {
	parts := make([]string, len(z))
	for i, n := range z {
		parts[i] = fmt.Sprintf("ZONE %d", n)
	}
	return strings.Join(parts, ", ")
}
