// Package views holds the debugger views of the fyne driver. Each view
// is a widget that redraws itself from an emulator snapshot.
package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gomeboy/pkg/display"
)

// View is a debugger view.
type View interface {
	fyne.Widget
	// Title returns a unique title for the view.
	Title() string
	// Update redraws the view from s.
	Update(s display.Snapshot)
}

// NewTabs lays out views as tabs, in the order given.
func NewTabs(views ...View) *container.AppTabs {
	tabs := container.NewAppTabs()
	for _, v := range views {
		tabs.Append(container.NewTabItem(v.Title(), v))
	}
	return tabs
}

// bold is a small utility function for creating a bold label.
func bold(s string) *widget.Label {
	return widget.NewLabelWithStyle(s, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

// mono creates a monospaced label.
func mono(s string) *widget.Label {
	return widget.NewLabelWithStyle(s, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
}
