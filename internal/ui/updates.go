package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/filter"
	"github.com/cnharrison/harview/internal/har"
	"github.com/cnharrison/harview/internal/preview"
)

// updateRequestsList rebuilds the list from the store's visible rows and
// moves the cursor to the active entry when it is still visible
func (app *Application) updateRequestsList() {
	app.rebuilding = true
	app.requests.Clear()
	for _, entry := range app.store.Filtered() {
		app.requests.AddItem(requestRow(entry, app.store.IsSelected(entry.ID)), "", 0, nil)
	}

	row := -1
	if active, ok := app.store.Active(); ok {
		row = app.store.Row(active.ID)
	}
	if row >= 0 {
		app.requests.SetCurrentItem(row)
	}
	app.rebuilding = false

	switch {
	case app.store.VisibleLen() == 0 && app.loading:
		app.bodyView.SetText("[::d]Loading...[::-]")
	case app.store.VisibleLen() == 0:
		app.clearTabContent("[::d]No requests match the current filter[::-]")
	case row < 0:
		if _, ok := app.store.Active(); ok {
			// active entry is hidden; keep showing it
			app.updateTabContent()
		} else {
			app.activateRow(app.requests.GetCurrentItem())
		}
	default:
		app.updateTabContent()
	}
}

// refreshRow redraws a single list row after its selection changed
func (app *Application) refreshRow(row int) {
	entry, ok := app.store.Visible(row)
	if !ok {
		return
	}
	app.requests.SetItemText(row, requestRow(entry, app.store.IsSelected(entry.ID)), "")
}

func (app *Application) clearTabContent(msg string) {
	for _, view := range app.detailViews() {
		view.SetText(msg)
	}
}

// updateTabContent renders the active entry into the detail tabs
func (app *Application) updateTabContent() {
	entry, ok := app.store.Active()
	if !ok {
		app.clearTabContent("[::d]No request selected[::-]")
		return
	}

	hidden := ""
	if !app.store.ActiveVisible() {
		hidden = "[red]This request is hidden by the current filter[white]\n\n"
	}

	app.requestView.SetText(hidden + fmt.Sprintf(
		"[yellow]Method:[white] [cyan]%s[white]\n[yellow]URL:[white] [blue]%s[white]\n[yellow]HTTP Version:[white] %s\n\n[yellow]Headers:[white]\n%s\n\n[yellow]Post Data:[white]\n%s",
		tview.Escape(entry.Request.DisplayMethod()),
		tview.Escape(entry.Request.URL),
		tview.Escape(entry.Request.HTTPVersion),
		headersText(entry.Request.Headers),
		app.bodyPreview(entry, body.Request),
	))

	app.responseView.SetText(hidden + fmt.Sprintf(
		"[yellow]Status:[white] [%s]%d %s[white]\n[yellow]HTTP Version:[white] %s\n[yellow]Content Type:[white] [cyan]%s[white]\n[yellow]Size:[white] [yellow]%d[white] bytes\n\n[yellow]Headers:[white]\n%s",
		statusColor(entry.Response.Status),
		entry.Response.Status,
		tview.Escape(entry.Response.StatusText),
		tview.Escape(entry.Response.HTTPVersion),
		tview.Escape(entry.Response.Content.MimeType),
		entry.Response.Content.Size,
		headersText(entry.Response.Headers),
	))

	// Body tab only renders while visible; decoding large bodies is not free
	if app.currentTab == bodyTab {
		app.bodyView.SetTitle(fmt.Sprintf(" %s Body (%s) ", tabIcons[bodyTab], app.bodyTarget))
		app.bodyView.SetText(hidden + app.bodyContent(entry, app.bodyTarget))
		app.bodyView.ScrollToBeginning()
	}

	app.cookiesView.SetText(hidden +
		"[yellow]Request Cookies:[white]\n" + cookiesText(entry.Request.Cookies) +
		"\n\n[yellow]Response Cookies:[white]\n" + cookiesText(entry.Response.Cookies))

	app.timingsView.SetText(hidden + formatTimings(entry.Timings, entry.Time))

	raw := "[::d]No raw JSON[::-]"
	if len(entry.Raw) > 0 {
		raw = app.renderer.Render("application/json", &body.Decoded{Bytes: entry.Raw, Text: string(entry.Raw)}).Text
		raw = highlightJSON(raw)
	}
	app.rawView.SetText(hidden + "[yellow]Complete Entry:[white]\n\n" + raw)
}

// bodyPreview renders a request body inline for the Request tab
func (app *Application) bodyPreview(entry har.Entry, target body.Target) string {
	d, err := app.resolver.Get(entry, target)
	if err != nil {
		return "[red]" + tview.Escape(err.Error()) + "[white]"
	}
	if d == nil {
		return "[::d]None[::-]"
	}
	return previewText(app.renderer.Render(d.MimeType, d))
}

// bodyContent renders the Body tab, drawing images inline when the
// terminal supports it
func (app *Application) bodyContent(entry har.Entry, target body.Target) string {
	d, err := app.resolver.Get(entry, target)
	if err != nil {
		return "[red]Body unavailable: " + tview.Escape(err.Error()) + "[white]"
	}
	if d == nil {
		return "[::d]No body content[::-]"
	}

	p := app.renderer.Render(d.MimeType, d)
	if p.Kind == preview.Image && app.images.Enabled() {
		img, err := app.images.Render(d)
		if err == nil {
			return img
		}
		if !errors.Is(err, preview.ErrImagesDisabled) {
			app.logger.Debug("image preview failed", "entry", entry.ID, "error", err)
		}
	}
	return previewText(p)
}

// updateFilterBar updates the filter button bar
func (app *Application) updateFilterBar() {
	active := app.store.Criteria().Type
	if active == "" {
		active = filter.AllTypes
	}

	var filterText strings.Builder
	for _, filterType := range filter.TypeFilters() {
		if filterType == active {
			fmt.Fprintf(&filterText, "[black:yellow:b] %s [-:-:-] ", strings.ToUpper(filterType))
		} else {
			fmt.Fprintf(&filterText, "[magenta::b] %s [-:-:-] ", strings.ToUpper(filterType))
		}
	}
	app.filterBar.SetText(filterText.String())
}

// updateTabBar updates the tab indicator bar
func (app *Application) updateTabBar() {
	var tabText strings.Builder
	for i, name := range tabNames {
		if i == app.currentTab {
			fmt.Fprintf(&tabText, "[black:white] %s [-:-]", name)
		} else {
			fmt.Fprintf(&tabText, " [blue]%s[white] ", name)
		}
		if i < len(tabNames)-1 {
			tabText.WriteString(" │ ")
		}
	}
	app.tabBar.SetText(tabText.String())
}

// updateBottomBar updates the status/bottom bar
func (app *Application) updateBottomBar() {
	var statusText strings.Builder

	if time.Now().Before(app.confirmationEnd) && app.confirmationMessage != "" {
		pulse := []string{"●", "◐", "◑", "◒", "◓", "○"}
		pulseFrame := (app.animationFrame / pulseCycleFrames) % len(pulse)
		fmt.Fprintf(&statusText, " [yellow]%s [white]%s", pulse[pulseFrame], tview.Escape(app.confirmationMessage))
	} else {
		app.confirmationMessage = ""

		switch {
		case app.loading:
			statusText.WriteString("Loading " + tview.Escape(app.filename) + "...")
		case app.loadErr != nil && app.store.Len() == 0:
			statusText.WriteString("[red]No HAR loaded[white]")
		default:
			fmt.Fprintf(&statusText, "Showing %d/%d requests", app.store.VisibleLen(), app.store.Len())
		}

		if n := app.store.SelectedCount(); n > 0 {
			fmt.Fprintf(&statusText, " | [green]%d selected[white]", n)
		}
		c := app.store.Criteria()
		if c.Query != "" {
			fmt.Fprintf(&statusText, " | Filter: [cyan]%s[white]", tview.Escape(c.Query))
		}
		if c.ErrorsOnly {
			statusText.WriteString(" | [red]Errors Only[white]")
		}
		if c.Type != "" && c.Type != filter.AllTypes {
			fmt.Fprintf(&statusText, " | [cyan]Type: %s[white]", c.Type)
		}
	}

	app.bottomBar.SetText(" " + statusText.String() + " ")
}

// updateFocusStyles updates the focus styling with blinking arrows
func (app *Application) updateFocusStyles() {
	arrow := app.getBlinkingArrows()

	if app.focusOnBottom {
		app.requests.SetBorderColor(tcell.ColorDarkGray)
		app.requests.SetTitle(" 🌐 HTTP Requests ")
	} else {
		app.requests.SetBorderColor(tcell.ColorTeal)
		app.requests.SetTitle(fmt.Sprintf(" [cyan]%s[white] 🌐 HTTP Requests ", arrow))
	}

	for i, view := range app.detailViews() {
		if i == bodyTab {
			// title carries the body target
			view.SetBorderColor(tabColors[i])
			if app.focusOnBottom && i == app.currentTab {
				view.SetBorderColor(tcell.ColorWhite)
			}
			continue
		}
		if app.focusOnBottom && i == app.currentTab {
			view.SetBorderColor(tcell.ColorWhite)
			view.SetTitle(fmt.Sprintf(" [yellow]%s[white] %s %s ", arrow, tabIcons[i], tabNames[i]))
		} else {
			view.SetBorderColor(tabColors[i])
			view.SetTitle(tabTitle(i))
		}
	}
}

// getCurrentView returns the currently active text view for scrolling
func (app *Application) getCurrentView() *tview.TextView {
	views := app.detailViews()
	if app.currentTab >= 0 && app.currentTab < len(views) {
		return views[app.currentTab]
	}
	return app.requestView
}

// getBlinkingArrows returns blinking arrow characters
func (app *Application) getBlinkingArrows() string {
	if app.animationFrame%animationCycleFrames < pulseCycleFrames {
		return "►"
	}
	return " "
}
