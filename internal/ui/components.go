package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	tabIcons  = []string{"📋", "📨", "📄", "🍪", "⏱️", "🔍"}
	tabColors = []tcell.Color{tcell.ColorDarkCyan, tcell.ColorDarkGreen, tcell.ColorDarkBlue, tcell.ColorDarkMagenta, tcell.ColorDarkRed, tcell.ColorYellow}
)

// setupUI creates and configures all UI components
func (app *Application) setupUI() {
	// Configure tview for transparent background
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorDefault
	tview.Styles.ContrastBackgroundColor = tcell.ColorDefault

	app.createComponents()
	app.styleComponents()
	app.createLayout()
}

// createComponents initializes all UI components
func (app *Application) createComponents() {
	app.topBar = tview.NewTextView().
		SetText("[::b][yellow] 🐱 harview - Press ? for Help [white]").
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	// Filter buttons bar
	app.filterBar = tview.NewTextView()
	app.filterBar.SetDynamicColors(true)
	app.filterBar.SetTextAlign(tview.AlignCenter)
	app.filterBar.SetBorder(false)

	app.searchInput = tview.NewInputField()
	app.searchInput.SetLabel("")
	app.searchInput.SetFieldWidth(0)
	app.searchInput.SetBorder(true)
	app.searchInput.SetTitle(" 🔍 Search ")
	app.searchInput.SetTitleAlign(tview.AlignCenter)
	app.searchInput.SetBorderColor(tcell.ColorGreen)

	app.requests = tview.NewList().ShowSecondaryText(false)

	// Tab content views
	app.requestView = newDetailView()
	app.responseView = newDetailView()
	app.bodyView = newDetailView()
	app.cookiesView = newDetailView()
	app.timingsView = newDetailView()
	app.rawView = newDetailView()

	app.tabs = tview.NewPages()
	for i, view := range app.detailViews() {
		app.tabs.AddPage(tabNames[i], view, true, i == 0)
	}

	app.tabBar = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	app.bottomBar = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignLeft)
}

func newDetailView() *tview.TextView {
	return tview.NewTextView().SetDynamicColors(true).SetWrap(true).SetWordWrap(true)
}

// styleComponents applies styling to all components
func (app *Application) styleComponents() {
	app.requests.SetBorder(true).SetTitle(" 🌐 HTTP Requests ").SetTitleAlign(tview.AlignCenter).SetBorderColor(tcell.ColorTeal)
	app.requests.SetSelectedBackgroundColor(tcell.ColorDarkBlue)
	app.requests.SetSelectedTextColor(tcell.ColorYellow)
	app.requests.SetMainTextColor(tcell.ColorWhite)

	for i, view := range app.detailViews() {
		view.SetBorder(true).
			SetTitle(tabTitle(i)).
			SetTitleAlign(tview.AlignCenter).
			SetBorderColor(tabColors[i])
	}
}

// detailViews returns the tab views in tab order
func (app *Application) detailViews() []*tview.TextView {
	return []*tview.TextView{app.requestView, app.responseView, app.bodyView, app.cookiesView, app.timingsView, app.rawView}
}

func tabTitle(i int) string {
	return " " + tabIcons[i] + " " + tabNames[i] + " "
}
