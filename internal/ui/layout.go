package ui

import (
	"github.com/rivo/tview"
)

// createLayout builds the main application layout
func (app *Application) createLayout() {
	searchContainer := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(app.searchInput, 0, searchInputWidthRatio, false).
		AddItem(nil, 0, 1, false)

	requestsPanel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.filterBar, 1, 0, false).
		AddItem(searchContainer, searchBoxHeight, 0, false).
		AddItem(app.requests, 0, 1, true)

	app.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(app.topBar, 1, 0, false).
		AddItem(requestsPanel, 0, 1, true).
		AddItem(app.tabBar, 1, 0, false).
		AddItem(app.tabs, 0, tabsHeightRatio, false).
		AddItem(app.bottomBar, 1, 0, false)
}

// centered wraps p in spacers so it floats in the middle of the screen.
// A height of 0 takes a proportional share instead of a fixed row count.
func centered(p tview.Primitive, width, height int) *tview.Flex {
	row := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(p, 0, width, true).
		AddItem(nil, 0, 1, false)

	container := tview.NewFlex().SetDirection(tview.FlexRow)
	container.AddItem(nil, 0, 1, false)
	if height > 0 {
		container.AddItem(row, height, 0, true)
	} else {
		container.AddItem(row, 0, 2, true)
	}
	container.AddItem(nil, 0, 1, false)
	return container
}
