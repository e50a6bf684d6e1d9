package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/filter"
)

// handleInput handles all keyboard input for the application
func (app *Application) handleInput(event *tcell.EventKey) *tcell.EventKey {
	// typing in the search box must not trigger shortcuts
	if app.app.GetFocus() == app.searchInput {
		if event.Key() == tcell.KeyEscape {
			app.leaveSearch()
			return nil
		}
		switch event.Key() {
		case tcell.KeyTab, tcell.KeyBacktab:
			return nil
		}
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		app.switchTab(1)
		return nil
	case tcell.KeyBacktab:
		app.switchTab(-1)
		return nil
	case tcell.KeyCtrlD:
		if app.focusOnBottom {
			app.scrollDetail(scrollPageLines)
			return nil
		}
	case tcell.KeyCtrlU:
		if app.focusOnBottom {
			app.scrollDetail(-scrollPageLines)
			return nil
		}
	}

	currentIndex := app.requests.GetCurrentItem()
	visible := app.store.VisibleLen()

	switch event.Rune() {
	case '?':
		app.showHelpModal()
		return nil
	case 'q':
		app.app.Stop()
		return nil
	case 'i':
		app.focusOnBottom = !app.focusOnBottom
		if app.focusOnBottom {
			app.app.SetFocus(app.getCurrentView())
		} else {
			app.app.SetFocus(app.requests)
		}
		app.updateFocusStyles()
		return nil
	case 'j':
		if app.focusOnBottom {
			app.scrollDetail(1)
		} else if currentIndex < visible-1 {
			app.requests.SetCurrentItem(currentIndex + 1)
		}
		return nil
	case 'k':
		if app.focusOnBottom {
			app.scrollDetail(-1)
		} else if currentIndex > 0 {
			app.requests.SetCurrentItem(currentIndex - 1)
		}
		return nil
	case 'g':
		if app.focusOnBottom {
			app.getCurrentView().ScrollToBeginning()
		} else if visible > 0 {
			app.requests.SetCurrentItem(0)
		}
		return nil
	case 'G':
		if app.focusOnBottom {
			app.getCurrentView().ScrollToEnd()
		} else if visible > 0 {
			app.requests.SetCurrentItem(visible - 1)
		}
		return nil
	case 'h':
		if app.focusOnBottom {
			app.switchTab(-1)
		} else {
			app.cycleTypeFilter(-1)
		}
		return nil
	case 'l':
		if app.focusOnBottom {
			app.switchTab(1)
		} else {
			app.cycleTypeFilter(1)
		}
		return nil
	case '/':
		app.searchInput.SetText("")
		app.app.SetFocus(app.searchInput)
		return nil
	case 'e':
		c := app.store.Criteria()
		c.ErrorsOnly = !c.ErrorsOnly
		app.applyFilter(c)
		if c.ErrorsOnly {
			app.showStatusMessage("Showing errors only")
		} else {
			app.showStatusMessage("Showing all requests")
		}
		return nil
	case 'a':
		app.store.SetFilter(filter.Criteria{})
		// clearing the box re-applies an empty query
		app.searchInput.SetText("")
		app.updateRequestsList()
		app.updateFilterBar()
		app.updateBottomBar()
		app.showStatusMessage("Filters reset")
		return nil
	case ' ':
		if entry, ok := app.store.Visible(currentIndex); ok {
			app.store.ToggleSelect(entry.ID)
			app.refreshRow(currentIndex)
			if currentIndex < visible-1 {
				app.requests.SetCurrentItem(currentIndex + 1)
			}
			app.updateBottomBar()
		}
		return nil
	case 'A':
		app.store.SelectAllVisible(true)
		app.updateRequestsList()
		app.showStatusMessage(fmt.Sprintf("Selected %d visible requests", visible))
		return nil
	case 'U':
		app.store.ClearSelection()
		app.updateRequestsList()
		app.showStatusMessage("Selection cleared")
		return nil
	case 't':
		if app.bodyTarget == body.Response {
			app.bodyTarget = body.Request
		} else {
			app.bodyTarget = body.Response
		}
		app.updateTabContent()
		app.showStatusMessage("Body tab shows the " + app.bodyTarget.String() + " body")
		return nil
	case 'b':
		app.exportBody(body.Response)
		return nil
	case 'B':
		app.exportBody(body.Request)
		return nil
	case 'c':
		app.saveCurl()
		return nil
	case 'm':
		app.copyMarkdown()
		return nil
	case 'y':
		if entry, ok := app.store.Active(); ok {
			app.showCopyModal(entry)
		}
		return nil
	case 'E':
		if entry, ok := app.store.Active(); ok {
			app.showEditorModal(entry)
		}
		return nil
	case 'S':
		app.saveFilteredHAR()
		return nil
	case 'W':
		app.saveSelectedHAR()
		return nil
	}
	return event
}

func (app *Application) switchTab(step int) {
	app.currentTab = (app.currentTab + step + len(tabNames)) % len(tabNames)
	app.tabs.SwitchToPage(tabNames[app.currentTab])
	if app.focusOnBottom {
		app.app.SetFocus(app.getCurrentView())
	}
	app.updateTabBar()
	app.updateFocusStyles()
	app.updateTabContent()
}

func (app *Application) scrollDetail(lines int) {
	view := app.getCurrentView()
	row, _ := view.GetScrollOffset()
	view.ScrollTo(max(row+lines, 0), 0)
}

func (app *Application) cycleTypeFilter(step int) {
	c := app.store.Criteria()
	c.Type = filter.CycleType(c.Type, step)
	app.applyFilter(c)
	if c.Type == filter.AllTypes {
		app.showStatusMessage("Showing all request types")
	} else {
		app.showStatusMessage(fmt.Sprintf("Filtering by type: %s", c.Type))
	}
}
