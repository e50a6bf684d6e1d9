package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/cnharrison/harview/internal/filter"
)

// setupEventHandling configures all event handlers
func (app *Application) setupEventHandling() {
	app.searchInput.SetChangedFunc(func(text string) {
		c := app.store.Criteria()
		c.Query = text
		app.applyFilter(c)
	})

	app.searchInput.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEscape || key == tcell.KeyEnter {
			app.leaveSearch()
		}
	})

	app.searchInput.SetFocusFunc(func() {
		app.searchInput.SetTitle(" 🔍 Searching... ")
		app.searchInput.SetBorderColor(tcell.ColorYellow)
	})

	app.searchInput.SetBlurFunc(func() {
		app.searchInput.SetTitle(" 🔍 Search ")
		app.searchInput.SetBorderColor(tcell.ColorGreen)
	})

	app.requests.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if app.rebuilding {
			return
		}
		app.activateRow(index)
	})

	app.app.SetInputCapture(app.handleInput)
}

func (app *Application) leaveSearch() {
	app.focusOnBottom = false
	app.updateFocusStyles()
	app.app.SetFocus(app.requests)
}

// applyFilter replaces the store criteria and refreshes everything derived
// from the visible rows
func (app *Application) applyFilter(c filter.Criteria) {
	app.store.SetFilter(c)
	app.updateRequestsList()
	app.updateFilterBar()
	app.updateBottomBar()
}

// activateRow makes the entry at list row the active entry
func (app *Application) activateRow(row int) {
	entry, ok := app.store.Visible(row)
	if !ok {
		return
	}
	if err := app.store.SetActive(entry.ID); err != nil {
		app.logger.Debug("activate row failed", "row", row, "error", err)
		return
	}
	app.updateTabContent()
}

// startAnimationLoop drives the focus arrows and status message pulse
func (app *Application) startAnimationLoop() {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		ticker := time.NewTicker(animationIntervalMs * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-app.ctx.Done():
				return
			case <-ticker.C:
				app.app.QueueUpdateDraw(func() {
					app.animationFrame++
					app.updateFocusStyles()
					app.updateBottomBar()
				})
			}
		}
	}()
}
