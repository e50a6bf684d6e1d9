package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/codec"
	"github.com/cnharrison/harview/internal/export"
	"github.com/cnharrison/harview/internal/har"
)

// exportBody writes the active entry's body to the export directory
func (app *Application) exportBody(target body.Target) {
	entry, ok := app.store.Active()
	if !ok {
		return
	}

	d, err := app.resolver.Get(entry, target)
	if err != nil {
		var de *codec.DecodeError
		if errors.As(err, &de) {
			app.showStatusMessage(fmt.Sprintf("The %s body is not valid base64", target))
		} else {
			app.showStatusMessage(fmt.Sprintf("Error reading %s body: %v", target, err))
		}
		return
	}
	if d == nil {
		app.showStatusMessage(fmt.Sprintf("No %s body to export", target))
		return
	}

	artifact := export.FromDecoded(entry, target, d)
	path, err := export.WriteFile(app.cfg.Export.Dir, artifact.Filename, artifact.Bytes)
	if err != nil {
		app.showStatusMessage(fmt.Sprintf("Error saving body: %v", err))
		return
	}
	app.logger.Info("body exported", "session", app.store.Session(), "entry", entry.ID, "target", target.String(), "path", path, "bytes", len(artifact.Bytes))
	app.showStatusMessage(fmt.Sprintf("%s body saved to %s", target, path))
}

// saveCurl writes the active entry as a cURL script
func (app *Application) saveCurl() {
	entry, ok := app.store.Active()
	if !ok {
		return
	}
	name := fmt.Sprintf("%s.curl.sh", entry.ID)
	path, err := export.WriteFile(app.cfg.Export.Dir, name, []byte(export.CurlCommand(entry)+"\n"))
	if err != nil {
		app.showStatusMessage(fmt.Sprintf("Error saving cURL: %v", err))
		return
	}
	app.logger.Info("curl exported", "session", app.store.Session(), "entry", entry.ID, "path", path)
	app.showStatusMessage(fmt.Sprintf("cURL saved to %s", path))
}

func (app *Application) copyMarkdown() {
	entry, ok := app.store.Active()
	if !ok {
		return
	}
	app.copyText(export.MarkdownSummary(entry, app.resolver), "Markdown summary copied")
}

// copyText sends text to the clipboard and reports the outcome
func (app *Application) copyText(text, description string) {
	if err := app.copier.Copy(app.ctx, text); err != nil {
		app.showStatusMessage(fmt.Sprintf("Clipboard error: %v", err))
		return
	}
	app.showStatusMessage(description + " to clipboard!")
}

// saveFilteredHAR saves the currently visible entries to a new HAR file
func (app *Application) saveFilteredHAR() {
	entries := app.store.Filtered()
	name := export.SubsetFilename(app.filename, app.store.Criteria(), time.Now())
	app.saveSubset(entries, name, fmt.Sprintf("Saved %d/%d entries", len(entries), app.store.Len()))
}

// saveSelectedHAR saves the selected entries, visible or not
func (app *Application) saveSelectedHAR() {
	entries := app.store.Selected()
	if len(entries) == 0 {
		app.showStatusMessage("Nothing selected - press space to select requests")
		return
	}
	name := export.SelectionFilename(app.filename, len(entries), time.Now())
	app.saveSubset(entries, name, fmt.Sprintf("Saved %d selected entries", len(entries)))
}

func (app *Application) saveSubset(entries []har.Entry, name, summary string) {
	data, err := export.HARSubset(app.store.Document(), entries)
	if err != nil {
		app.showStatusMessage(fmt.Sprintf("Error saving HAR: %v", err))
		return
	}
	path, err := export.WriteFile(app.cfg.Export.Dir, name, data)
	if err != nil {
		app.showStatusMessage(fmt.Sprintf("Error saving HAR: %v", err))
		return
	}
	app.logger.Info("har subset saved", "session", app.store.Session(), "entries", len(entries), "path", path)
	app.showStatusMessage(summary + " to " + path)
}
