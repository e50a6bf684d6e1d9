package ui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/codec"
	"github.com/cnharrison/harview/internal/export"
	"github.com/cnharrison/harview/internal/har"
)

const helpText = `[yellow]🐱 harview - Command Help[white]

[yellow]Navigation:[white]
  [cyan]j/k[white]          Move up/down in focused panel
  [cyan]g/G[white]          Go to top/bottom
  [cyan]h/l[white]          Switch tabs left/right (when focused on bottom)
  [cyan]i[white]            Switch focus between requests and detail panels
  [cyan]Tab[white]          Switch between tabs in detail panel
  [cyan]Ctrl+D/U[white]     Page down/up in focused detail panel

[yellow]Filtering:[white]
  [cyan]/[white]            Search method, URL, status and MIME type
  [cyan]h/l[white]          Cycle the request type filter (when top focused)
  [cyan]e[white]            Toggle errors-only view (4xx/5xx and failed)
  [cyan]a[white]            Reset all filters

[yellow]Selection:[white]
  [cyan]space[white]        Toggle selection of the current request
  [cyan]A[white]            Select all visible requests
  [cyan]U[white]            Clear the selection

[yellow]Actions:[white]
  [cyan]t[white]            Show request or response body in the Body tab
  [cyan]b[white]            Save current response body to file
  [cyan]B[white]            Save current request body to file
  [cyan]c[white]            Save current request as cURL command
  [cyan]m[white]            Copy markdown summary to clipboard
  [cyan]y[white]            Copy modal - copy various request/response parts
  [cyan]E[white]            Open request/response content in $EDITOR
  [cyan]S[white]            Save filtered HAR entries to new file
  [cyan]W[white]            Save selected HAR entries to new file
  [cyan]q[white]            Quit application`

// showHelpModal displays the help modal
func (app *Application) showHelpModal() {
	helpView := tview.NewTextView()
	helpView.SetDynamicColors(true)
	helpView.SetText(helpText)
	helpView.SetTextAlign(tview.AlignLeft)
	helpView.SetBorder(true)
	helpView.SetTitle(" 🆘 Help ")
	helpView.SetTitleAlign(tview.AlignCenter)
	helpView.SetBorderColor(tcell.ColorYellow)

	container := centered(helpView, 2, 0)
	container.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'q' || event.Key() == tcell.KeyEscape || event.Rune() == '?' {
			app.closeModal()
			return nil
		}
		return event
	})
	app.showModal(container)
}

// showModal replaces the root with p. The global key handler is paused
// until closeModal restores the layout.
func (app *Application) showModal(p tview.Primitive) {
	app.app.SetInputCapture(nil)
	app.app.SetRoot(p, true)
	app.app.SetFocus(p)
}

func (app *Application) closeModal() {
	app.app.SetInputCapture(app.handleInput)
	app.app.SetRoot(app.layout, true)
	if app.focusOnBottom {
		app.app.SetFocus(app.getCurrentView())
	} else {
		app.app.SetFocus(app.requests)
	}
}

type copyOption struct {
	key         rune
	label       string
	description string
	available   bool
	content     func() (string, error)
}

func (app *Application) copyOptions(entry har.Entry) []copyOption {
	bodyText := func(target body.Target) (string, error) {
		d, err := app.resolver.Get(entry, target)
		if err != nil || d == nil {
			return "", err
		}
		return d.Text, nil
	}
	hasRequestBody := body.Record(entry, body.Request).HasText
	hasResponseBody := body.Record(entry, body.Response).HasText

	return []copyOption{
		{'1', "Request URL", "Request URL copied", true, func() (string, error) {
			return entry.Request.URL, nil
		}},
		{'2', "Request Headers (JSON)", "Request headers copied", true, func() (string, error) {
			return headersJSON(entry.Request.Headers), nil
		}},
		{'3', "Request Body", "Request body copied", hasRequestBody, func() (string, error) {
			return bodyText(body.Request)
		}},
		{'4', "Response Headers (JSON)", "Response headers copied", true, func() (string, error) {
			return headersJSON(entry.Response.Headers), nil
		}},
		{'5', "Response Body", "Response body copied", hasResponseBody, func() (string, error) {
			return bodyText(body.Response)
		}},
		{'6', "Timing Information", "Timing information copied", true, func() (string, error) {
			return timingSummary(entry), nil
		}},
		{'7', "Full Request Summary", "Request summary copied", true, func() (string, error) {
			text, _ := bodyText(body.Request)
			return requestSummary(entry, text), nil
		}},
		{'8', "Full Response Summary", "Response summary copied", true, func() (string, error) {
			text, _ := bodyText(body.Response)
			return responseSummary(entry, text), nil
		}},
		{'9', "cURL Command", "cURL command copied", true, func() (string, error) {
			return export.CurlCommand(entry), nil
		}},
		{'0', "Raw JSON (Complete Entry)", "Raw JSON entry copied", len(entry.Raw) > 0, func() (string, error) {
			return string(entry.Raw), nil
		}},
		{'r', "Response Body (base64)", "Response body copied as base64", hasResponseBody, func() (string, error) {
			d, err := app.resolver.Get(entry, body.Response)
			if err != nil || d == nil {
				return "", err
			}
			return codec.EncodeBase64Bytes(d.Bytes), nil
		}},
		{'m', "Markdown Summary", "Markdown summary copied", true, func() (string, error) {
			return export.MarkdownSummary(entry, app.resolver), nil
		}},
	}
}

// showCopyModal displays the copy options modal
func (app *Application) showCopyModal(entry har.Entry) {
	options := app.copyOptions(entry)

	var copyText strings.Builder
	copyText.WriteString("Select content to copy to clipboard:\n\n")
	for _, opt := range options {
		if opt.available {
			fmt.Fprintf(&copyText, "[yellow]%c[white] - %s\n", opt.key, opt.label)
		} else {
			fmt.Fprintf(&copyText, "[::d]%c - %s (empty)[::-]\n", opt.key, opt.label)
		}
	}
	copyText.WriteString("[yellow]q[white] - Cancel")

	copyView := tview.NewTextView()
	copyView.SetDynamicColors(true)
	copyView.SetText(copyText.String())
	copyView.SetTextAlign(tview.AlignCenter)
	copyView.SetBorder(true)
	copyView.SetTitle(" 📋 Copy to Clipboard ")
	copyView.SetTitleAlign(tview.AlignCenter)
	copyView.SetBorderColor(tcell.ColorTeal)

	container := centered(copyView, 1, len(options)+6)
	container.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.closeModal()
			return nil
		}
		for _, opt := range options {
			if event.Rune() != opt.key {
				continue
			}
			app.closeModal()
			if !opt.available {
				app.showStatusMessage(opt.label + " is empty - nothing to copy")
				return nil
			}
			content, err := opt.content()
			if err != nil {
				app.showStatusMessage(fmt.Sprintf("Cannot copy %s: %v", strings.ToLower(opt.label), err))
				return nil
			}
			app.copyText(content, opt.description)
			return nil
		}
		return event
	})
	app.showModal(container)
}

// showEditorModal lets the user open part of the entry in $EDITOR.
// Changes are not written back.
func (app *Application) showEditorModal(entry har.Entry) {
	type editorOption struct {
		key       rune
		label     string
		available bool
		content   func() (string, string, error)
	}
	bodyFile := func(target body.Target) (string, string, error) {
		d, err := app.resolver.Get(entry, target)
		if err != nil || d == nil {
			return "", "", err
		}
		return d.Text, codec.ExtensionForMime(d.MimeType), nil
	}
	options := []editorOption{
		{'1', "Request Headers", true, func() (string, string, error) {
			return headersJSON(entry.Request.Headers), "json", nil
		}},
		{'2', "Request Body", body.Record(entry, body.Request).HasText, func() (string, string, error) {
			return bodyFile(body.Request)
		}},
		{'3', "Response Headers", true, func() (string, string, error) {
			return headersJSON(entry.Response.Headers), "json", nil
		}},
		{'4', "Response Body", body.Record(entry, body.Response).HasText, func() (string, string, error) {
			return bodyFile(body.Response)
		}},
	}

	var editorText strings.Builder
	editorText.WriteString("Select content to open in $EDITOR:\n\n")
	for _, opt := range options {
		if opt.available {
			fmt.Fprintf(&editorText, "[yellow]%c[white] - %s\n", opt.key, opt.label)
		} else {
			fmt.Fprintf(&editorText, "[::d]%c - %s (empty)[::-]\n", opt.key, opt.label)
		}
	}
	editorText.WriteString("[yellow]q[white] - Cancel")

	editorView := tview.NewTextView()
	editorView.SetDynamicColors(true)
	editorView.SetText(editorText.String())
	editorView.SetTextAlign(tview.AlignCenter)
	editorView.SetBorder(true)
	editorView.SetTitle(" ✏️  Edit Content ")
	editorView.SetTitleAlign(tview.AlignCenter)
	editorView.SetBorderColor(tcell.ColorGreen)

	container := centered(editorView, 1, 10)
	container.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.closeModal()
			return nil
		}
		for _, opt := range options {
			if event.Rune() != opt.key {
				continue
			}
			app.closeModal()
			if !opt.available {
				app.showStatusMessage(opt.label + " is empty - nothing to edit")
				return nil
			}
			content, ext, err := opt.content()
			if err == nil {
				err = app.openInEditor(content, ext)
			}
			if err != nil {
				app.showStatusMessage(fmt.Sprintf("Editor error: %v", err))
			} else {
				app.showStatusMessage(opt.label + " viewed (changes are not saved to the HAR)")
			}
			return nil
		}
		return event
	})
	app.showModal(container)
}

// openInEditor suspends the UI and opens content in the user's editor
func (app *Application) openInEditor(content, extension string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	tmpFile, err := os.CreateTemp("", "harview-*."+extension)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(content); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	var runErr error
	app.app.Suspend(func() {
		cmd := exec.CommandContext(app.ctx, editor, tmpFile.Name())
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		runErr = cmd.Run()
	})
	return runErr
}
