package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rivo/tview"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/config"
	"github.com/cnharrison/harview/internal/preview"
	"github.com/cnharrison/harview/internal/store"
	"github.com/cnharrison/harview/pkg/clipboard"
)

const (
	// Animation and timing constants
	animationIntervalMs      = 500
	statusMessageDurationSec = 5
	animationCycleFrames     = 4
	pulseCycleFrames         = 2

	// Layout constants
	searchInputWidthRatio = 2
	searchBoxHeight       = 3
	tabsHeightRatio       = 2
	maxPathDisplayLength  = 50
	pathTruncateOffset    = 3

	// HTTP status code thresholds
	statusCodeSuccess     = 200
	statusCodeRedirect    = 300
	statusCodeClientError = 400

	// Visual display constants
	timingBarMaxWidth    = 40
	minBarWidth          = 1
	percentageMultiplier = 100

	scrollPageLines = 10
)

var tabNames = []string{"Request", "Response", "Body", "Cookies", "Timings", "Raw"}

const bodyTab = 2

// Options wires the application to its collaborators
type Options struct {
	Store    *store.Store
	Resolver *body.Resolver
	Config   *config.Config
	Logger   *slog.Logger
	Copier   *clipboard.Copier
}

// Application represents the terminal UI bound to an entry store
type Application struct {
	filename string
	app      *tview.Application
	store    *store.Store
	resolver *body.Resolver
	renderer *preview.Renderer
	images   *preview.ImageRenderer
	copier   *clipboard.Copier
	cfg      *config.Config
	logger   *slog.Logger

	// UI state
	loading        bool
	loadErr        error
	currentTab     int
	focusOnBottom  bool
	animationFrame int
	bodyTarget     body.Target
	rebuilding     bool

	// Confirmation/status messages
	confirmationMessage string
	confirmationEnd     time.Time

	// UI components
	requests     *tview.List
	filterBar    *tview.TextView
	tabs         *tview.Pages
	requestView  *tview.TextView
	responseView *tview.TextView
	bodyView     *tview.TextView
	cookiesView  *tview.TextView
	timingsView  *tview.TextView
	rawView      *tview.TextView
	topBar       *tview.TextView
	tabBar       *tview.TextView
	bottomBar    *tview.TextView
	searchInput  *tview.InputField
	layout       *tview.Flex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplication creates the terminal UI for filename. The file is read
// in the background once Run starts.
func NewApplication(filename string, opts Options) *Application {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	st := opts.Store
	if st == nil {
		st = store.New(logger)
	}
	resolver := opts.Resolver
	if resolver == nil {
		// only fails for a non-positive size
		resolver, _ = body.NewResolver(body.DefaultCacheEntries, logger)
	}
	copier := opts.Copier
	if copier == nil {
		copier = clipboard.New()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		filename:   filename,
		app:        tview.NewApplication(),
		store:      st,
		resolver:   resolver,
		renderer:   preview.NewRenderer(cfg.Preview.MaxBytes),
		images:     preview.NewImageRenderer(cfg.Preview.Images),
		copier:     copier,
		cfg:        cfg,
		logger:     logger,
		loading:    filename != "",
		bodyTarget: body.Response,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Run starts the TUI application and blocks until it exits
func (app *Application) Run() error {
	app.setupUI()
	app.setupEventHandling()
	app.startAnimationLoop()

	if app.loading {
		app.loadAsync(app.filename)
	}

	app.updateRequestsList()
	app.updateFocusStyles()
	app.updateFilterBar()
	app.updateTabBar()
	app.updateBottomBar()

	err := app.app.SetRoot(app.layout, true).Run()
	app.cancel()
	app.wg.Wait()
	return err
}

// loadAsync reads and parses path off the UI goroutine. The store swaps in
// the new document only when the parse succeeds.
func (app *Application) loadAsync(path string) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		err := app.store.LoadFile(path)
		if app.ctx.Err() != nil {
			return
		}
		app.app.QueueUpdateDraw(func() {
			app.loading = false
			app.loadErr = err
			if err != nil {
				app.logger.Error("load failed", "file", path, "error", err)
				app.showStatusMessage("Load failed: " + err.Error())
			} else {
				app.resolver.Purge()
				app.showStatusMessage(loadedMessage(app.store.Len(), path))
			}
			app.searchInput.SetText("")
			app.updateRequestsList()
			app.updateFilterBar()
			app.updateBottomBar()
		})
	}()
}

// showStatusMessage shows a temporary status message
func (app *Application) showStatusMessage(msg string) {
	app.confirmationMessage = msg
	app.confirmationEnd = time.Now().Add(statusMessageDurationSec * time.Second)
}
