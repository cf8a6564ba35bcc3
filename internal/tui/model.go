// Package tui is the terminal map viewer: it loads geographic layers,
// projects them with the configured projection and draws them in braille.
package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"geoproj/internal/geom"
	"geoproj/internal/graticule"
	"geoproj/internal/mesh"
	"geoproj/internal/projfilter"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Geographic input and its projection under cfg
	cfg  projfilter.Config
	data geom.Data
	proj layers
	log  *zap.Logger

	// graticule, geographic and projected
	gridCfg  graticule.Config
	grid     *mesh.Mesh
	projGrid *mesh.Mesh
	showGrid bool

	// last rendered map size (for inspect)
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// layers are the projected counterparts of geom.Data; nil where the input
// layer is empty.
type layers struct {
	points, lines, polygons *mesh.Mesh
}

type Option func(*Model)

func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

func WithGraticule(cfg graticule.Config) Option {
	return func(m *Model) { m.gridCfg = cfg }
}

// WithPath preloads a file's data at launch.
func WithPath(path string) Option {
	return func(m *Model) { m.selPath = path }
}

func New(cfg projfilter.Config, opts ...Option) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "geoproj ready",
		cfg:         cfg,
		log:         zap.NewNop(),
		gridCfg:     graticule.DefaultConfig(),
		showGrid:    true,
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTI*, GEOMETRYCOLLECTION). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()

	if g, err := graticule.Generate(m.gridCfg); err != nil {
		m.status = "graticule: " + err.Error()
	} else {
		m.grid = g
	}
	m.reproject()
	if m.selPath != "" {
		m.loadPath(m.selPath)
	}
	return m
}

func (m Model) Init() tea.Cmd { return nil }
