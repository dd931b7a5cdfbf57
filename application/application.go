package application

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"goditor/buffer"
	"goditor/commands"
	"goditor/config"
	"goditor/layout"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"
)

// configEvent carries reloaded settings from the config watcher into the
// event loop, so that they are applied on the same goroutine as edits.
type configEvent struct {
	tcell.EventTime
	editor config.EditorConfig
}

func newConfigEvent(editor config.EditorConfig) *configEvent {
	ev := &configEvent{editor: editor}
	ev.SetEventNow()
	return ev
}

type Application struct {
	screen   tcell.Screen
	buffer   *buffer.Buffer
	cursor   Cursor
	view     viewport
	editor   config.EditorConfig
	commands *commands.Commands

	gutterArea layout.Dimensions
	textArea   layout.Dimensions
	statusArea layout.Dimensions

	message  string
	quitting bool

	log *log.Logger
}

// NewApplication wires buf to the screen s. Settings come from cfg and follow
// its reloads.
func NewApplication(s tcell.Screen, buf *buffer.Buffer, cfg *config.Config, logger *log.Logger) *Application {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	app := &Application{
		screen:   s,
		buffer:   buf,
		commands: commands.NewCommands(logger),
		log:      logger,
	}
	app.applyConfig(cfg.Editor())
	cfg.OnChange(func(editor config.EditorConfig) {
		if err := s.PostEvent(newConfigEvent(editor)); err != nil {
			logger.Printf("Dropped config reload: %v", err)
		}
	})

	app.commands.Register("write", app.write)
	app.commands.Register("rebalance", app.rebalance)
	app.commands.Register("quit", app.quit)
	return app
}

func (app *Application) Commands() *commands.Commands {
	return app.commands
}

func (app *Application) Cursor() Cursor {
	return app.cursor
}

func (app *Application) Quitting() bool {
	return app.quitting
}

func (app *Application) Message() string {
	return app.message
}

func (app *Application) applyConfig(editor config.EditorConfig) {
	app.editor = editor
	app.buffer.SetOptions(buffer.Options{
		TrimFiles:      editor.TrimFiles,
		RebalanceDepth: editor.RebalanceDepth,
	})
}

// Run draws and handles events until the quit command runs or the screen is
// finalized.
func (app *Application) Run() error {
	for !app.quitting {
		app.Draw()
		ev := app.screen.PollEvent()
		if ev == nil {
			return nil
		}
		app.HandleEvent(ev)
	}
	return nil
}

func (app *Application) exec(name string) {
	if err := app.commands.Exec(name); err != nil {
		app.message = err.Error()
	}
}

func (app *Application) write() error {
	if err := app.buffer.Save(); err != nil {
		return err
	}
	app.message = fmt.Sprintf("wrote %s lines to %s", humanize.Comma(int64(app.buffer.LineCount())), app.buffer.Path())
	return nil
}

func (app *Application) rebalance() error {
	before := app.buffer.Stats().Depth
	app.buffer.Rebalance()
	app.message = fmt.Sprintf("rebalanced, depth %d -> %d", before, app.buffer.Stats().Depth)
	return nil
}

func (app *Application) quit() error {
	app.quitting = true
	return nil
}

func (app *Application) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		app.screen.Sync()
	case *tcell.EventKey:
		app.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons() == tcell.Button1 {
			app.click(ev.Position())
		}
	case *configEvent:
		app.applyConfig(ev.editor)
		app.message = "config reloaded"
	}
}

func (app *Application) handleKey(ev *tcell.EventKey) {
	cursor := &app.cursor
	app.message = ""
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		app.exec("quit")
	case tcell.KeyCtrlS:
		app.exec("write")
	case tcell.KeyCtrlR:
		app.exec("rebalance")
	case tcell.KeyCtrlL:
		app.screen.Sync()
	case tcell.KeyUp:
		cursor.Up(app.buffer)
	case tcell.KeyDown:
		cursor.Down(app.buffer)
	case tcell.KeyLeft:
		cursor.Left(app.buffer)
	case tcell.KeyRight:
		cursor.Right(app.buffer)
	case tcell.KeyHome:
		cursor.Home()
	case tcell.KeyEnd:
		cursor.End(app.buffer)
	case tcell.KeyRune:
		app.insert(string(ev.Rune()))
	case tcell.KeyTab:
		app.insert(strings.Repeat(" ", app.editor.TabWidth))
	case tcell.KeyEnter:
		app.insert("\n")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		row, col, err := app.buffer.Backspace(cursor.Row, cursor.Col)
		if err != nil {
			app.fail("backspace", err)
			return
		}
		cursor.Row, cursor.Col = row, col
	}
}

func (app *Application) insert(text string) {
	row, col, err := app.buffer.Insert(app.cursor.Row, app.cursor.Col, text)
	if err != nil {
		app.fail("insert", err)
		return
	}
	app.cursor.Row, app.cursor.Col = row, col
}

func (app *Application) fail(op string, err error) {
	app.log.Printf("%s at %d:%d failed: %+v", op, app.cursor.Row, app.cursor.Col, err)
	app.message = err.Error()
	app.cursor.Clamp(app.buffer)
}

func (app *Application) click(x, y int) {
	if !app.textArea.Contains(x, y) {
		return
	}
	row := app.view.top + y - app.textArea.Origin.Y
	if row >= app.buffer.LineCount() {
		row = app.buffer.LineCount() - 1
	}
	runes := []rune(app.buffer.Line(row))
	left := min(app.view.left, len(runes))
	app.cursor = Cursor{Row: row, Col: left + colAt(runes[left:], x-app.textArea.Origin.X)}
}

func (app *Application) gutterWidth() int {
	if app.editor.LineNumbers == config.Off {
		return 0
	}
	// digits plus one blank before the text
	return len(strconv.Itoa(app.buffer.LineCount())) + 1
}

func (app *Application) buildLayout() *layout.Flex {
	text := []layout.FlexItem{}
	if w := app.gutterWidth(); w > 0 {
		text = append(text, layout.FlexItemBox(func(d layout.Dimensions) { app.gutterArea = d }, layout.Exact(layout.Abs(w)), nil))
	}
	text = append(text, layout.FlexItemBox(func(d layout.Dimensions) { app.textArea = d }, layout.Max(layout.Rel(1)), nil))

	return layout.Column(
		layout.FlexItemBox(layout.EmptyBox, layout.Max(layout.Rel(1)), layout.Row(text...)),
		layout.FlexItemBox(func(d layout.Dimensions) { app.statusArea = d }, layout.Exact(layout.Abs(1)), nil),
	)
}

// Draw renders the whole screen.
func (app *Application) Draw() {
	s := app.screen
	s.Clear()

	width, height := s.Size()
	app.gutterArea, app.textArea, app.statusArea = layout.Dimensions{}, layout.Dimensions{}, layout.Dimensions{}
	app.buildLayout().StartLayouting(width, height)

	app.cursor.Clamp(app.buffer)
	app.view.scrollTo(app.cursor, []rune(app.buffer.Line(app.cursor.Row)), app.textArea.Width, app.textArea.Height)

	app.drawGutter()
	cursorX := app.drawBuffer()
	app.drawStatusLine()

	if app.textArea.Width > 0 && app.textArea.Height > 0 {
		s.ShowCursor(cursorX, app.textArea.Origin.Y+app.cursor.Row-app.view.top)
	} else {
		s.HideCursor()
	}
	s.Show()
}

func (app *Application) drawGutter() {
	dims := app.gutterArea
	if dims.Width == 0 {
		return
	}
	s := app.screen
	xmin, xmax := dims.Origin.X, dims.Origin.X+dims.Width
	pad := dims.Width - 1

	for y := 0; y < dims.Height; y++ {
		row := app.view.top + y
		if row >= app.buffer.LineCount() {
			break
		}
		number, style := row+1, DefaultStyle
		if app.editor.LineNumbers == config.Relative && row != app.cursor.Row {
			number, style = abs(row-app.cursor.Row), LightStyle
		}
		drawText(s, xmin, dims.Origin.Y+y, xmax, style, fmt.Sprintf("%*d ", pad, number))
	}
}

// drawBuffer draws the visible lines and returns the screen column of the cursor.
func (app *Application) drawBuffer() int {
	s := app.screen
	dims := app.textArea
	xmin, xmax := dims.Origin.X, dims.Origin.X+dims.Width
	cursorX := xmin

	for y := 0; y < dims.Height; y++ {
		row := app.view.top + y
		if row >= app.buffer.LineCount() {
			break
		}
		runes := []rune(app.buffer.Line(row))
		left := min(app.view.left, len(runes))
		drawText(s, xmin, dims.Origin.Y+y, xmax, DefaultStyle, string(runes[left:]))

		if row == app.cursor.Row {
			cursorX = xmin + textWidth(runes[left:max(left, app.cursor.Col)])
		}
	}
	return cursorX
}

func (app *Application) drawStatusLine() {
	dims := app.statusArea
	if dims.Width == 0 || dims.Height == 0 {
		return
	}
	s := app.screen
	xmin, xmax, y := dims.Origin.X, dims.Origin.X+dims.Width, dims.Origin.Y
	fillRow(s, xmin, y, xmax, StatusStyle)
	drawText(s, xmin, y, xmax, StatusStyle, app.statusText())
}

func (app *Application) statusText() string {
	name := "[No Name]"
	if p := app.buffer.Path(); p != "" {
		name = filepath.Base(p)
	}
	if app.buffer.Dirty() {
		name += " [+]"
	}
	status := fmt.Sprintf(" NORMAL  %s  %d:%d", name, app.cursor.Row+1, app.cursor.Col+1)
	if app.message != "" {
		status += "  " + app.message
	}
	return status
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
