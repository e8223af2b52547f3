package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/backend/terminal/render"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	pattern "github.com/valerio/go-chip8/chip8/render"
	"github.com/valerio/go-chip8/chip8/video"
)

const (
	width  = video.FramebufferWidth
	height = video.FramebufferHeight

	registerHeight = 11
	disasmHeight   = 9
	minTermWidth   = width + 34
	minTermHeight  = height/2 + 4
	logBufferSize  = 100
)

// Key expiry timeout, slightly longer than a typical key repeat interval.
// Terminals never report key releases, so a keypad key counts as held
// while repeats keep arriving.
const keyTimeout = 100 * time.Millisecond

// Backend implements the Backend interface using tcell for terminal rendering
type Backend struct {
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	running   bool
	quit      chan struct{}
	logBuffer *render.LogBuffer
	logLevel  slog.Level
	config    backend.BackendConfig

	eventQueue []backend.InputEvent
	keyStates  map[action.Action]time.Time // last time each keypad key was seen
	activeKeys map[action.Action]bool      // keypad keys active in the previous frame

	debugProvider backend.DebugDataProvider
	disasmBuf     *debug.DisasmBuffer

	testPatternFrame *video.FrameBuffer
	testPatternType  int
	testFrameCount   int

	currentFrame *video.FrameBuffer
	now          func() time.Time
	prevLogger   *slog.Logger
}

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		newScreen: tcell.NewScreen,
		logLevel:  slog.LevelInfo,
		now:       time.Now,
	}
}

// WithScreen makes the backend draw on the given screen instead of the
// controlling terminal.
func (t *Backend) WithScreen(screen tcell.Screen) *Backend {
	t.newScreen = func() (tcell.Screen, error) { return screen, nil }
	return t
}

// Init initializes the terminal backend
func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.debugProvider = config.DebugProvider
	t.disasmBuf = debug.NewDisasmBuffer(disasmHeight)
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.quit = make(chan struct{}, 1)

	screen, err := t.newScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	t.screen = screen
	t.running = true

	// logs go to the panel, writing to stderr would corrupt the screen
	t.logBuffer = render.NewLogBuffer(logBufferSize)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))

	if config.TestPattern {
		t.testPatternFrame = video.NewFrameBuffer()
		pattern.DrawTestPattern(t.testPatternFrame, t.testPatternType, 0)
		slog.Info("Terminal backend initialized in test pattern mode")
	} else {
		slog.Info("Terminal backend initialized", "title", config.Title)
		if config.ShowDebug {
			slog.Debug("Debug mode enabled")
		}
	}

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleSignals()

	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	select {
	case <-t.quit:
		t.running = false
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	default:
	}

	events := t.keypadEvents(now)

	for _, evt := range t.eventQueue {
		slog.Debug("UI event", "action", action.GetInfo(evt.Action).Description, "type", evt.Type)
	}
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if !t.running {
		return events, nil
	}

	renderFrame := frame
	if t.config.TestPattern {
		t.testFrameCount++
		if t.testFrameCount%display.TestPatternAnimationFrames == 0 {
			pattern.DrawTestPattern(t.testPatternFrame, t.testPatternType, t.testFrameCount/display.TestPatternAnimationFrames)
		}
		renderFrame = t.testPatternFrame
	}

	t.currentFrame = renderFrame
	t.render(renderFrame)
	t.screen.Show()

	return events, nil
}

// keypadEvents turns the last-seen times of keypad keys into press, hold
// and release events.
func (t *Backend) keypadEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastSeen := range t.keyStates {
		if now.Sub(lastSeen) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if t.activeKeys[act] {
			events = append(events, backend.InputEvent{Action: act, Type: event.Hold})
		} else {
			slog.Debug("Key press", "action", action.GetInfo(act).Description)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", action.GetInfo(act).Description)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

// Cleanup cleans up terminal resources
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		slog.Info("Cleaning up terminal backend")
		t.screen.Fini()
		t.screen = nil
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
		t.prevLogger = nil
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(t.currentFrame, t.snapshotName())
	case action.EmulatorTestPatternCycle:
		if t.config.TestPattern {
			t.testPatternType = (t.testPatternType + 1) % display.TestPatternCount
			pattern.DrawTestPattern(t.testPatternFrame, t.testPatternType, 0)
			slog.Info("Switched to test pattern", "pattern", pattern.TestPatternNames[t.testPatternType])
		}
	case action.EmulatorDebugToggle:
		t.config.ShowDebug = !t.config.ShowDebug
		if t.config.ShowDebug {
			slog.Info("Debug display enabled")
		} else {
			slog.Info("Debug display disabled")
		}
	case action.EmulatorDebugUpdate:
		t.screen.Sync()
	case action.DebugLogLevelIncrease:
		t.changeLogLevel(1)
	case action.DebugLogLevelDecrease:
		t.changeLogLevel(-1)
	}
}

func (t *Backend) snapshotName() string {
	if t.config.TestPattern {
		return fmt.Sprintf("test_pattern_%s", strings.ToLower(pattern.TestPatternNames[t.testPatternType]))
	}
	return t.config.Title
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	defer signal.Stop(signals)

	<-signals
	select {
	case t.quit <- struct{}{}:
	default:
	}
}

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = runeMapping[ev.Rune()]
	}
	if !ok {
		return
	}

	info := action.GetInfo(act)
	slog.Debug("Key event", "key", ev.Name(), "action", info.Description, "category", info.Category)

	if act == action.EmulatorQuit {
		t.running = false
	}
	if info.Category == action.CategoryKeypad {
		t.keyStates[act] = now
		return
	}
	t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEscape: "Escape",
	tcell.KeyF5:     "F5",
	tcell.KeyF9:     "F9",
	tcell.KeyF10:    "F10",
	tcell.KeyF11:    "F11",
	tcell.KeyF12:    "F12",
}

// buildKeyMapping creates the key mapping from default mappings
func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.EmulatorQuit
	return mapping
}

// buildRuneMapping maps every single-character key name of the default
// mappings to its rune, plus the space bar.
func buildRuneMapping() map[rune]action.Action {
	mapping := make(map[rune]action.Action)
	for keyName, act := range input.DefaultKeyMap {
		if r := []rune(keyName); len(r) == 1 {
			mapping[r[0]] = act
			if upper := []rune(strings.ToUpper(keyName)); upper[0] != r[0] {
				mapping[upper[0]] = act
			}
		}
	}
	if act, ok := input.GetDefaultMapping("Space"); ok {
		mapping[' '] = act
	}
	return mapping
}

var (
	keyMapping  = buildKeyMapping()
	runeMapping = buildRuneMapping()
)

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", t.logLevel)
	}
}

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	dividerX := width + 1
	rightPanelX := dividerX + 2
	rightPanelWidth := max(termWidth-rightPanelX, 0)

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawScreen(frame)

	logsY := 1
	if t.config.ShowDebug && t.debugProvider != nil {
		if data := t.debugProvider.ExtractDebugData(); data != nil {
			t.drawRegisters(data, rightPanelX, 1, rightPanelWidth, termHeight)
			t.drawDisassembly(data, rightPanelX, registerHeight+2, rightPanelWidth, termHeight)
		}
		logsY = registerHeight + disasmHeight + 3
	}
	t.drawLogs(rightPanelX, logsY, rightPanelWidth, termHeight)
}

func (t *Backend) drawText(x, y, maxWidth int, text string, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= maxWidth {
			return
		}
		t.screen.SetContent(x+col, y, ch, nil, style)
		col++
	}
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}

	title := " CHIP-8 "
	if t.config.TestPattern {
		title = fmt.Sprintf(" Test Pattern: %s ", pattern.TestPatternNames[t.testPatternType])
	} else if t.config.Title != "" {
		title = fmt.Sprintf(" CHIP-8: %s ", t.config.Title)
	}
	t.drawText(1, 0, dividerX-1, title, titleStyle)

	startX := dividerX + 2
	panelWidth := termWidth - startX
	logTitleY := 0

	if t.config.ShowDebug {
		registerEndY := registerHeight + 1
		disasmEndY := registerEndY + disasmHeight + 1
		for _, y := range []int{registerEndY, disasmEndY} {
			if y >= termHeight-1 {
				continue
			}
			for x := dividerX + 1; x < termWidth; x++ {
				t.screen.SetContent(x, y, '─', nil, borderStyle)
			}
			t.screen.SetContent(dividerX, y, '├', nil, borderStyle)
		}
		t.drawText(startX, 0, panelWidth, " Registers ", titleStyle)
		t.drawText(startX, registerEndY, panelWidth, " Disassembly ", titleStyle)
		logTitleY = disasmEndY
	}

	if logTitleY < termHeight-1 {
		title = fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel)
		t.drawText(startX, logTitleY, panelWidth, title, titleStyle)
	}

	helpText := " F10=debug SPACE=pause N=step O=frame F5=reset F9=snapshot ESC=quit "
	if t.config.TestPattern {
		helpText = " Test Pattern Mode: F12=cycle patterns F9=snapshot ESC=exit "
	}
	t.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

// drawScreen packs two display rows into each terminal row.
func (t *Backend) drawScreen(frame *video.FrameBuffer) {
	palette := t.config.Palette
	if palette == (video.Palette{}) {
		palette = video.DefaultPalette
	}
	onColor := toTcellColor(palette.On)
	offColor := toTcellColor(palette.Off)

	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			ch := render.HalfBlock(frame.Pixel(x, y), frame.Pixel(x, y+1))
			style := tcell.StyleDefault.Foreground(onColor).Background(offColor)
			t.screen.SetContent(x, y/2+1, ch, nil, style)
		}
	}
}

func toTcellColor(c video.Color) tcell.Color {
	return tcell.NewHexColor(int32(uint32(c) >> display.RGBABShift))
}

// registerLines renders the CPU state panel.
func registerLines(data *debug.Data) []string {
	cpu := data.CPU
	lines := []string{fmt.Sprintf("Status: %s  CPU: %s", data.DebuggerState, cpu.State)}
	for row := 0; row < 4; row++ {
		var sb strings.Builder
		for col := 0; col < 4; col++ {
			r := row*4 + col
			fmt.Fprintf(&sb, "V%X:%02X ", r, cpu.V[r])
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	lines = append(lines,
		fmt.Sprintf("I: 0x%03X  PC: 0x%03X  SP: %d", cpu.I, cpu.PC, cpu.SP),
		fmt.Sprintf("DT: %3d  ST: %3d", cpu.DelayTimer, cpu.SoundTimer),
		fmt.Sprintf("Opcode: %04X  Count: %d", cpu.Opcode, cpu.Instructions),
		"Stack: "+formatStack(cpu.Stack),
		"Keys: "+formatKeys(data.Keys),
	)
	if data.Err != nil {
		lines = append(lines, "Error: "+data.Err.Error())
	}
	return lines
}

func formatStack(stack []uint16) string {
	if len(stack) == 0 {
		return "-"
	}
	parts := make([]string, len(stack))
	for i, address := range stack {
		parts[i] = fmt.Sprintf("%03X", address)
	}
	return strings.Join(parts, " ")
}

func formatKeys(keys [16]bool) string {
	var sb strings.Builder
	for k, pressed := range keys {
		if pressed {
			fmt.Fprintf(&sb, "%X", k)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func (t *Backend) drawRegisters(data *debug.Data, startX, startY, panelWidth, termHeight int) {
	if data.CPU == nil || panelWidth <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	for i, line := range registerLines(data) {
		y := startY + i
		if y >= termHeight-1 || i >= registerHeight {
			break
		}
		useStyle := style
		if strings.HasPrefix(line, "Error:") {
			useStyle = errStyle
		}
		t.drawText(startX, y, panelWidth, line, useStyle)
	}
}

func (t *Backend) drawDisassembly(data *debug.Data, startX, startY, panelWidth, termHeight int) {
	if data.CPU == nil || data.Memory == nil || panelWidth <= 0 {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	lines := debug.CreateDisassemblyWithBuffer(data.Memory, data.CPU.PC, disasmHeight, t.disasmBuf)
	for i, line := range lines {
		y := startY + i
		if y >= termHeight-1 {
			break
		}
		text := fmt.Sprintf("  0x%03X: %s", line.Address, line.Instruction)
		useStyle := style
		if line.IsCurrent {
			text = "→" + text[1:]
			useStyle = currentStyle
		}
		t.drawText(startX, y, panelWidth, text, useStyle)
	}
}

func (t *Backend) drawLogs(startX, startY, panelWidth, termHeight int) {
	if panelWidth <= 0 || startY >= termHeight {
		return
	}

	availableHeight := termHeight - startY - 1
	if availableHeight <= 0 {
		return
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	row := 0
	for _, entry := range t.logBuffer.GetRecent(0) {
		if row >= availableHeight {
			break
		}
		if entry.Level < t.logLevel {
			continue
		}

		style := infoStyle
		switch entry.Level {
		case slog.LevelDebug:
			style = debugStyle
		case slog.LevelWarn:
			style = warnStyle
		case slog.LevelError:
			style = errStyle
		}

		text := render.FormatLogEntry(entry)
		if len([]rune(text)) > panelWidth && panelWidth > 3 {
			text = string([]rune(text)[:panelWidth-3]) + "..."
		}
		t.drawText(startX, startY+row, panelWidth, text, style)
		row++
	}
}
