//go:build sdl2

package sdl2

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/valerio/go-chip8/chip8/backend"
	"github.com/valerio/go-chip8/chip8/debug"
	"github.com/valerio/go-chip8/chip8/display"
	"github.com/valerio/go-chip8/chip8/input"
	"github.com/valerio/go-chip8/chip8/input/action"
	"github.com/valerio/go-chip8/chip8/input/event"
	"github.com/valerio/go-chip8/chip8/render"
	"github.com/valerio/go-chip8/chip8/video"
	"github.com/veandco/go-sdl2/sdl"
)

// Backend implements the Backend interface using SDL2 bindings
// Note: building this requires SDL2 development libraries installed.
// Default builds skip this and use a stubbed renderer, see build tags (sdl2)
type Backend struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
	running  bool
	config   backend.BackendConfig
	events   []backend.InputEvent

	testPatternFrame *video.FrameBuffer
	testPatternType  int
	testFrameCount   int

	currentFrame *video.FrameBuffer

	debugWindow *DebugWindow
}

// New creates a new SDL2 backend
func New() *Backend {
	return &Backend{
		debugWindow: NewDebugWindow(),
		pixels:      make([]byte, video.FramebufferWidth*video.FramebufferHeight*display.RGBABytesPerPixel),
	}
}

// Init initializes the SDL2 backend
func (s *Backend) Init(config backend.BackendConfig) error {
	s.config = config

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("failed to initialize SDL2: %w", err)
	}

	width, height := windowSize(config.Scale)
	window, err := sdl.CreateWindow(
		windowTitle(config),
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		width,
		height,
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE,
	)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("failed to create window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	s.renderer = renderer
	// keep the 2:1 aspect when the window is resized
	if err := renderer.SetLogicalSize(video.FramebufferWidth, video.FramebufferHeight); err != nil {
		slog.Warn("Failed to set logical size", "error", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGBA8888,
		sdl.TEXTUREACCESS_STREAMING,
		video.FramebufferWidth,
		video.FramebufferHeight,
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return fmt.Errorf("failed to create texture: %w", err)
	}
	s.texture = texture

	s.running = true

	if config.ShowDebug {
		s.ToggleDebugWindow()
	}

	if config.TestPattern {
		s.testPatternFrame = video.NewFrameBuffer()
		render.DrawTestPattern(s.testPatternFrame, s.testPatternType, 0)
		slog.Info("SDL2 backend initialized in test pattern mode")
	} else {
		slog.Info("SDL2 backend initialized", "width", width, "height", height)
	}

	return nil
}

func windowTitle(config backend.BackendConfig) string {
	if config.Title == "" {
		return "CHIP-8"
	}
	return "CHIP-8 - " + config.Title
}

// Update renders a frame and processes events
func (s *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	s.events = s.events[:0]

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		s.handleEvent(ev)
	}

	events := append([]backend.InputEvent(nil), s.events...)
	if !s.running {
		return events, nil
	}

	renderFrame := frame
	if s.config.TestPattern {
		s.testFrameCount++
		if s.testFrameCount%display.TestPatternAnimationFrames == 0 {
			render.DrawTestPattern(s.testPatternFrame, s.testPatternType, s.testFrameCount/display.TestPatternAnimationFrames)
		}
		renderFrame = s.testPatternFrame
	}

	s.currentFrame = renderFrame
	if err := s.renderFrame(renderFrame); err != nil {
		return events, err
	}

	if s.debugWindow.IsVisible() && s.config.DebugProvider != nil {
		s.debugWindow.Render(s.config.DebugProvider.ExtractDebugData())
	}

	return events, nil
}

// Cleanup cleans up SDL2 resources
func (s *Backend) Cleanup() error {
	slog.Info("Cleaning up SDL2 backend")

	s.debugWindow.Cleanup()
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()

	return nil
}

// HandleAction processes backend-specific actions
func (s *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		name := s.config.Title
		if s.config.TestPattern {
			name = "test_pattern_" + strings.ToLower(render.TestPatternNames[s.testPatternType])
		}
		debug.TakeSnapshot(s.currentFrame, name)
	case action.EmulatorTestPatternCycle:
		if s.config.TestPattern {
			s.testPatternType = (s.testPatternType + 1) % display.TestPatternCount
			render.DrawTestPattern(s.testPatternFrame, s.testPatternType, 0)
			slog.Info("Switched to test pattern", "pattern", render.TestPatternNames[s.testPatternType])
		}
	case action.EmulatorDebugToggle:
		s.ToggleDebugWindow()
	case action.EmulatorQuit:
		s.running = false
	}
}

func (s *Backend) handleEvent(ev sdl.Event) {
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		s.running = false
		s.events = append(s.events, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})

	case *sdl.WindowEvent:
		// closing the debug window only hides it
		if e.Event == sdl.WINDOWEVENT_CLOSE && s.debugWindow.Owns(e.WindowID) {
			s.debugWindow.SetVisible(false)
		}

	case *sdl.KeyboardEvent:
		if in, ok := translateKey(e.Keysym.Sym, e.Type == sdl.KEYDOWN, e.Repeat); ok {
			s.events = append(s.events, in)
		}
	}
}

// sdlKeyNameMap converts SDL keycodes to key names used in default mappings
var sdlKeyNameMap = map[sdl.Keycode]string{
	sdl.K_1: "1", sdl.K_2: "2", sdl.K_3: "3", sdl.K_4: "4",
	sdl.K_q: "q", sdl.K_w: "w", sdl.K_e: "e", sdl.K_r: "r",
	sdl.K_a: "a", sdl.K_s: "s", sdl.K_d: "d", sdl.K_f: "f",
	sdl.K_z: "z", sdl.K_x: "x", sdl.K_c: "c", sdl.K_v: "v",

	sdl.K_SPACE:    "Space",
	sdl.K_p:        "p",
	sdl.K_o:        "o",
	sdl.K_i:        "i",
	sdl.K_n:        "n",
	sdl.K_ESCAPE:   "Escape",
	sdl.K_F5:       "F5",
	sdl.K_F9:       "F9",
	sdl.K_F10:      "F10",
	sdl.K_F11:      "F11",
	sdl.K_F12:      "F12",
	sdl.K_EQUALS:   "=",
	sdl.K_KP_PLUS:  "+",
	sdl.K_MINUS:    "-",
	sdl.K_KP_MINUS: "-",
}

func buildKeyMapping() map[sdl.Keycode]action.Action {
	mapping := make(map[sdl.Keycode]action.Action)
	for key, keyName := range sdlKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	return mapping
}

// keyMapping maps SDL2 keys to actions
var keyMapping = buildKeyMapping()

// translateKey converts a keyboard event into an input event. Keypad keys
// report both press and release, other actions only fire on the initial
// press. Key repeats are dropped, holding is tracked by the keypad itself.
func translateKey(key sdl.Keycode, down bool, repeat uint8) (backend.InputEvent, bool) {
	act, ok := keyMapping[key]
	if !ok || repeat != 0 {
		return backend.InputEvent{}, false
	}

	isKeypad := action.GetInfo(act).Category == action.CategoryKeypad
	switch {
	case down:
		return backend.InputEvent{Action: act, Type: event.Press}, true
	case isKeypad:
		return backend.InputEvent{Action: act, Type: event.Release}, true
	}
	return backend.InputEvent{}, false
}

func (s *Backend) palette() video.Palette {
	if s.config.Palette == (video.Palette{}) {
		return video.DefaultPalette
	}
	return s.config.Palette
}

// windowSize returns the initial window size for a pixel scale, falling
// back to the default window when scale is unset.
func windowSize(scale int) (int32, int32) {
	if scale <= 0 {
		return display.DefaultWindowWidth, display.DefaultWindowHeight
	}
	return int32(video.FramebufferWidth * scale), int32(video.FramebufferHeight * scale)
}

// fillPixels writes the frame into dst in the byte order SDL expects for
// RGBA8888 textures on little-endian hosts.
func fillPixels(dst []byte, frame *video.FrameBuffer, palette video.Palette) {
	for y := 0; y < video.FramebufferHeight; y++ {
		for x := 0; x < video.FramebufferWidth; x++ {
			pixel := palette.Off
			if frame.Pixel(x, y) {
				pixel = palette.On
			}
			idx := (y*video.FramebufferWidth + x) * display.RGBABytesPerPixel
			dst[idx] = byte(pixel & display.RGBAColorMask)
			dst[idx+1] = byte((pixel >> display.RGBABShift) & display.RGBAColorMask)
			dst[idx+2] = byte((pixel >> display.RGBAGShift) & display.RGBAColorMask)
			dst[idx+3] = byte((pixel >> display.RGBARShift) & display.RGBAColorMask)
		}
	}
}

func (s *Backend) renderFrame(frame *video.FrameBuffer) error {
	fillPixels(s.pixels, frame, s.palette())

	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), video.FramebufferWidth*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("failed to update texture: %w", err)
	}

	s.renderer.SetDrawColor(0, 0, 0, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

// ToggleDebugWindow shows/hides the debug window
func (s *Backend) ToggleDebugWindow() {
	if !s.debugWindow.IsInitialized() {
		slog.Debug("Initializing debug window")
		if err := s.debugWindow.Init(); err != nil {
			slog.Warn("Failed to initialize debug window", "error", err)
			return
		}
	}
	visible := !s.debugWindow.IsVisible()
	s.debugWindow.SetVisible(visible)
	slog.Debug("Debug window visibility changed", "visible", visible)
}
