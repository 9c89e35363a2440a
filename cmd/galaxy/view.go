package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"slices"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"
	"github.com/taigrr/galaxy/pkg/galaxy"
	"github.com/taigrr/galaxy/pkg/models"
	"github.com/taigrr/galaxy/pkg/render"
)

// statusTTL is how long a status message stays on screen.
const statusTTL = 3 * time.Second

type viewOptions struct {
	from string
	fps  int
}

func (o *viewOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.from, "from", "", "view a glTF point cloud instead of generating one")
	cmd.Flags().IntVar(&o.fps, "fps", 60, "target FPS")
}

func newViewCmd(opts *options, vopts *viewOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the galaxy interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd, opts, vopts)
		},
	}
	vopts.register(cmd)
	return cmd
}

// viewer is the interactive state shared by the input goroutine and the
// render loop. All fields are guarded by mu.
type viewer struct {
	mu sync.Mutex

	params galaxy.Parameters
	seed   uint64
	dirty  bool // params or seed changed since the field was built

	orbit    *Orbit
	zoom     *Zoom
	home     float64
	spin     float64
	paused   bool
	showHUD  bool
	showGrid bool

	exportRequested bool
	resize          *[2]int
	status          string
	statusAt        time.Time
}

func newViewer(p galaxy.Parameters, seed uint64, fps int, distance float64) *viewer {
	return &viewer{
		params:  p,
		seed:    seed,
		orbit:   NewOrbit(fps),
		zoom:    NewZoom(fps, distance),
		home:    distance,
		showHUD: true,
	}
}

// edit applies change to a copy of the parameters, clamps it to the
// interactive limits and marks the field for regeneration if anything moved.
func (v *viewer) edit(change func(p *galaxy.Parameters)) {
	p := v.params
	change(&p)
	p = p.Clamp(galaxy.DefaultLimits)
	if p == v.params {
		return
	}
	v.params = p
	v.dirty = true
}

func (v *viewer) setStatus(format string, args ...any) {
	v.status = fmt.Sprintf(format, args...)
	v.statusAt = time.Now()
}

// binding maps key names to a viewer change. run is called with mu held.
type binding struct {
	keys []string
	run  func(v *viewer)
}

const orbitImpulse = 0.04

var bindings = []binding{
	{[]string{"["}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Count /= 2 }) }},
	{[]string{"]"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Count *= 2 }) }},
	{[]string{"1"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Branches-- }) }},
	{[]string{"2"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Branches++ }) }},
	{[]string{"3"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Spin -= 0.25 }) }},
	{[]string{"4"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Spin += 0.25 }) }},
	{[]string{"5"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Randomness -= 0.05 }) }},
	{[]string{"6"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Randomness += 0.05 }) }},
	{[]string{"7"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.RandomnessPower-- }) }},
	{[]string{"8"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.RandomnessPower++ }) }},
	{[]string{"9"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Radius -= 0.5 }) }},
	{[]string{"0"}, func(v *viewer) { v.edit(func(p *galaxy.Parameters) { p.Radius += 0.5 }) }},
	{[]string{"n"}, func(v *viewer) {
		v.seed = rand.Uint64()
		v.dirty = true
	}},
	{[]string{"w", "up"}, func(v *viewer) { v.orbit.ApplyImpulse(orbitImpulse, 0) }},
	{[]string{"s", "down"}, func(v *viewer) { v.orbit.ApplyImpulse(-orbitImpulse, 0) }},
	{[]string{"a", "left"}, func(v *viewer) { v.orbit.ApplyImpulse(0, -orbitImpulse) }},
	{[]string{"d", "right"}, func(v *viewer) { v.orbit.ApplyImpulse(0, orbitImpulse) }},
	{[]string{"space"}, func(v *viewer) {
		v.orbit.ApplyImpulse((rand.Float64()-0.5)*0.3, (rand.Float64()-0.5)*1.5)
	}},
	{[]string{"+", "="}, func(v *viewer) { v.zoom.Step(-0.5) }},
	{[]string{"-", "_"}, func(v *viewer) { v.zoom.Step(0.5) }},
	{[]string{"p"}, func(v *viewer) { v.paused = !v.paused }},
	{[]string{"g"}, func(v *viewer) { v.showGrid = !v.showGrid }},
	{[]string{"x"}, func(v *viewer) { v.exportRequested = true }},
	{[]string{"r"}, func(v *viewer) {
		v.orbit.Reset()
		v.zoom.Target = v.home
	}},
	{[]string{"?", "shift+/"}, func(v *viewer) { v.showHUD = !v.showHUD }},
}

// press runs the binding for a key name. It reports false for unbound keys.
func (v *viewer) press(key string) bool {
	for _, b := range bindings {
		if slices.Contains(b.keys, key) {
			v.mu.Lock()
			b.run(v)
			v.mu.Unlock()
			return true
		}
	}
	return false
}

// handleKey dispatches a key event to the first matching binding.
func (v *viewer) handleKey(ev uv.KeyPressEvent) {
	for _, b := range bindings {
		if ev.MatchString(b.keys...) {
			v.mu.Lock()
			b.run(v)
			v.mu.Unlock()
			return
		}
	}
}

func runView(cmd *cobra.Command, opts *options, vopts *viewOptions) error {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		cfg.View.FPS = vopts.fps
	}
	if cfg.View.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.View.FPS)
	}
	bg, err := background(cfg.View)
	if err != nil {
		return err
	}
	params, err := cfg.Parameters()
	if err != nil {
		return err
	}

	field, err := loadOrGenerate(cmd, cfg, vopts.from)
	if err != nil {
		return err
	}
	slog.Info("starting viewer", "points", field.Len(), "seed", cfg.Seed)

	v := newViewer(params, cfg.Seed, cfg.View.FPS, cfg.View.CameraDistance)

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	scene := NewScene(fbWidth, fbHeight, bg)
	hud := NewHUD()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	go func() {
		var drag dragState
		for ev := range term.Events() {
			if !v.handleEvent(&drag, ev) {
				cancel()
				return
			}
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	targetDuration := time.Second / time.Duration(cfg.View.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			field.Dispose()
			return nil
		default:
		}

		now := time.Now()
		dt := min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		v.mu.Lock()
		if v.resize != nil {
			width, height = v.resize[0], v.resize[1]
			v.resize = nil
			term.Erase()
			term.Resize(width, height)
			termRenderer = render.NewTerminalRenderer(term, width, height)
			scene.Resize(termRenderer.FramebufferSize())
		}
		regenerate := v.dirty
		params, seed := v.params, v.seed
		v.dirty = false
		exportNow := v.exportRequested
		v.exportRequested = false
		if !v.paused {
			v.spin += dt * cfg.View.RotationSpeed
		}
		v.orbit.Update()
		v.zoom.Update()
		pose := Pose{
			Spin:     v.spin,
			Yaw:      v.orbit.Yaw.Position,
			Pitch:    v.orbit.Pitch.Position,
			Distance: v.zoom.Distance,
		}
		scene.ShowGrid = v.showGrid
		v.mu.Unlock()

		if regenerate {
			next, err := galaxy.RegenerateParallel(ctx, field, params, seed, cfg.Workers)
			v.mu.Lock()
			if err != nil {
				v.setStatus("regenerate: %v", err)
			} else {
				field = next
			}
			v.mu.Unlock()
		}

		if exportNow {
			path := fmt.Sprintf("galaxy-%d.glb", seed)
			err := models.SavePoints(field, path)
			v.mu.Lock()
			if err != nil {
				v.setStatus("export: %v", err)
			} else {
				v.setStatus("saved %s", path)
			}
			v.mu.Unlock()
		}

		scene.Render(field, pose)
		termRenderer.Render(scene.Framebuffer())
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.UpdateFPS()
		v.mu.Lock()
		if v.status != "" && time.Since(v.statusAt) > statusTTL {
			v.status = ""
		}
		state := hudState{
			Show:   v.showHUD,
			Params: field.Params,
			Seed:   v.seed,
			Points: field.Len(),
			Paused: v.paused,
			Status: v.status,
		}
		v.mu.Unlock()
		hud.Render(width, height, state)

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// dragState tracks the mouse between events.
type dragState struct {
	down bool
	x, y int
}

// handleEvent applies one terminal event. It reports false when the viewer
// should quit.
func (v *viewer) handleEvent(drag *dragState, ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.mu.Lock()
		v.resize = &[2]int{ev.Width, ev.Height}
		v.mu.Unlock()

	case uv.KeyPressEvent:
		if ev.MatchString("escape", "ctrl+c", "q") {
			return false
		}
		v.handleKey(ev)

	case uv.MouseClickEvent:
		drag.down = true
		drag.x, drag.y = ev.X, ev.Y

	case uv.MouseReleaseEvent:
		drag.down = false

	case uv.MouseMotionEvent:
		if drag.down {
			dx := ev.X - drag.x
			dy := ev.Y - drag.y
			v.mu.Lock()
			v.orbit.ApplyImpulse(float64(dy)*0.01, float64(dx)*0.03)
			v.mu.Unlock()
			drag.x, drag.y = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		v.mu.Lock()
		switch ev.Button {
		case uv.MouseWheelUp:
			v.zoom.Step(-0.5)
		case uv.MouseWheelDown:
			v.zoom.Step(0.5)
		}
		v.mu.Unlock()
	}
	return true
}
