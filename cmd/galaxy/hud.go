package main

import (
	"fmt"
	"time"

	"github.com/taigrr/galaxy/pkg/galaxy"
)

// HUD renders an overlay with the galaxy parameters and frame rate.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// hudState is the snapshot of viewer state the HUD shows.
type hudState struct {
	Show    bool
	Params  galaxy.Parameters
	Seed    uint64
	Points  int
	Paused  bool
	Status  string
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, s hudState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows so toggling off works.
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	// Status messages show even with the HUD hidden.
	if s.Status != "" {
		col := max((width-len(s.Status)-2)/2, 1)
		fmt.Print(moveTo(height, col) + bgBlack + bold + fgYellow + " " + s.Status + " " + reset)
	}
	if !s.Show {
		return
	}

	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	title := fmt.Sprintf("galaxy seed %d", s.Seed)
	if s.Paused {
		title += " (paused)"
	}
	titleCol := max((width-len(title)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + bold + bgBlack + fgWhite + " " + title + " " + reset)

	points := fmt.Sprintf("%d pts", s.Points)
	fmt.Print(moveTo(1, max(width-len(points)-1, 1)) + bgBlack + fgCyan + bold + " " + points + " " + reset)

	if s.Status == "" {
		fmt.Print(moveTo(height, 1) + bgBlack + fgWhite + " " + describe(s.Params) + " " + reset)
		hint := "? help"
		fmt.Print(moveTo(height, max(width-len(hint)-1, 1)) + bgBlack + dim + fgYellow + " " + hint + " " + reset)
	}
}

// describe summarises p on one line.
func describe(p galaxy.Parameters) string {
	return fmt.Sprintf("arms %d  spin %.2f  radius %.2f  rand %.2f^%.0f",
		p.Branches, p.Spin, p.Radius, p.Randomness, p.RandomnessPower)
}
