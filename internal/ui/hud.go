//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"bitlife/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	panelPadding = 8
	lineHeight   = 16
)

type statsProvider interface {
	Generation() uint64
	Population() int
	ModeName() string
	Speed() int
}

// HUD renders generation statistics to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []string
	status     string
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{sim: sim, width: width}
}

// SetStatus shows a transient message such as the result of a save.
func (h *HUD) SetStatus(msg string) {
	if h == nil {
		return
	}
	h.status = msg
}

// Update refreshes the cached statistics from the simulation.
func (h *HUD) Update() {
	if h == nil {
		return
	}
	size := h.sim.Size()
	h.lines = h.lines[:0]
	h.lines = append(h.lines, h.sim.Name(), fmt.Sprintf("%dx%d", size.H, size.W))
	if stats, ok := h.sim.(statsProvider); ok {
		h.lines = append(h.lines,
			fmt.Sprintf("gen   %d", stats.Generation()),
			fmt.Sprintf("pop   %d", stats.Population()),
			fmt.Sprintf("mode  %s", stats.ModeName()),
			fmt.Sprintf("speed %d", stats.Speed()),
		)
	}
	h.lines = append(h.lines, "", "space pause", "n step", "+/- speed", "m mode", "r reset", "s save", "q quit")
	if h.status != "" {
		h.lines = append(h.lines, "", h.status)
	}
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	face := basicfont.Face7x13
	for i, line := range h.lines {
		text.Draw(h.panel, line, face, panelPadding, panelPadding+lineHeight*(i+1), color.RGBA{R: 220, G: 220, B: 230, A: 255})
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
