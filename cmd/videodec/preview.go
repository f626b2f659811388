package main

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"screenreel-dx/internal/video"
)

// preview plays back a decoded frame sequence in an SDL window, one
// viewport-sized texture update per frame. It owns no decoder state;
// Play is given the already-reconstructed screens.
type preview struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	scale    int
	running  bool
}

func newPreview(scale int) (*preview, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("failed to initialize SDL: %w", err)
	}

	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")

	width := int32(video.ViewportWidth * scale)
	height := int32(video.ViewportHeight * scale)

	window, err := sdl.CreateWindow(
		"Screenreel-DX Decoder",
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		width,
		height,
		sdl.WINDOW_SHOWN,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	texture, err := renderer.CreateTexture(
		sdl.PIXELFORMAT_RGB888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(video.ViewportWidth),
		int32(video.ViewportHeight),
	)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("failed to create texture: %w", err)
	}

	return &preview{
		window:   window,
		renderer: renderer,
		texture:  texture,
		scale:    scale,
		running:  true,
	}, nil
}

// Play renders one texture update per screen, 60 frames per second,
// until every screen has been shown or the window is closed.
func (p *preview) Play(screens []*video.Screen) error {
	for _, screen := range screens {
		if !p.running {
			break
		}
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			p.handleEvent(event)
		}
		if !p.running {
			break
		}

		if err := p.renderScreen(screen); err != nil {
			return err
		}
		sdl.Delay(1000 / 60)
	}
	return nil
}

func (p *preview) renderScreen(screen *video.Screen) error {
	pixels, pitch, err := p.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("failed to lock texture: %w", err)
	}

	for _, cell := range screen.VisibleCells() {
		tile, ok := screen.TileAt(cell)
		if !ok {
			continue
		}
		baseX, baseY := viewportOrigin(cell, screen.X, screen.Y)
		drawTile(pixels, pitch, baseX, baseY, tile)
	}
	p.texture.Unlock()

	p.renderer.Clear()
	p.renderer.Copy(p.texture, nil, nil)
	p.renderer.Present()
	return nil
}

// viewportOrigin converts a cell's absolute tilemap position to the
// pixel offset of its top-left corner within a viewport whose own
// top-left pixel sits at (x, y) in the toroidal virtual pixel space. A
// tile that starts left of or above the window gets a negative offset,
// and a tile straddling an edge is clipped rather than split across
// both edges of the window; full toroidal tile splitting is cosmetic
// and not needed for a playback preview.
func viewportOrigin(cell video.Cell, x, y int) (int, int) {
	virtualX := cell.Col * video.TileWidth
	virtualY := cell.Row * video.TileHeight
	relX := ((virtualX-x)%video.VirtualWidth + video.VirtualWidth) % video.VirtualWidth
	relY := ((virtualY-y)%video.VirtualHeight + video.VirtualHeight) % video.VirtualHeight
	if relX >= video.ViewportWidth {
		relX -= video.VirtualWidth
	}
	if relY >= video.ViewportHeight {
		relY -= video.VirtualHeight
	}
	return relX, relY
}

// drawTile writes one tile's pixels into the destination buffer at
// (baseX, baseY), one pixel per RGB888 4-byte slot. On/off pixels
// render as white/black; screenreel-dx carries no palette, only the
// hardware's one-bit pattern.
func drawTile(pixels []byte, pitch int, baseX, baseY int, tile video.Tile) {
	for row := 0; row < video.TileHeight; row++ {
		bits := tile[row]
		py := baseY + row
		if py < 0 || py >= video.ViewportHeight {
			continue
		}
		for col := 0; col < video.TileWidth; col++ {
			px := baseX + col
			if px < 0 || px >= video.ViewportWidth {
				continue
			}
			on := bits&(1<<(7-col)) != 0
			offset := py*pitch + px*4
			var v byte
			if on {
				v = 0xFF
			}
			pixels[offset] = v
			pixels[offset+1] = v
			pixels[offset+2] = v
		}
	}
}

func (p *preview) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		p.running = false
	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			p.running = false
		}
	}
}

func (p *preview) Close() {
	p.texture.Destroy()
	p.renderer.Destroy()
	p.window.Destroy()
	sdl.Quit()
}
