package present

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ivlev/deck2video/internal/navigator"
	"github.com/ivlev/deck2video/internal/player"
	"github.com/ivlev/deck2video/internal/raster"
	"github.com/ivlev/deck2video/internal/slide"
	"github.com/ivlev/deck2video/internal/storage"
)

// Game shows a presentation in an ebiten window.
type Game struct {
	presentation *slide.Presentation
	width        int
	height       int

	raster    *raster.Renderer
	navigator *navigator.Navigator
	player    *player.Player
	frame     *ebiten.Image

	showOutline bool
	outline     string
}

// NewGame prepares a window-sized presenter for p. store may be nil.
func NewGame(p *slide.Presentation, width, height int, assets raster.ImageProvider, store *storage.Store) *Game {
	g := &Game{
		presentation: p,
		width:        width,
		height:       height,
		raster:       raster.New(p, width, height, assets),
		navigator:    navigator.New(p),
		frame:        ebiten.NewImage(width, height),
		outline:      strings.Join(Outline(p), "\n"),
	}

	var opts []player.Option
	if store != nil {
		opts = append(opts, player.WithStore(store))
	}
	g.player = player.New(p, player.RendererFunc(g.render), opts...)
	return g
}

// Resume shows the saved position, or the first slide.
func (g *Game) Resume(ttl time.Duration) {
	g.player.Resume(ttl)
}

func (g *Game) render(f player.Frame) {
	img := g.raster.Render(f.Slide, f.Snapshot)
	g.frame.WritePixels(img.Pix)
	g.raster.Release(img)
}

func (g *Game) Update() error {
	for _, ev := range ReadInput().Events() {
		req := g.navigator.Handle(ev, g.player.Position())
		if req.Action == navigator.ActionShowNavigator {
			g.showOutline = !g.showOutline
			continue
		}
		if req.Action != navigator.ActionNone {
			g.showOutline = false
		}
		g.player.Apply(req)
	}
	g.player.Tick(time.Now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.frame, nil)

	if line, ok := CommandLine(g.navigator, g.player.Position()); ok {
		vector.DrawFilledRect(screen, 0, float32(g.height-24), float32(g.width), 24, color.RGBA{A: 160}, false)
		ebitenutil.DebugPrintAt(screen, line, 8, g.height-20)
	}

	if g.showOutline {
		vector.DrawFilledRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{A: 180}, false)
		pos := g.player.Position()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Slide %d/%d, build %d\n\n%s",
			pos.SlideIndex+1, len(g.presentation.Slides), pos.BuildIndex, g.outline), 16, 16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// CommandLine renders the command being typed, followed by the slide and build
// it would jump to when it names a known shortcut.
func CommandLine(n *navigator.Navigator, current navigator.Target) (string, bool) {
	command, ok := n.Command()
	if !ok {
		return "", false
	}
	line := "g " + command + "_"
	if t, found := n.Lookup(command); found {
		t = t.Resolve(current)
		line += fmt.Sprintf("  -> %d.%d", t.SlideIndex+1, t.BuildIndex)
	}
	return line, true
}

// Outline lists the slides with their titles and the shortcuts that reach them.
func Outline(p *slide.Presentation) []string {
	bySlide := map[int][]string{}
	for alias, t := range navigator.Shortcuts(p) {
		bySlide[t.SlideIndex] = append(bySlide[t.SlideIndex], alias)
	}

	lines := make([]string, 0, len(p.Slides))
	for i, s := range p.Slides {
		line := fmt.Sprintf("%d.", i+1)
		if s != nil && s.Title != "" {
			line += " " + s.Title
		}
		if aliases := bySlide[i]; len(aliases) > 0 {
			sort.Strings(aliases)
			line += " [" + strings.Join(aliases, ", ") + "]"
		}
		lines = append(lines, line)
	}
	return lines
}
