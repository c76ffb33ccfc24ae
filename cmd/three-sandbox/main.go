// three-sandbox spins a wireframe mesh in the terminal, every vertex going through the
// fixed-point transform and projection pipeline.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/tiny3d/logging"
	"github.com/lixenwraith/tiny3d/mesh"
	"github.com/lixenwraith/tiny3d/vmath"
)

const (
	targetFPS   = 30
	framePeriod = time.Second / targetFPS
	hudRows     = 2
)

// ramp maps face shade from dark to lit
var ramp = []rune(".:-=+*#%@")

func main() {
	meshPath := flag.String("mesh", "", "STL file to display (default: cube)")
	scale := flag.Float64("scale", 1.0, "scale ratio applied to the STL coordinates")
	logFile := flag.String("log", "logs/three-sandbox.log", "log file")
	debug := flag.Bool("debug", false, "log every frame")
	flag.Parse()

	if err := run(*meshPath, *scale, logging.Config{Debug: *debug, File: *logFile}); err != nil {
		fmt.Fprintf(os.Stderr, "three-sandbox: %v\n", err)
		os.Exit(1)
	}
}

func loadMesh(path string, scale float64) (*mesh.Mesh, error) {
	if path == "" {
		return mesh.Cube(vmath.Scale), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open mesh")
	}
	defer f.Close()
	m, err := mesh.Decode(f, mesh.Options{Scale: scale})
	return m, errors.Wrapf(err, "decode %s", path)
}

func run(meshPath string, scale float64, logCfg logging.Config) error {
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	m, err := loadMesh(meshPath, scale)
	if err != nil {
		return err
	}
	logger.Info("mesh loaded",
		zap.String("path", meshPath),
		zap.Int("vertices", len(m.Nodes)),
		zap.Int("triangles", len(m.Faces)),
	)

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer screen.Fini()
	screen.HideCursor()

	sc := newScene(m)
	paused := false

	events := startInputReader(screen)
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	for range ticker.C {
	drain:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				switch ev := ev.(type) {
				case *tcell.EventResize:
					screen.Sync()
				case *tcell.EventKey:
					switch {
					case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
						return nil
					case ev.Key() == tcell.KeyRune:
						switch ev.Rune() {
						case 'q':
							return nil
						case ' ':
							paused = !paused
						case '+', '=':
							sc.zoom(focalStep)
						case '-':
							sc.zoom(-focalStep)
						}
					}
				}
			default:
				break drain
			}
		}

		if !paused {
			sc.advance(1)
		}

		w, h := screen.Size()
		f := sc.project(w, h-hudRows)
		screen.Clear()
		drawFrame(screen, f, w, h-hudRows)
		drawHUD(screen, sc, f, w, h, paused)
		screen.Show()

		logger.Debug("frame",
			zap.Stringer("yaw", fixed(sc.yaw)),
			zap.Int("faces", f.visible),
		)
	}
	return nil
}

// startInputReader forwards terminal events until the screen is finalized
func startInputReader(screen tcell.Screen) <-chan tcell.Event {
	ch := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(ch)
				return
			}
			ch <- ev
		}
	}()
	return ch
}

func drawFrame(screen tcell.Screen, f frame, w, h int) {
	for _, e := range f.edges {
		level := vmath.ToInt(vmath.MulInt(e.shade, int64(len(ramp)-1)))
		level = min(max(level, 0), len(ramp)-1)
		gray := int32(80 + level*175/(len(ramp)-1))
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(gray, gray, gray))

		plotLine(e, w, h, func(x, y int) {
			screen.SetContent(x, y, ramp[level], nil, style)
		})
	}
}

// plotLine rasterizes an edge, clipped to the w*h grid
func plotLine(e edge, w, h int, plot func(x, y int)) {
	// Skip edges flung far outside the grid by near-plane projection
	limit := vmath.FromInt(4 * max(w, h))
	for _, p := range []vmath.Vector3{e.a, e.b} {
		if vmath.Abs(p.X) > limit || vmath.Abs(p.Y) > limit {
			return
		}
	}
	vmath.Traverse(e.a, e.b, func(x, y int) bool {
		if x >= 0 && x < w && y >= 0 && y < h {
			plot(x, y)
		}
		return true
	})
}

func drawHUD(screen tcell.Screen, sc *scene, f frame, w, h int, paused bool) {
	dim := tcell.StyleDefault.Foreground(tcell.NewRGBColor(100, 100, 110))
	status := fmt.Sprintf("faces %d/%d  focal %s  yaw %s", f.visible, len(sc.mesh.Faces), fixed(sc.focal), fixed(sc.yaw))
	writeStr(screen, 1, h-2, status, tcell.StyleDefault)
	if paused {
		writeStr(screen, w-9, h-2, "[PAUSED]", tcell.StyleDefault.Foreground(tcell.ColorYellow))
	}
	writeStr(screen, 1, h-1, "space:pause  +/-:zoom  q:quit", dim)
}

func writeStr(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// fixed prints a scaled value as a decimal
type fixed int64

func (f fixed) String() string {
	return fmt.Sprintf("%.3f", vmath.ToFloat(int64(f)))
}
