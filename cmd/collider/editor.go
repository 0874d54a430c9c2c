package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/sprite2d/collider"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	zoomDuration  = 0.2
	pointRadius   = 3
	outlineWidth  = 1.5
	maxZoomLevel  = 9
	windowDefault = 960
)

var zoomKeys = [maxZoomLevel]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

func convexityColor(c collider.Convexity) color.Color {
	switch c {
	case collider.ConvexityConvex:
		return colornames.Lime
	case collider.ConvexityConcave:
		return colornames.Red
	}
	return colornames.Gold
}

// Editor is the ebiten game driving a Session.
type Editor struct {
	session *Session
	img     *ebiten.Image
	panel   *statusPanel
	log     *zap.Logger

	prefs     Prefs
	zoom      float64
	zoomTween *gween.Tween

	clipboard bool
	message   string
	width     int
	height    int
}

func NewEditor(session *Session, img *ebiten.Image, prefs Prefs, clipboardOK bool, log *zap.Logger) *Editor {
	return &Editor{
		session:   session,
		img:       img,
		panel:     newStatusPanel(session.Path()),
		log:       log,
		prefs:     prefs,
		zoom:      float64(prefs.Zoom),
		clipboard: clipboardOK,
		width:     windowDefault,
		height:    windowDefault,
	}
}

func (e *Editor) Prefs() Prefs {
	return e.prefs
}

func (e *Editor) setZoom(level int) {
	e.prefs.Zoom = level
	e.zoomTween = gween.New(float32(e.zoom), float32(level), zoomDuration, ease.OutQuad)
}

func (e *Editor) stepZoom() {
	if e.zoomTween == nil {
		return
	}
	v, done := e.zoomTween.Update(1 / float32(ebiten.TPS()))
	e.zoom = float64(v)
	if done {
		e.zoomTween = nil
	}
}

// toLocal maps a window position to collider space: image center is the
// origin and y grows downward.
func (e *Editor) toLocal(x, y int) collider.Point {
	cx, cy := float64(e.width)/2, float64(e.height)/2
	return collider.Pt((float64(x)-cx)/e.zoom, (float64(y)-cy)/e.zoom)
}

func (e *Editor) toScreen(p collider.Point) (float32, float32) {
	cx, cy := float64(e.width)/2, float64(e.height)/2
	return float32(cx + p.X*e.zoom), float32(cy + p.Y*e.zoom)
}

func (e *Editor) Update() error {
	e.stepZoom()

	for i, k := range zoomKeys {
		if inpututil.IsKeyJustPressed(k) {
			e.setZoom(i + 1)
		}
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	mx, my := ebiten.CursorPosition()
	switch {
	case shift && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		e.session.ReplaceLastPoint(e.toLocal(mx, my))
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		e.session.AddPoint(e.toLocal(mx, my))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		b := e.img.Bounds()
		e.session.SetCircle(float64(min(b.Dx(), b.Dy())) / 2)
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		e.session.GrowCircle()
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		e.session.ShrinkCircle()
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete), inpututil.IsKeyJustPressed(ebiten.KeyBackspace):
		e.session.Clear()
		e.message = ""
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		e.commit()
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		e.copyYAML()
	}

	e.panel.Set(e.session.Status(), e.message)
	e.panel.ui.Update()
	return nil
}

func (e *Editor) commit() {
	if err := e.session.Commit(); err != nil {
		e.log.Warn("write collider", zap.String("path", e.session.Path()), zap.Error(err))
		e.message = "write failed: " + err.Error()
		return
	}
	e.log.Info("collider written", zap.String("path", e.session.Path()))
	e.message = "wrote " + e.session.Path()
}

func (e *Editor) copyYAML() {
	if !e.clipboard {
		e.message = "clipboard unavailable"
		return
	}
	data, err := e.session.Encode()
	if err != nil {
		e.message = "copy failed: " + err.Error()
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	e.message = "copied collider to clipboard"
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	b := e.img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Scale(e.zoom, e.zoom)
	op.GeoM.Translate(float64(e.width)/2, float64(e.height)/2)
	screen.DrawImage(e.img, op)

	clr := convexityColor(e.session.Convexity())
	c := e.session.Collider()
	switch c.Kind {
	case collider.KindCircle:
		x, y := e.toScreen(collider.Pt(0, 0))
		vector.StrokeCircle(screen, x, y, float32(c.Radius*e.zoom), outlineWidth, clr, true)
	case collider.KindPolygon:
		e.drawPolygon(screen, c.Points, clr)
	}

	e.panel.ui.Draw(screen)
}

func (e *Editor) drawPolygon(screen *ebiten.Image, points []collider.Point, clr color.Color) {
	for i, p := range points {
		x, y := e.toScreen(p)
		vector.StrokeCircle(screen, x, y, pointRadius, outlineWidth, clr, true)
		if i == 0 {
			continue
		}
		px, py := e.toScreen(points[i-1])
		vector.StrokeLine(screen, px, py, x, y, outlineWidth, clr, true)
	}
	if len(points) >= 3 {
		fx, fy := e.toScreen(points[0])
		lx, ly := e.toScreen(points[len(points)-1])
		vector.StrokeLine(screen, lx, ly, fx, fy, outlineWidth, colornames.Gray, true)
	}
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.width, e.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
