package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

const helpText = "click: add point  shift+click: move last  c: circle  +/-: resize  " +
	"w: write  del: clear  y: copy  1-9: zoom  esc: quit"

// statusPanel is the strip along the bottom of the window.
type statusPanel struct {
	ui      *ebitenui.UI
	file    *widget.Text
	status  *widget.Text
	message *widget.Text
}

func newStatusPanel(file string) *statusPanel {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	grey := color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}

	label := func(s string, clr color.Color) *widget.Text {
		return widget.NewText(widget.TextOpts.Text(s, &face, clr))
	}

	p := &statusPanel{
		file:    label(file, white),
		status:  label("", white),
		message: label("", color.NRGBA{R: 0xff, G: 0xd0, B: 0x40, A: 0xff}),
	}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{A: 200})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(4),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
				StretchHorizontal:  true,
			}),
		),
	)
	panel.AddChild(p.file)
	panel.AddChild(p.status)
	panel.AddChild(p.message)
	panel.AddChild(label(helpText, grey))

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	p.ui = &ebitenui.UI{Container: root}
	return p
}

func (p *statusPanel) Set(status, message string) {
	p.status.Label = status
	p.message.Label = message
}
