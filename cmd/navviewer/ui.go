package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/tilenav/pathfind"
)

const panelWidth = 300

var textColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// panelUI is the right-hand side panel: buttons plus a status readout.
type panelUI struct {
	pauseBtn *widget.Button
	traceBtn *widget.Button
	status   *widget.Text
}

func newPanelUI(g *Game) (*ebitenui.UI, *panelUI) {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	rowData := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(rowData),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	p := &panelUI{}
	p.pauseBtn = button("Pause", g.togglePause)
	p.traceBtn = button("Trace: On", func() { g.showTrace = !g.showTrace })
	spawnBtn := button("Spawn agent", func() { g.spawnRandom(1) })
	nextBtn := button("Next agent", g.selectNext)
	copyBtn := button("Copy path", g.copyPath)

	title := widget.NewText(
		widget.TextOpts.Text("tilenav", &face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	p.status = widget.NewText(
		widget.TextOpts.Text("", &face, textColor),
		widget.TextOpts.WidgetOpts(rowData),
	)
	help := widget.NewText(
		widget.TextOpts.Text(strings.Join([]string{
			"left click: goal (shift: all)",
			"right click: toggle wall",
			"middle click: spawn",
			"space pause  tab next  t trace",
			"p physics  c copy  n spawn",
			"del remove  r reload",
		}, "\n"), &face, color.NRGBA{R: 0xaa, G: 0xaa, B: 0xaa, A: 0xff}),
		widget.TextOpts.WidgetOpts(rowData),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, baseHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(title)
	panel.AddChild(p.pauseBtn)
	panel.AddChild(p.traceBtn)
	panel.AddChild(spawnBtn)
	panel.AddChild(nextBtn)
	panel.AddChild(copyBtn)
	panel.AddChild(p.status)
	panel.AddChild(help)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}, p
}

func setButtonLabel(btn *widget.Button, label string) {
	if btn == nil {
		return
	}
	if text := btn.Text(); text != nil {
		text.Label = label
	}
}

// refresh updates labels and the status readout from the game state.
func (p *panelUI) refresh(g *Game) {
	if p == nil {
		return
	}
	if g.paused {
		setButtonLabel(p.pauseBtn, "Resume")
	} else {
		setButtonLabel(p.pauseBtn, "Pause")
	}
	if g.showTrace {
		setButtonLabel(p.traceBtn, "Trace: On")
	} else {
		setButtonLabel(p.traceBtn, "Trace: Off")
	}

	w := g.world
	var b strings.Builder
	if w.Level != nil {
		fmt.Fprintf(&b, "level %s  profile %s\n", w.Level.Name, w.Profile.Name)
		fmt.Fprintf(&b, "tick %d  agents %d\n", w.Tick(), w.Agents.Len())
		fmt.Fprintf(&b, "index cells %d  load %.2f\n", w.Index.OccupiedCells(), w.Index.LoadFactor())
	}
	stats := w.Timer.Stats(pathfind.ProfileScope)
	fmt.Fprintf(&b, "searches %d  mean %s  max %s\n", stats.Calls, stats.Mean(), stats.Max)

	if a := g.selectedAgent(); a != nil {
		fmt.Fprintf(&b, "\nagent #%d at %d,%d\n", a.ID, a.Cell.X, a.Cell.Y)
		fmt.Fprintf(&b, "goal %d,%d  left %d\n", a.Goal.X, a.Goal.Y, a.Remaining())
		fmt.Fprintf(&b, "expanded %d", a.Trace.Expanded)
		if a.Trace.Capped {
			b.WriteString(" (capped)")
		}
		if a.Stuck {
			b.WriteString("\nno path")
		} else if a.Path != nil {
			fmt.Fprintf(&b, "\ncost %.2f  waypoints %d", a.Path.Cost, a.Waypoints.Len())
		}
	}
	if g.status != "" {
		fmt.Fprintf(&b, "\n\n%s", g.status)
	}
	p.status.Label = b.String()
}
