package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/buttonmove/pkg/geom"
	"github.com/decker502/buttonmove/pkg/utils"
)

// 界面配色
var (
	colorBackground    = color.RGBA{R: 242, G: 242, B: 247, A: 255}
	colorOpening       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colorOpeningBorder = color.RGBA{R: 199, G: 199, B: 204, A: 255}
	colorButton        = color.RGBA{R: 0, G: 122, B: 255, A: 255}
	colorButtonActive  = color.RGBA{R: 52, G: 170, B: 220, A: 255}
	colorMask          = color.RGBA{R: 0, G: 0, B: 0, A: 153} // 60% 不透明
	colorPanel         = color.RGBA{R: 242, G: 242, B: 247, A: 255}
	colorLabel         = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colorLink          = color.RGBA{R: 0, G: 122, B: 255, A: 255}
)

const labelFontSize = 16

// Draw 绘制界面
func (s *ButtonMoveScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	fillRect(screen, s.opening, colorOpening)
	strokeRect(screen, s.opening, colorOpeningBorder)

	s.drawSlidersButton(screen)
	s.drawMovableButton(screen)

	if s.overlay.Visible() {
		s.drawOverlay(screen)
	}
	if s.dialog.Visible {
		s.drawDialog(screen)
	}

	if s.layoutErr != nil {
		ebitenutil.DebugPrintAt(screen, s.layoutErr.Error(), 10, int(s.screenH)-20)
	}
}

func (s *ButtonMoveScene) drawMovableButton(screen *ebiten.Image) {
	c := s.ButtonCenter()
	r := float32(s.cfg.Geometry().Radius)
	clr := colorButton
	if s.session.Dragging() {
		clr = colorButtonActive
	}
	vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), r, clr, true)
}

func (s *ButtonMoveScene) drawSlidersButton(screen *ebiten.Image) {
	fillRect(screen, s.slidersButton, colorPanel)
	strokeRect(screen, s.slidersButton, colorOpeningBorder)
	drawCenteredLabel(screen, "Sliders", s.slidersButton, colorLink)
}

// drawOverlay 绘制半透明遮罩，开口区域镂空
//
// 用开口四周的四个矩形拼出遮罩，效果等同于 even-odd 填充
func (s *ButtonMoveScene) drawOverlay(screen *ebiten.Image) {
	o := s.overlay.Opening()
	br := o.Max()

	fillRect(screen, geom.NewRect(0, 0, s.screenW, o.Min.Y), colorMask)
	fillRect(screen, geom.NewRect(0, br.Y, s.screenW, s.screenH-br.Y), colorMask)
	fillRect(screen, geom.NewRect(0, o.Min.Y, o.Min.X, o.Size.H), colorMask)
	fillRect(screen, geom.NewRect(br.X, o.Min.Y, s.screenW-br.X, o.Size.H), colorMask)

	fillRect(screen, s.instructions, colorPanel)
	drawWrappedLabel(screen, s.cfg.Instructions, s.instructions, colorLabel)

	fillRect(screen, s.doneButton, colorPanel)
	drawCenteredLabel(screen, "Done", s.doneButton, colorLink)

	// 移动端没有键盘
	if !utils.IsMobile() {
		hint := fmt.Sprintf("Esc: cancel  R: reset  C: policy (%s)", s.session.Policy())
		ebitenutil.DebugPrintAt(screen, hint, 10, int(s.screenH)-40)
	}
}

func (s *ButtonMoveScene) drawDialog(screen *ebiten.Image) {
	fillRect(screen, geom.NewRect(0, 0, s.screenW, s.screenH), color.RGBA{A: 80})

	b := s.dialog.Bounds
	fillRect(screen, b, colorPanel)
	strokeRect(screen, b, colorOpeningBorder)

	title := geom.NewRect(b.Min.X, b.Min.Y+8, b.Size.W, 24)
	drawCenteredLabel(screen, s.dialog.Title, title, colorLabel)
	message := geom.NewRect(b.Min.X, b.Min.Y+36, b.Size.W, 24)
	drawCenteredLabel(screen, s.dialog.Message, message, colorLabel)

	drawCenteredLabel(screen, "OK", s.dialog.OK, colorLink)
}

func fillRect(screen *ebiten.Image, r geom.Rect, clr color.Color) {
	if r.Size.W <= 0 || r.Size.H <= 0 {
		return
	}
	vector.DrawFilledRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Size.W), float32(r.Size.H), clr, false)
}

func strokeRect(screen *ebiten.Image, r geom.Rect, clr color.Color) {
	vector.StrokeRect(screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Size.W), float32(r.Size.H), 1, clr, false)
}

// drawCenteredLabel 在矩形中居中绘制单行文字，字体不可用时退回调试字体
func drawCenteredLabel(screen *ebiten.Image, label string, r geom.Rect, clr color.Color) {
	face, err := utils.LabelFace(labelFontSize)
	if err != nil {
		log.Printf("[ButtonMoveScene] Warning: %v", err)
		ebitenutil.DebugPrintAt(screen, label, int(r.Min.X)+4, int(r.Min.Y)+4)
		return
	}

	c := r.Center()
	op := &text.DrawOptions{}
	op.GeoM.Translate(c.X, c.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, label, face, op)
}

// drawWrappedLabel 在矩形内绘制自动换行的多行文字，整体垂直居中
func drawWrappedLabel(screen *ebiten.Image, label string, r geom.Rect, clr color.Color) {
	face, err := utils.LabelFace(labelFontSize)
	if err != nil {
		ebitenutil.DebugPrintAt(screen, label, int(r.Min.X)+4, int(r.Min.Y)+4)
		return
	}

	const padding = 10.0
	lines := utils.WrapText(label, face, r.Size.W-2*padding)
	lineHeight := face.Size * 1.3
	top := r.Center().Y - lineHeight*float64(len(lines))/2

	for i, line := range lines {
		lineRect := geom.NewRect(r.Min.X, top+lineHeight*float64(i), r.Size.W, lineHeight)
		drawCenteredLabel(screen, line, lineRect, clr)
	}
}
