package common

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/Freeeeeet/studygroup_bot/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontStyle определяет стиль шрифта
type FontStyle string

const (
	FontStyleDefault FontStyle = "" // Regular
	FontStyleBold    FontStyle = "bold"
)

// Константы размеров и отступов
const (
	cardWidth        = 1200
	cardHeight       = 628
	cardPadding      = 56.0
	ribbonHeight     = 14.0
	cardBorderRadius = 28.0
	barWidth         = 520.0
	barHeight        = 22.0
	starSize         = 26.0
	starGap          = 10.0
	starCount        = 5
)

// Константы шрифтов
const (
	nameFontSize    = 52.0
	courseFontSize  = 30.0
	detailFontSize  = 26.0
	captionFontSize = 22.0
)

// Цветовая схема
var (
	cardBgColor       = color.RGBA{245, 246, 248, 255}
	cardPanelColor    = color.RGBA{255, 255, 255, 255}
	cardShadowColor   = color.RGBA{0, 0, 0, 20}
	nameColor         = color.RGBA{30, 34, 40, 255}
	detailColor       = color.RGBA{80, 85, 90, 220}
	captionColor      = color.RGBA{110, 115, 120, 200}
	publicRibbonColor = color.RGBA{133, 193, 85, 255}
	privateRibbon     = color.RGBA{255, 159, 67, 255}
	barTrackColor     = color.RGBA{225, 228, 232, 255}
	barFillColor      = color.RGBA{88, 140, 230, 255}
	barFullColor      = color.RGBA{231, 92, 92, 255}
	starFillColor     = color.RGBA{250, 190, 40, 255}
	starEmptyColor    = color.RGBA{205, 208, 214, 255}
)

// Кеш разобранных шрифтов; карточки рисуются из конкурентных
// callback-горутин, поэтому доступ под мьютексом
var (
	cachedCardFontsMu sync.Mutex
	cachedCardFonts   = make(map[FontStyle]*opentype.Font)
)

// cardFont возвращает разобранный шрифт стиля, кешируя результат
func cardFont(fontStyle FontStyle, fontData []byte) (*opentype.Font, error) {
	cachedCardFontsMu.Lock()
	defer cachedCardFontsMu.Unlock()

	if cachedFont, ok := cachedCardFonts[fontStyle]; ok && cachedFont != nil {
		return cachedFont, nil
	}

	parsedFont, err := opentype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	cachedCardFonts[fontStyle] = parsedFont
	return parsedFont, nil
}

// loadCardFont устанавливает шрифт указанного стиля или basicfont как fallback
func loadCardFont(dc *gg.Context, size float64, style ...FontStyle) {
	var fontStyle FontStyle = FontStyleDefault
	if len(style) > 0 {
		fontStyle = style[0]
	}

	var fontData []byte
	switch fontStyle {
	case FontStyleBold:
		fontData = gobold.TTF
	default:
		fontData = goregular.TTF
	}

	cachedFont, err := cardFont(fontStyle, fontData)
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}

	face, err := opentype.NewFace(cachedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// GenerateGroupCard генерирует PNG-карточку группы для отправки в чат
func GenerateGroupCard(g *model.Group) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)

	dc.SetColor(cardBgColor)
	dc.Clear()

	drawCardPanel(dc)
	drawPrivacyRibbon(dc, g)
	drawCardTitle(dc, g)
	drawCapacityBar(dc, g)
	drawRatingStars(dc, g.Rating)
	drawCardFooter(dc, g)

	return encodeCard(dc)
}

func drawCardPanel(dc *gg.Context) {
	x := cardPadding / 2
	y := cardPadding / 2
	w := float64(cardWidth) - cardPadding
	h := float64(cardHeight) - cardPadding

	dc.SetColor(cardShadowColor)
	dc.DrawRoundedRectangle(x+4, y+4, w, h, cardBorderRadius)
	dc.Fill()

	dc.SetColor(cardPanelColor)
	dc.DrawRoundedRectangle(x, y, w, h, cardBorderRadius)
	dc.Fill()
}

func drawPrivacyRibbon(dc *gg.Context, g *model.Group) {
	ribbonColor := publicRibbonColor
	if g.IsPrivate() {
		ribbonColor = privateRibbon
	}

	x := cardPadding / 2
	w := float64(cardWidth) - cardPadding

	dc.SetColor(ribbonColor)
	dc.DrawRoundedRectangle(x, cardPadding/2, w, ribbonHeight*2, cardBorderRadius)
	dc.Fill()
	// Скрываем нижние скругления ленты
	dc.SetColor(cardPanelColor)
	dc.DrawRectangle(x, cardPadding/2+ribbonHeight, w, ribbonHeight)
	dc.Fill()
}

func drawCardTitle(dc *gg.Context, g *model.Group) {
	x := cardPadding * 1.5
	maxWidth := float64(cardWidth) - cardPadding*3

	loadCardFont(dc, nameFontSize, FontStyleBold)
	dc.SetColor(nameColor)
	dc.DrawStringWrapped(g.Name, x, cardPadding*2, 0, 0, maxWidth, 1.2, gg.AlignLeft)

	loadCardFont(dc, courseFontSize)
	dc.SetColor(detailColor)
	dc.DrawString(g.AssociatedCourse.CourseName, x, cardPadding*2+nameFontSize*2.4)

	access := "Открытая группа"
	if g.IsPrivate() {
		if g.HasPasskey {
			access = "Приватная группа, вход по паролю"
		} else {
			access = "Приватная группа, вход по заявке"
		}
	}
	loadCardFont(dc, captionFontSize)
	dc.SetColor(captionColor)
	dc.DrawString(access, x, cardPadding*2+nameFontSize*2.4+courseFontSize*1.6)
}

func drawCapacityBar(dc *gg.Context, g *model.Group) {
	x := cardPadding * 1.5
	y := float64(cardHeight) - cardPadding*3.6

	loadCardFont(dc, detailFontSize)
	dc.SetColor(detailColor)
	label := fmt.Sprintf("%d участников", g.MemberCount)
	if g.MemberLimit > 0 {
		label = fmt.Sprintf("%d из %d участников", g.MemberCount, g.MemberLimit)
	}
	dc.DrawString(label, x, y-barHeight*0.8)

	dc.SetColor(barTrackColor)
	dc.DrawRoundedRectangle(x, y, barWidth, barHeight, barHeight/2)
	dc.Fill()

	if g.MemberLimit <= 0 {
		return
	}

	ratio := float64(g.MemberCount) / float64(g.MemberLimit)
	if ratio > 1 {
		ratio = 1
	}
	fill := barFillColor
	if g.IsFull() {
		fill = barFullColor
	}
	if ratio > 0 {
		dc.SetColor(fill)
		dc.DrawRoundedRectangle(x, y, barWidth*ratio, barHeight, barHeight/2)
		dc.Fill()
	}
}

func drawRatingStars(dc *gg.Context, rating float64) {
	x := cardPadding * 1.5
	y := float64(cardHeight) - cardPadding*1.8

	for i := 0; i < starCount; i++ {
		cx := x + float64(i)*(starSize+starGap) + starSize/2
		starColor := starEmptyColor
		if rating >= float64(i+1)-0.25 {
			starColor = starFillColor
		}
		dc.SetColor(starColor)
		drawStar(dc, cx, y, starSize/2)
	}

	loadCardFont(dc, detailFontSize)
	dc.SetColor(detailColor)
	text := "нет оценок"
	if rating > 0 {
		text = fmt.Sprintf("%.1f", rating)
	}
	dc.DrawString(text, x+float64(starCount)*(starSize+starGap)+starGap, y+starSize/4)
}

// drawStar рисует пятиконечную звезду с центром (cx, cy)
func drawStar(dc *gg.Context, cx, cy, r float64) {
	const points = 5
	inner := r * 0.45

	dc.NewSubPath()
	for i := 0; i < points*2; i++ {
		radius := r
		if i%2 == 1 {
			radius = inner
		}
		angle := gg.Radians(float64(i)*180.0/points - 90)
		px := cx + radius*math.Cos(angle)
		py := cy + radius*math.Sin(angle)
		if i == 0 {
			dc.MoveTo(px, py)
		} else {
			dc.LineTo(px, py)
		}
	}
	dc.ClosePath()
	dc.Fill()
}

func drawCardFooter(dc *gg.Context, g *model.Group) {
	if g.CreatedBy == nil {
		return
	}
	loadCardFont(dc, captionFontSize)
	dc.SetColor(captionColor)
	text := "Создатель: " + g.CreatedBy.Name
	w, _ := dc.MeasureString(text)
	dc.DrawString(text, float64(cardWidth)-cardPadding*1.5-w, float64(cardHeight)-cardPadding*1.2)
}

func encodeCard(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode group card: %w", err)
	}
	return buf.Bytes(), nil
}
