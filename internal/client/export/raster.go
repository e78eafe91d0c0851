// Package export renders the displayed note grid to an image and embeds it
// in a single-page PDF document.
package export

import (
	"image"
	"image/color"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/client/models"
	"github.com/dmitrijs2005/notekeeper/internal/client/view"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Grid geometry in canvas pixels, before upscaling.
const (
	CanvasWidth = 1200
	Columns     = 2
	Padding     = 40
	Gap         = 20
	CardPadding = 20
	Border      = 2
	Scale       = 3

	lineHeight = 18
	glyphWidth = 7
)

var (
	colBackground = hex(view.ColorBackground)
	colCard       = hex(view.ColorCard)
	colBorder     = hex(view.ColorBorder)
	colText       = hex(view.ColorText)
	colMuted      = hex(view.ColorMuted)
	colPhone      = hex(view.ColorPhone)
	colAccent     = hex(view.ColorAccent)
)

func hex(s string) color.RGBA {
	var c [3]uint8
	for i := 0; i < 3; i++ {
		c[i] = unhex(s[1+2*i])<<4 | unhex(s[2+2*i])
	}
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
}

func unhex(b byte) uint8 {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10
	}
	return 0
}

// Card is what the raster knows about one note.
type Card struct {
	Header string
	Body   string
	Footer string
	Locked bool
}

// CardOf builds the card of n. Locked notes never expose their content.
func CardOf(n models.Note, locked bool) Card {
	h := strings.ToUpper(n.Category)
	if n.IsPinned {
		h += "  [PINNED]"
	}
	if n.Image() != "" {
		h += "  [IMAGE]"
	}
	c := Card{
		Header: h,
		Footer: view.FormatDate(n.CreatedAt),
		Locked: locked,
	}
	if locked {
		c.Body = view.LockedPlaceholder
	} else {
		c.Body = n.Content
	}
	return c
}

// Cards builds cards for the displayed notes.
func Cards(notes []models.Note, locks *view.LockSet) []Card {
	out := make([]Card, 0, len(notes))
	for _, n := range notes {
		out = append(out, CardOf(n, locks.Locked(n)))
	}
	return out
}

func columnWidth() int {
	return (CanvasWidth - 2*Padding - (Columns-1)*Gap) / Columns
}

// LineWidth is the number of glyphs that fit on one card line.
func LineWidth() int {
	return (columnWidth() - 2*CardPadding) / glyphWidth
}

type run struct {
	text  string
	color color.Color
}

type line []run

// wrapBody splits body into lines of at most width glyphs, breaking on
// spaces where possible and keeping phone numbers highlighted.
func wrapBody(body string, width int, locked bool) []line {
	base := color.Color(colText)
	if locked {
		base = colMuted
	}

	type glyph struct {
		r     rune
		color color.Color
	}

	var lines []line
	for _, para := range strings.Split(body, "\n") {
		var glyphs []glyph
		for _, seg := range view.Segments(para) {
			c := base
			if seg.Phone && !locked {
				c = colPhone
			}
			for _, r := range seg.Text {
				glyphs = append(glyphs, glyph{r, c})
			}
		}

		for {
			n := len(glyphs)
			if n > width {
				n = width
				for i := width; i > width/2; i-- {
					if glyphs[i].r == ' ' {
						n = i
						break
					}
				}
			}

			var l line
			for _, g := range glyphs[:n] {
				if len(l) > 0 && l[len(l)-1].color == g.color {
					l[len(l)-1].text += string(g.r)
					continue
				}
				l = append(l, run{text: string(g.r), color: g.color})
			}
			lines = append(lines, l)

			glyphs = glyphs[n:]
			for len(glyphs) > 0 && glyphs[0].r == ' ' {
				glyphs = glyphs[1:]
			}
			if len(glyphs) == 0 {
				break
			}
		}
	}
	return lines
}

type laidOut struct {
	card   Card
	body   []line
	height int
}

func layout(cards []Card) []laidOut {
	out := make([]laidOut, len(cards))
	for i, c := range cards {
		body := wrapBody(c.Body, LineWidth(), c.Locked)
		// header, blank, body, blank, footer
		h := 2*CardPadding + (len(body)+4)*lineHeight
		out[i] = laidOut{card: c, body: body, height: h}
	}
	return out
}

// Rasterize draws the grid at canvas resolution.
func Rasterize(cards []Card) *image.RGBA {
	items := layout(cards)

	var rowHeights []int
	for i := 0; i < len(items); i += Columns {
		h := 0
		for j := i; j < i+Columns && j < len(items); j++ {
			h = max(h, items[j].height)
		}
		rowHeights = append(rowHeights, h)
	}

	height := 2 * Padding
	for i, h := range rowHeights {
		height += h
		if i > 0 {
			height += Gap
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, CanvasWidth, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colBackground), image.Point{}, draw.Src)

	colW := columnWidth()
	y := Padding
	for r, rh := range rowHeights {
		for c := 0; c < Columns; c++ {
			i := r*Columns + c
			if i >= len(items) {
				break
			}
			x := Padding + c*(colW+Gap)
			drawCard(img, image.Rect(x, y, x+colW, y+rh), items[i])
		}
		y += rh + Gap
	}
	return img
}

func drawCard(img *image.RGBA, rect image.Rectangle, item laidOut) {
	draw.Draw(img, rect, image.NewUniform(colBorder), image.Point{}, draw.Src)
	draw.Draw(img, rect.Inset(Border), image.NewUniform(colCard), image.Point{}, draw.Src)

	x := rect.Min.X + CardPadding
	y := rect.Min.Y + CardPadding + lineHeight

	drawText(img, x, y, line{{item.card.Header, colAccent}})
	y += 2 * lineHeight
	for _, l := range item.body {
		drawText(img, x, y, l)
		y += lineHeight
	}
	y += lineHeight
	drawText(img, x, y, line{{item.card.Footer, colMuted}})
}

func drawText(img *image.RGBA, x, baseline int, l line) {
	d := &font.Drawer{
		Dst:  img,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, baseline),
	}
	for _, r := range l {
		d.Src = image.NewUniform(r.color)
		d.DrawString(r.text)
	}
}

// Upscale enlarges src by factor with nearest-neighbour sampling.
func Upscale(src image.Image, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}
