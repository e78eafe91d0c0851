package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/go-pdf/fpdf"
)

// PageWidthMM is the A4 width the raster is scaled to.
const PageWidthMM = 210.0

// PageHeightMM keeps the aspect ratio of a w×h raster at A4 width.
func PageHeightMM(w, h int) float64 {
	return float64(h) * PageWidthMM / float64(w)
}

// Document embeds img as PNG on a single page as wide as A4.
func Document(img image.Image) ([]byte, error) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	height := PageHeightMM(b.Dx(), b.Dy())

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: PageWidthMM, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Premium Notes", true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("notes", opts, &pngBuf)
	pdf.ImageOptions("notes", 0, 0, PageWidthMM, height, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return out.Bytes(), nil
}
