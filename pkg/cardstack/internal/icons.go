package internal

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Icon names understood by RasterizeIcon.
const (
	IconBack  = "back"
	IconClose = "close"
)

// Icons are drawn on a 24x24 grid; %s is replaced by the stroke color.
var iconSources = map[string]string{
	IconBack: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24">
<path d="M15 4 L7 12 L15 20" fill="none" stroke="%s" stroke-width="2.5" stroke-linecap="round" stroke-linejoin="round"/>
</svg>`,
	IconClose: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" width="24" height="24">
<path d="M6 6 L18 18 M18 6 L6 18" fill="none" stroke="%s" stroke-width="2.5" stroke-linecap="round"/>
</svg>`,
}

// RasterizeIcon renders the named icon into a size x size image.
func RasterizeIcon(name string, size int, c color.RGBA) (*image.RGBA, error) {
	src, ok := iconSources[name]
	if !ok {
		return nil, fmt.Errorf("unknown icon %q", name)
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid icon size %d", size)
	}

	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	icon, err := oksvg.ReadIconStream(strings.NewReader(fmt.Sprintf(src, hex)))
	if err != nil {
		return nil, fmt.Errorf("parse icon %q: %w", name, err)
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), float64(c.A)/0xFF)

	GetInternalLogger().Debug("Rasterized icon", "icon", name, "size", size)
	return img, nil
}
