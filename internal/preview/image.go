package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/muesli/termenv"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/webp"
	"golang.org/x/term"

	"github.com/cnharrison/harview/internal/body"
	"github.com/cnharrison/harview/internal/codec"
)

const (
	maxImageBytes  = 50 * 1024 * 1024
	maxImagePixels = 10000 * 10000
)

// ErrImagesDisabled is returned when inline images cannot be shown
var ErrImagesDisabled = errors.New("inline images are disabled for this terminal")

// ImageRenderer draws image bodies as tview-tagged terminal text
type ImageRenderer struct {
	enabled   bool
	protocol  termimg.Protocol
	maxWidth  int
	maxHeight int
}

// NewImageRenderer detects the terminal's image protocol. Rendering is off
// when enabled is false or the terminal only supports ASCII colors.
func NewImageRenderer(enabled bool) *ImageRenderer {
	width, height := terminalSize()
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	r := &ImageRenderer{
		enabled:   enabled && termenv.EnvColorProfile() != termenv.Ascii,
		maxWidth:  max(width-4, 40),
		maxHeight: max(height/2, 10),
	}
	if r.enabled {
		r.protocol = termimg.DetectProtocol()
	}
	return r
}

// Enabled reports whether images will be drawn
func (r *ImageRenderer) Enabled() bool {
	return r != nil && r.enabled
}

// SetMaxSize bounds rendered images to width x height cells
func (r *ImageRenderer) SetMaxSize(width, height int) {
	r.maxWidth = width
	r.maxHeight = height
}

// Render draws d. The first line is a header naming format and dimensions.
func (r *ImageRenderer) Render(d *body.Decoded) (string, error) {
	if !r.Enabled() {
		return "", ErrImagesDisabled
	}
	if d == nil || len(d.Bytes) == 0 {
		return "", errors.New("no image data")
	}
	if len(d.Bytes) > maxImageBytes {
		return "", fmt.Errorf("image too large (%s)", FormatSize(len(d.Bytes)))
	}

	img, format, err := DecodeImage(d.Bytes, d.MimeType, r.maxWidth, r.maxHeight)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := img.Bounds()
	if bounds.Dx()*bounds.Dy() > maxImagePixels {
		return "", fmt.Errorf("image too large (%dx%d)", bounds.Dx(), bounds.Dy())
	}

	ti := termimg.New(img)
	maxHeight := r.maxHeight
	if r.protocol == termimg.Halfblocks {
		ti = ti.Protocol(termimg.Halfblocks)
		// halfblocks pack two pixel rows per cell
		maxHeight *= 2
	}
	if bounds.Dx() > r.maxWidth || bounds.Dy() > maxHeight {
		scale := min(float64(r.maxWidth)/float64(bounds.Dx()), float64(maxHeight)/float64(bounds.Dy()))
		ti = ti.Width(int(float64(bounds.Dx()) * scale)).Height(int(float64(bounds.Dy()) * scale))
	}

	rendered, err := ti.Render()
	if err != nil {
		return "", fmt.Errorf("failed to render image: %w", err)
	}

	header := fmt.Sprintf("[yellow]%s[white] %dx%d, %s\n\n", format, bounds.Dx(), bounds.Dy(), FormatSize(len(d.Bytes)))
	return header + ANSIToTview(rendered), nil
}

// DecodeImage decodes png, jpeg, gif, webp and svg bodies. SVGs are
// rasterized to fit within maxWidth x maxHeight.
func DecodeImage(data []byte, mimeType string, maxWidth, maxHeight int) (image.Image, string, error) {
	reader := bytes.NewReader(data)
	switch mt := codec.MediaType(mimeType); {
	case strings.Contains(mt, "svg"):
		img, err := rasterizeSVG(data, maxWidth, maxHeight)
		return img, "SVG", err
	case strings.Contains(mt, "png"):
		img, err := png.Decode(reader)
		return img, "PNG", err
	case strings.Contains(mt, "jpeg") || strings.Contains(mt, "jpg"):
		img, err := jpeg.Decode(reader)
		return img, "JPEG", err
	case strings.Contains(mt, "gif"):
		img, err := gif.Decode(reader)
		return img, "GIF", err
	case strings.Contains(mt, "webp"):
		img, err := webp.Decode(reader)
		return img, "WebP", err
	}

	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, "", err
	}
	return img, strings.ToUpper(format), nil
}

func rasterizeSVG(data []byte, maxWidth, maxHeight int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	width, height := icon.ViewBox.W, icon.ViewBox.H
	if width <= 0 || height <= 0 {
		width, height = float64(maxWidth), float64(maxHeight)
	}
	if width > float64(maxWidth) || height > float64(maxHeight) {
		scale := min(float64(maxWidth)/width, float64(maxHeight)/height)
		width *= scale
		height *= scale
	}

	w, h := max(int(width), 1), max(int(height), 1)
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return rgba, nil
}

func terminalSize() (int, int) {
	for _, f := range []*os.File{os.Stdout, os.Stdin, os.Stderr} {
		if term.IsTerminal(int(f.Fd())) {
			if w, h, err := term.GetSize(int(f.Fd())); err == nil {
				return w, h
			}
		}
	}
	return 0, 0
}

var (
	combinedColor = regexp.MustCompile(`\x1b\[38;2;(\d+);(\d+);(\d+);48;2;(\d+);(\d+);(\d+)m`)
	fgColor       = regexp.MustCompile(`\x1b\[38;2;(\d+);(\d+);(\d+)m`)
	bgColor       = regexp.MustCompile(`\x1b\[48;2;(\d+);(\d+);(\d+)m`)
	anyEscape     = regexp.MustCompile(`\x1b\[[0-9;]*m`)
)

// ANSIToTview converts the true-color escapes emitted for halfblock images
// into tview color tags and strips the rest.
func ANSIToTview(s string) string {
	s = combinedColor.ReplaceAllStringFunc(s, func(m string) string {
		c := combinedColor.FindStringSubmatch(m)
		return fmt.Sprintf("[%s:%s]", hexColor(c[1], c[2], c[3]), hexColor(c[4], c[5], c[6]))
	})
	s = fgColor.ReplaceAllStringFunc(s, func(m string) string {
		c := fgColor.FindStringSubmatch(m)
		return "[" + hexColor(c[1], c[2], c[3]) + "]"
	})
	s = bgColor.ReplaceAllStringFunc(s, func(m string) string {
		c := bgColor.FindStringSubmatch(m)
		return "[:" + hexColor(c[1], c[2], c[3]) + "]"
	})
	for _, reset := range []string{"\x1b[0m", "\x1b[39m", "\x1b[49m"} {
		s = strings.ReplaceAll(s, reset, "[-:-]")
	}
	return anyEscape.ReplaceAllString(s, "")
}

func hexColor(r, g, b string) string {
	return fmt.Sprintf("#%02x%02x%02x", colorComponent(r), colorComponent(g), colorComponent(b))
}

func colorComponent(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return min(max(n, 0), 255)
}
