// Package imaging prepares uploaded plant photos for the vision model:
// base64 decode, validation, optional enhancement, and resize to the
// canonical 224x224 3-channel JPEG.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"log/slog"
	"strings"

	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/cropsense/leafscan/internal/domain/detection"
	apperrors "github.com/cropsense/leafscan/pkg/errors"
)

const jpegQuality = 90

// Normalizer implements detection.ImageNormalizer.
type Normalizer struct {
	targetSize int
	minDim     int
	maxDim     int
	enhance    bool
	logger     *slog.Logger
}

// NewNormalizer constructs the normalizer with the configured bounds.
func NewNormalizer(targetSize, minDim, maxDim int, enhance bool, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		targetSize: targetSize,
		minDim:     minDim,
		maxDim:     maxDim,
		enhance:    enhance,
		logger:     logger.With("component", "imaging.normalizer"),
	}
}

// Normalize decodes a possibly data-URI-prefixed base64 payload, validates it,
// flattens transparency onto white, optionally enhances contrast, resizes to
// the target square, and re-encodes as base64 JPEG.
func (n *Normalizer) Normalize(raw string) (detection.NormalizedImage, error) {
	img, err := n.decode(raw)
	if err != nil {
		return detection.NormalizedImage{}, err
	}

	if err := n.validate(img); err != nil {
		return detection.NormalizedImage{}, err
	}

	flat := flattenToWhite(img)

	if n.enhance {
		if enhanced, err := equalizeContrast(flat); err == nil {
			flat = enhanced
		} else {
			// Enhancement failure is never user-visible.
			n.logger.Warn("image enhancement failed, using original", "error", err)
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, n.targetSize, n.targetSize))
	xdraw.CatmullRom.Scale(resized, resized.Bounds(), flat, flat.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return detection.NormalizedImage{}, apperrors.Wrap("invalid_image", "failed to encode image", err)
	}

	return detection.NormalizedImage{
		Base64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		JPEG:   buf.Bytes(),
		Width:  n.targetSize,
		Height: n.targetSize,
	}, nil
}

func (n *Normalizer) decode(raw string) (image.Image, error) {
	payload := strings.TrimSpace(raw)
	// Data URIs arrive as "data:image/...;base64,<payload>".
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	payload = strings.Map(dropSpace, payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
	}
	if err != nil {
		return nil, apperrors.Wrap("invalid_image", "failed to decode image: invalid base64 payload", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap("invalid_image", "failed to decode image: unrecognized format", err)
	}
	return img, nil
}

func (n *Normalizer) validate(img image.Image) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width < n.minDim || height < n.minDim {
		return apperrors.Wrap("invalid_image",
			fmt.Sprintf("image too small (minimum %dx%d pixels)", n.minDim, n.minDim), nil)
	}
	if width > n.maxDim || height > n.maxDim {
		return apperrors.Wrap("invalid_image",
			fmt.Sprintf("image too large (maximum %dx%d pixels)", n.maxDim, n.maxDim), nil)
	}
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64,
		*image.YCbCr, *image.NYCbCrA, *image.Gray, *image.Gray16, *image.Paletted:
		return nil
	default:
		return apperrors.Wrap("invalid_image",
			fmt.Sprintf("unsupported color mode: %T", img), nil)
	}
}

// flattenToWhite composites the source over an opaque white background so
// transparent regions do not turn into black artifacts after JPEG encoding.
func flattenToWhite(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

// equalizeContrast applies a global luminance histogram equalization, a cheap
// stand-in for the CLAHE pass the detection pipeline was tuned with.
func equalizeContrast(src *image.RGBA) (*image.RGBA, error) {
	bounds := src.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return nil, errors.New("empty image")
	}

	var hist [256]int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[luma(src.RGBAAt(x, y))]++
		}
	}

	var lut [256]uint8
	cum := 0
	for i := 0; i < 256; i++ {
		cum += hist[i]
		lut[i] = uint8((cum*255 + total/2) / total)
	}

	dst := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := src.RGBAAt(x, y)
			l := luma(px)
			mapped := lut[l]
			dst.SetRGBA(x, y, scalePixel(px, l, mapped))
		}
	}
	return dst, nil
}

func luma(px color.RGBA) int {
	// Rec. 601 luminance weights.
	return (299*int(px.R) + 587*int(px.G) + 114*int(px.B)) / 1000
}

// scalePixel shifts a pixel's channels proportionally to the luminance change
// so equalization adjusts brightness without destroying hue.
func scalePixel(px color.RGBA, oldLuma int, newLuma uint8) color.RGBA {
	if oldLuma == 0 {
		v := newLuma
		return color.RGBA{R: v, G: v, B: v, A: px.A}
	}
	scale := func(c uint8) uint8 {
		v := int(c) * int(newLuma) / oldLuma
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return color.RGBA{R: scale(px.R), G: scale(px.G), B: scale(px.B), A: px.A}
}

func dropSpace(r rune) rune {
	switch r {
	case ' ', '\n', '\r', '\t':
		return -1
	}
	return r
}
