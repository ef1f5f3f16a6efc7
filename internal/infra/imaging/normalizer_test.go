package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/cropsense/leafscan/pkg/errors"
)

func newTestNormalizer(t *testing.T, enhance bool) *Normalizer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewNormalizer(224, 100, 5000, enhance, logger)
}

func encodeBase64PNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func encodeBase64JPEG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func greenImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 30, G: 180, B: 40, A: 255})
		}
	}
	return img
}

func TestNormalize_ValidPNG(t *testing.T) {
	n := newTestNormalizer(t, true)

	out, err := n.Normalize(encodeBase64PNG(t, greenImage(300, 200)))

	require.NoError(t, err)
	require.Equal(t, 224, out.Width)
	require.Equal(t, 224, out.Height)
	require.NotEmpty(t, out.Base64)

	// The output must be a decodable 224x224 JPEG.
	decoded, format, err := image.Decode(bytes.NewReader(out.JPEG))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 224, decoded.Bounds().Dx())
	require.Equal(t, 224, decoded.Bounds().Dy())
}

func TestNormalize_ValidJPEG(t *testing.T) {
	n := newTestNormalizer(t, false)

	out, err := n.Normalize(encodeBase64JPEG(t, greenImage(224, 224)))

	require.NoError(t, err)
	require.Equal(t, 224, out.Width)
	require.Equal(t, 224, out.Height)
}

func TestNormalize_AcceptsDataURIPrefix(t *testing.T) {
	n := newTestNormalizer(t, false)
	payload := "data:image/png;base64," + encodeBase64PNG(t, greenImage(150, 150))

	_, err := n.Normalize(payload)

	require.NoError(t, err)
}

func TestNormalize_TooSmall(t *testing.T) {
	n := newTestNormalizer(t, false)

	_, err := n.Normalize(encodeBase64PNG(t, greenImage(50, 50)))

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_image"))
	require.Contains(t, err.Error(), "too small")
	require.Contains(t, err.Error(), "100x100")
}

func TestNormalize_TooLarge(t *testing.T) {
	n := newTestNormalizer(t, false)

	_, err := n.Normalize(encodeBase64PNG(t, greenImage(5001, 200)))

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_image"))
	require.Contains(t, err.Error(), "too large")
	require.Contains(t, err.Error(), "5000x5000")
}

func TestNormalize_InvalidBase64(t *testing.T) {
	n := newTestNormalizer(t, false)

	_, err := n.Normalize("!!not-base64!!")

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_image"))
}

func TestNormalize_NotAnImage(t *testing.T) {
	n := newTestNormalizer(t, false)

	_, err := n.Normalize(base64.StdEncoding.EncodeToString([]byte("plain text payload")))

	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_image"))
}

func TestNormalize_TransparencyFlattensToWhite(t *testing.T) {
	n := newTestNormalizer(t, false)

	// Fully transparent source: every pixel should come out near-white, not black.
	img := image.NewNRGBA(image.Rect(0, 0, 120, 120))
	out, err := n.Normalize(encodeBase64PNG(t, img))
	require.NoError(t, err)

	decoded, _, err := image.Decode(bytes.NewReader(out.JPEG))
	require.NoError(t, err)
	r, g, b, _ := decoded.At(112, 112).RGBA()
	require.Greater(t, r>>8, uint32(240))
	require.Greater(t, g>>8, uint32(240))
	require.Greater(t, b>>8, uint32(240))
}

func TestNormalize_IgnoresWhitespaceInPayload(t *testing.T) {
	n := newTestNormalizer(t, false)
	encoded := encodeBase64PNG(t, greenImage(150, 150))
	wrapped := encoded[:40] + "\n" + encoded[40:80] + " " + encoded[80:]

	_, err := n.Normalize(wrapped)

	require.NoError(t, err)
}
