package mediadeck

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 20, G: 120, B: 220, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	decoder := newThumbnailDecoder(nopLogger(), nil)

	decoded := decoder.Decode(encodePNG(t, 3, 2))

	require.NotNil(t, decoded)
	assert.Equal(t, 3, decoded.Width)
	assert.Equal(t, 2, decoded.Height)
	assert.Len(t, decoded.Pix, 3*2*4)
}

func TestDecodeJPEG(t *testing.T) {
	decoder := newThumbnailDecoder(nopLogger(), nil)

	decoded := decoder.Decode(encodeJPEG(t, 8, 8))

	require.NotNil(t, decoded)
	assert.Equal(t, 8, decoded.Width)
	assert.Equal(t, 8, decoded.Height)
}

// webpPixel is a 1x1 opaque black WebP (lossless VP8L bitstream), the kind of
// cover bytes the primary codec chain cannot parse.
var webpPixel = []byte{
	'R', 'I', 'F', 'F', 0x16, 0x00, 0x00, 0x00,
	'W', 'E', 'B', 'P',
	'V', 'P', '8', 'L', 0x09, 0x00, 0x00, 0x00,
	0x2F, 0x00, 0x00, 0x00, 0x00,
	0x88, 0x88, 0xFE, 0x07, 0x00,
}

func TestDecodeWebPViaSecondaryCodec(t *testing.T) {
	// The fixture must not be decodable by the primary codec, otherwise this
	// test stops guarding the fallback.
	_, _, err := image.Decode(bytes.NewReader(webpPixel))
	require.Error(t, err)

	decoder := newThumbnailDecoder(nopLogger(), nil)
	decoded := decoder.Decode(webpPixel)

	require.NotNil(t, decoded)
	assert.Equal(t, 1, decoded.Width)
	assert.Equal(t, 1, decoded.Height)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF}, decoded.Pix)
}

func TestDecodeUndecodableBytes(t *testing.T) {
	decoder := newThumbnailDecoder(nopLogger(), nil)

	assert.Nil(t, decoder.Decode([]byte("definitely not an image")))
	assert.Nil(t, decoder.Decode(nil))
	assert.Nil(t, decoder.Decode([]byte{}))
}

func TestDecodeStreamNilStream(t *testing.T) {
	decoder := newThumbnailDecoder(nopLogger(), nil)

	assert.Nil(t, decoder.DecodeStream(nil))
}

func TestDecodeStreamReadsAndDecodes(t *testing.T) {
	decoder := newThumbnailDecoder(nopLogger(), nil)

	stream := io.NopCloser(bytes.NewReader(encodePNG(t, 5, 5)))
	decoded := decoder.DecodeStream(stream)

	require.NotNil(t, decoded)
	assert.Equal(t, 5, decoded.Width)
}

func TestDecodeStreamCapsOversizedPayload(t *testing.T) {
	// A capacity smaller than the image truncates the read, which must
	// degrade to "no cover" rather than error out.
	config := &CanonicalConfig{ThumbnailMaxBytes: 16}
	decoder := newThumbnailDecoder(nopLogger(), config)

	stream := io.NopCloser(bytes.NewReader(encodePNG(t, 32, 32)))

	assert.Nil(t, decoder.DecodeStream(stream))
}

func TestDecodeDumpsUndecodableWhenConfigured(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	config := &CanonicalConfig{DumpUndecodableThumbnails: true}
	decoder := newThumbnailDecoder(nopLogger(), config)

	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	require.Nil(t, decoder.Decode(garbage))

	dumped, err := os.ReadFile(filepath.Join(LogDirectory, thumbnailDumpFilename))
	require.NoError(t, err)
	assert.Equal(t, garbage, dumped)
}
