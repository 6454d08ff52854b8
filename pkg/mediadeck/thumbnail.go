package mediadeck

import (
	"bytes"
	"image"
	"io"
	"os"
	"path/filepath"

	// Primary decoder formats. BMP registration comes from gobmp, which
	// covers the odd covers some apps hand out as bitmaps.
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "github.com/jsummers/gobmp"
	"go.uber.org/zap"
	"golang.org/x/image/webp"

	"github.com/retr0680/mediadeck/pkg/mediadeck/util"
)

const thumbnailDumpFilename = "thumb-dump.bin"

// DecodedImage is a decoded cover in straight (non-premultiplied) RGBA.
// Ownership transfers to the caller; nothing is cached across polls.
type DecodedImage struct {
	Width  int
	Height int
	Pix    []byte
}

// thumbnailCodec is one attempt in the decode fallback chain.
type thumbnailCodec struct {
	name   string
	decode func([]byte) (image.Image, error)
}

// thumbnailDecoder decodes raw cover bytes through an ordered chain of
// codecs, short-circuiting on the first success. Decode failures degrade to
// "no cover" and never propagate.
type thumbnailDecoder struct {
	logger *zap.SugaredLogger
	config *CanonicalConfig
	chain  []thumbnailCodec
}

func newThumbnailDecoder(logger *zap.SugaredLogger, config *CanonicalConfig) *thumbnailDecoder {
	d := &thumbnailDecoder{
		logger: logger.Named("thumbnail"),
		config: config,
		chain: []thumbnailCodec{
			{
				name: "std",
				decode: func(raw []byte) (image.Image, error) {
					img, _, err := image.Decode(bytes.NewReader(raw))
					return img, err
				},
			},
			{
				// Covers formats the standard chain lacks, notably the WebP
				// covers some streaming apps serve.
				name: "webp",
				decode: func(raw []byte) (image.Image, error) {
					return webp.Decode(bytes.NewReader(raw))
				},
			},
		},
	}

	d.logger.Debug("Created thumbnail decoder instance")
	return d
}

// DecodeStream reads the thumbnail stream into a fixed-capacity buffer and
// decodes it. Returns nil on a nil stream, an empty read, or a read error.
func (d *thumbnailDecoder) DecodeStream(stream io.ReadCloser) *DecodedImage {
	if stream == nil {
		return nil
	}
	defer stream.Close()

	capacity := defaultThumbnailMaxBytes
	if d.config != nil && d.config.ThumbnailMaxBytes > 0 {
		capacity = d.config.ThumbnailMaxBytes
	}

	raw, err := io.ReadAll(io.LimitReader(stream, int64(capacity)))
	if err != nil {
		d.logger.Debugw("Failed to read thumbnail stream", "error", err)
		return nil
	}

	return d.Decode(raw)
}

// Decode attempts each codec in order and returns the first successful
// result, normalized to straight RGBA. Returns nil when the buffer is empty
// or no codec can parse it.
func (d *thumbnailDecoder) Decode(raw []byte) *DecodedImage {
	if len(raw) == 0 {
		return nil
	}

	for _, codec := range d.chain {
		img, err := codec.decode(raw)
		if err != nil {
			d.logger.Debugw("Thumbnail codec failed", "codec", codec.name, "error", err)
			continue
		}

		// imaging.Clone yields NRGBA, which is straight-alpha RGBA in the
		// byte order the UI layer consumes.
		nrgba := imaging.Clone(img)
		bounds := nrgba.Bounds()

		return &DecodedImage{
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Pix:    nrgba.Pix,
		}
	}

	d.logger.Debugw("No codec could decode thumbnail", "bytes", len(raw))
	d.maybeDumpUndecodable(raw)

	return nil
}

// maybeDumpUndecodable writes the raw bytes to the log directory as a debug
// aid for diagnosing codecs we're missing. Best-effort only.
func (d *thumbnailDecoder) maybeDumpUndecodable(raw []byte) {
	if d.config == nil || !d.config.DumpUndecodableThumbnails {
		return
	}

	if err := util.EnsureDirExists(LogDirectory); err != nil {
		d.logger.Warnw("Failed to create directory for thumbnail dump", "error", err)
		return
	}

	dumpPath := filepath.Join(LogDirectory, thumbnailDumpFilename)
	if err := os.WriteFile(dumpPath, raw, 0644); err != nil {
		d.logger.Warnw("Failed to dump undecodable thumbnail", "path", dumpPath, "error", err)
		return
	}

	d.logger.Debugw("Dumped undecodable thumbnail bytes", "path", dumpPath, "bytes", len(raw))
}
