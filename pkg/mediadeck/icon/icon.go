// Package icon holds the embedded application icon bytes used by the tray
// and the toast notifier.
package icon

// DeckLogo is a minimal .ico payload (1x1, 32bpp) written to a temp file for
// APIs that require an icon path.
var DeckLogo = []byte{
	// ICONDIR
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	// ICONDIRENTRY: 1x1, 32bpp, 48 bytes at offset 22
	0x01, 0x01, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
	0x30, 0x00, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00,
	// BITMAPINFOHEADER (height doubled for the AND mask)
	0x28, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x00, 0x00, 0x01, 0x00, 0x20, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x08, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	// XOR data: one BGRA pixel (accent blue)
	0xFF, 0xB4, 0x64, 0xFF,
	// AND mask
	0x00, 0x00, 0x00, 0x00,
}
