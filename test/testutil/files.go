package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	videoSvc "github.com/fhuszti/streams-ms-go/internal/usecase/video"
)

// GenerateMP4 returns bytes that look enough like an MP4 file: a valid
// ftyp box followed by free-space padding up to the minimum upload size.
func GenerateMP4(t *testing.T) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	// ftyp box: size (32) + "ftyp" + major brand + minor version + compatible brands
	buf.Write([]byte{0x00, 0x00, 0x00, 0x20})
	buf.WriteString("ftyp")
	buf.WriteString("isom")
	buf.Write([]byte{0x00, 0x00, 0x02, 0x00})
	buf.WriteString("isomiso2avc1mp41")

	if int64(buf.Len()) < videoSvc.MinFileSize {
		pad := make([]byte, videoSvc.MinFileSize-int64(buf.Len()))
		buf.Write(pad)
	}
	return buf.Bytes()
}

// GeneratePNG generates a simple RGBA image and encodes it to PNG.
func GeneratePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	// Pad to ensure MinFileSize
	if int64(buf.Len()) < videoSvc.MinFileSize {
		pad := make([]byte, videoSvc.MinFileSize-int64(buf.Len()))
		buf.Write(pad)
	}
	return buf.Bytes()
}

// GenerateText returns plain text of at least the minimum upload size, for
// exercising the unsupported mime-type path.
func GenerateText() []byte {
	return bytes.Repeat([]byte("streams-ms functional test\n"), 100)
}
