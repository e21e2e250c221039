package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

// EncodedImage contains an encoded image as base64.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

var mimeTypes = map[imaging.Format]string{
	imaging.PNG:  "image/png",
	imaging.JPEG: "image/jpeg",
	imaging.GIF:  "image/gif",
	imaging.TIFF: "image/tiff",
	imaging.BMP:  "image/bmp",
}

// MimeType returns the MIME type of format.
func MimeType(format imaging.Format) string {
	if m, ok := mimeTypes[format]; ok {
		return m
	}
	return "application/octet-stream"
}

// FormatFromFilename picks the output format from the file extension.
func FormatFromFilename(path string) (imaging.Format, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("unsupported output format for %q: %w", path, err)
	}
	return f, nil
}

// Save writes img to path in the format given by the extension.
func Save(img image.Image, path string) error {
	if _, err := FormatFromFilename(path); err != nil {
		return err
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// Write encodes img to w in the given format.
func Write(w io.Writer, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(w, img, format); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Encode encodes img and returns it as base64 with its dimensions.
func Encode(img image.Image, format imaging.Format) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := Write(&buf, img, format); err != nil {
		return nil, err
	}

	b := img.Bounds()
	return &EncodedImage{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    MimeType(format),
	}, nil
}
