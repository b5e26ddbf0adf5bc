package ocr

import (
	"bytes"
	"encoding/base64"
	"image"
	"strings"

	// Formats recognized when sniffing uploaded images.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kbukum/babelink/errors"
)

// DecodeBase64 decodes a standard base64 image, accepting an optional
// data:<mime>;base64, prefix.
func DecodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.IndexByte(s, ','); i >= 0 {
			s = s[i+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, errors.DecodeFailure("base64 image", err)
	}
	return data, nil
}

// SniffFormat returns the image format of data ("png", "jpeg", "gif",
// "bmp", "tiff", "webp") without decoding the pixels.
func SniffFormat(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", errors.DecodeFailure("image", err)
	}
	return format, nil
}
