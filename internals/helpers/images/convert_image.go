// file: internals/helpers/images/convert_image.go
package images

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Foto member dinormalisasi ke WebP supaya ukuran konsisten
// (kartu ID / dashboard tidak butuh resolusi besar).
const (
	MaxPhotoSide = 512
	webpQuality  = 85
)

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// ConvertToWebP decode JPEG/PNG dari upload, fit ke MaxPhotoSide, encode WebP.
func ConvertToWebP(fileHeader *multipart.FileHeader) ([]byte, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file gambar: %w", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("file gambar tidak valid: %w", err)
	}

	fitted := imaging.Fit(img, MaxPhotoSide, MaxPhotoSide, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, fitted, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("gagal konversi ke WebP: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateUniqueFilename: nama aman + suffix unik, ekstensi dipaksa .webp
func GenerateUniqueFilename(original string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = filenameSanitizer.ReplaceAllString(base, "_")
	if base == "" {
		base = "photo"
	}
	return fmt.Sprintf("%s_%s_%s.webp",
		base,
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
	)
}
