package filestorage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// MaxUploadSize caps complaint photos before decoding.
const MaxUploadSize = 5 << 20

// Decoded size limits, checked against the image header before decoding.
const (
	MaxImageSide   = 12000
	MaxImagePixels = 40_000_000
)

// ErrNotAnImage is returned when an upload cannot be decoded as JPEG, PNG or GIF.
var ErrNotAnImage = errors.New("file is not a supported image")

// ImageUploader normalises photos and hands them to a FileStorage.
type ImageUploader struct {
	storage  FileStorage
	maxWidth int
}

// NewImageUploader returns an uploader that downsizes images wider than maxWidth.
func NewImageUploader(storage FileStorage, maxWidth int) *ImageUploader {
	return &ImageUploader{storage: storage, maxWidth: maxWidth}
}

// Remove deletes a file previously returned by Upload.
func (u *ImageUploader) Remove(ctx context.Context, url string) error {
	return u.storage.Delete(ctx, url)
}

// UploadMultipart is Upload for a form file.
func (u *ImageUploader) UploadMultipart(ctx context.Context, folder string, fh *multipart.FileHeader) (string, error) {
	if fh.Size > MaxUploadSize {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrNotAnImage, MaxUploadSize)
	}

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	return u.Upload(ctx, folder, f)
}

// Upload decodes r, applies EXIF orientation, downsizes and re-encodes it
// (PNG stays PNG, everything else becomes JPEG) and stores it under
// folder/<uuid>.<ext>.
func (u *ImageUploader) Upload(ctx context.Context, folder string, r io.Reader) (string, error) {
	data, contentType, ext, err := u.prepare(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return "", err
	}

	key := path.Join(strings.Trim(folder, "/"), uuid.New().String()+ext)
	return u.storage.Save(ctx, key, contentType, bytes.NewReader(data))
}

func (u *ImageUploader) prepare(r io.Reader) ([]byte, string, string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(raw) > MaxUploadSize {
		return nil, "", "", fmt.Errorf("%w: larger than %d bytes", ErrNotAnImage, MaxUploadSize)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", "", ErrNotAnImage
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxImageSide || cfg.Height > MaxImageSide ||
		cfg.Width*cfg.Height > MaxImagePixels {
		return nil, "", "", fmt.Errorf("%w: %dx%d exceeds the size limit", ErrNotAnImage, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", "", ErrNotAnImage
	}

	if u.maxWidth > 0 && img.Bounds().Dx() > u.maxWidth {
		img = imaging.Resize(img, u.maxWidth, 0, imaging.Lanczos)
	}

	out := imaging.JPEG
	contentType, ext := "image/jpeg", ".jpg"
	if format == "png" {
		out = imaging.PNG
		contentType, ext = "image/png", ".png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, out, imaging.JPEGQuality(85)); err != nil {
		return nil, "", "", fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), contentType, ext, nil
}
