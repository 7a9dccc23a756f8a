package storage

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/BruksfildServices01/groomer-scheduler/internal/httperr"
)

const (
	// MaxUploadBytes vale para fotos e recibos.
	MaxUploadBytes = 10 << 20

	maxPhotoEdge = 1600
	webpQuality  = 80
)

// NormalizePhoto decodifica jpeg/png/webp, reduz o lado maior para
// maxPhotoEdge e regrava em webp.
func NormalizePhoto(r io.Reader) ([]byte, error) {
	raw, err := readLimited(r)
	if err != nil {
		return nil, err
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_image")
	}

	img := resize(src, maxPhotoEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resize(src image.Image, maxEdge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxEdge && h <= maxEdge {
		return src
	}

	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

func readLimited(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxUploadBytes {
		return nil, httperr.ErrBusiness("file_too_large")
	}
	if len(raw) == 0 {
		return nil, httperr.ErrBusiness("empty_file")
	}
	return raw, nil
}
