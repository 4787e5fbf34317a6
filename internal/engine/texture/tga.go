// Package texture decodes the viewer's texture side input into RGBA images.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types.
const (
	TGATypeTrueColor    = 2
	TGATypeGray         = 3
	TGATypeTrueColorRLE = 10
	TGATypeGrayRLE      = 11
)

const tgaHeaderSize = 18

// TGA decoding errors.
var (
	ErrTGATruncated   = errors.New("TGA data truncated")
	ErrTGAUnsupported = errors.New("unsupported TGA variant")
)

// rlePacketPixels is the most pixels one RLE packet can cover.
const rlePacketPixels = 128

// DecodeTGA decodes uncompressed and RLE true-color (24/32 bit) and
// grayscale (8 bit) TGA images. Rows are returned top-to-bottom regardless
// of the origin stored in the file.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, ErrTGATruncated
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped", ErrTGAUnsupported)
	}

	var gray, rle bool
	switch imageType {
	case TGATypeTrueColor:
	case TGATypeTrueColorRLE:
		rle = true
	case TGATypeGray:
		gray = true
	case TGATypeGrayRLE:
		gray, rle = true, true
	default:
		return nil, fmt.Errorf("%w: image type %d", ErrTGAUnsupported, imageType)
	}
	if gray && bpp != 8 || !gray && bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel for type %d", ErrTGAUnsupported, bpp, imageType)
	}

	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyImage, width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, ErrTGATruncated
	}

	// Refuse headers that promise more pixels than the data can hold
	// before allocating the image.
	bytesPP := bpp / 8
	total := width * height
	need := total * bytesPP
	if rle {
		need = (total + rlePacketPixels - 1) / rlePacketPixels * (1 + bytesPP)
	}
	if len(data)-offset < need {
		return nil, fmt.Errorf("%w: %dx%d needs at least %d bytes, have %d",
			ErrTGATruncated, width, height, need, len(data)-offset)
	}

	d := &tgaDecoder{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		bytesPP:     bytesPP,
		gray:        gray,
		topToBottom: topToBottom,
	}
	var err error
	if rle {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *image.RGBA
	bytesPP     int
	gray        bool
	topToBottom bool
}

func (d *tgaDecoder) pixel() (color.RGBA, error) {
	if d.pos+d.bytesPP > len(d.src) {
		return color.RGBA{}, ErrTGATruncated
	}
	p := d.src[d.pos : d.pos+d.bytesPP]
	d.pos += d.bytesPP

	if d.gray {
		return color.RGBA{R: p[0], G: p[0], B: p[0], A: 255}, nil
	}
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPP == 4 {
		c.A = p[3]
	}
	return c, nil
}

// set writes the n-th pixel in file order.
func (d *tgaDecoder) set(n int, c color.RGBA) {
	w, h := d.img.Rect.Dx(), d.img.Rect.Dy()
	x, y := n%w, n/w
	if !d.topToBottom {
		y = h - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	total := d.img.Rect.Dx() * d.img.Rect.Dy()
	for n := 0; n < total; n++ {
		c, err := d.pixel()
		if err != nil {
			return err
		}
		d.set(n, c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	total := d.img.Rect.Dx() * d.img.Rect.Dy()
	for n := 0; n < total; {
		if d.pos >= len(d.src) {
			return ErrTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			for i := 0; i < count && n < total; i++ {
				d.set(n, c)
				n++
			}
			continue
		}
		for i := 0; i < count && n < total; i++ {
			c, err := d.pixel()
			if err != nil {
				return err
			}
			d.set(n, c)
			n++
		}
	}
	return nil
}
