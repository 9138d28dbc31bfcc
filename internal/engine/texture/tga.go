package texture

import "fmt"

// TGA image types.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE true-color TGA with 24 or 32 bits
// per pixel. Alpha is dropped.
func DecodeTGA(data []byte) (*RGBImage, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: TGA header truncated", ErrDecode)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := int(data[2])
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	switch {
	case colorMapType != 0:
		return nil, fmt.Errorf("%w: color-mapped TGA not supported", ErrDecode)
	case imageType != TGATypeUncompressed && imageType != TGATypeRLE:
		return nil, fmt.Errorf("%w: unsupported TGA type %d", ErrDecode, imageType)
	case bpp != 24 && bpp != 32:
		return nil, fmt.Errorf("%w: unsupported TGA bit depth %d", ErrDecode, bpp)
	case width == 0 || height == 0:
		return nil, ErrEmptyImage
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: TGA data truncated", ErrDecode)
	}

	d := &tgaDecoder{
		src:         data[offset:],
		img:         &RGBImage{Width: width, Height: height, Pix: make([]byte, width*height*3)},
		bytesPP:     bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *RGBImage
	bytesPP     int
	topToBottom bool
	pixel       int // next pixel in file order
}

// next reads one BGR(A) pixel from the stream.
func (d *tgaDecoder) next() ([3]byte, error) {
	if d.pos+d.bytesPP > len(d.src) {
		return [3]byte{}, fmt.Errorf("%w: TGA pixel data truncated", ErrDecode)
	}
	b, g, r := d.src[d.pos], d.src[d.pos+1], d.src[d.pos+2]
	d.pos += d.bytesPP
	return [3]byte{r, g, b}, nil
}

// put stores c at the next pixel, flipping bottom-up files.
func (d *tgaDecoder) put(c [3]byte) {
	w, h := d.img.Width, d.img.Height
	x, y := d.pixel%w, d.pixel/w
	if !d.topToBottom {
		y = h - 1 - y
	}
	i := (y*w + x) * 3
	copy(d.img.Pix[i:i+3], c[:])
	d.pixel++
}

func (d *tgaDecoder) total() int {
	return d.img.Width * d.img.Height
}

func (d *tgaDecoder) raw() error {
	for d.pixel < d.total() {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	for d.pixel < d.total() {
		if d.pos >= len(d.src) {
			return fmt.Errorf("%w: TGA RLE data truncated", ErrDecode)
		}
		packet := d.src[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, err := d.next()
			if err != nil {
				return err
			}
			for i := 0; i < count && d.pixel < d.total(); i++ {
				d.put(c)
			}
			continue
		}

		for i := 0; i < count && d.pixel < d.total(); i++ {
			c, err := d.next()
			if err != nil {
				return err
			}
			d.put(c)
		}
	}
	return nil
}
