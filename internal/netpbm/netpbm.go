// Package netpbm encodes and decodes ASCII Netpbm images: PGM ("P2") for
// single-channel buffers and PPM ("P3") for three-channel buffers.
// Encoding is byte-stable: re-encoding the same buffer always produces
// identical text.
package netpbm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/cooperage-labs/visionpipe/internal/vision"
)

const (
	magicPGM = "P2"
	magicPPM = "P3"
)

// Encode writes img in ASCII Netpbm form: PGM for single-channel images,
// PPM for three-channel images. The layout is fixed: magic line, "width
// height" line, max value line, then one line of space-separated samples
// per image row.
func Encode(w io.Writer, img *vision.Image) error {
	var magic string
	switch img.Channels {
	case vision.GrayChannels:
		magic = magicPGM
	case vision.RGBChannels:
		magic = magicPPM
	default:
		return fmt.Errorf("netpbm: unsupported channel count %d", img.Channels)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n%d\n", magic, img.Width, img.Height, vision.MaxSample)

	rowLen := img.Width * img.Channels
	for y := 0; y < img.Height; y++ {
		row := img.Pix[y*rowLen : (y+1)*rowLen]
		for i, s := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(int(s)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Decode reads an ASCII PGM or PPM image. Comment lines beginning with
// '#' are ignored and tokens may be separated by any whitespace, so any
// conforming writer's output is accepted.
func Decode(r io.Reader) (*vision.Image, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	sc.Split(splitTokens)

	magic, err := nextToken(sc)
	if err != nil {
		return nil, err
	}
	var channels int
	switch magic {
	case magicPGM:
		channels = vision.GrayChannels
	case magicPPM:
		channels = vision.RGBChannels
	default:
		return nil, fmt.Errorf("netpbm: unsupported magic %q", magic)
	}

	width, err := nextInt(sc)
	if err != nil {
		return nil, fmt.Errorf("netpbm: reading width: %w", err)
	}
	height, err := nextInt(sc)
	if err != nil {
		return nil, fmt.Errorf("netpbm: reading height: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("netpbm: invalid dimensions %dx%d", width, height)
	}
	maxVal, err := nextInt(sc)
	if err != nil {
		return nil, fmt.Errorf("netpbm: reading max value: %w", err)
	}
	if maxVal != vision.MaxSample {
		return nil, fmt.Errorf("netpbm: unsupported max value %d", maxVal)
	}

	var img *vision.Image
	if channels == vision.GrayChannels {
		img = vision.NewGray(width, height)
	} else {
		img = vision.NewRGB(width, height)
	}
	for i := range img.Pix {
		v, err := nextInt(sc)
		if err != nil {
			return nil, fmt.Errorf("netpbm: reading sample %d: %w", i, err)
		}
		if v < 0 || v > maxVal {
			return nil, fmt.Errorf("netpbm: sample %d out of range: %d", i, v)
		}
		img.Pix[i] = uint8(v)
	}
	return img, nil
}

// splitTokens is a bufio.SplitFunc yielding whitespace-separated tokens
// while swallowing '#' comments through end of line.
func splitTokens(data []byte, atEOF bool) (advance int, token []byte, err error) {
	start := 0
	for {
		// Skip whitespace.
		for start < len(data) && isSpace(data[start]) {
			start++
		}
		if start < len(data) && data[start] == '#' {
			// Comment runs to end of line.
			nl := start
			for nl < len(data) && data[nl] != '\n' {
				nl++
			}
			if nl == len(data) && !atEOF {
				return 0, nil, nil // need more data to find the newline
			}
			start = nl
			continue
		}
		break
	}
	if start == len(data) {
		if atEOF {
			return len(data), nil, nil
		}
		return start, nil, nil
	}
	end := start
	for end < len(data) && !isSpace(data[end]) && data[end] != '#' {
		end++
	}
	if end == len(data) && !atEOF {
		return start, nil, nil // token may continue
	}
	return end, data[start:end], nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func nextToken(sc *bufio.Scanner) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return sc.Text(), nil
}

func nextInt(sc *bufio.Scanner) (int, error) {
	tok, err := nextToken(sc)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}
