package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/timeline/pkg/errors"
	tlio "github.com/matzehuels/timeline/pkg/io"
	"github.com/matzehuels/timeline/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
// Event exports (csv, ics) write the sorted events with their resolved
// input lanes, so re-importing them reproduces the same timeline.
func Render(s *sink.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, buildSVGOptions(opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(s, buildPNGOptions(opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(s, sink.WithJSONConfig(), sink.WithJSONIndent())
		case FormatCSV:
			data, err = writeRecords(s, tlio.FormatCSV)
		case FormatICS:
			data, err = writeRecords(s, tlio.FormatICS)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.EmbedFonts {
		svgOpts = append(svgOpts, sink.WithEmbeddedFonts())
	}
	if opts.Transparent {
		svgOpts = append(svgOpts, sink.WithSVGTransparent())
	}
	return svgOpts
}

func buildPNGOptions(opts Options) []sink.PNGOption {
	var pngOpts []sink.PNGOption
	if opts.DPI > 0 {
		pngOpts = append(pngOpts, sink.WithDPI(opts.DPI))
	}
	if opts.Transparent {
		pngOpts = append(pngOpts, sink.WithPNGTransparent())
	}
	return pngOpts
}

func writeRecords(s *sink.Scene, format tlio.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := tlio.Write(&buf, s.Events.Records(), format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
