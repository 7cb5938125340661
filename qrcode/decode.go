package qrcode

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/jalphad/qrcodec/internal/bitstream"
	"github.com/jalphad/qrcodec/internal/blocks"
	"github.com/jalphad/qrcodec/internal/imaging"
	"github.com/jalphad/qrcodec/internal/tables"
)

// DecodeResult mirrors the teacher prototype's decode report: the
// recovered text plus per-block Reed-Solomon statistics, so callers can
// tell a clean read from one repaired by error correction.
type DecodeResult struct {
	Segments           []bitstream.Segment
	Text               string
	Version            int
	Level              tables.Level
	Mask               int
	NumErrorsCorrected int
	BlockResults       []blocks.BlockResult
}

// DecodeOptions controls DecodeAll. Tracer defaults to a no-op.
type DecodeOptions struct {
	Tracer Tracer
}

// DecodeAll localizes every QR symbol in img — a single photograph can
// carry more than one, side by side — and runs each located symbol
// through Reed-Solomon error correction and bitstream parsing
// independently. A symbol whose block correction or segment parsing
// fails is dropped from the returned list rather than failing the
// whole call; DecodeAll only returns an error when no symbol in img
// could be localized at all, or none of the localized candidates
// decoded cleanly.
func DecodeAll(ctx context.Context, img image.Image, opts DecodeOptions) ([]*DecodeResult, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noopTracer{}
	}

	located, err := imaging.LocateAll(img)
	if err != nil {
		tracer.Event(ctx, "localize.failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrSymbolNotFound, err)
	}
	tracer.Event(ctx, "localize.succeeded", slog.Int("symbols", len(located)))

	var results []*DecodeResult
	for _, l := range located {
		result, err := decodeLocated(ctx, tracer, l)
		if err != nil {
			tracer.Event(ctx, "symbol.decode_failed", slog.String("error", err.Error()))
			continue
		}
		results = append(results, result)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no localized symbol decoded cleanly", ErrSymbolNotFound)
	}
	return results, nil
}

// Decode is a convenience wrapper over DecodeAll for callers that know
// img carries exactly one symbol. It returns the first decoded result.
func Decode(ctx context.Context, img image.Image, opts DecodeOptions) (*DecodeResult, error) {
	results, err := DecodeAll(ctx, img, opts)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

func decodeLocated(ctx context.Context, tracer Tracer, located *imaging.Located) (*DecodeResult, error) {
	version := located.Grid.Version
	tracer.Event(ctx, "symbol.localized", slog.Int("version", version), slog.String("level", located.Level.String()), slog.Int("mask", located.Mask))

	raw := located.Grid.ReadData(located.Mask)

	layout := tables.Blocks(version, located.Level)
	rawBlocks := blocks.Deinterleave(raw, layout)
	corrected, blockResults, err := blocks.CorrectAll(rawBlocks, layout.ECLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUncorrectableBlock, err)
	}

	totalErrors := 0
	for _, r := range blockResults {
		totalErrors += r.ErrorsFound
	}
	tracer.Event(ctx, "correction.succeeded", slog.Int("errors_corrected", totalErrors), slog.Int("blocks", len(blockResults)))

	r := bitstream.NewReader(corrected)
	segments, err := bitstream.ParseSegments(r, version)
	if err != nil {
		return nil, translateSegmentError(err)
	}

	text, err := reassembleText(segments)
	if err != nil {
		return nil, err
	}
	tracer.Event(ctx, "segments.parsed", slog.Int("count", len(segments)), slog.Int("text_len", len(text)))

	return &DecodeResult{
		Segments:           segments,
		Text:               text,
		Version:            version,
		Level:              located.Level,
		Mask:               located.Mask,
		NumErrorsCorrected: totalErrors,
		BlockResults:       blockResults,
	}, nil
}

func translateSegmentError(err error) error {
	switch err {
	case bitstream.ErrUnsupportedMode:
		return ErrUnsupportedMode
	case bitstream.ErrPrematureEnd:
		return ErrPrematureEnd
	default:
		return err
	}
}

// reassembleText concatenates every segment's payload into one string.
// Byte-mode segments preceded by an ECI designator are taken as raw
// bytes; transcoding them per the designated character set is left to
// the caller (see the Open Question on ECI transcoding).
func reassembleText(segments []bitstream.Segment) (string, error) {
	var out []byte
	for _, s := range segments {
		switch s.Mode {
		case bitstream.Numeric, bitstream.Alphanumeric:
			out = append(out, []byte(s.Text)...)
		case bitstream.Byte:
			out = append(out, s.Data...)
		case bitstream.ECI:
			// Designator only; no payload bytes of its own.
		}
	}
	return string(out), nil
}
