// Package qrcode is the public encode/decode surface: Encode builds a
// Symbol from text or explicit segments, Decode localizes and reads a
// symbol from a photograph or scan. Everything below this package is an
// internal implementation detail (internal/gf, internal/rs,
// internal/tables, internal/bitstream, internal/blocks,
// internal/matrix, internal/imaging).
package qrcode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jalphad/qrcodec/internal/bitstream"
	"github.com/jalphad/qrcodec/internal/blocks"
	"github.com/jalphad/qrcodec/internal/matrix"
	"github.com/jalphad/qrcodec/internal/tables"
)

// Symbol is a fully laid-out QR code: its module grid plus the
// version, level, and mask pattern chosen to build it.
type Symbol struct {
	Grid    *matrix.Grid
	Version int
	Level   tables.Level
	Mask    int
}

// EncodeOptions controls Encode. Tracer defaults to a no-op; Version,
// if zero, is chosen automatically as the smallest version at Level
// that fits the payload.
type EncodeOptions struct {
	Level   tables.Level
	Version int
	Tracer  Tracer
}

// Encode segments text automatically (digits, the QR alphanumeric
// alphabet, and byte-mode runs for everything else) and builds a QR
// symbol at the requested or smallest-fitting version.
func Encode(ctx context.Context, text string, opts EncodeOptions) (*Symbol, error) {
	return EncodeSegments(ctx, bitstream.SegmentText(text), opts)
}

// EncodeSegments builds a QR symbol from caller-assembled segments,
// letting callers mix modes or prepend an ECI designator explicitly.
func EncodeSegments(ctx context.Context, segments []bitstream.Segment, opts EncodeOptions) (*Symbol, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noopTracer{}
	}

	version := opts.Version
	if version == 0 {
		v, err := smallestVersion(segments, opts.Level)
		if err != nil {
			return nil, err
		}
		version = v
	}
	tracer.Event(ctx, "version.selected", slog.Int("version", version), slog.String("level", opts.Level.String()))

	payload, err := buildBitstream(segments, version, opts.Level)
	if err != nil {
		return nil, err
	}

	layout := tables.Blocks(version, opts.Level)
	dataBlocks := blocks.Partition(payload, layout)
	raw := blocks.EncodeInterleaved(dataBlocks, layout.ECLen)
	tracer.Event(ctx, "blocks.encoded", slog.Int("group1", layout.Group1Blocks), slog.Int("group2", layout.Group2Blocks), slog.Int("ec_len", layout.ECLen))

	grid := matrix.NewGrid(version)
	grid.PlaceData(raw)

	pattern, masked := matrix.ChooseMask(grid)
	tracer.Event(ctx, "mask.chosen", slog.Int("pattern", pattern), slog.Int("penalty", masked.PenaltyScore()))

	formatBits := tables.EncodeFormat(opts.Level.FormatBits()<<3 | uint32(pattern))
	masked.StampFormat(formatBits)
	if version >= 7 {
		masked.StampVersion(tables.EncodeVersion(uint32(version)))
	}

	return &Symbol{Grid: masked, Version: version, Level: opts.Level, Mask: pattern}, nil
}

// smallestVersion finds the lowest version 1-40 at level whose data
// capacity fits the segments, recomputing each segment's character
// count indicator width (which is itself version-dependent).
func smallestVersion(segments []bitstream.Segment, level tables.Level) (int, error) {
	for v := tables.MinVersion; v <= tables.MaxVersion; v++ {
		total := 0
		for _, s := range segments {
			total += s.BitLength(v)
		}
		// The terminator is not counted: it is truncated when capacity
		// is tight.
		capacityBits := tables.DataCodewords(v, level) * 8
		if total <= capacityBits {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w", ErrTextTooLong)
}

// buildBitstream writes every segment's mode indicator, character
// count, and payload, appends the terminator and bit/byte padding, and
// returns exactly DataCodewords(version, level) bytes.
func buildBitstream(segments []bitstream.Segment, version int, level tables.Level) ([]byte, error) {
	capacityBits := tables.DataCodewords(version, level) * 8

	w := &bitstream.Writer{}
	for _, s := range segments {
		if err := s.Write(w, version); err != nil {
			return nil, err
		}
		if w.Len() > capacityBits {
			return nil, fmt.Errorf("%w", ErrTextTooLong)
		}
	}

	termBits := 4
	if remaining := capacityBits - w.Len(); remaining < termBits {
		termBits = remaining
	}
	if termBits > 0 {
		w.Push(0, termBits)
	}
	w.PadToByte()

	out := w.Bytes()
	capacityBytes := capacityBits / 8
	if len(out) > capacityBytes {
		return nil, fmt.Errorf("%w", ErrTextTooLong)
	}

	padBytes := [2]byte{0xEC, 0x11}
	for i := 0; len(out) < capacityBytes; i++ {
		out = append(out, padBytes[i%2])
	}
	return out, nil
}
