package main

import (
	"context"
	"fmt"
	"image/png"
	"os"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"

	"github.com/jalphad/qrcodec/internal/bitstream"
	"github.com/jalphad/qrcodec/internal/config"
	"github.com/jalphad/qrcodec/internal/tables"
	"github.com/jalphad/qrcodec/qrcode"
	"github.com/jalphad/qrcodec/qrcode/raster"
)

var (
	flagError    string
	flagModule   int
	flagQuiet    int
	flagECI      int
	flagAsText   bool
	flagTerminal bool
)

var encodeCmd = &cobra.Command{
	Use:   "encode <input> <output>",
	Short: "Encode text (or a text file) into a QR code PNG",
	Args:  cobra.ExactArgs(2),
	RunE:  runEncode,
}

func init() {
	encodeCmd.Flags().StringVarP(&flagError, "error", "e", "", "error correction level: l, m, q, h (default m)")
	encodeCmd.Flags().IntVarP(&flagModule, "module", "m", 0, "pixels per module (default 2)")
	encodeCmd.Flags().IntVarP(&flagQuiet, "quiet", "q", 0, "quiet zone width in modules (default 8 pixels equivalent)")
	encodeCmd.Flags().IntVarP(&flagECI, "value", "v", -1, "ECI assignment value to prefix the payload with (default none)")
	encodeCmd.Flags().BoolVarP(&flagAsText, "text", "t", false, "treat <input> as literal text rather than a file path")
	encodeCmd.Flags().BoolVar(&flagTerminal, "terminal", false, "also print a QR code of the input text to the terminal (qrterminal's own encoding at level L, not this symbol)")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level := flagError
	if level == "" {
		level = cfg.Level
	}
	ecLevel, ok := tables.ParseLevel(level)
	if !ok {
		return fmt.Errorf("invalid error correction level %q", level)
	}

	moduleSize := flagModule
	if moduleSize == 0 {
		moduleSize = cfg.ModuleSize
	}
	quietZone := flagQuiet
	if quietZone == 0 {
		quietZone = cfg.QuietZone
	}

	text, err := readTextInput(args[0], flagAsText)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var segments []bitstream.Segment
	if flagECI >= 0 {
		segments = append(segments, bitstream.ECISegment(flagECI))
	}
	segments = append(segments, bitstream.SegmentText(text)...)

	sym, err := qrcode.EncodeSegments(context.Background(), segments, qrcode.EncodeOptions{Level: ecLevel})
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	img := raster.Render(sym.Grid, raster.Options{ModuleSize: moduleSize, QuietZone: quietZone})

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("writing PNG: %w", err)
	}

	if flagTerminal || cfg.Terminal {
		qrterminal.GenerateHalfBlock(text, qrterminal.L, os.Stdout)
	}

	fmt.Fprintf(os.Stdout, "encoded version %d, level %s, mask %d -> %s\n", sym.Version, sym.Level, sym.Mask, args[1])
	return nil
}

func readTextInput(input string, asText bool) (string, error) {
	if asText {
		return input, nil
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func configPath() string {
	if flagConfig != "" {
		return flagConfig
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qrcodec.yaml"
	}
	return home + "/.qrcodec.yaml"
}
