package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/jalphad/qrcodec/qrcode"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <input> [output]",
	Short: "Decode a QR code image, optionally writing the recovered text to a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDecode,
}

func runDecode(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening input image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decoding image: %w", err)
	}

	results, err := qrcode.DecodeAll(context.Background(), img, qrcode.DecodeOptions{})
	if err != nil {
		return fmt.Errorf("decoding QR code: %w", err)
	}

	if len(args) == 2 {
		var out []byte
		for i, result := range results {
			if i > 0 {
				out = append(out, '\n')
			}
			out = append(out, []byte(result.Text)...)
		}
		if err := os.WriteFile(args[1], out, 0o644); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	for _, result := range results {
		fmt.Fprintf(os.Stdout, "version %d, level %s, mask %d, %d error(s) corrected\n",
			result.Version, result.Level, result.Mask, result.NumErrorsCorrected)
		fmt.Fprintln(os.Stdout, result.Text)
	}
	return nil
}
