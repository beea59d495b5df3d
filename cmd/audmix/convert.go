// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/loader"
)

func (a *app) newConvertCmd() *cobra.Command {
	var (
		channels int
		format   string
	)

	cmd := &cobra.Command{
		Use:   "convert <input> <output.wav>",
		Short: "Decode a sound file into a PCM WAV file",
		Long: `Convert decodes any supported input and writes it as a PCM WAV file in
the given sample format. The sample rate is kept; the channel layout can
go from mono to any count or from any count down to mono.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := audio.ParseFormat(format)
			if err != nil {
				return err
			}
			spec, n, err := convertFile(args[0], args[1], channels, f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s, %s\n", args[1], spec, spec.Duration(n))
			return nil
		},
	}

	cmd.Flags().IntVarP(&channels, "channels", "c", 0, "output channels (0 keeps the input layout)")
	cmd.Flags().StringVarP(&format, "format", "f", audio.FormatS16LE.String(), "output sample format (u8, s8, s16le, s32le)")
	return cmd
}

// convertFile decodes in and writes it to out in format. It returns the
// output spec and the number of PCM bytes written.
func convertFile(in, out string, channels int, format audio.Format) (audio.Spec, int, error) {
	dec, ok := loader.DefaultCodecs().ForPath(in)
	if !ok {
		return audio.Spec{}, 0, fmt.Errorf("%s: %w", in, loader.ErrUnknownFormat)
	}

	inFile, err := os.Open(in)
	if err != nil {
		return audio.Spec{}, 0, err
	}
	defer inFile.Close()

	src, err := dec.Decode(inFile)
	if err != nil {
		return audio.Spec{}, 0, fmt.Errorf("decoding %s: %w", in, err)
	}
	defer src.Close()

	if channels <= 0 {
		channels = src.Channels()
	}
	spec := audio.Spec{
		SampleRate: src.SampleRate(),
		Channels:   channels,
		Format:     format,
		Silence:    format.Silence(),
	}

	pcm, err := loader.Convert(src, spec)
	if err != nil {
		return spec, 0, err
	}

	outFile, err := os.Create(out)
	if err != nil {
		return spec, 0, err
	}

	w, err := wav.NewPCMWriter(outFile, spec)
	if err != nil {
		return spec, 0, errors.Join(err, outFile.Close())
	}
	if _, err := w.Write(pcm); err != nil {
		return spec, 0, errors.Join(err, outFile.Close())
	}
	if err := errors.Join(w.Close(), outFile.Close()); err != nil {
		return spec, 0, err
	}
	return spec, len(pcm), nil
}
