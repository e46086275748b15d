// If you are AI: This file defines the subcommands that extract and decode
// the AMF payloads of RTMP captures and FLV files.

package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"amfscope/internal/capture"
	"amfscope/internal/config"
	"amfscope/internal/core/protocol/rtmp"
	"amfscope/internal/source"
	"amfscope/internal/view/report"
)

// captureOptions holds the flags shared by the capture commands.
type captureOptions struct {
	format    string
	handshake string
}

// handshakeModes maps flag values to handshake modes.
var handshakeModes = map[string]rtmp.HandshakeMode{
	"auto":    rtmp.HandshakeAuto,
	"present": rtmp.HandshakePresent,
	"absent":  rtmp.HandshakeAbsent,
}

// newRTMPCmd builds the RTMP capture command.
func newRTMPCmd(a *app) *cobra.Command {
	var o captureOptions
	cmd := &cobra.Command{
		Use:   "rtmp <capture>",
		Short: "Decode the AMF messages of a client-to-server RTMP capture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := handshakeModes[o.handshake]
			if !ok {
				return fmt.Errorf("invalid handshake mode %q: must be auto, present or absent", o.handshake)
			}
			return a.runCapture(cmd, args[0], o.format, func(r io.Reader) ([]capture.Payload, error) {
				return capture.FromRTMP(r, rtmp.WithHandshake(mode), rtmp.WithLogger(a.logger))
			})
		},
	}
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format: hex, tree, yaml or cbor (default from config)")
	cmd.Flags().StringVar(&o.handshake, "handshake", "auto", "Leading handshake: auto, present or absent")
	return cmd
}

// newFLVCmd builds the FLV script data command.
func newFLVCmd(a *app) *cobra.Command {
	var o captureOptions
	cmd := &cobra.Command{
		Use:   "flv <file>",
		Short: "Decode the script data tags of an FLV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCapture(cmd, args[0], o.format, capture.FromFLV)
		},
	}
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format: hex, tree, yaml or cbor (default from config)")
	return cmd
}

// runCapture loads a capture, extracts its payloads, decodes them
// concurrently and renders each one in payload order.
func (a *app) runCapture(cmd *cobra.Command, name, format string, extract func(io.Reader) ([]capture.Payload, error)) error {
	if format == "" {
		format = a.cfg.Output.Format
	}
	in, err := a.load(cmd, name)
	if err != nil {
		return err
	}

	payloads, err := extract(bytes.NewReader(in.Data))
	if err != nil {
		if len(payloads) == 0 {
			return err
		}
		a.logger.Warn("capture truncated", "input", in.Name, "payloads", len(payloads), "error", err)
	}
	a.logger.Debug("payloads extracted", "input", in.Name, "count", len(payloads))

	decoded, err := capture.DecodeAll(cmd.Context(), payloads, a.cfg.Capture.Workers, a.logger)
	if err != nil {
		return err
	}
	return a.writeDecoded(cmd.OutOrStdout(), in, decoded, format)
}

// writeDecoded renders decoded payloads in the given format.
func (a *app) writeDecoded(w io.Writer, in *source.Input, decoded []capture.Decoded, format string) error {
	switch format {
	case config.FormatYAML, config.FormatCBOR:
		reports := make([]*report.Report, 0, len(decoded))
		for _, d := range decoded {
			r, err := report.Build(payloadInput(in, d.Payload), d.Result, a.cfg.Output.MaxDepth)
			if err != nil {
				return err
			}
			reports = append(reports, r)
		}
		return report.Encode(w, reports, format)

	case config.FormatHex, config.FormatTree:
		opts, err := a.dumpOptions(w)
		if err != nil {
			return err
		}
		for i, d := range decoded {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "== %s\n", payloadTitle(d)); err != nil {
				return err
			}
			pin := payloadInput(in, d.Payload)
			if format == config.FormatTree {
				err = a.writeTree(w, pin, d.Result)
			} else {
				err = a.writeHex(w, pin, d.Result, opts, false)
			}
			if err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", report.ErrUnknownFormat, format)
	}
}

// payloadInput describes one payload as a standalone input.
func payloadInput(in *source.Input, p capture.Payload) *source.Input {
	return &source.Input{
		Name:    fmt.Sprintf("%s#%d", in.Name, p.Index),
		Data:    p.Data,
		RawSize: len(p.Data),
		Digest:  source.Sum(p.Data),
	}
}

// payloadTitle returns the separator line text for a payload.
func payloadTitle(d capture.Decoded) string {
	title := fmt.Sprintf("#%d %s t=%d", d.Index, d.Kind, d.Timestamp)
	if d.Offset >= 0 {
		title += fmt.Sprintf(" @0x%X", d.Offset)
	}
	if name := d.Name(); name != "" {
		title += " " + name
	}
	return title
}
