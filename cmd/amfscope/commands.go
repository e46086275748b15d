// If you are AI: This file defines the subcommands that decode a single AMF buffer.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"amfscope/internal/config"
	"amfscope/internal/core/inspect"
	"amfscope/internal/core/protocol/amf"
	"amfscope/internal/source"
	"amfscope/internal/view/hexdump"
	"amfscope/internal/view/report"
)

// newDumpCmd builds the annotated hex dump command.
func newDumpCmd(a *app) *cobra.Command {
	var (
		highlight int
		legend    bool
	)
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print an annotated hex dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, res, err := a.decode(cmd, args[0])
			if err != nil {
				return err
			}
			opts, err := a.dumpOptions(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("highlight") {
				if _, ok := res.Graph.Get(amf.ValueID(highlight)); !ok {
					return fmt.Errorf("%w: %d", inspect.ErrNotFound, highlight)
				}
				opts.Highlight, opts.Owner = true, amf.ValueID(highlight)
			}
			return a.writeHex(cmd.OutOrStdout(), in, res, opts, legend)
		},
	}
	cmd.Flags().IntVar(&highlight, "highlight", 0, "Highlight the bytes owned by this value id")
	cmd.Flags().BoolVar(&legend, "legend", false, "Print the tag colour legend")
	return cmd
}

// newInspectCmd builds the single-value inspector command.
func newInspectCmd(a *app) *cobra.Command {
	var showBytes bool
	cmd := &cobra.Command{
		Use:   "inspect <file> <id>",
		Short: "Show the properties of one decoded value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid value id %q: %w", args[1], err)
			}
			_, res, err := a.decode(cmd, args[0])
			if err != nil {
				return err
			}
			rows, err := inspect.Rows(res.Graph, amf.ValueID(id))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := writeRows(w, rows); err != nil {
				return err
			}
			if !showBytes {
				return nil
			}
			opts, err := a.dumpOptions(w)
			if err != nil {
				return err
			}
			opts.Highlight, opts.Owner = true, amf.ValueID(id)
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			return hexdump.New(w, opts).Write(res.Syntax)
		},
	}
	cmd.Flags().BoolVar(&showBytes, "bytes", false, "Also print the hex dump with the value's bytes highlighted")
	return cmd
}

// newTreeCmd builds the value tree command.
func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the decoded values as an indented tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, res, err := a.decode(cmd, args[0])
			if err != nil {
				return err
			}
			return a.writeTree(cmd.OutOrStdout(), in, res)
		},
	}
}

// newExportCmd builds the structured report command.
func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write the value graph and annotations as YAML or CBOR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, res, err := a.decode(cmd, args[0])
			if err != nil {
				return err
			}
			r, err := report.Build(in, res, a.cfg.Output.MaxDepth)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, func(w io.Writer) error {
				return report.Encode(w, r, a.exportFormat(format))
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Export format: yaml or cbor (default from config, else yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

// exportFormat resolves an explicit format against the configured one.
func (a *app) exportFormat(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if f := a.cfg.Output.Format; f == config.FormatYAML || f == config.FormatCBOR {
		return f
	}
	return config.FormatYAML
}

// writeHex prints the headline followed by the annotated hex dump.
func (a *app) writeHex(w io.Writer, in *source.Input, res *amf.Result, opts hexdump.Options, legend bool) error {
	if err := a.writeHeadline(w, in, res); err != nil {
		return err
	}
	d := hexdump.New(w, opts)
	if err := d.Write(res.Syntax); err != nil {
		return err
	}
	if legend {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		return d.WriteLegend()
	}
	return nil
}

// writeTree prints the headline followed by the value tree.
func (a *app) writeTree(w io.Writer, in *source.Input, res *amf.Result) error {
	if err := a.writeHeadline(w, in, res); err != nil {
		return err
	}
	return inspect.WriteTree(w, res.Graph, a.cfg.Output.MaxDepth)
}

// writeHeadline prints the one-line summary of a decoded input.
func (a *app) writeHeadline(w io.Writer, in *source.Input, res *amf.Result) error {
	r, err := report.Build(in, res, 1)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, r.Headline())
	return err
}

// writeRows prints inspector rows with aligned labels.
func writeRows(w io.Writer, rows []inspect.Row) error {
	width := 0
	for _, r := range rows {
		width = max(width, len(r.Label))
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, r.Label, r.Value); err != nil {
			return err
		}
	}
	return nil
}

// writeOutput runs write against stdout or the named file.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
