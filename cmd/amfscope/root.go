// If you are AI: This file defines the root command, its persistent flags and
// the shared state every subcommand receives.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"amfscope/internal/config"
	"amfscope/internal/core/protocol/amf"
	"amfscope/internal/source"
	"amfscope/internal/view/hexdump"
)

// rootOptions holds the persistent flag values.
type rootOptions struct {
	configPath string
	command    bool
	verbose    bool
	color      string
	columns    int
	maxDepth   int
}

// app is the state shared by all subcommands once flags are parsed.
type app struct {
	opts   rootOptions
	cfg    *config.Config
	logger *slog.Logger
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "amfscope",
		Short: "Inspect AMF0 and AMF3 payloads byte by byte",
		Long: `amfscope decodes Action Message Format payloads into a value graph and
annotates every input byte with the value that owns it and its syntactic role.

Inputs may be raw AMF buffers, RTMP client captures or FLV files. Compressed
inputs (gzip, zstd, lz4) are expanded automatically. Use "-" to read stdin.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	bindRootFlags(root.PersistentFlags(), &a.opts)

	root.AddCommand(
		newDumpCmd(a),
		newInspectCmd(a),
		newTreeCmd(a),
		newExportCmd(a),
		newRTMPCmd(a),
		newFLVCmd(a),
	)
	return root
}

// bindRootFlags registers the persistent flags on fs.
func bindRootFlags(fs *pflag.FlagSet, o *rootOptions) {
	fs.StringVar(&o.configPath, "config", "", "Path to configuration file")
	fs.BoolVar(&o.command, "command", false, "Treat the first byte as an AMF0/AMF3 format selector")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Log decoder activity to stderr")
	fs.StringVar(&o.color, "color", config.ColorAuto, "Colour output: auto, always or never")
	fs.IntVar(&o.columns, "columns", 16, "Bytes per hex dump row")
	fs.IntVar(&o.maxDepth, "max-depth", 0, "Nesting limit for trees and exports, 0 for unlimited")
}

// setup loads configuration, applies explicitly set flags and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}

	fs := cmd.Flags()
	if fs.Changed("command") {
		cfg.Decode.Command = a.opts.command
	}
	if fs.Changed("color") {
		cfg.Output.Color = a.opts.color
	}
	if fs.Changed("columns") {
		cfg.Output.Columns = a.opts.columns
	}
	if fs.Changed("max-depth") {
		cfg.Output.MaxDepth = a.opts.maxDepth
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelWarn
	if a.opts.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.cfg = cfg
	return nil
}

// load reads an input file, or the command's stdin for "-".
func (a *app) load(cmd *cobra.Command, name string) (*source.Input, error) {
	if name == source.StdinName {
		return source.Read(cmd.InOrStdin(), "stdin", a.cfg.Decode.MaxInput)
	}
	return source.Load(name, a.cfg.Decode.MaxInput)
}

// decode loads and decodes one input buffer.
func (a *app) decode(cmd *cobra.Command, name string) (*source.Input, *amf.Result, error) {
	in, err := a.load(cmd, name)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("input loaded",
		"name", in.Name,
		"bytes", len(in.Data),
		"compression", in.Compression.String(),
		"digest", in.Digest.String(),
	)
	res := amf.Decode(in.Data, a.cfg.Decode.Command, amf.WithLogger(a.logger.With("input", in.Name)))
	if res.Errored {
		a.logger.Warn("input decoded with errors", "input", in.Name, "offset", res.ErrorOffset)
	}
	return in, res, nil
}

// dumpOptions returns hex dump options for w using the configured palette and colour mode.
func (a *app) dumpOptions(w io.Writer) (hexdump.Options, error) {
	pal := hexdump.DefaultPalette()
	if err := pal.Override(a.cfg.Palette); err != nil {
		return hexdump.Options{}, err
	}
	f, _ := w.(*os.File)
	return hexdump.Options{
		Columns: a.cfg.Output.Columns,
		Palette: pal,
		Color:   hexdump.ColorEnabled(a.cfg.Output.Color, f),
	}, nil
}
