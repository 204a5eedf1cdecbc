package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/catlog/format"
	"github.com/kbukum/catlog/record"
)

const maxLineSize = 1 << 20

type renderOptions struct {
	format     string
	colors     bool
	timestamps bool
	strict     bool
}

func newRenderCmd() *cobra.Command {
	o := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render machine-format records from stdin",
		Long: `Read newline-delimited JSON records, as written by the json format,
from stdin and print them as console or grep lines.

Lines that are not valid records are reported on stderr and skipped.`,
		Args: cobra.NoArgs,
		RunE: o.run,
	}
	cmd.Flags().StringVarP(&o.format, "format", "f", "console", "output format (console, grep, json)")
	cmd.Flags().BoolVar(&o.colors, "colors", false, "force ANSI colors in console output")
	cmd.Flags().BoolVar(&o.timestamps, "timestamps", true, "prefix console lines with the record time")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail on the first invalid line")
	return cmd
}

func (o *renderOptions) run(cmd *cobra.Command, _ []string) error {
	kind, err := format.ParseKind(o.format)
	if err != nil {
		return err
	}
	fopts := format.Options{Timestamps: o.timestamps, Colors: o.colors}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	sc := bufio.NewScanner(cmd.InOrStdin())
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var invalid, lineNo int
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var rec record.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			if o.strict {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			invalid++
			fmt.Fprintf(errOut, "line %d: %v\n", lineNo, err)
			continue
		}
		fmt.Fprintln(out, format.Render(kind, rec, fopts))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if invalid > 0 {
		fmt.Fprintf(errOut, "skipped %d invalid line(s)\n", invalid)
	}
	return nil
}
