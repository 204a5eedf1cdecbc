package format

import (
	"strings"

	"github.com/fatih/color"

	"github.com/kbukum/catlog/category"
	"github.com/kbukum/catlog/record"
)

const consoleTimeFormat = "15:04:05"

var categoryAttrs = map[category.Color][]color.Attribute{
	category.ColorRed:     {color.FgRed, color.Bold},
	category.ColorGreen:   {color.FgGreen, color.Bold},
	category.ColorYellow:  {color.FgYellow, color.Bold},
	category.ColorBlue:    {color.FgBlue, color.Bold},
	category.ColorMagenta: {color.FgMagenta, color.Bold},
	category.ColorCyan:    {color.FgCyan, color.Bold},
	category.ColorWhite:   {color.FgWhite, color.Bold},
	category.ColorGray:    {color.FgHiBlack, color.Bold},
}

var severityAttrs = map[record.Severity][]color.Attribute{
	record.Debug: {color.FgHiBlack},
	record.Warn:  {color.FgYellow},
	record.Error: {color.FgRed},
}

// Console renders rec for an interactive terminal:
//
//	[HH:MM:SS] <tag> <Name> <message>
//	{ pretty-printed data }
//	<ErrorName>: <error message>
//	<stack>
func Console(rec record.Record, opts Options) string {
	meta := rec.Meta()
	var sb strings.Builder

	if opts.Timestamps {
		sb.WriteString(paint(opts.Colors, "["+rec.Time().Format(consoleTimeFormat)+"]", color.FgHiBlack))
		sb.WriteByte(' ')
	}
	sb.WriteString(meta.Tag)
	sb.WriteByte(' ')
	sb.WriteString(paint(opts.Colors, meta.Name, categoryAttrs[meta.Color]...))
	sb.WriteByte(' ')
	sb.WriteString(paint(opts.Colors, rec.Message(), severityAttrs[rec.Severity()]...))

	if rec.HasData() {
		sb.WriteByte('\n')
		sb.WriteString(encodeData(rec.Data(), true))
	}
	if e := rec.Error(); e != nil {
		sb.WriteByte('\n')
		sb.WriteString(paint(opts.Colors, e.Name+": "+e.Message, color.FgRed))
		if e.Stack != "" {
			sb.WriteByte('\n')
			sb.WriteString(e.Stack)
		}
	}
	return sb.String()
}

func paint(enabled bool, s string, attrs ...color.Attribute) string {
	if !enabled || len(attrs) == 0 {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
