package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/kbukum/catlog/category"
	"github.com/kbukum/catlog/format"
	"github.com/kbukum/catlog/logger"
	"github.com/kbukum/catlog/record"
	"github.com/kbukum/catlog/transport"
)

type emitOptions struct {
	category string
	severity string
	data     string
	errMsg   string
	format   string
}

func newEmitCmd(root *rootOptions) *cobra.Command {
	o := &emitOptions{}
	cmd := &cobra.Command{
		Use:   "emit [flags] message...",
		Short: "Log one record",
		Long: `Log one record through a logger built from the usual configuration
sources. The record is subject to the configured minimum severity.

Examples:
  catlog emit --category database "migration applied"
  catlog emit -c api -s error --error "connection reset" --data '{"endpoint":"/x"}' timeout
  catlog emit -s warn --format json "disk almost full" >> app.ndjson`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, root, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVarP(&o.category, "category", "c", "info", "record category (see `catlog categories`)")
	cmd.Flags().StringVarP(&o.severity, "severity", "s", "info", "record severity (debug, info, warn, error)")
	cmd.Flags().StringVarP(&o.data, "data", "d", "", "JSON payload")
	cmd.Flags().StringVarP(&o.errMsg, "error", "e", "", "attach an error with this message")
	cmd.Flags().StringVarP(&o.format, "format", "f", "console", "output format (console, grep, json)")
	return cmd
}

func (o *emitOptions) run(cmd *cobra.Command, root *rootOptions, msg string) error {
	cat, err := category.Parse(o.category)
	if err != nil {
		return err
	}
	sev, err := record.ParseSeverity(o.severity)
	if err != nil {
		return err
	}
	if sev == record.None {
		return fmt.Errorf("severity %s cannot be emitted", sev)
	}
	kind, err := format.ParseKind(o.format)
	if err != nil {
		return err
	}
	payload, err := parseData(o.data)
	if err != nil {
		return err
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	opts := []logger.Option{
		logger.WithStdout(cmd.OutOrStdout()),
		logger.WithStderr(cmd.ErrOrStderr()),
	}
	if kind != format.KindConsole {
		cfg.EnableConsole = false
		opts = append(opts, logger.WithTransports(transport.NewWriter(cmd.OutOrStdout(), kind)))
	}
	log, err := logger.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer log.Close()

	var data []any
	if payload != nil {
		data = append(data, payload)
	}
	var arg logger.ErrorOrData
	if o.errMsg != "" {
		arg = logger.Err(errors.New(o.errMsg))
	}
	log.Category(cat).Log(sev, msg, arg, data...)
	return nil
}

func parseData(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid --data: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid --data: trailing content after JSON value")
	}
	return v, nil
}
