package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/propcap"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Captures propcap.CaptureStore
	Capturer propcap.Capturer
	Fetcher  propcap.Fetcher
	Writer   propcap.CaptureWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetch and capture progress"`

	Capture CaptureCmd `cmd:"" help:"Fetch listing pages and capture property records"`
	Parse   ParseCmd   `cmd:"" help:"Capture a property record from a saved HTML file"`
	List    ListCmd    `cmd:"" help:"List saved captures"`
	Show    ShowCmd    `cmd:"" help:"Show one saved capture as JSON"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URLs        []string      `arg:"" optional:"" help:"Listing page URLs"`
	File        string        `short:"f" help:"Read additional URLs from a file, one per line"`
	Browser     bool          `short:"b" help:"Render pages in headless Chrome instead of plain HTTP"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64       `default:"1" help:"Requests per second"`
	Timeout     time.Duration `default:"10s" help:"Per-request fetch timeout"`
	Out         string        `short:"o" help:"Write captures as JSON files under this directory"`
	Save        bool          `short:"s" help:"Save captures to the local database"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Path string `arg:"" help:"Path to a rendered HTML file"`
	URL  string `short:"u" help:"Listing URL the file was rendered from"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Source string `help:"Filter by source URL"`
	Limit  int    `default:"50" help:"Maximum rows to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Capture ID"`
}
