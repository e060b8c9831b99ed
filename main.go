package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bassamadnan/readmail/config"
	"github.com/bassamadnan/readmail/gmail"
	"github.com/bassamadnan/readmail/tui"
	flag "github.com/spf13/pflag"
)

const (
	defaultConfigPath = "config/settings.json"
	logFilePath       = "readmail.log"
)

func main() {
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("Application starting...")

	if err := run(os.Args[1:]); err != nil {
		log.Printf("Exiting with error: %v", err)
		fmt.Fprintln(os.Stderr, err)
		logFile.Close()
		os.Exit(1)
	}
	log.Println("Exiting.")
}

func run(args []string) error {
	fs := flag.NewFlagSet("readmail", flag.ContinueOnError)
	configPath := fs.String("config", defaultConfigPath, "path to the settings file")
	query := fs.StringP("query", "q", "", "Gmail search query (default from settings)")
	maxResults := fs.Int64P("max-results", "n", 0, "number of messages to fetch, clamped to 1..50 (default from settings)")
	noBody := fs.Bool("no-body", false, "fetch headers only")
	jsonOut := fs.Bool("json", false, "print the result as JSON instead of opening the browser")
	saveDefaults := fs.Bool("save-defaults", false, "store this run's query, limit and body choice as the new defaults")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfgManager, err := config.NewManager(*configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config manager: %w", err)
	}
	settings := cfgManager.GetSettings()
	log.Println("Config manager initialized.")

	q := gmail.Query{Text: settings.Query, MaxResults: settings.MaxResults, IncludeBody: settings.IncludeBody}
	if fs.Changed("query") {
		q.Text = *query
	}
	if fs.Changed("max-results") {
		q.MaxResults = *maxResults
	}
	if fs.Changed("no-body") {
		q.IncludeBody = !*noBody
	}
	if *saveDefaults {
		if err := cfgManager.SaveSearchDefaults(q.Text, gmail.ClampMaxResults(q.MaxResults), q.IncludeBody); err != nil {
			return fmt.Errorf("failed to save defaults: %w", err)
		}
	}

	accessToken, err := config.LoadAccessToken(settings.TokenFile)
	if err != nil {
		// Treated like a missing token; the reader reports it.
		log.Printf("Credential store: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	reader := gmail.NewReader(gmail.Options{Endpoint: settings.Endpoint, Timeout: settings.Timeout()})
	events := make(chan gmail.Event, 4)
	go reader.Read(ctx, gmail.Request{Query: q, AccessToken: accessToken}, events)

	if *jsonOut {
		return printEvents(events)
	}

	outcome, err := tui.RunProgress(events, q.Text)
	if err != nil {
		cancel()
		return err
	}
	if outcome.Kind != gmail.EventResult {
		if outcome.Kind == gmail.EventError {
			return errors.New(outcome.Text)
		}
		return nil
	}

	tuiApp := tui.NewApp(outcome.Result)
	log.Println("TUI application initialized.")
	if err := tuiApp.Run(); err != nil {
		return fmt.Errorf("error running TUI application: %w", err)
	}
	log.Println("TUI application stopped.")
	return nil
}

// printEvents writes progress to stderr and the outcome to stdout.
func printEvents(events <-chan gmail.Event) error {
	for ev := range events {
		switch ev.Kind {
		case gmail.EventProgress:
			fmt.Fprintln(os.Stderr, ev.Text)
		case gmail.EventResult:
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(ev.Result); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
		case gmail.EventNoResults:
			fmt.Println(ev.Text)
		case gmail.EventError:
			return errors.New(ev.Text)
		}
	}
	return nil
}
