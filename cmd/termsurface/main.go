package main

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/url"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/private-landing/termsurface/internal/api"
	"github.com/private-landing/termsurface/internal/config"
	"github.com/private-landing/termsurface/internal/ui"
)

// isSafeTarget reports whether rawURL can be used without confirmation:
// loopback hosts always, anything else only when ENVIRONMENT names a
// non-production environment.
func isSafeTarget(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}

	env := os.Getenv("ENVIRONMENT")
	return env != "" && env != "production"
}

// setupLogging sends the standard logger to path, or discards it so nothing
// is written over the alternate screen.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "termsurface")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func printUsage() {
	heading := ui.TitleStyle.Render
	label := ui.PromptStyle.Render
	dim := ui.DimStyle.Render

	fmt.Println(heading("termsurface") + dim(" - a prompt that runs commands on a remote endpoint"))
	fmt.Println()
	fmt.Println(heading("Usage:"))
	fmt.Println("  termsurface [flags]")
	fmt.Println()
	fmt.Println("  Opens a terminal-style input. Each command line is POSTed to")
	fmt.Println("  " + label("$TERMSURFACE_API_URL"+api.CommandPath) + " and the response is printed below it.")
	fmt.Println()
	fmt.Println(heading("Flags:"))
	fmt.Println("  " + label("-h, --help") + "    Show this help message")
	fmt.Println()
	fmt.Println(heading("Environment:"))

	columns := []ui.Column{
		{Header: "Variable", Width: 24},
		{Header: "Default", Width: 12},
		{Header: "Description", Width: 52},
	}
	rows := [][]string{
		{config.Prefix + "_API_URL", "", "Command endpoint base URL (required)"},
		{config.Prefix + "_PROMPT", "terminal: ", "Prompt text"},
		{config.Prefix + "_TOKENS", "", "Payload fields name:value,...; values may hold ':'"},
		{config.Prefix + "_STYLE", "", "Style overrides, e.g. color:#FFFFFF"},
		{config.Prefix + "_PAYLOAD", "form", "Request encoding: form or json"},
		{config.Prefix + "_LOG_FILE", "", "Write logs to this file"},
		{"ENVIRONMENT", "", "Non-production name skips the remote prompt"},
	}
	fmt.Print(ui.RenderTable(columns, rows))
	fmt.Println()
	fmt.Println(heading("Keys:"))
	fmt.Println("  " + label("enter") + "        " + dim("Run the command after the last prompt"))
	fmt.Println("  " + label("home") + "         " + dim("Jump to the start of the command"))
	fmt.Println("  " + label("up/down") + "      " + dim("Scroll the output"))
	fmt.Println("  " + label("ctrl+c") + "       " + dim("Quit"))
}

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-h" || arg == "--help" {
			printUsage()
			os.Exit(0)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'termsurface --help' for usage information")
		os.Exit(1)
	}

	if !isSafeTarget(cfg.APIURL) {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("WARNING: "+cfg.APIURL+" is not a loopback address and ENVIRONMENT is not set to a non-production value."))
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Commands will run on a remote host."))
		fmt.Fprint(os.Stderr, ui.PromptStyle.Render("Continue? (y/N) "))

		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			os.Exit(0)
		}
	}

	logs, err := setupLogging(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logs.Close()

	format, err := api.ParseFormat(cfg.Payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m, err := newModel(cfg, api.NewClient(cfg.APIURL, format))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("connected to %s", cfg.APIURL)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logs.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
