package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"

	"github.com/mcncl/jsonmend/internal/config"
	"github.com/mcncl/jsonmend/internal/errors"
	"github.com/mcncl/jsonmend/internal/formatter"
	"github.com/mcncl/jsonmend/internal/models"
	"github.com/mcncl/jsonmend/internal/parser"
	"github.com/mcncl/jsonmend/internal/transform"
)

// CLI defines the command-line interface
var CLI struct {
	Input           string `help:"Path to input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output          string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Format          string `help:"Output format." short:"f" default:"json" enum:"json,yaml"`
	Indent          int    `help:"Spaces per indent level for JSON output." default:"2"`
	Compact         bool   `help:"Emit compact JSON on a single line." short:"c"`
	Path            string `help:"JSONPath expression to select a sub-value from the recovered document." short:"p"`
	Keys            string `help:"Rewrite object keys to a style." enum:",camel,pascal,snake,kebab" default:""`
	FailOnRemainder bool   `help:"Exit non-zero when the input has unparsed trailing text."`
	Quiet           bool   `help:"Suppress recovery diagnostics." short:"q"`
	Config          string `help:"Path to config file. Defaults to the nearest .jsonmend.yml." type:"path"`
	Debug           bool   `help:"Enable debug output." short:"d"`
	Version         bool   `help:"Show version information." short:"v"`
	Interactive     bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	kongParser := kong.Must(&CLI,
		kong.Name("jsonmend"),
		kong.Description("A tool to recover values from truncated or malformed JSON"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := kongParser.Parse(os.Args[1:])
	if err != nil {
		// Usage is already shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonmend version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug || cfg.Dev.Debug, Config: cfg})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonmend --help\n")
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: explicit --config path,
// otherwise the nearest discovered config file, with CLI flags taking
// precedence over file values.
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.Format, CLI.Keys, CLI.Indent, CLI.Compact, CLI.Quiet, CLI.FailOnRemainder)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config

	// 1. Parse the input tolerantly
	result, err := parseInput(cfg)
	if err != nil {
		// Error is already wrapped by parseInput
		return err
	}

	if ctx.Debug {
		spew.Fdump(os.Stderr, result)
	}

	if cfg.Recovery.FailOnRemainder && result.Remainder != "" {
		return errors.NewParsingError(
			fmt.Sprintf("unparsed trailing text: %q", result.Remainder),
			errors.ErrRemainder,
		)
	}

	// 2. Reshape the recovered value
	value, err := transform.Rekey(result.Value, cfg.Keys.Style)
	if err != nil {
		return err
	}
	if CLI.Path != "" {
		value, err = transform.Select(value, CLI.Path)
		if err != nil {
			return err
		}
	}

	// 3. Render
	f := &formatter.Formatter{
		Format:  cfg.Output.Format,
		Indent:  cfg.Output.Indent,
		Compact: cfg.Output.Compact,
	}
	text, err := f.Render(value)
	if err != nil {
		return errors.NewFormatError("failed to render recovered value", err)
	}

	// 4. Output the result
	return writeOutput(text)
}

// newParser builds the tolerant parser with the recovery hook wired to the
// configured diagnostics.
func newParser(cfg *config.Config) *parser.Parser {
	if cfg.Recovery.Quiet {
		return parser.New(parser.WithNotify(nil))
	}
	return parser.New()
}

// parseInput reads input from file or stdin
func parseInput(cfg *config.Config) (models.Result, error) {
	p := newParser(cfg)

	if CLI.Input != "" {
		// Parse from file
		return p.ParseFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Result{}, errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(p)
		}
		// No data provided on stdin and not in interactive mode
		return models.Result{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Result{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return models.Result{}, errors.NewInputError("empty input received from stdin", errors.ErrNoInput)
	}

	return p.ParseString(string(data))
}

// writeOutput writes the rendered value to file or stdout
func writeOutput(text string) error {
	if CLI.Output != "" {
		// Write to file
		err := os.WriteFile(CLI.Output, []byte(text+"\n"), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Recovered value written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	_, err := fmt.Println(strings.TrimSpace(text))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste
// partial JSON and signal completion with Ctrl+D (EOF)
func readInteractiveInput(p *parser.Parser) (models.Result, error) {
	fmt.Fprintln(os.Stderr, "jsonmend Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			builder.WriteString(line)
			break
		}
		if err != nil {
			return models.Result{}, errors.NewInputError("error reading input", err)
		}
		builder.WriteString(line)
	}

	data := builder.String()
	if len(data) == 0 {
		return models.Result{}, errors.NewInputError("empty input received", errors.ErrNoInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing input...")
	return p.ParseString(data)
}
