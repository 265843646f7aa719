// Command replygen generates reply comments for Twitter/X posts.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/IvanM-GM/replygen"
	"github.com/IvanM-GM/replygen/analyze"
	"github.com/IvanM-GM/replygen/fs"
	"github.com/IvanM-GM/replygen/gemini"
	"github.com/IvanM-GM/replygen/goquery"
	rghttp "github.com/IvanM-GM/replygen/http"
	"github.com/IvanM-GM/replygen/openai"
	rgprom "github.com/IvanM-GM/replygen/prometheus"
	"github.com/IvanM-GM/replygen/rod"
	rgslog "github.com/IvanM-GM/replygen/slog"
	"github.com/IvanM-GM/replygen/sqlite"
	"github.com/alecthomas/kong"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

// Version is reported by the API and the Prometheus service_info metric.
const Version = "1.0.0"

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing history. Opened only when a path is configured.
	DB *sqlite.DB

	// Fetcher and Generator replace the configured backends when set.
	// Used for end-to-end testing.
	Fetcher   replygen.Fetcher
	Generator replygen.Generator

	closers []io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases every resource opened by Run.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("replygen"),
		kong.Description("Generate reply comments for Twitter/X posts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'replygen --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.Config)
	defer m.Close()

	if err := m.wire(ctx, cmd, cli, deps); err != nil {
		return err
	}

	return kongCtx.Run(deps)
}

// wire builds the services the command needs.
func (m *Main) wire(ctx context.Context, cmd string, cli *CLI, deps *Dependencies) error {
	cfg := cli.Config

	switch cmd {
	case "validate":
		return nil
	case "history":
		if cfg.DB == "" {
			fmt.Fprintln(deps.Stderr, "Hint: Set REPLYGEN_DB or --db to the history database")
			return replygen.Errorf(replygen.EINVALID, "history database not configured")
		}
		if err := m.openDB(cfg.DB); err != nil {
			return err
		}
		deps.Analyses = sqlite.NewAnalysisService(m.DB)
		return nil
	}

	logged := cfg.Verbose || cmd == "serve"

	fetcher, err := m.fetcher(cfg)
	if err != nil {
		return err
	}
	if logged {
		fetcher = rgslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	analyzer := &analyze.Analyzer{
		Fetcher:         fetcher,
		Extractor:       goquery.NewExtractor(),
		MaxTokens:       cfg.MaxTokens,
		Temperature:     cfg.Temperature,
		FetchTimeout:    cfg.FetchTimeout,
		GenerateTimeout: cfg.GenerateTimeout,
	}

	// post only extracts.
	if cmd != "post" {
		generator, err := m.generator(ctx, cfg, deps.Stderr)
		if err != nil {
			return err
		}
		if logged {
			generator = rgslog.NewLoggingGenerator(generator, deps.Logger)
		}
		analyzer.Generator = generator
	}

	var pa replygen.PostAnalyzer = analyzer
	if logged {
		pa = rgslog.NewLoggingAnalyzer(pa, deps.Logger)
	}

	if cfg.DB != "" && (cmd == "analyze" || cmd == "batch" || cmd == "serve") {
		if err := m.openDB(cfg.DB); err != nil {
			return err
		}
		deps.Analyses = sqlite.NewAnalysisService(m.DB)
		pa = analyze.NewRecordingAnalyzer(pa, deps.Analyses, deps.Logger)
	}

	if cmd == "analyze" && cli.Analyze.ReportDir != "" {
		deps.Reports = fs.NewWriter(cli.Analyze.ReportDir)
	}

	if cmd == "serve" {
		gin.SetMode(cli.Serve.GinMode)

		metrics := rgprom.NewMetrics(Version)
		pa = rgprom.NewAnalyzer(pa, metrics)

		server := rghttp.NewServer()
		server.Addr = net.JoinHostPort(cli.Serve.Host, strconv.Itoa(cli.Serve.Port))
		server.Analyzer = pa
		server.Stats = metrics
		server.MetricsHandler = metrics.Handler()
		server.Middleware = []gin.HandlerFunc{metrics.Middleware()}
		server.Logger = deps.Logger
		server.CORSOrigins = cli.Serve.CORSOrigins
		server.Version = Version
		server.Environment = cli.Serve.Environment
		deps.Server = server
	}

	deps.Analyzer = pa
	return nil
}

func (m *Main) openDB(path string) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.closers = append(m.closers, m.DB)
	return nil
}

func rodOptions(cfg Config) rod.Options {
	return rod.Options{
		MaxPages:      cfg.RodMaxPages,
		SettleTimeout: cfg.RodSettle,
		UserAgent:     rghttp.DefaultUserAgent,
		Bin:           cfg.RodBin,
	}
}

func (m *Main) fetcher(cfg Config) (replygen.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	var f replygen.Fetcher
	switch cfg.Fetcher {
	case "rod":
		rf, err := rod.NewFetcher(rodOptions(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		f = rf
	default:
		opts := []rghttp.Option{rghttp.WithTimeout(cfg.FetchTimeout)}
		if cfg.FetchRPS > 0 {
			opts = append(opts, rghttp.WithHostLimiter(rghttp.NewHostLimiter(cfg.FetchRPS)))
		}
		f = rghttp.NewFetcher(opts...)
	}
	m.closers = append(m.closers, f)
	return f, nil
}

func (m *Main) generator(ctx context.Context, cfg Config, stderr io.Writer) (replygen.Generator, error) {
	if m.Generator != nil {
		return m.Generator, nil
	}

	var g replygen.Generator
	switch cfg.Generator {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			fmt.Fprintln(stderr, "Hint: Set OPENAI_API_KEY or --openai-api-key")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		g = openai.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel)
	default:
		if cfg.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "Hint: Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		g = gemini.NewGenerator(client, cfg.GeminiModel)
	}
	m.closers = append(m.closers, g)
	return g, nil
}

func newLogger(w io.Writer, cfg Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	if cfg.Verbose {
		level = min(level, slog.LevelDebug)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
