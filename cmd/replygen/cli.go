package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/IvanM-GM/replygen"
	rghttp "github.com/IvanM-GM/replygen/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyzer replygen.PostAnalyzer
	Analyses replygen.AnalysisService
	Reports  replygen.ReportWriter
	Server   *rghttp.Server
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config Config `embed:""`

	Serve     ServeCmd     `cmd:"" help:"Serve the JSON API"`
	Analyze   AnalyzeCmd   `cmd:"" help:"Generate comments for a post"`
	Post      PostCmd      `cmd:"" help:"Show the extracted content of a post"`
	Validate  ValidateCmd  `cmd:"" help:"Check whether a URL is a post permalink"`
	Batch     BatchCmd     `cmd:"" help:"Generate comments for several posts concurrently"`
	History   HistoryCmd   `cmd:"" help:"List recorded analyses"`
	Sentiment SentimentCmd `cmd:"" help:"Classify the sentiment of a text"`
}

// Config holds settings shared by all commands.
type Config struct {
	Generator    string `enum:"gemini,openai" default:"gemini" env:"GENERATOR" help:"Generation backend (gemini, openai)"`
	GeminiAPIKey string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	GeminiModel  string `name:"gemini-model" env:"GEMINI_MODEL" default:"gemini-2.5-flash" help:"Gemini model"`
	OpenAIAPIKey string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`
	OpenAIModel  string `name:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o-mini" help:"OpenAI model"`
	OpenAIAPIURL string `name:"openai-api-url" env:"OPENAI_API_URL" help:"OpenAI-compatible API base URL"`

	MaxTokens   int     `env:"MAX_TOKENS" default:"500" help:"Maximum generated tokens"`
	Temperature float32 `env:"TEMPERATURE" default:"0.7" help:"Sampling temperature"`

	Fetcher         string        `enum:"http,rod" default:"http" env:"FETCHER" help:"Page fetcher (http, rod)"`
	FetchTimeout    time.Duration `env:"FETCH_TIMEOUT" default:"30s" help:"Page fetch timeout"`
	GenerateTimeout time.Duration `env:"GENERATE_TIMEOUT" default:"60s" help:"Generation timeout"`
	FetchRPS        float64       `name:"fetch-rps" env:"FETCH_RPS" default:"0" help:"Requests per second per host (0 = unlimited)"`

	RodMaxPages int           `name:"rod-max-pages" env:"ROD_MAX_PAGES" default:"75" help:"Pages per browser before it is relaunched (rod fetcher)"`
	RodSettle   time.Duration `name:"rod-settle" env:"ROD_SETTLE_TIMEOUT" default:"5s" help:"Wait for post markup after load, negative to skip (rod fetcher)"`
	RodBin      string        `name:"rod-bin" env:"ROD_BIN" help:"Chrome executable (rod fetcher)"`

	DB string `name:"db" env:"REPLYGEN_DB" help:"SQLite history path (empty disables history)"`

	LogLevel  string `enum:"debug,info,warn,error" default:"info" env:"LOG_LEVEL" help:"Log level"`
	LogFormat string `enum:"text,json" default:"text" env:"LOG_FORMAT" help:"Log format"`
	Verbose   bool   `short:"v" help:"Log every fetch and generation"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Host        string   `env:"HOST" default:"" help:"Bind host"`
	Port        int      `env:"PORT" default:"8000" help:"Bind port"`
	CORSOrigins []string `name:"cors-origins" env:"CORS_ORIGINS" default:"*" help:"Allowed CORS origins"`
	GinMode     string   `name:"gin-mode" enum:"debug,release,test" env:"GIN_MODE" default:"release" help:"Gin mode"`
	Environment string   `env:"ENVIRONMENT" default:"development" help:"Environment name reported by /status"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL       string `arg:"" help:"Post URL"`
	Count     int    `short:"n" default:"5" help:"Number of comments (1-5)"`
	JSON      bool   `help:"Print the analysis as JSON"`
	ReportDir string `name:"report-dir" help:"Write a markdown report to this directory"`
}

// PostCmd is the "post" subcommand.
type PostCmd struct {
	Target string `arg:"" name:"url-or-id" help:"Post URL or numeric post ID"`
	JSON   bool   `help:"Print the post as JSON"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	URL string `arg:"" help:"URL to check"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" name:"url" help:"Post URLs"`
	Count       int      `short:"n" default:"5" help:"Number of comments per post (1-5)"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent analyses"`
	JSON        bool     `help:"Print results as JSON"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit  int    `default:"20" help:"Maximum records to show"`
	Author string `help:"Only show posts by this author"`
}

// SentimentCmd is the "sentiment" subcommand.
type SentimentCmd struct {
	Text string `arg:"" help:"Text to classify"`
}
