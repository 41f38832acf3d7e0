package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baditaflorin/l"
	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_rtf_validation/pkg/compare"
	"github.com/baditaflorin/go_rtf_validation/pkg/rtf"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means use GOMAXPROCS
)

var (
	validator  *rtf.Validator
	comparator *compare.Comparator
	logger     l.Logger
)

// ValidateRequest represents a structural validation request
type ValidateRequest struct {
	Content string `json:"content"`
}

// ValidateResponse represents a structural validation response
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// CompareRequest represents a text comparison request
type CompareRequest struct {
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
	// Extract first strips RTF formatting from both texts
	Extract bool `json:"extract,omitempty"`
}

// CompareResponse represents a text comparison response
type CompareResponse struct {
	Score         float64                `json:"score"`
	Passed        bool                   `json:"passed"`
	ExpectedWords int                    `json:"expected_words"`
	MatchedWords  int                    `json:"matched_words"`
	Threshold     float64                `json:"threshold"`
	Details       map[string]interface{} `json:"details,omitempty"`
}

// ExtractRequest represents a visible-text extraction request
type ExtractRequest struct {
	Content string `json:"content"`
}

// ExtractResponse represents a visible-text extraction response
type ExtractResponse struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func main() {
	// Parse command-line flags
	port := flag.Int("port", DefaultPort, "HTTP server port")
	readTimeout := flag.Duration("read-timeout", DefaultReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", DefaultWriteTimeout, "HTTP write timeout")
	maxRequestSize := flag.Int("max-request-size", DefaultMaxRequestSize, "Maximum request size in bytes")
	concurrency := flag.Int("concurrency", DefaultConcurrency, "Maximum number of concurrent requests (0 = GOMAXPROCS)")
	tolerance := flag.Float64("tolerance", 0.85, "Similarity tolerance for /compare")
	requireParagraphs := flag.Bool("require-paragraphs", false, "Require \\par or \\line markers in /validate")
	logFile := flag.String("log-file", "", "Log file path (empty = stdout)")
	flag.Parse()

	// Set up logger
	var err error
	logger, err = createLogger(*logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting RTF validation HTTP server",
		"port", *port,
		"read_timeout", *readTimeout,
		"write_timeout", *writeTimeout,
		"max_request_size", *maxRequestSize,
		"concurrency", *concurrency,
		"tolerance", *tolerance,
	)

	initComponents(*tolerance, *requireParagraphs)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               requestHandler,
		ReadTimeout:           *readTimeout,
		WriteTimeout:          *writeTimeout,
		MaxRequestBodySize:    *maxRequestSize,
		Concurrency:           *concurrency,
		DisableKeepalive:      false,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	logger.Info("Server listening", "address", fmt.Sprintf(":%d", *port))
	if err := server.ListenAndServe(fmt.Sprintf(":%d", *port)); err != nil {
		logger.Error("Server error", "error", err)
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}

// createLogger builds the server logger, writing to logFile when set.
func createLogger(logFile string) (l.Logger, error) {
	output := os.Stdout
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		output = f
	}
	return l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  logFile != "",
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,
		MaxFileSize: 10 * 1024 * 1024,
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
}

// initComponents initializes the validator and comparator facades
func initComponents(tolerance float64, requireParagraphs bool) {
	var err error

	valOpts := []rtf.ValidatorOption{
		rtf.WithLogger(logger),
	}
	if requireParagraphs {
		valOpts = append(valOpts, rtf.WithRequireParagraphMarkers())
	}
	validator, err = rtf.New(valOpts...)
	if err != nil {
		logger.Error("Failed to initialize validator", "error", err)
		os.Exit(1)
	}

	comparator, err = compare.New(
		compare.WithThreshold(tolerance),
		compare.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to initialize comparator", "error", err)
		os.Exit(1)
	}

	logger.Info("Components initialized successfully")
}

// requestHandler is the main fasthttp request handler
func requestHandler(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	// Set common headers
	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "RTFValidationServer")

	// Route based on path
	switch string(ctx.Path()) {
	case "/health":
		handleHealthCheck(ctx)
	case "/validate":
		handleValidate(ctx)
	case "/compare":
		handleCompare(ctx)
	case "/extract":
		handleExtract(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		writeJSONError(ctx, "Not found")
	}

	// Log request
	duration := time.Since(startTime)
	logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", duration,
	)
}

// handleHealthCheck responds to health check requests
func handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}
	writeJSONResponse(ctx, response)
}

// handleValidate handles structural validation requests
func handleValidate(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ValidateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	result := validator.Validate(req.Content)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, ValidateResponse{
		Valid:  result.Valid,
		Reason: result.Reason,
	})
}

// handleCompare handles text comparison requests
func handleCompare(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req CompareRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	if req.Expected == "" {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Expected text is required")
		return
	}

	actual, expected := req.Actual, req.Expected
	if req.Extract {
		actual = validator.ExtractVisibleText(actual)
		expected = validator.ExtractVisibleText(expected)
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result := comparator.Compute(c, actual, expected)

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, CompareResponse{
		Score:         result.Score,
		Passed:        result.Passed,
		ExpectedWords: result.ExpectedWords,
		MatchedWords:  result.MatchedWords,
		Threshold:     result.Threshold,
		Details:       result.Details,
	})
}

// handleExtract handles visible-text extraction requests
func handleExtract(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		writeJSONError(ctx, "Method not allowed")
		return
	}

	var req ExtractRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	writeJSONResponse(ctx, ExtractResponse{
		Text: validator.ExtractVisibleText(req.Content),
	})
}

// writeJSONResponse writes a JSON response body
func writeJSONResponse(ctx *fasthttp.RequestCtx, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		writeJSONError(ctx, "Failed to encode response")
		return
	}
	ctx.SetBody(data)
}

// writeJSONError writes a JSON error body
func writeJSONError(ctx *fasthttp.RequestCtx, msg string) {
	data, _ := json.Marshal(ErrorResponse{Error: msg})
	ctx.SetBody(data)
}
