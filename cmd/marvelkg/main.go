package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	mcpserver "github.com/Dani-Mash/Marvel-Graph-LLM/internal/mcp"
	"github.com/Dani-Mash/Marvel-Graph-LLM/internal/server"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/graphml"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/kg"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/llm"
	"github.com/Dani-Mash/Marvel-Graph-LLM/pkg/narrative"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML configuration file (optional)")
	httpAddr := flag.String("http-addr", "", "Listen address for the REST API (overrides config)")
	graphPath := flag.String("graph", "", "Path to the GraphML dataset (overrides config)")
	mcpMode := flag.Bool("mcp", false, "Serve MCP over stdio instead of HTTP")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	setupLogging(*logLevel)

	cfg, err := server.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *graphPath != "" {
		cfg.GraphPath = *graphPath
	}

	graph, err := graphml.LoadFile(cfg.GraphPath)
	if err != nil {
		slog.Error("failed to load knowledge graph", "path", cfg.GraphPath, "err", err)
		os.Exit(1)
	}
	stats := graph.Stats()
	slog.Info("knowledge graph loaded", "path", cfg.GraphPath, "nodes", stats.Nodes, "edges", stats.Edges)

	embedder, err := cfg.Embedder.BuildEmbedder()
	if err != nil {
		slog.Error("failed to build embedder", "err", err)
		os.Exit(1)
	}

	// The expensive part: one embedding call per entity and exemplar.
	engine, err := kg.NewEngine(graph, embedder, cfg.EngineOptions())
	if err != nil {
		slog.Error("failed to build query engine", "err", err)
		os.Exit(1)
	}

	var generator *narrative.Generator
	if cfg.NarrativeEnabled() {
		var snippets narrative.Snippets
		if cfg.SnippetsPath != "" {
			snippets, err = narrative.LoadSnippets(cfg.SnippetsPath)
			if err != nil {
				slog.Error("failed to load character snippets", "path", cfg.SnippetsPath, "err", err)
				os.Exit(1)
			}
			slog.Info("character snippets loaded", "count", len(snippets))
		}
		generator = narrative.NewGenerator(llm.NewClient(cfg.LLM), snippets)
	}

	if *mcpMode {
		runMCP(engine, generator)
		return
	}
	runHTTP(engine, generator, cfg)
}

// setupLogging configures the default slog handler. Logs go to stderr:
// in MCP mode stdout belongs to the protocol.
func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

func runHTTP(engine *kg.Engine, generator *narrative.Generator, cfg server.Config) {
	srv := server.NewServer(engine, generator, cfg.HTTPAddr, cfg.AuthToken)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case sig := <-shutdownChan:
		slog.Info("received signal, shutting down", "signal", sig.String())
		srv.Shutdown()
	case err := <-errChan:
		if err != nil {
			slog.Error("HTTP server failed", "err", err)
			os.Exit(1)
		}
	}
}

func runMCP(engine *kg.Engine, generator *narrative.Generator) {
	s := mcpserver.NewServer(engine, generator)
	slog.Info("serving MCP over stdio")
	if err := s.Run(context.Background(), &mcpsdk.StdioTransport{}); err != nil {
		slog.Error("MCP server failed", "err", err)
		os.Exit(1)
	}
}
