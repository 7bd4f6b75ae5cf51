package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/tomgosling57/mcp-client/chat"
	"github.com/tomgosling57/mcp-client/launcher"
	"github.com/tomgosling57/mcp-client/llm"
	"github.com/tomgosling57/mcp-client/logging"
	"github.com/tomgosling57/mcp-client/session"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to chat config JSON file (optional)")
		serversFile = flag.String("servers", "", "Path to tool server config JSON file (optional)")
		workspace   = flag.String("workspace", "", "Workspace path substituted for ${workspaceFolder} (default: current directory)")
		logDir      = flag.String("log-dir", "logs", "Directory for rotating log files")
		jsonLogs    = flag.Bool("json-logs", false, "Emit logs as JSON records")
		llmLog      = flag.Bool("llm-log", false, "Write LLM interaction records to a separate llm.log")
		verbose     = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.Configure(logging.Options{
		Dir:    *logDir,
		Level:  level,
		JSON:   *jsonLogs,
		LLMLog: *llmLog,
	})
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}

	cfg := chat.DefaultConfig()
	if *configFile != "" {
		loaded, err := chat.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}

	history, err := session.New(&cfg.History)
	if err != nil {
		log.Fatalf("Failed to create history: %v", err)
	}

	client, err := llm.NewGemini(&cfg.LLM, llm.WithLogger(logging.LLM()))
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *serversFile != "" {
		procs, err := launchServers(logger, *serversFile, *workspace)
		if err != nil {
			log.Fatalf("Failed to launch tool servers: %v", err)
		}
		defer func() {
			for _, p := range procs {
				p.Stop()
			}
		}()
	}

	orchestrator := chat.New(history, client)
	if err := orchestrator.Run(ctx); err != nil {
		log.Fatalf("Chat loop failed: %v", err)
	}
}

// launchServers starts every stdio server from the config file. The
// returned processes have their output forwarders running; the caller owns
// stopping them.
func launchServers(logger *slog.Logger, path, workspace string) ([]*launcher.Process, error) {
	if workspace == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		workspace = cwd
	}

	supervisor := launcher.New(workspace, launcher.WithLogger(logger))

	servers, err := supervisor.LoadServers(path)
	if err != nil {
		return nil, err
	}

	var procs []*launcher.Process
	for _, server := range servers {
		if server.Type != launcher.TypeStdio {
			logger.Warn("skipping unsupported server type", "server", server.Name, "type", server.Type)
			continue
		}

		p, err := supervisor.Launch(server)
		if err != nil {
			for _, running := range procs {
				running.Stop()
			}
			return nil, err
		}
		procs = append(procs, p)
	}

	return procs, nil
}
