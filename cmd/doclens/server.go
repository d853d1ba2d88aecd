package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kalambet/doclens/internal/action"
	"github.com/kalambet/doclens/internal/agent"
	"github.com/kalambet/doclens/internal/api"
	"github.com/kalambet/doclens/internal/config"
	"github.com/kalambet/doclens/internal/engine"
	"github.com/kalambet/doclens/internal/storage"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the doclens server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running doclens server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show doclens system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "doclens.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "doclens version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Refuse to double-start: probe the health endpoint before claiming the port.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("doclens is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("doclens is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	invoker, err := buildInvoker(ctx, cfg.Engine)
	if err != nil {
		return err
	}

	var docs agent.DocumentStore
	var recorder api.Recorder

	switch cfg.Storage.Backend {
	case "memory":
		docs = storage.NewMemoryStore(cfg.Storage.MemoryCap)
		slog.Info("using in-memory document store", "capacity", cfg.Storage.MemoryCap)
	case "sqlite":
		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("closing storage", "error", err)
			}
		}()
		docs = store
		recorder = store
	default:
		return fmt.Errorf("unknown storage backend %q (expected sqlite or memory)", cfg.Storage.Backend)
	}

	a := agent.New(action.NewDispatcher(invoker), docs)

	appHandler := api.NewAppHandler(api.AppDeps{
		Agent:    a,
		Recorder: recorder,
		Token:    cfg.Server.APIToken,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: appHandler,
	}

	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Agent:    a,
		Recorder: recorder,
		Version:  version,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("doclens listening", "addr", addr, "engine", cfg.Engine.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := stdioSrv.Listen(gctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func buildInvoker(ctx context.Context, cfg config.EngineConfig) (action.Invoker, error) {
	switch cfg.Backend {
	case "bedrock":
		inv, err := engine.NewBedrock(ctx, cfg.AWSRegion, cfg.BedrockModel)
		if err != nil {
			return nil, fmt.Errorf("initializing bedrock engine: %w", err)
		}
		slog.Info("using bedrock engine", "region", cfg.AWSRegion, "model", cfg.BedrockModel)
		return inv, nil
	case "ollama":
		inv := engine.NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel)
		if !inv.IsRunning(ctx) {
			printWarning("Ollama is not reachable at %s; requests will fail until it is running", cfg.OllamaBaseURL)
		}
		slog.Info("using ollama engine", "base_url", cfg.OllamaBaseURL, "model", cfg.OllamaModel)
		return inv, nil
	default:
		return nil, fmt.Errorf("unknown engine backend %q (expected bedrock or ollama)", cfg.Backend)
	}
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("doclens is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop doclens (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to doclens (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	printStatus("Engine", "%s", cfg.Engine.Backend)
	switch cfg.Engine.Backend {
	case "bedrock":
		printStatus("Model", "%s (%s)", cfg.Engine.BedrockModel, cfg.Engine.AWSRegion)
	case "ollama":
		ollamaResp, err := client.Get(cfg.Engine.OllamaBaseURL + "/api/version")
		if err != nil {
			printStatus("Ollama", "not running")
		} else {
			ollamaResp.Body.Close()
			printStatus("Ollama", "running at %s", cfg.Engine.OllamaBaseURL)
		}
		printStatus("Model", "%s", cfg.Engine.OllamaModel)
	}

	printStatus("Storage", "%s", cfg.Storage.Backend)
	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
