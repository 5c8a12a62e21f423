package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/c360studio/semstreams/component"
	streamcfg "github.com/c360studio/semstreams/config"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/nats-io/nats-server/v2/server"

	"github.com/c360studio/sysmlstudio/config"
	diagramapi "github.com/c360studio/sysmlstudio/processor/diagram-api"
	modelapi "github.com/c360studio/sysmlstudio/processor/model-api"
	viewpointapi "github.com/c360studio/sysmlstudio/processor/viewpoint-api"
	"github.com/c360studio/sysmlstudio/storage"
)

// App is the main application that wires together all components.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	// NATS
	embeddedServer *server.Server
	natsClient     *natsclient.Client

	// Storage
	store *storage.Store

	// API components
	modelAPI     *modelapi.Component
	diagramAPI   *diagramapi.Component
	viewpointAPI *viewpointapi.Component

	httpServer *http.Server
}

// NewApp creates a new application instance.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, logger: logger}, nil
}

// Start initializes and starts all components: NATS (optional), the graph
// store, the API components and the HTTP server.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.NATS.Enabled {
		if err := a.startNATS(ctx); err != nil {
			return fmt.Errorf("start NATS: %w", err)
		}
	} else {
		a.logger.Info("Event publishing disabled, running without NATS")
	}

	// The publisher tolerates a nil client, so this wiring is unconditional.
	events := storage.NewEventPublisher(a.natsClient, a.logger)

	store, err := storage.New(ctx, storage.Config{
		URI:      a.cfg.Graph.URI,
		Username: a.cfg.Graph.Username,
		Password: a.cfg.Graph.Password,
		Database: a.cfg.Graph.Database,
	}, events, a.logger)
	if err != nil {
		return fmt.Errorf("connect graph store: %w", err)
	}
	a.store = store

	if err := a.startComponents(ctx); err != nil {
		return err
	}

	a.startHTTP()
	a.logger.Info("All components started", "addr", a.cfg.HTTP.Addr)
	return nil
}

// startComponents constructs, initializes and starts the API components.
func (a *App) startComponents(ctx context.Context) error {
	deps := component.Dependencies{Logger: a.logger}

	modelAPI, err := modelapi.New(modelapi.DefaultConfig(), a.store, deps)
	if err != nil {
		return fmt.Errorf("create model-api: %w", err)
	}
	a.modelAPI = modelAPI

	diagramAPI, err := diagramapi.New(diagramapi.DefaultConfig(), a.store, deps)
	if err != nil {
		return fmt.Errorf("create diagram-api: %w", err)
	}
	a.diagramAPI = diagramAPI

	viewpointAPI, err := viewpointapi.New(viewpointapi.DefaultConfig(), deps)
	if err != nil {
		return fmt.Errorf("create viewpoint-api: %w", err)
	}
	a.viewpointAPI = viewpointAPI

	for _, c := range a.components() {
		if err := c.Initialize(); err != nil {
			return fmt.Errorf("initialize %s: %w", c.Meta().Name, err)
		}
		if err := c.Start(ctx); err != nil {
			return fmt.Errorf("start %s: %w", c.Meta().Name, err)
		}
	}
	return nil
}

// startHTTP assembles the mux and starts the HTTP server.
func (a *App) startHTTP() {
	prefix := strings.Trim(a.cfg.HTTP.Prefix, "/")

	mux := http.NewServeMux()
	a.modelAPI.RegisterHTTPHandlers(prefix+"/model", mux)
	a.diagramAPI.RegisterHTTPHandlers(prefix+"/diagram", mux)
	a.viewpointAPI.RegisterHTTPHandlers(prefix+"/viewpoints", mux)
	mux.HandleFunc("/health", a.handleHealth)

	a.httpServer = &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed", "error", err)
		}
	}()
}

// startNATS connects to an external NATS server or boots an embedded one.
func (a *App) startNATS(ctx context.Context) error {
	url := a.cfg.NATS.URL

	if url == "" && a.cfg.NATS.Embedded {
		a.logger.Info("Starting embedded NATS server")
		opts := &server.Options{
			Port:      -1, // Random available port
			JetStream: true,
			NoLog:     true,
			NoSigs:    true,
		}

		ns, err := server.NewServer(opts)
		if err != nil {
			return fmt.Errorf("create embedded NATS server: %w", err)
		}

		go ns.Start()

		// Wait for server to be ready
		if !ns.ReadyForConnections(5 * time.Second) {
			ns.Shutdown()
			return fmt.Errorf("embedded NATS server failed to start")
		}

		a.embeddedServer = ns
		url = ns.ClientURL()
	}

	a.logger.Info("Connecting to NATS", "url", url)

	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.WaitForConnection(connCtx); err != nil {
		return fmt.Errorf("wait for NATS connection: %w", err)
	}

	a.natsClient = client
	return a.ensureStreams(ctx)
}

// ensureStreams creates the JetStream stream backing model change events.
func (a *App) ensureStreams(ctx context.Context) error {
	streamsManager := streamcfg.NewStreamsManager(a.natsClient, a.logger)

	cfg := &streamcfg.Config{
		Streams: streamcfg.StreamConfigs{
			"MODEL": streamcfg.StreamConfig{
				Subjects: []string{storage.ModelEventSubject + ".>"},
				MaxAge:   "24h",
				Storage:  "memory",
				Replicas: 1,
			},
		},
	}

	if err := streamsManager.EnsureStreams(ctx, cfg); err != nil {
		return fmt.Errorf("ensure streams: %w", err)
	}

	a.logger.Debug("JetStream streams ready")
	return nil
}

// components lists the constructed API components in start order. Skipping
// nils keeps shutdown safe after a partial startup failure.
func (a *App) components() []component.LifecycleComponent {
	out := []component.LifecycleComponent{}
	if a.modelAPI != nil {
		out = append(out, a.modelAPI)
	}
	if a.diagramAPI != nil {
		out = append(out, a.diagramAPI)
	}
	if a.viewpointAPI != nil {
		out = append(out, a.viewpointAPI)
	}
	return out
}

// handleHealth aggregates component health into one response.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	type componentHealth struct {
		Name    string `json:"name"`
		Healthy bool   `json:"healthy"`
		Status  string `json:"status"`
		Uptime  string `json:"uptime"`
	}
	type healthResponse struct {
		Healthy    bool              `json:"healthy"`
		Version    string            `json:"version"`
		Components []componentHealth `json:"components"`
	}

	resp := healthResponse{Healthy: true, Version: Version}
	for _, c := range a.components() {
		h := c.Health()
		resp.Healthy = resp.Healthy && h.Healthy
		resp.Components = append(resp.Components, componentHealth{
			Name:    c.Meta().Name,
			Healthy: h.Healthy,
			Status:  h.Status,
			Uptime:  h.Uptime.String(),
		})
	}

	status := http.StatusOK
	if !resp.Healthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Error("Health encode failed", "error", err)
	}
}

// Shutdown gracefully stops all components in reverse start order.
func (a *App) Shutdown(timeout time.Duration) {
	// Stop accepting requests first.
	if a.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.logger.Error("HTTP shutdown failed", "error", err)
		}
	}

	for _, c := range a.components() {
		if err := c.Stop(timeout); err != nil {
			a.logger.Error("Component stop failed", "component", c.Meta().Name, "error", err)
		}
	}

	if a.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.store.Close(ctx); err != nil {
			a.logger.Error("Store close failed", "error", err)
		}
	}

	if a.natsClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.natsClient.Close(ctx)
	}

	if a.embeddedServer != nil {
		a.embeddedServer.Shutdown()
		a.embeddedServer.WaitForShutdown()
	}
}
