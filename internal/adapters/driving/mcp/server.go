package mcp

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cloudtiles/internal/core/domain"
	"github.com/custodia-labs/cloudtiles/internal/logger"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server for cloudtiles.
type Server struct {
	ports  *Ports
	server *mcp.Server

	// mu serialises browser access; MCP requests may arrive concurrently.
	mu     sync.Mutex
	loaded bool
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "cloudtiles",
		Version: Version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background()) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// categories returns the category list screen, loading the catalog on
// first use.
func (s *Server) categories(ctx context.Context) (domain.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Screen{}, err
	}
	return s.ports.Browser.Back(), nil
}

// category returns the service list screen of the category named by ref.
// The browser is returned to the category list afterwards.
func (s *Server) category(ctx context.Context, ref string) (domain.Screen, domain.CategoryTile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Screen{}, domain.CategoryTile{}, err
	}

	screen, err := s.ports.Browser.Select(ref)
	if err != nil {
		return domain.Screen{}, domain.CategoryTile{}, err
	}

	var tile domain.CategoryTile
	if state := s.ports.Browser.State(); state.Category != nil {
		tile = domain.CategoryTile{
			Index:        state.Category.Index,
			Key:          state.Category.Key(),
			Name:         state.Category.Name,
			Description:  state.Category.Description,
			ServiceCount: state.Category.ServiceCount(),
		}
	}
	s.ports.Browser.Back()
	return screen, tile, nil
}

// reload re-reads the datasets.
func (s *Server) reload(ctx context.Context) (domain.Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	screen := s.ports.Browser.Reload(ctx)
	s.loaded = true
	if err := s.ports.Browser.Err(); err != nil {
		return screen, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return screen, nil
}

// ensureLoaded runs the initial load, retrying on later calls after a
// failure. Callers hold mu.
func (s *Server) ensureLoaded(ctx context.Context) error {
	if s.loaded && s.ports.Browser.Err() == nil {
		return nil
	}

	s.ports.Browser.Init(ctx)
	s.loaded = true
	if err := s.ports.Browser.Err(); err != nil {
		logger.Warn("mcp: catalog load failed: %v", err)
		return fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	return nil
}
