// ABOUTME: MCP server setup for the swim personal-best tracker.
// ABOUTME: Wraps MCP server with storage Repository connection and session user.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/swim/internal/models"
	"github.com/harperreed/swim/internal/records"
	"github.com/harperreed/swim/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	user      string
	logger    *log.Logger
}

// NewServer creates a new MCP server with the given storage. user is the
// default swimmer for tools that are called without one.
func NewServer(repo storage.Repository, user string, logger *log.Logger) (*Server, error) {
	if repo == nil {
		return nil, errors.New("mcp server requires a repository")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "swim",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		user:      strings.TrimSpace(user),
		logger:    logger,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// resolveUser picks the explicit user or falls back to the session user.
func (s *Server) resolveUser(name string) (string, error) {
	if n := strings.TrimSpace(name); n != "" {
		return n, nil
	}
	if s.user != "" {
		return s.user, nil
	}
	return "", errors.New("no user given and no user logged in (run 'swim login <name>')")
}

// openStore loads the user's entries into a record store. Unknown users get
// an empty profile that is only written once something is added.
func (s *Server) openStore(name string) (*records.Store, *models.User, error) {
	user, err := s.resolveUser(name)
	if err != nil {
		return nil, nil, err
	}

	u, err := s.repo.LoadUser(user)
	if errors.Is(err, storage.ErrUserNotFound) {
		u = models.NewUser(user)
	} else if err != nil {
		return nil, nil, fmt.Errorf("load user: %w", err)
	}

	store := records.New(records.Session{User: u.Name}, u.Times)
	return store, u, nil
}

// persist writes the store back when a mutation changed it.
func (s *Server) persist(store *records.Store, u *models.User) error {
	if !store.Dirty() {
		return nil
	}
	u.Times = store.Entries()
	if err := s.repo.SaveUser(u); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	store.MarkClean()
	s.logger.Debug("saved entries", "user", u.Name, "entries", len(u.Times))
	return nil
}
