package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/aura"
	"github.com/aretw0/aura/internal/logging"
	"github.com/aretw0/aura/pkg/domain"
	"github.com/aretw0/aura/pkg/screen"
)

// ErrNotLoggedIn is returned by tools that need a session before login succeeded.
var ErrNotLoggedIn = errors.New("not logged in: call the login tool first")

// LoginArgs are the arguments of the login tool.
type LoginArgs struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// TransferArgs are the arguments of the transfer tool.
type TransferArgs struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// LoginResult reports the outcome of the login tool.
type LoginResult struct {
	UserID  string `json:"user_id" jsonschema_description:"The authenticated user"`
	Granted bool   `json:"granted" jsonschema_description:"Whether the bank accepted the credentials"`
}

// BalanceResult reports the primary account balance.
type BalanceResult struct {
	UserID  string `json:"user_id"`
	Balance string `json:"balance" jsonschema_description:"Exact balance as a decimal string"`
	Display string `json:"display" jsonschema_description:"Balance rounded up to two decimals"`
}

// TransferResult reports the outcome of the transfer tool and the refreshed balance.
type TransferResult struct {
	Succeeded bool   `json:"succeeded"`
	Balance   string `json:"balance,omitempty" jsonschema_description:"Primary balance after the transfer"`
}

// Server exposes the Aura screens as MCP tools. It holds at most one session.
type Server struct {
	app       *aura.App
	mcpServer *server.MCPServer
	logger    *slog.Logger

	mu      sync.Mutex
	session domain.Session
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(app *aura.App, opts ...Option) *Server {
	s := &Server{
		app:       app,
		mcpServer: server.NewMCPServer("aura-mcp", strings.TrimSpace(aura.Version)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	loginTool := mcp.NewTool("login",
		mcp.WithDescription("Log in to the bank. Later tools act on behalf of this user."),
		mcp.WithString("id", mcp.Required(), mcp.Description("User identifier")),
		mcp.WithString("password", mcp.Required(), mcp.Description("User password")),
		mcp.WithOutputSchema[LoginResult](),
	)
	s.mcpServer.AddTool(loginTool, mcp.NewStructuredToolHandler(s.handleLogin))

	balanceTool := mcp.NewTool("balance",
		mcp.WithDescription("Fetch the balance of the logged-in user's primary account."),
		mcp.WithOutputSchema[BalanceResult](),
	)
	s.mcpServer.AddTool(balanceTool, mcp.NewStructuredToolHandler(s.handleBalance))

	transferTool := mcp.NewTool("transfer",
		mcp.WithDescription("Transfer money from the logged-in user's primary account to another user."),
		mcp.WithString("recipient", mcp.Required(), mcp.Description("Recipient user identifier")),
		mcp.WithString("amount", mcp.Required(), mcp.Description("Positive amount with '.' as decimal separator, e.g. 12.50")),
		mcp.WithOutputSchema[TransferResult](),
	)
	s.mcpServer.AddTool(transferTool, mcp.NewStructuredToolHandler(s.handleTransfer))

	s.mcpServer.AddTool(mcp.NewTool("logout",
		mcp.WithDescription("Drop the current session."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.setSession(domain.Session{})
		return mcp.NewToolResultText("logged out"), nil
	})
}

func (s *Server) handleLogin(ctx context.Context, request mcp.CallToolRequest, args LoginArgs) (LoginResult, error) {
	login := s.app.LoginScreen()
	defer login.Close()

	if !login.CheckFields(args.ID, args.Password) {
		return LoginResult{}, errors.New("id and password are required")
	}

	session, err := login.Submit(ctx, args.ID, args.Password)
	if err != nil {
		var failure *screen.FailureError
		if errors.As(err, &failure) && failure.Message == domain.MsgLoginFailed {
			s.logger.Info("MCP login declined", "user_id", args.ID)
			return LoginResult{UserID: args.ID, Granted: false}, nil
		}
		return LoginResult{}, fmt.Errorf("login: %s", login.State().Message)
	}

	s.setSession(session)
	s.logger.Info("MCP login granted", "user_id", session.UserID)
	return LoginResult{UserID: session.UserID, Granted: true}, nil
}

func (s *Server) handleBalance(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (BalanceResult, error) {
	session, err := s.currentSession()
	if err != nil {
		return BalanceResult{}, err
	}
	content, err := s.refresh(ctx, session)
	if err != nil {
		return BalanceResult{}, err
	}
	return BalanceResult{
		UserID:  session.UserID,
		Balance: content.Balance.String(),
		Display: screen.DisplayBalance(content.Balance),
	}, nil
}

func (s *Server) handleTransfer(ctx context.Context, request mcp.CallToolRequest, args TransferArgs) (TransferResult, error) {
	session, err := s.currentSession()
	if err != nil {
		return TransferResult{}, err
	}

	transfer, err := s.app.TransferScreen(session)
	if err != nil {
		return TransferResult{}, err
	}
	defer transfer.Close()

	if !transfer.CheckFields(args.Recipient, args.Amount) {
		return TransferResult{}, fmt.Errorf("invalid transfer fields: recipient %q amount %q", args.Recipient, args.Amount)
	}
	if err := transfer.Submit(ctx, args.Recipient, args.Amount); err != nil {
		if transfer.State().Message == domain.MsgTransferRefused {
			return TransferResult{Succeeded: false}, nil
		}
		return TransferResult{}, fmt.Errorf("transfer: %s", transfer.State().Message)
	}

	result := TransferResult{Succeeded: true}
	if content, err := s.refresh(ctx, session); err == nil {
		result.Balance = content.Balance.String()
	} else {
		s.logger.Warn("MCP balance refresh after transfer failed", "user_id", session.UserID, "err", err)
	}
	return result, nil
}

func (s *Server) refresh(ctx context.Context, session domain.Session) (domain.HomeContent, error) {
	home, err := s.app.HomeScreen(session)
	if err != nil {
		return domain.HomeContent{}, err
	}
	defer home.Close()

	content, err := home.Refresh(ctx)
	if err != nil {
		return domain.HomeContent{}, fmt.Errorf("balance: %s", home.State().Message)
	}
	return content, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("aura://session", "Current Session",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		s.mu.Lock()
		session := s.session
		s.mu.Unlock()

		jsonBytes, _ := json.Marshal(map[string]any{
			"user_id":    session.UserID,
			"logged_in":  session.Valid(),
			"started_at": session.StartedAt,
		})
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "aura://session",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func (s *Server) setSession(session domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

func (s *Server) currentSession() (domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Valid() {
		return domain.Session{}, ErrNotLoggedIn
	}
	return s.session, nil
}
