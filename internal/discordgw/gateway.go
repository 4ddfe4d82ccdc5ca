// Package discordgw is the backend's client for the Discord gateway process.
// The gateway owns the bot session and REST credentials; this client asks it
// to perform guild mutations over NATS request/reply and treats every call as
// a blocking, context-aware operation.
package discordgw

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	nc "github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	"github.com/guildstone/rolekeeper-bot/internal/observability/attr"
	"github.com/guildstone/rolekeeper-bot/internal/sharedtypes"
)

// AssignRoleSubject is the request/reply subject the gateway serves for role
// grants.
const AssignRoleSubject = "discord.gateway.role.assign.v1"

// Gateway is the surface the application layer depends on.
type Gateway interface {
	// AssignRole grants roleID to userID in guildID. The returned error
	// carries the gateway's failure detail (missing permissions, unknown
	// role, REST fault) and is safe to show to the invoking admin.
	AssignRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error
}

// GatewayError is a failure reported by the gateway process, as opposed to a
// transport problem reaching it.
type GatewayError struct {
	Detail string
}

func (e *GatewayError) Error() string {
	return e.Detail
}

type assignRoleRequest struct {
	GuildID sharedtypes.GuildID `json:"guild_id"`
	UserID  sharedtypes.UserID  `json:"user_id"`
	RoleID  sharedtypes.RoleID  `json:"role_id"`
}

type assignRoleReply struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Client is the NATS-backed Gateway implementation.
type Client struct {
	conn    *nc.Conn
	logger  *slog.Logger
	limiter *rate.Limiter
	timeout time.Duration
}

var _ Gateway = (*Client)(nil)

// Config controls request pacing and timeout. Pacing is a soft client-side
// cap below Discord's REST limits; the gateway process enforces the real
// ones.
type Config struct {
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	RequestBurst      int
}

// NewClient builds a Client on an existing NATS connection.
func NewClient(conn *nc.Conn, cfg Config, logger *slog.Logger) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 5 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 25
	}
	if cfg.RequestBurst <= 0 {
		cfg.RequestBurst = 5
	}
	return &Client{
		conn:    conn,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
		timeout: cfg.RequestTimeout,
	}
}

func (c *Client) AssignRole(ctx context.Context, guildID sharedtypes.GuildID, userID sharedtypes.UserID, roleID sharedtypes.RoleID) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("gateway request canceled while pacing: %w", err)
	}

	data, err := json.Marshal(assignRoleRequest{
		GuildID: guildID,
		UserID:  userID,
		RoleID:  roleID,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal assign role request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.conn.RequestWithContext(reqCtx, AssignRoleSubject, data)
	if err != nil {
		return fmt.Errorf("gateway unreachable: %w", err)
	}

	var reply assignRoleReply
	if err := json.Unmarshal(resp.Data, &reply); err != nil {
		return fmt.Errorf("failed to decode gateway reply: %w", err)
	}
	if !reply.Success {
		c.logger.WarnContext(ctx, "Gateway rejected role assignment",
			attr.String("guild_id", guildID.String()),
			attr.String("user_id", userID.String()),
			attr.String("role_id", roleID.String()),
			attr.String("detail", reply.Error),
		)
		return &GatewayError{Detail: reply.Error}
	}
	return nil
}
