package defaultrolehandlers

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	defaultroleservice "github.com/guildstone/rolekeeper-bot/app/modules/defaultrole/application"
	"github.com/guildstone/rolekeeper-bot/internal/utils"
)

// User-visible response strings. The gateway delivers these verbatim as the
// interaction reply, so they are part of the external contract.
const (
	respAssignSuccess      = "Added Role to user"
	respAssignFailure      = "Failed to setrole"
	respNotImplemented     = "not implemented :("
	respGrantFailurePrefix = "Error assigning role: "
)

// setRoleCommandName is the slash command this module owns. The gateway
// process registers the command schema; the backend only dispatches on the
// name.
const setRoleCommandName = "setrole"

// DefaultRoleHandlers implements the Handlers interface for defaultrole
// events.
type DefaultRoleHandlers struct {
	service defaultroleservice.Service
	logger  *slog.Logger
	helpers utils.Helpers
}

// NewDefaultRoleHandlers creates a new DefaultRoleHandlers instance.
func NewDefaultRoleHandlers(service defaultroleservice.Service, logger *slog.Logger, tracer trace.Tracer, helpers utils.Helpers) *DefaultRoleHandlers {
	return &DefaultRoleHandlers{
		service: service,
		logger:  logger,
		helpers: helpers,
	}
}
