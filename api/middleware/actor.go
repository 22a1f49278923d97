package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/promopace/promopace-backend/api/responses"
	"github.com/promopace/promopace-backend/pkg/auth"
	"github.com/promopace/promopace-backend/pkg/config"
	"github.com/promopace/promopace-backend/pkg/db/models"
	pkgerrors "github.com/promopace/promopace-backend/pkg/errors"
	"github.com/promopace/promopace-backend/pkg/logger"
	"github.com/promopace/promopace-backend/pkg/types"
)

// RepResolver resolves a rep for display-name attribution.
type RepResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rep, error)
}

// Actor parses the Bearer token and attaches the attributed actor to the
// request context. This is attribution, not a session system: the token only
// says who performed the action.
func Actor(cfg config.JWTConfig, reps RepResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := bearerToken(r)
			if token == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor token required"))
				return
			}

			claims, err := auth.ParseActorToken(cfg, token)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid actor token"))
				return
			}

			actor := types.Actor{
				RepID:   claims.RepID,
				Name:    claims.Email,
				Email:   claims.Email,
				IsAdmin: claims.IsAdmin,
			}
			if reps != nil {
				if rep, err := reps.FindByID(ctx, claims.RepID); err == nil && rep != nil {
					actor.Name = rep.Name
				}
			}

			if logg != nil {
				ctx = logg.WithRepID(ctx, actor.RepID.String())
			}
			next.ServeHTTP(w, r.WithContext(WithActor(ctx, actor)))
		})
	}
}

// RequireAdmin gates destructive operations behind the admin flag.
func RequireAdmin(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "actor token required"))
				return
			}
			if !actor.IsAdmin {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
