// Package middleware wires shared application state and authentication
// into echo's request context.
package middleware

import (
	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/relatiq-ai/newsgraph/backend/pkg/ai"
	"github.com/relatiq-ai/newsgraph/backend/pkg/graph"
	"github.com/relatiq-ai/newsgraph/backend/pkg/query"
	"github.com/relatiq-ai/newsgraph/backend/pkg/store"
)

// AppUser is the authenticated caller. Nil on anonymous requests when
// authentication is disabled.
type AppUser struct {
	Subject string
	Role    string
}

// App holds the process-wide collaborators every handler needs: the
// connection pool, the graph store port bound to it, the engine and
// agent clients, and the optional auth material.
type App struct {
	DBConn       *pgxpool.Pool
	Store        store.GraphStorage
	Graph        *graph.GraphClient
	Agent        *query.BaseQueryClient
	AiClient     ai.GraphAIClient
	Key          *keyfunc.Keyfunc
	MasterAPIKey string
}

// AppContext decorates echo.Context with the application state.
type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

// AppContextMiddleware attaches the shared App to every request.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
