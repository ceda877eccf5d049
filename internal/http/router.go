package http

import (
	"net/http"

	"github.com/jaekwang-park/todo-dashboard/internal/http/handler"
	"github.com/jaekwang-park/todo-dashboard/internal/service"
)

// Services are the collaborators the API routes to. Health may be nil, and
// a nil Auth leaves the account routes unregistered.
type Services struct {
	Auth       *service.AuthService
	Todos      *service.TodoService
	Categories *service.CategoryService
	Groups     *service.GroupService
	Tags       *service.TagService
	Health     handler.Pinger
}

func NewRouter(svc Services) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for ALB health check compatibility
	mux.Handle("/health", handler.NewHealthHandler(svc.Health))

	if svc.Auth != nil {
		mux.Handle("/api/v1/auth/", handler.NewAuthHandler(svc.Auth))
		mux.Handle("/api/v1/me", handler.NewMeHandler(svc.Auth))
	}

	resources := map[string]http.Handler{
		"/api/v1/todos":      handler.NewTodoHandler(svc.Todos),
		"/api/v1/categories": handler.NewCategoryHandler(svc.Categories),
		"/api/v1/groups":     handler.NewGroupHandler(svc.Groups),
		"/api/v1/tags":       handler.NewTagHandler(svc.Tags),
	}
	for prefix, h := range resources {
		mux.Handle(prefix, h)
		mux.Handle(prefix+"/", h)
	}

	return mux
}
