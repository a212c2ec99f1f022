package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taskhub/taskhub-go/internal/middleware"
)

// NewRouter assembles the full HTTP surface. The session gate wraps every
// route that reaches user-owned data; register and login are rate-limited
// per IP since they are the brute-force surface.
func NewRouter(auth *AuthHandler, tasks *TaskHandler, jwtSecret string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/auth/register", auth.HandleRegister)
		r.Post("/auth/login", auth.HandleLogin)
	})

	r.Post("/auth/logout", auth.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(jwtSecret))

		r.Get("/auth/profile", auth.HandleProfile)

		r.Get("/tasks", tasks.HandleListTasks)
		r.Post("/tasks", tasks.HandleCreateTask)
		r.Put("/tasks/{id}", tasks.HandleUpdateTask)
		r.Delete("/tasks/{id}", tasks.HandleDeleteTask)
	})

	return r
}
