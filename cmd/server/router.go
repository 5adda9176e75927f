package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/phrazzld/task-tracker/internal/api"
	apiMiddleware "github.com/phrazzld/task-tracker/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.loggers.Request))
	r.Use(apiMiddleware.NewRequestCounterMiddleware(app.requests))

	taskHandler := api.NewTaskHandler(app.taskService, app.loggers.Request)
	logsHandler := api.NewLogsHandler(app.loggers.Levels)

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	r.Get("/task", taskHandler.Health)
	r.Delete("/task", taskHandler.DeleteTask)
	r.Post("/task/create", taskHandler.CreateTask)
	r.Get("/task/size", taskHandler.GetTaskCount)
	r.Get("/task/data", taskHandler.GetTasksData)
	r.Put("/task/priority", taskHandler.UpdatePriority)
	r.Get("/task/search", taskHandler.SearchTasks)

	r.Get("/logs/level", logsHandler.GetLevel)
	r.Put("/logs/level", logsHandler.SetLevel)

	return otelhttp.NewHandler(r, "tasks-api",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))
}
