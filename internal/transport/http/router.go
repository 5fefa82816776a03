package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-contacts-api/internal/service"
	"github.com/pribylovaa/go-contacts-api/internal/transport/http/handlers"
	"github.com/pribylovaa/go-contacts-api/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger    *slog.Logger
	Timeout   time.Duration
	BasePath  string // например, "/api"; если пустой — роуты регистрируются на корне.
	TempDir   string // каталог спула multipart-загрузок.
	AvatarDir string // если непустой — каталог локальных аватаров раздаётся по /avatars.
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc *service.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	// Зависимости хендлеров.
	h := handlers.New(svc, opts.TempDir)

	// Статика локальных аватаров (вариант с хранением на диске).
	if opts.AvatarDir != "" {
		root.Handle("/avatars/*", http.StripPrefix("/avatars/", http.FileServer(http.Dir(opts.AvatarDir))))
	}

	// Регистрация маршрутов.
	if opts.BasePath != "" {
		sub := chi.NewRouter()
		registerRoutes(sub, h, svc)
		root.Mount(opts.BasePath, sub)
		return root
	}

	registerRoutes(root, h, svc)
	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, svc *service.Service) {
	// auth: открытые маршруты.
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Get("/auth/verify/{verificationToken}", h.VerifyEmail)
	r.Post("/auth/verify", h.ResendVerifyEmail)

	// auth: защищённые маршруты.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(svc))

		r.Post("/auth/logout", h.Logout)
		r.Get("/auth/current", h.Current)
		r.Patch("/auth/subscription", h.UpdateSubscription)
		r.Patch("/auth/avatars", h.UpdateAvatar)
	})

	// contacts: всё поддерево требует аутентификации.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(svc))

		r.Get("/contacts", h.ListContacts)
		r.Post("/contacts", h.CreateContact)
		r.Get("/contacts/{id}", h.GetContact)
		r.Put("/contacts/{id}", h.UpdateContact)
		r.Patch("/contacts/{id}/favorite", h.UpdateContactFavorite)
		r.Delete("/contacts/{id}", h.DeleteContact)
	})
}
