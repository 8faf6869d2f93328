package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createAvailabilityHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_availability"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	deleteAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_appointment"
	deleteAvailabilityHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_availability"
	deleteServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_service"
	deleteUserHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_user"
	finalizeProfileHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/finalize_profile"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getMeHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_me"
	getServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_service"
	getUserHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_user"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_appointments"
	listAvailabilitiesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_availabilities"
	listServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_services"
	listUsersHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_users"
	loginHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/login"
	logoutHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/logout"
	replaceAvailabilitiesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/replace_availabilities"
	updateAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment"
	updateAvailabilityHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_availability"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	updateUserHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_user"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/availability"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	userRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/user"
	"github.com/m04kA/SMC-SalonService/internal/integrations/identity"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	authService "github.com/m04kA/SMC-SalonService/internal/service/auth"
	availabilitiesService "github.com/m04kA/SMC-SalonService/internal/service/availabilities"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	usersService "github.com/m04kA/SMC-SalonService/internal/service/users"
	deleteUserUC "github.com/m04kA/SMC-SalonService/internal/usecase/delete_user"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	replaceAvailabilitiesUC "github.com/m04kA/SMC-SalonService/internal/usecase/replace_availabilities"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка БД: без метрик запросы просто проксируются
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Блокировки записи расписания
	var locker lock.Locker
	var redisLock *lock.RedisLock
	if cfg.Redis.Enabled {
		redisLock, err = lock.NewRedisLock(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		locker = redisLock
		log.Info("Redis lock enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.LockTTL())
	} else {
		locker = lock.NewLocalLock()
		log.Warn("Redis disabled, using in-process lock: schedule writes are serialised per instance only")
	}

	// Провайдер идентификации
	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	identityClient, err := identity.NewClient(initCtx, cfg.Auth.CredentialsFile, cfg.Auth.ProjectID, log)
	cancelInit()
	if err != nil {
		log.Fatal("Failed to initialize identity client: %v", err)
	}
	log.Info("Identity client initialized (project=%s)", cfg.Auth.ProjectID)

	// Инициализируем репозитории
	userRepository := userRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	authSvc := authService.NewService(identityClient, userRepository, cfg.Auth.SessionTTL(), log)
	usersSvc := usersService.NewService(userRepository, log)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	availabilitiesSvc := availabilitiesService.NewService(availabilityRepository, txMgr, locker, cfg.Redis.LockTTL(), log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, txMgr, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		availabilityRepository,
		appointmentRepository,
		metricsCollector,
		log,
	)
	replaceAvailabilitiesUseCase := replaceAvailabilitiesUC.NewUseCase(
		availabilityRepository,
		txMgr,
		locker,
		cfg.Redis.LockTTL(),
		log,
	)
	deleteUserUseCase := deleteUserUC.NewUseCase(
		userRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	cookie := handlers.CookieSettings{
		Name:   cfg.Auth.CookieName,
		Domain: cfg.Auth.CookieDomain,
		Secure: cfg.Auth.CookieSecure,
	}
	login := loginHandler.NewHandler(authSvc, cookie, log)
	logout := logoutHandler.NewHandler(cookie, log)
	getMe := getMeHandler.NewHandler(log)

	finalizeProfile := finalizeProfileHandler.NewHandler(usersSvc, log)
	listUsers := listUsersHandler.NewHandler(usersSvc, log)
	getUser := getUserHandler.NewHandler(usersSvc, log)
	updateUser := updateUserHandler.NewHandler(usersSvc, log)
	deleteUser := deleteUserHandler.NewHandler(deleteUserUseCase, log)

	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	createAvailability := createAvailabilityHandler.NewHandler(availabilitiesSvc, log)
	listAvailabilities := listAvailabilitiesHandler.NewHandler(availabilitiesSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitiesSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitiesSvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitiesSvc, log)
	replaceAvailabilities := replaceAvailabilitiesHandler.NewHandler(replaceAvailabilitiesUseCase, log)

	createAppointment := createAppointmentHandler.NewHandler(appointmentsSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)

	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	// Middleware аутентификации и ролей
	authenticator := middleware.NewAuthenticator(identityClient, cfg.Auth.CookieName, log)
	userLoader := middleware.NewUserLoader(usersSvc, log)
	staffOnly := middleware.RequireRoles(domain.RoleOwner, domain.RoleStaff)
	ownerOnly := middleware.RequireRoles(domain.RoleOwner)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		public.Use(limiter.Middleware)
		log.Info("Public rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Слоты дня для услуги
	public.HandleFunc("/public/availabilities/day", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг
	public.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	public.HandleFunc("/services/{id}", getService.Handle).Methods(http.MethodGet)

	// Сессия
	public.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)
	public.HandleFunc("/auth/logout", logout.Handle).Methods(http.MethodPost)

	// ============================================================
	// AUTHENTICATED ROUTES (токен проверен, профиль может отсутствовать)
	// ============================================================

	authed := api.PathPrefix("").Subrouter()
	authed.Use(authenticator.Authenticate)

	authed.HandleFunc("/auth/me", getMe.Handle).Methods(http.MethodGet)
	authed.HandleFunc("/users/me/finalize", finalizeProfile.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют заполненный профиль)
	// ============================================================

	protected := authed.PathPrefix("").Subrouter()
	protected.Use(userLoader.LoadUser)

	// --- Пользователи ---
	protected.Handle("/users", staffOnly(http.HandlerFunc(listUsers.Handle))).Methods(http.MethodGet)
	protected.Handle("/users/{id}",
		middleware.RequireRolesOrSelf("id", domain.RoleOwner, domain.RoleStaff)(http.HandlerFunc(getUser.Handle))).
		Methods(http.MethodGet)
	protected.Handle("/users/{id}",
		middleware.RequireRolesOrSelf("id", domain.RoleOwner, domain.RoleStaff)(http.HandlerFunc(updateUser.Handle))).
		Methods(http.MethodPatch)
	protected.Handle("/users/{id}",
		middleware.RequireRolesOrSelf("id", domain.RoleOwner)(http.HandlerFunc(deleteUser.Handle))).
		Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.Handle("/services", staffOnly(http.HandlerFunc(createService.Handle))).Methods(http.MethodPost)
	protected.Handle("/services/{id}", staffOnly(http.HandlerFunc(updateService.Handle))).Methods(http.MethodPatch)
	protected.Handle("/services/{id}", ownerOnly(http.HandlerFunc(deleteService.Handle))).Methods(http.MethodDelete)

	// --- Расписание сотрудников ---
	availability := protected.PathPrefix("/staff-availabilities").Subrouter()
	availability.Use(staffOnly)
	availability.HandleFunc("", createAvailability.Handle).Methods(http.MethodPost)
	availability.HandleFunc("", listAvailabilities.Handle).Methods(http.MethodGet)
	availability.HandleFunc("/bulk", replaceAvailabilities.Handle).Methods(http.MethodPut)
	availability.HandleFunc("/{id}", getAvailability.Handle).Methods(http.MethodGet)
	availability.HandleFunc("/{id}", updateAvailability.Handle).Methods(http.MethodPatch)
	availability.HandleFunc("/{id}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.Handle("/appointments", staffOnly(http.HandlerFunc(listAppointments.Handle))).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPost)
	protected.Handle("/appointments/{id}", staffOnly(http.HandlerFunc(deleteAppointment.Handle))).Methods(http.MethodDelete)

	// CORS и логирование оборачивают весь роутер, чтобы preflight не упирался в 405
	var handler http.Handler = r
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.AccessLog(log)(handler)
	handler = middleware.Recovery(log)(handler)
	handler = middleware.RequestID(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if redisLock != nil {
		if err := redisLock.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
