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

	addCartItemHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/add_cart_item"
	cancelBookingHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/cancel_booking"
	checkoutHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/checkout"
	clearCartHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/clear_cart"
	completeBookingHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/complete_booking"
	createPaymentIntentHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/create_payment_intent"
	getBookingHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/get_booking"
	getBookingPaymentHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/get_booking_payment"
	getCartHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/get_cart"
	getFeeScheduleHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/get_fee_schedule"
	getSalonBookingsHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/get_salon_bookings"
	getUserBookingsHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/get_user_bookings"
	removeCartItemHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/remove_cart_item"
	updateCartItemHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/update_cart_item"
	updateFeeScheduleHandler "github.com/salonbook/SBP-CheckoutService/internal/api/handlers/update_fee_schedule"
	"github.com/salonbook/SBP-CheckoutService/internal/api/middleware"
	"github.com/salonbook/SBP-CheckoutService/internal/config"
	bookingRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/booking"
	cartRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/cart"
	feeconfigRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/feeconfig"
	intentRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/intent"
	paymentRepo "github.com/salonbook/SBP-CheckoutService/internal/infra/storage/payment"
	notifyServiceClient "github.com/salonbook/SBP-CheckoutService/internal/integrations/notifyservice"
	paymentGatewayClient "github.com/salonbook/SBP-CheckoutService/internal/integrations/paymentgateway"
	salonServiceClient "github.com/salonbook/SBP-CheckoutService/internal/integrations/salonservice"
	bookingsService "github.com/salonbook/SBP-CheckoutService/internal/service/bookings"
	cartService "github.com/salonbook/SBP-CheckoutService/internal/service/cart"
	feescheduleService "github.com/salonbook/SBP-CheckoutService/internal/service/feeschedule"
	pricingService "github.com/salonbook/SBP-CheckoutService/internal/service/pricing"
	checkoutUC "github.com/salonbook/SBP-CheckoutService/internal/usecase/checkout"
	createPaymentIntentUC "github.com/salonbook/SBP-CheckoutService/internal/usecase/create_payment_intent"
	"github.com/salonbook/SBP-CheckoutService/pkg/dbmetrics"
	"github.com/salonbook/SBP-CheckoutService/pkg/logger"
	"github.com/salonbook/SBP-CheckoutService/pkg/metrics"
	"github.com/salonbook/SBP-CheckoutService/pkg/simpletxmanager"
	"github.com/salonbook/SBP-CheckoutService/pkg/txmanager"
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

	log.Info("Starting SBP-CheckoutService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	salonClient := salonServiceClient.NewClient(
		cfg.SalonService.URL,
		time.Duration(cfg.SalonService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	gatewayClient := paymentGatewayClient.NewClient(
		cfg.PaymentGateway.BaseURL,
		cfg.PaymentGateway.KeyID,
		cfg.PaymentGateway.KeySecret,
		time.Duration(cfg.PaymentGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (SalonService=%s, NotifyService=%s, PaymentGateway=%s)",
		cfg.SalonService.URL, cfg.NotifyService.URL, cfg.PaymentGateway.BaseURL)

	// Интерфейс transaction manager (используется в usecase checkout)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		cartRepository      *cartRepo.Repository
		intentRepository    *intentRepo.Repository
		bookingRepository   *bookingRepo.Repository
		paymentRepository   *paymentRepo.Repository
		feeconfigRepository *feeconfigRepo.Repository
		txMgr               TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		cartRepository = cartRepo.NewRepository(wrappedDB)
		intentRepository = intentRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		feeconfigRepository = feeconfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		cartRepository = cartRepo.NewRepository(db)
		intentRepository = intentRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		feeconfigRepository = feeconfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	pricingSvc := pricingService.NewService(feeconfigRepository, log)
	cartSvc := cartService.NewService(cartRepository, salonClient, log)
	bookingsSvc := bookingsService.NewService(bookingRepository, paymentRepository, log)
	feescheduleSvc := feescheduleService.NewService(feeconfigRepository, log)

	// Инициализируем use cases
	createPaymentIntentUseCase := createPaymentIntentUC.NewUseCase(
		cartSvc,
		pricingSvc,
		salonClient,
		gatewayClient,
		intentRepository,
		log,
	)
	checkoutUseCase := checkoutUC.NewUseCase(
		cartSvc,
		cartRepository,
		pricingSvc,
		salonClient,
		gatewayClient,
		feeconfigRepository,
		intentRepository,
		bookingRepository,
		paymentRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	addCartItem := addCartItemHandler.NewHandler(cartSvc, log)
	updateCartItem := updateCartItemHandler.NewHandler(cartSvc, log)
	removeCartItem := removeCartItemHandler.NewHandler(cartSvc, log)
	clearCart := clearCartHandler.NewHandler(cartSvc, log)
	getCart := getCartHandler.NewHandler(cartSvc, log)
	createPaymentIntent := createPaymentIntentHandler.NewHandler(createPaymentIntentUseCase, log)
	checkout := checkoutHandler.NewHandler(checkoutUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingsSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingsSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingsSvc, log)
	getBookingPayment := getBookingPaymentHandler.NewHandler(bookingsSvc, log)
	getFeeSchedule := getFeeScheduleHandler.NewHandler(feescheduleSvc, log)
	updateFeeSchedule := updateFeeScheduleHandler.NewHandler(feescheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
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

	// Текущая тарифная сетка платформы
	api.HandleFunc("/fees", getFeeSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Корзина ---
	protected.HandleFunc("/cart", getCart.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/cart", clearCart.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/items", addCartItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/cart/items/{itemId}", updateCartItem.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/cart/items/{itemId}", removeCartItem.Handle).Methods(http.MethodDelete)

	// --- Checkout ---
	// Создание платёжного намерения (открытие платёжной формы)
	protected.HandleFunc("/checkout/intent", createPaymentIntent.Handle).Methods(http.MethodPost)
	// Завершение checkout после оплаты
	protected.HandleFunc("/checkout", checkout.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", getBookingPayment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление салоном ---
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование тарифной сетки ---
	protected.HandleFunc("/fees", updateFeeSchedule.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
