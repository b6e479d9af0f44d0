package main

import (
	bookinghandler "docportal/internal/bookings/handler"
	bookingrepo "docportal/internal/bookings/repository"
	bookingservice "docportal/internal/bookings/service"
	bookingvalidator "docportal/internal/bookings/validator"
	doctorhandler "docportal/internal/doctors/handler"
	doctorrepo "docportal/internal/doctors/repository"
	doctorservice "docportal/internal/doctors/service"
	paymenthandler "docportal/internal/payments/handler"
	paymentrepo "docportal/internal/payments/repository"
	paymentservice "docportal/internal/payments/service"
	"docportal/internal/payments/stripe"
	treatmenthandler "docportal/internal/treatments/handler"
	treatmentrepo "docportal/internal/treatments/repository"
	treatmentservice "docportal/internal/treatments/service"
	userhandler "docportal/internal/users/handler"
	userrepo "docportal/internal/users/repository"
	userservice "docportal/internal/users/service"
	"docportal/pkg/app"
	"docportal/pkg/auth"
	"docportal/pkg/config"
	"docportal/pkg/events"
	"docportal/pkg/middleware"
)

const ServiceName = "portal"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting portal service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	// Repositories
	treatmentRepo := treatmentrepo.NewMongoTreatmentRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	userRepo := userrepo.NewMongoUserRepository(cfg)
	doctorRepo := doctorrepo.NewMongoDoctorRepository(cfg)
	paymentRepo := paymentrepo.NewMongoPaymentRepository(cfg)

	guard := middleware.NewGuard(tokens, userRepo, cfg.Log)

	// Services
	treatmentSvc := treatmentservice.NewTreatmentService(treatmentRepo, bookingRepo, cfg)
	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	userSvc := userservice.NewUserService(userRepo, tokens, cfg)
	doctorSvc := doctorservice.NewDoctorService(doctorRepo, treatmentRepo, cfg)

	stripeClient := stripe.NewClient(cfg.StripeSecretKey, cfg.PaymentCurrency, cfg.Log).
		WithBaseURL(cfg.StripeBaseURL).
		WithDryRun(cfg.StripeDryRun)
	paymentSvc := paymentservice.NewPaymentService(paymentRepo, bookingRepo, stripeClient, publisher, cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		treatmenthandler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
		treatmenthandler.NewTreatmentHandler(treatmentSvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, guard, cfg.Log),
		userhandler.NewUserHandler(userSvc, guard, cfg.Log),
		doctorhandler.NewDoctorHandler(doctorSvc, guard, cfg.Log),
		paymenthandler.NewPaymentHandler(paymentSvc, cfg.Log),
	)
	serverApp.Run()
}

// initPublisher wires Kafka when brokers are configured and falls back to a
// no-op publisher otherwise, so a single-node deployment needs no broker.
func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, domain events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaEventsTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}

	cfg.Log.Info("Kafka publisher initialized",
		"brokers", len(cfg.KafkaBrokers),
		"topic", cfg.KafkaEventsTopic,
	)
	return publisher
}
