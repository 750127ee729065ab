package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"wellnessbook/internal/database"
	"wellnessbook/internal/domain"
	"wellnessbook/internal/repository"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect("wellness.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM service_offerings")
	db.Exec("DELETE FROM provider_profiles")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	services := repository.NewServiceRepository(db)
	appointments := repository.NewAppointmentRepository(db)

	log.Println("Creating users...")

	admin := newUser("admin@wellnessbook.dev", "admin123", domain.RoleAdmin, "Admin")
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}

	customers := make([]*domain.User, 0, 3)
	for i, email := range []string{"anna@example.com", "ben@example.com", "carla@example.com"} {
		u := newUser(email, "customer123", domain.RoleCustomer, fmt.Sprintf("Customer %d", i+1))
		if err := users.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
		customers = append(customers, u)
	}

	log.Println("Creating providers...")
	now := time.Now()
	providerUsers := make([]*domain.User, 0, 2)
	for i, email := range []string{"mia@calmwaters.dev", "noah@stretchlab.dev"} {
		u := newUser(email, "provider123", domain.RoleProvider, fmt.Sprintf("Provider %d", i+1))
		profile := &domain.ProviderProfile{
			DisplayName:    fmt.Sprintf("Wellness Studio %d", i+1),
			Specialty:      []string{"massage", "yoga"}[i],
			City:           "Portland",
			CredentialDocs: []string{"doc://license.pdf"},
			OnboardingStep: domain.OnboardingStepReview,
			Status:         domain.ProviderApproved,
			SubmittedAt:    &now,
			ReviewedAt:     &now,
			ReviewedBy:     &admin.ID,
		}
		if err := users.CreateProviderAccount(ctx, u, profile); err != nil {
			log.Fatal(err)
		}
		providerUsers = append(providerUsers, u)
	}

	log.Println("Creating services...")
	offerings := []*domain.ServiceOffering{
		{ProviderID: providerUsers[0].ID, Name: "Swedish Massage", Category: "massage", DurationMinutes: 60, Price: 80, Active: true},
		{ProviderID: providerUsers[0].ID, Name: "Deep Tissue Massage", Category: "massage", DurationMinutes: 90, Price: 110, Active: true},
		{ProviderID: providerUsers[1].ID, Name: "Private Yoga Session", Category: "yoga", DurationMinutes: 60, Price: 65, Active: true},
		{ProviderID: providerUsers[1].ID, Name: "Guided Meditation", Category: "meditation", DurationMinutes: 30, Price: 30, Active: false},
	}
	for _, o := range offerings {
		if err := services.Create(ctx, o); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating appointments...")
	tomorrow := now.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	lastWeek := now.AddDate(0, 0, -7).Truncate(24 * time.Hour)

	seedAppointments := []*domain.Appointment{
		appointment(customers[0], offerings[0], tomorrow, "10:00", domain.AppointmentConfirmed),
		appointment(customers[1], offerings[0], tomorrow, "11:00", domain.AppointmentPending),
		appointment(customers[0], offerings[2], tomorrow, "09:00", domain.AppointmentPending),
		appointment(customers[2], offerings[1], lastWeek, "14:00", domain.AppointmentCompleted),
		appointment(customers[1], offerings[2], lastWeek, "16:00", domain.AppointmentCancelled),
	}
	for _, a := range seedAppointments {
		if err := appointments.Create(ctx, a); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed completed!")
	log.Println("Admin:     admin@wellnessbook.dev / admin123")
	log.Println("Customers: anna@example.com ... / customer123")
	log.Println("Providers: mia@calmwaters.dev ... / provider123")
}

func newUser(email, password string, role domain.UserRole, name string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Name:         name,
	}
}

func appointment(customer *domain.User, o *domain.ServiceOffering, date time.Time, start string, status domain.AppointmentStatus) *domain.Appointment {
	var h, m int
	fmt.Sscanf(start, "%d:%d", &h, &m)
	endMin := h*60 + m + o.DurationMinutes

	return &domain.Appointment{
		Ref:             uuid.NewString(),
		CustomerID:      customer.ID,
		ProviderID:      o.ProviderID,
		ServiceID:       o.ID,
		ServiceName:     o.Name,
		ServiceDuration: o.DurationMinutes,
		ServicePrice:    o.Price,
		AppointmentDate: date,
		StartTime:       start,
		EndTime:         fmt.Sprintf("%02d:%02d", endMin/60, endMin%60),
		Status:          status,
		TotalPrice:      o.Price,
	}
}
