package main

import (
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"unidomus/internal/database"
	"unidomus/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "unidomus.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reports")
	db.Exec("DELETE FROM match_messages")
	db.Exec("DELETE FROM matches")
	db.Exec("DELETE FROM email_verification_tokens")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("Admin1234"), bcrypt.DefaultCost)
	admin := domain.User{
		Username:     "admin",
		Email:        "admin@unidomus.it",
		PasswordHash: string(adminHash),
		Name:         "Site",
		Surname:      "Admin",
		IsAdmin:      true,
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("seed admin failed:", err)
	}

	userHash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)

	marco := domain.User{
		Username:     "marco_t",
		Email:        "marco@example.com",
		PasswordHash: string(userHash),
		Name:         "Marco",
		Surname:      "Trentin",
		Active:       true,
		Habits:       []string{"early_riser", "non_smoker"},
		Hobbies:      []string{"cycling", "cooking"},
	}
	giulia := domain.User{
		Username:     "giulia_b",
		Email:        "giulia@example.com",
		PasswordHash: string(userHash),
		Name:         "Giulia",
		Surname:      "Bianchi",
		Active:       true,
		Habits:       []string{"night_owl"},
		Hobbies:      []string{"photography"},
	}
	for _, u := range []*domain.User{&marco, &giulia} {
		if err := db.Create(u).Error; err != nil {
			log.Fatal("seed user failed:", err)
		}
	}

	log.Println("Creating listings...")

	lat, lon := 46.0667, 11.1167
	listing := domain.Listing{
		Address: domain.Address{
			Street:   "Via Roma",
			City:     "Trento",
			CAP:      "38122",
			HouseNum: "12A",
			Province: "TN",
			Country:  "Italy",
		},
		Photos:          []string{"/static/listings/1/front.jpg"},
		PublisherID:     marco.ID,
		Typology:        "double room",
		Description:     "Bright double room close to the university.",
		Price:           450,
		FloorArea:       18,
		Availability:    "from September",
		PublicationDate: time.Now(),
		Latitude:        &lat,
		Longitude:       &lon,
	}
	if err := db.Create(&listing).Error; err != nil {
		log.Fatal("seed listing failed:", err)
	}
	if err := db.Model(&domain.User{}).Where("id = ?", marco.ID).
		Update("listing_id", listing.ID).Error; err != nil {
		log.Fatal("seed listing back-ref failed:", err)
	}

	log.Println("Creating matches...")

	m := domain.Match{
		RequesterID: giulia.ID,
		ReceiverID:  marco.ID,
		MatchType:   domain.MatchTypeApartment,
		Status:      domain.MatchPending,
		RequestDate: time.Now(),
	}
	if err := db.Create(&m).Error; err != nil {
		log.Fatal("seed match failed:", err)
	}
	msg := domain.MatchMessage{
		MatchID:  m.ID,
		AuthorID: giulia.ID,
		Text:     "Hi! Is the room still available?",
		SentAt:   time.Now(),
	}
	if err := db.Create(&msg).Error; err != nil {
		log.Fatal("seed message failed:", err)
	}

	n := domain.Notification{
		UserID:   marco.ID,
		Type:     domain.NotificationMatch,
		Message:  "You received a new apartment match request.",
		Link:     "/matches",
		Status:   domain.NotificationNotSeen,
		Priority: domain.PriorityMedium,
	}
	if err := db.Create(&n).Error; err != nil {
		log.Fatal("seed notification failed:", err)
	}

	log.Println("Seed completed:")
	log.Println("  admin@unidomus.it / Admin1234")
	log.Println("  marco@example.com / Password1")
	log.Println("  giulia@example.com / Password1")
}
