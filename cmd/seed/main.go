package main

import (
	"boda/config"
	"boda/infras/postgres"
	"boda/shared/logger"
	"boda/shared/password"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	adminUsername = "admin"
	adminPassword = "admin123"
)

type seedGuest struct {
	Name           string
	Email          string
	Phone          string
	Attending      bool
	MealType       string
	NeedsTransport bool
	Allergies      *string
	Notes          string
}

type seedTable struct {
	Name     string
	Capacity int
	Shape    string
}

func strPtr(s string) *string { return &s }

var sampleGuests = []seedGuest{
	{Name: "Juan García López", Email: "juan.garcia@example.com", Phone: "612345678", Attending: true, MealType: "normal", NeedsTransport: true, Notes: "Amigo de la familia"},
	{Name: "María Rodríguez Martínez", Email: "maria.rodriguez@example.com", Phone: "623456789", Attending: true, MealType: "vegetarian", Allergies: strPtr("Gluten"), Notes: "Celíaca"},
	{Name: "Carlos Fernández López", Email: "carlos.fernandez@example.com", Phone: "634567890", Attending: true, MealType: "normal", NeedsTransport: true, Notes: "Compañero de trabajo"},
	{Name: "Ana Martínez García", Email: "ana.martinez@example.com", Phone: "645678901", MealType: "normal", Notes: "No puede asistir por motivos laborales"},
	{Name: "Pedro Sánchez López", Email: "pedro.sanchez@example.com", Phone: "656789012", Attending: true, MealType: "normal", Allergies: strPtr("Lactosa"), Notes: "Intolerante a la lactosa"},
	{Name: "Isabel Gómez Martínez", Email: "isabel.gomez@example.com", Phone: "667890123", Attending: true, MealType: "vegan", NeedsTransport: true, Allergies: strPtr("Frutos secos"), Notes: "Vegana, alérgica a frutos secos"},
}

var sampleTables = []seedTable{
	{Name: "Table 1", Capacity: 8, Shape: "round"},
	{Name: "Table 2", Capacity: 10, Shape: "round"},
	{Name: "Table 3", Capacity: 6, Shape: "square"},
}

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	conn := postgres.New(cfg)

	seedAdminUser(conn.Write)
	seedTables(conn.Write)
	seedGuests(conn.Write)

	log.Info().Msg("Seeding completed")
}

func seedAdminUser(db *sqlx.DB) {
	hash, err := password.Hash(adminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash admin password")
	}

	_, err = db.Exec(
		`INSERT INTO users (username, password, role, created_by, modified_by)
		 VALUES ($1, $2, 'admin', 'seed', 'seed')
		 ON CONFLICT (username) DO NOTHING`,
		adminUsername, hash)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin user")
	}

	log.Info().Str("username", adminUsername).Msg("Admin user seeded")
}

func seedTables(db *sqlx.DB) {
	for _, table := range sampleTables {
		_, err := db.Exec(
			`INSERT INTO tables (name, capacity, shape, created_by, modified_by)
			 VALUES ($1, $2, $3, 'seed', 'seed')
			 ON CONFLICT (name) DO NOTHING`,
			table.Name, table.Capacity, table.Shape)
		if err != nil {
			log.Fatal().Err(err).Str("table", table.Name).Msg("Failed to seed table")
		}
	}

	log.Info().Int("tables", len(sampleTables)).Msg("Tables seeded")
}

func seedGuests(db *sqlx.DB) {
	var count int
	if err := db.Get(&count, "SELECT COUNT(*) FROM guests"); err != nil {
		log.Fatal().Err(err).Msg("Failed to count guests")
	}

	if count > 0 {
		log.Info().Int("existing", count).Msg("Guests already present, skipping guest seed")

		return
	}

	for _, guest := range sampleGuests {
		_, err := db.Exec(
			`INSERT INTO guests (name, email, phone, attending, meal_type, needs_transport, allergies, notes, created_by, modified_by)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'seed', 'seed')`,
			guest.Name, guest.Email, guest.Phone, guest.Attending, guest.MealType, guest.NeedsTransport, guest.Allergies, guest.Notes)
		if err != nil {
			log.Fatal().Err(err).Str("guest", guest.Name).Msg("Failed to seed guest")
		}
	}

	log.Info().Int("guests", len(sampleGuests)).Msg("Guests seeded")
}
