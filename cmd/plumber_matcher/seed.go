package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/plumber-matcher/internal/config"
	"github.com/jonathan/plumber-matcher/internal/db"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// seedPlumber is one demo account to insert.
type seedPlumber struct {
	name           string
	email          string
	password       string
	district       string
	specialization string
	languages      string
	freeTimeSlots  string
	lat, lon       float64
}

var samplePlumbers = []seedPlumber{
	{"Ramesh Patel", "ramesh1@example.com", "plumber1", "Ahmedabad", "Leak Repair", "Gujarati, Hindi", "9am-12pm, 2pm-5pm", 23.0225, 72.5714},
	{"Suresh Shah", "suresh2@example.com", "plumber2", "Surat", "Installation", "Gujarati, English", "10am-1pm, 4pm-7pm", 21.1702, 72.8311},
	{"Mahesh Mehta", "mahesh3@example.com", "plumber3", "Vadodara", "Maintenance", "Gujarati, Hindi", "8am-11am, 3pm-6pm", 22.3072, 73.1812},
	{"Jignesh Desai", "jignesh4@example.com", "plumber4", "Rajkot", "Inspection", "Gujarati, English", "9am-12pm, 1pm-4pm", 22.3039, 70.8022},
	{"Paresh Joshi", "paresh5@example.com", "plumber5", "Bhavnagar", "Leak Repair", "Gujarati, Hindi", "10am-1pm, 5pm-8pm", 21.7645, 72.1519},
	{"Nilesh Trivedi", "nilesh6@example.com", "plumber6", "Jamnagar", "Installation", "Gujarati, Hindi", "8am-11am, 2pm-5pm", 22.4707, 70.0577},
	{"Dipak Pandya", "dipak7@example.com", "plumber7", "Gandhinagar", "Maintenance", "Gujarati, English", "9am-12pm, 3pm-6pm", 23.2156, 72.6369},
	{"Kiran Solanki", "kiran8@example.com", "plumber8", "Junagadh", "Inspection", "Gujarati, Hindi", "10am-1pm, 4pm-7pm", 21.5222, 70.4579},
	{"Vikas Parmar", "vikas9@example.com", "plumber9", "Anand", "Leak Repair", "Gujarati, Hindi", "8am-11am, 1pm-4pm", 22.5645, 72.9289},
	{"Manish Chauhan", "manish10@example.com", "plumber10", "Navsari", "Installation", "Gujarati, English", "9am-12pm, 2pm-5pm", 20.9467, 72.9520},
	{"Harshad Rana", "harshad11@example.com", "plumber11", "Bharuch", "Maintenance", "Gujarati, Hindi", "10am-1pm, 5pm-8pm", 21.7051, 72.9959},
	{"Sanjay Bhatt", "sanjay12@example.com", "plumber12", "Mehsana", "Inspection", "Gujarati, English", "8am-11am, 3pm-6pm", 23.5879, 72.3693},
	{"Ravi Gohil", "ravi13@example.com", "plumber13", "Patan", "Leak Repair", "Gujarati, Hindi", "9am-12pm, 1pm-4pm", 23.8506, 72.1261},
	{"Ajay Dave", "ajay14@example.com", "plumber14", "Porbandar", "Installation", "Gujarati, Hindi", "10am-1pm, 4pm-7pm", 21.6417, 69.6293},
}

var (
	seedDatabaseURL string
	seedConcurrency int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the database with sample plumbers",
	Long: `Creates the demo plumber accounts and profiles. Accounts that already
exist (by email) are skipped, so the command is safe to re-run.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	seedCmd.Flags().IntVar(&seedConcurrency, "concurrency", 4, "Number of concurrent inserts")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(_ *cobra.Command, _ []string) error {
	databaseURL := seedDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set and --db-url not provided")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(seedConcurrency, 1))

	created := make([]bool, len(samplePlumbers))
	for i, p := range samplePlumbers {
		g.Go(func() error {
			ok, err := seedOne(gctx, database, passwordConfig, p)
			created[i] = ok
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, ok := range created {
		if ok {
			total++
		}
	}
	fmt.Fprintf(os.Stdout, "Seeded %d plumber(s), %d already existed\n", total, len(samplePlumbers)-total)
	return nil
}

// seedOne inserts one plumber account and profile. Returns false if the
// account already existed.
func seedOne(ctx context.Context, database *db.DB, pc *config.PasswordConfig, p seedPlumber) (bool, error) {
	exists, err := database.CheckEmailExists(ctx, p.email)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", p.email, err)
	}
	if exists {
		return false, nil
	}

	hash, err := pc.HashPassword(p.password)
	if err != nil {
		return false, fmt.Errorf("failed to hash password for %s: %w", p.email, err)
	}

	userID, err := database.CreateUser(ctx, p.name, p.email, hash, "plumber")
	if err != nil {
		return false, fmt.Errorf("failed to create user %s: %w", p.email, err)
	}

	lat, lon := p.lat, p.lon
	_, err = database.CreatePlumberProfile(ctx, &db.PlumberProfile{
		UserID:         userID,
		District:       p.district,
		Specialization: p.specialization,
		Languages:      p.languages,
		FreeTimeSlots:  p.freeTimeSlots,
		Lat:            &lat,
		Lon:            &lon,
	})
	if err != nil {
		return false, fmt.Errorf("failed to create profile for %s: %w", p.email, err)
	}
	return true, nil
}
