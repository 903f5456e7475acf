package main

import (
	"context"
	"fmt"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/rs/zerolog/log"

	"github.com/broki/marketplace-api/internal/adapters/database"
	"github.com/broki/marketplace-api/internal/application/services"
	"github.com/broki/marketplace-api/internal/infrastructure/clients/postgres"
	"github.com/broki/marketplace-api/internal/infrastructure/observability"
	"github.com/broki/marketplace-api/pkg/config"
	"github.com/broki/marketplace-api/pkg/validation"
)

var cities = []string{"Pune", "Mumbai", "Bengaluru", "Delhi", "Hyderabad"}

var categories = []string{"Retail Shop", "Office Space", "Warehouse", "Showroom", "Food Court"}

var tags = []string{"leasing", "retail", "investment", "franchise"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger(cfg.OTEL.ServiceName+"-seed", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()
	db := goqu.New("postgres", pgClient.DB())

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				property_amenities,
				property_gallery,
				properties,
				blog_tags,
				tags,
				categories,
				cities
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	if err := insertNames(ctx, db, "cities", cities); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed cities")
	}
	if err := insertNames(ctx, db, "categories", categories); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed categories")
	}
	if err := insertNames(ctx, db, "tags", tags); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed tags")
	}

	categoryAdapter := database.NewCategoryAdapter(pgClient)
	list, err := categoryAdapter.List(ctx)
	if err != nil || len(list) == 0 {
		log.Fatal().Err(err).Msg("No categories available for sample properties")
	}

	// Sample listings go through the upload path so they get the same
	// validation and city resolution as real uploads.
	propertyService := services.NewPropertyService(
		database.NewPropertyAdapter(pgClient),
		database.NewCityAdapter(pgClient),
		categoryAdapter,
		nil,
		validation.New(),
	)

	saved, failures, err := propertyService.BulkUpload(ctx, sampleProperties(list[0].ID))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed properties")
	}
	for _, f := range failures {
		log.Warn().Int("index", f.Index).Interface("errors", f.Errors).Msg("Sample property rejected")
	}

	log.Info().Int("properties", len(saved)).Msg("Seeding complete")
}

// insertNames adds rows to a (id, name) table, skipping names already present.
func insertNames(ctx context.Context, db *goqu.Database, table string, names []string) error {
	for _, name := range names {
		var exists bool
		found, err := db.From(table).Select(goqu.L("true")).Where(goqu.Ex{"name": name}).Limit(1).ScanValContext(ctx, &exists)
		if err != nil {
			return fmt.Errorf("failed to look up %s %q: %w", table, name, err)
		}
		if found {
			continue
		}
		if _, err := db.Insert(table).Rows(goqu.Record{"name": name}).Executor().ExecContext(ctx); err != nil {
			return fmt.Errorf("failed to insert %s %q: %w", table, name, err)
		}
	}
	return nil
}

func sampleProperties(categoryID int64) []services.IndexedPropertyInput {
	type sample struct {
		name, address, city, priceFormat string
		price                            int64
		sqft                             int
		premium                          bool
		propertyFor                      int
	}
	samples := []sample{
		{"FC Road High Street Shop", "Fergusson College Road", "Pune", "2.5 L", 250000, 900, true, 0},
		{"Bandra Corner Showroom", "Linking Road, Bandra West", "Mumbai", "6 L", 600000, 2200, true, 0},
		{"Koramangala Food Court Unit", "80 Feet Road, Koramangala", "Bengaluru", "1.2 Cr", 12000000, 1400, false, 1},
		{"Connaught Place Office", "Inner Circle, Connaught Place", "Delhi", "4 L", 400000, 3000, false, 0},
	}

	items := make([]services.IndexedPropertyInput, 0, len(samples))
	for i, s := range samples {
		category, price, sqft, propertyFor := categoryID, s.price, s.sqft, s.propertyFor
		items = append(items, services.IndexedPropertyInput{
			Index: i,
			Input: services.PropertyInput{
				Name:            s.name,
				Category:        &category,
				Price:           &price,
				PriceFormat:     s.priceFormat,
				Address:         s.address,
				PremiumProperty: s.premium,
				PropertyImage:   "https://images.broki.in/samples/" + fmt.Sprint(i+1) + ".jpg",
				PropertyFor:     &propertyFor,
				City:            &services.CityRef{Name: s.city},
				Sqft:            &sqft,
			},
		})
	}
	return items
}
