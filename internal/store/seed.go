package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"venicelocal/internal/model"
)

// SampleBusinesses returns the fixed starter catalog used on first run.
// Average ratings are precomputed to match the embedded reviews.
func SampleBusinesses() []model.Business {
	return []model.Business{
		{
			ID:               uuid.NewString(),
			Name:             "Seabreeze Café",
			Category:         "Food",
			Address:          "101 W Venice Ave, Venice, FL",
			ShortDescription: "Beachy café serving fresh pastries, Cuban coffee, and smoothies.",
			Hours:            "Mon-Sun: 7:00a - 3:00p",
			SpecialDeals:     "10% off for residents with local ID",
			Reviews: []model.Review{
				{UserID: "seed1", UserName: "Local Foodie", Rating: 5, Comment: "Love the guava pastries!", Date: seedDate(2024, time.November, 2)},
				{UserID: "seed2", UserName: "Beach Walker", Rating: 4, Comment: "Great espresso and friendly staff.", Date: seedDate(2024, time.December, 10)},
			},
			AverageRating: 4.5,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Island Boutique",
			Category:         "Retail",
			Address:          "210 Miami Ave W, Venice, FL",
			ShortDescription: "Coastal-inspired apparel, handmade jewelry, and gifts from local artisans.",
			Hours:            "Mon-Sat: 10:00a - 6:00p",
			SpecialDeals:     "Buy 2 accessories, get 1 free",
			Reviews: []model.Review{
				{UserID: "seed3", UserName: "Style Maven", Rating: 5, Comment: "Unique finds and friendly owner.", Date: seedDate(2025, time.January, 6)},
			},
			AverageRating: 5,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Gulfside Yoga Loft",
			Category:         "Wellness",
			Address:          "301 Nassau St S, Venice, FL",
			ShortDescription: "Relaxed studio offering sunrise yoga and mindful meditation.",
			Hours:            "Mon-Fri: 6:30a - 8:00p; Sat: 8:00a - 2:00p",
			SpecialDeals:     "First class free for Venice locals",
			Reviews: []model.Review{
				{UserID: "seed4", UserName: "Calm Seeker", Rating: 4, Comment: "Peaceful space, loved the instructor.", Date: seedDate(2025, time.February, 12)},
				{UserID: "seed5", UserName: "Sunrise Fan", Rating: 5, Comment: "Sunrise flow is magical.", Date: seedDate(2025, time.March, 4)},
			},
			AverageRating: 4.5,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Mangrove Makerspace",
			Category:         "Services",
			Address:          "145 Tampa Ave E, Venice, FL",
			ShortDescription: "Community workshop for 3D printing, laser cutting, and DIY builds.",
			Hours:            "Tue-Sun: 9:00a - 7:00p",
			SpecialDeals:     "Student discount: 15% off day passes",
			Reviews: []model.Review{
				{UserID: "seed6", UserName: "DIY Dad", Rating: 5, Comment: "Staff helped me finish a wood project.", Date: seedDate(2024, time.October, 19)},
			},
			AverageRating: 5,
		},
		{
			ID:               uuid.NewString(),
			Name:             "Venice Gelato Co.",
			Category:         "Food",
			Address:          "225 W Miami Ave, Venice, FL",
			ShortDescription: "Small-batch gelato inspired by Gulf flavors.",
			Hours:            "Daily: 11:00a - 10:00p",
			SpecialDeals:     "2-for-1 scoops on Tuesdays",
			Reviews: []model.Review{
				{UserID: "seed7", UserName: "Sweet Tooth", Rating: 5, Comment: "Key lime gelato is perfect.", Date: seedDate(2025, time.January, 28)},
				{UserID: "seed8", UserName: "Date Night", Rating: 4, Comment: "Cozy vibe and friendly team.", Date: seedDate(2025, time.February, 8)},
			},
			AverageRating: 4.5,
		},
	}
}

// SeedIfNeeded writes the sample catalog and empty user/favorite records
// on first run, then sets the seeded flag. It reports whether seeding
// happened.
func (s *Store) SeedIfNeeded(ctx context.Context) (bool, error) {
	seeded, err := s.Seeded(ctx)
	if err != nil {
		return false, err
	}
	if seeded {
		return false, nil
	}

	if err := s.SaveBusinesses(ctx, SampleBusinesses()); err != nil {
		return false, err
	}
	if err := s.SaveUsers(ctx, nil); err != nil {
		return false, err
	}
	if err := s.SaveFavorites(ctx, nil); err != nil {
		return false, err
	}
	if err := s.MarkSeeded(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func seedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
