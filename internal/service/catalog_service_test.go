package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venicelocal/internal/catalog"
	apperrors "venicelocal/internal/errors"
	"venicelocal/internal/model"
	"venicelocal/internal/store"
)

func serviceUsers() []model.User {
	return []model.User{
		{ID: "owner-1", Name: "Olive Owner", Email: "olive@example.com", Role: model.RoleOwner},
		{ID: "patron-1", Name: "Pat Patron", Email: "pat@example.com", Role: model.RolePatron},
	}
}

func serviceBusinesses() []model.Business {
	return []model.Business{
		{
			ID:               "biz-1",
			Name:             "Seabreeze Café",
			Category:         "Food",
			Address:          "101 W Venice Ave, Venice, FL",
			ShortDescription: "Beachy café.",
			Hours:            "Mon-Sun: 7:00a - 3:00p",
			OwnerUserID:      "owner-1",
			Reviews: []model.Review{
				{UserID: "seed1", UserName: "Local Foodie", Rating: 5, Comment: "Great!"},
				{UserID: "seed2", UserName: "Beach Walker", Rating: 4, Comment: "Nice."},
			},
			AverageRating: 4.5,
		},
	}
}

// The cache client is optional; every test runs without one to prove the
// service degrades to the in-memory catalog alone.
func newCatalogService(t *testing.T) (CatalogService, *catalog.Catalog, *storeProbe) {
	t.Helper()
	cat := catalog.New(serviceUsers(), serviceBusinesses(), nil)
	st := newTestStore(t)
	return NewCatalogService(cat, st, nil), cat, &storeProbe{t: t, st: st}
}

type storeProbe struct {
	t  *testing.T
	st *store.Store
}

func (p *storeProbe) businesses() []model.Business {
	p.t.Helper()
	businesses, err := p.st.LoadBusinesses(context.Background())
	require.NoError(p.t, err)
	return businesses
}

func (p *storeProbe) favorites() map[string][]string {
	p.t.Helper()
	favorites, err := p.st.LoadFavorites(context.Background())
	require.NoError(p.t, err)
	return favorites
}

func TestAddReviewVerification(t *testing.T) {
	tests := []struct {
		name      string
		authorID  string
		input     ReviewInput
		wantField string
		wantErr   error
	}{
		{
			name:     "verify word is case-insensitive",
			authorID: "patron-1",
			input:    ReviewInput{Rating: 5, Comment: "Great!", Verify: "  local "},
		},
		{
			name:      "wrong verify word",
			authorID:  "patron-1",
			input:     ReviewInput{Rating: 5, Comment: "Great!", Verify: "GLOBAL"},
			wantField: "verify",
		},
		{
			name:      "missing verify word",
			authorID:  "patron-1",
			input:     ReviewInput{Rating: 5, Comment: "Great!"},
			wantField: "verify",
		},
		{
			name:     "guest author rejected",
			authorID: "guest",
			input:    ReviewInput{Rating: 5, Comment: "Great!", Verify: "LOCAL"},
			wantErr:  apperrors.ErrGuestForbidden,
		},
		{
			name:     "unknown author",
			authorID: "nobody",
			input:    ReviewInput{Rating: 5, Comment: "Great!", Verify: "LOCAL"},
			wantErr:  apperrors.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, probe := newCatalogService(t)

			review, err := svc.AddReview(context.Background(), "biz-1", tt.authorID, tt.input)

			if tt.wantField != "" {
				var ve *apperrors.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantField, ve.Field)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "patron-1", review.UserID)
			assert.Equal(t, "Pat Patron", review.UserName)

			// The mutated business record was persisted.
			persisted := probe.businesses()
			require.Len(t, persisted, 1)
			assert.Len(t, persisted[0].Reviews, 3)
			assert.Equal(t, 4.7, persisted[0].AverageRating)
		})
	}
}

func TestAddBusinessPersists(t *testing.T) {
	svc, _, probe := newCatalogService(t)

	input := catalog.BusinessInput{
		Name:             "Island Boutique",
		Category:         "Retail",
		Address:          "210 Miami Ave W, Venice, FL",
		ShortDescription: "Coastal apparel.",
		Hours:            "Mon-Sat: 10:00a - 6:00p",
	}
	business, err := svc.AddBusiness(context.Background(), input, "owner-1")
	require.NoError(t, err)
	assert.NotEmpty(t, business.ID)

	persisted := probe.businesses()
	assert.Len(t, persisted, 2)

	// Failures persist nothing.
	input.Address = "500 Main St, Sarasota, FL"
	_, err = svc.AddBusiness(context.Background(), input, "owner-1")
	require.Error(t, err)
	assert.Len(t, probe.businesses(), 2)
}

func TestEditBusinessPersists(t *testing.T) {
	svc, _, probe := newCatalogService(t)

	input := catalog.BusinessInput{
		Name:             "Seabreeze Café & Bakery",
		Category:         "Food",
		Address:          "101 W Venice Ave, Venice, FL",
		ShortDescription: "Beachy café, now with pastries.",
		Hours:            "Mon-Sun: 7:00a - 4:00p",
	}
	_, err := svc.EditBusiness(context.Background(), "biz-1", input, "patron-1")
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	assert.Empty(t, probe.businesses(), "rejected edit must not persist")

	edited, err := svc.EditBusiness(context.Background(), "biz-1", input, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, "Seabreeze Café & Bakery", edited.Name)

	persisted := probe.businesses()
	require.Len(t, persisted, 1)
	assert.Equal(t, "Seabreeze Café & Bakery", persisted[0].Name)
}

func TestToggleFavoritePersists(t *testing.T) {
	svc, _, probe := newCatalogService(t)
	ctx := context.Background()

	added, err := svc.ToggleFavorite(ctx, "patron-1", "biz-1")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, map[string][]string{"patron-1": {"biz-1"}}, probe.favorites())

	added, err = svc.ToggleFavorite(ctx, "patron-1", "biz-1")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Empty(t, probe.favorites()["patron-1"])

	_, err = svc.ToggleFavorite(ctx, "guest", "biz-1")
	assert.ErrorIs(t, err, apperrors.ErrGuestForbidden)
}

func TestListFavorites(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()

	_, err := svc.ListFavorites(ctx, "guest")
	assert.ErrorIs(t, err, apperrors.ErrGuestForbidden)

	_, err = svc.ToggleFavorite(ctx, "patron-1", "biz-1")
	require.NoError(t, err)

	saved, err := svc.ListFavorites(ctx, "patron-1")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "biz-1", saved[0].ID)
}

func TestGetBusinessWithoutCache(t *testing.T) {
	svc, _, _ := newCatalogService(t)
	ctx := context.Background()

	business, err := svc.GetBusiness(ctx, "biz-1")
	require.NoError(t, err)
	assert.Equal(t, "Seabreeze Café", business.Name)

	_, err = svc.GetBusiness(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrBusinessNotFound)
}

func TestListBusinessesAppliesQuery(t *testing.T) {
	svc, cat, _ := newCatalogService(t)
	_, err := cat.AddBusiness(catalog.BusinessInput{
		Name:             "Venice Gelato Co.",
		Category:         "Food",
		Address:          "229 W Venice Ave, Venice, FL",
		ShortDescription: "Small-batch gelato.",
		Hours:            "Daily: 12:00p - 9:00p",
	}, "owner-1")
	require.NoError(t, err)

	got := svc.ListBusinesses(context.Background(), catalog.Query{
		SearchTerm: "gelato",
		Category:   catalog.CategoryAll,
		SortBy:     catalog.SortNone,
	})
	require.Len(t, got, 1)
	assert.Equal(t, "Venice Gelato Co.", got[0].Name)
}
