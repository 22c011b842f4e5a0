package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"venicelocal/internal/cache"
	"venicelocal/internal/catalog"
	"venicelocal/internal/errors"
	"venicelocal/internal/model"
	"venicelocal/internal/store"
)

const businessCacheTTL = 5 * time.Minute

// reviewVerifyWord is the word a reviewer must type to confirm the
// submission.
const reviewVerifyWord = "LOCAL"

// ReviewInput carries a review submission.
type ReviewInput struct {
	Rating  int
	Comment string
	Verify  string
}

// CatalogService exposes the directory use-cases. Every mutation
// persists the touched record through the store before returning.
type CatalogService interface {
	ListBusinesses(ctx context.Context, q catalog.Query) []model.Business
	GetBusiness(ctx context.Context, id string) (*model.Business, error)
	AddBusiness(ctx context.Context, in catalog.BusinessInput, ownerID string) (*model.Business, error)
	EditBusiness(ctx context.Context, businessID string, in catalog.BusinessInput, requesterID string) (*model.Business, error)
	AddReview(ctx context.Context, businessID, authorID string, in ReviewInput) (*model.Review, error)
	ToggleFavorite(ctx context.Context, userID, businessID string) (added bool, err error)
	ListFavorites(ctx context.Context, userID string) ([]model.Business, error)
}

type catalogService struct {
	catalog *catalog.Catalog
	store   *store.Store
	cache   *cache.Client
}

// NewCatalogService builds a CatalogService over the shared catalog,
// the persistence adapter, and an optional detail cache.
func NewCatalogService(cat *catalog.Catalog, st *store.Store, cacheClient *cache.Client) CatalogService {
	return &catalogService{catalog: cat, store: st, cache: cacheClient}
}

func (s *catalogService) cacheKey(id string) string {
	return "business:" + id
}

// ListBusinesses returns the filtered, sorted catalog view.
func (s *catalogService) ListBusinesses(ctx context.Context, q catalog.Query) []model.Business {
	return catalog.FilterAndSort(s.catalog.Businesses(), q)
}

// GetBusiness returns one listing, read through the cache.
func (s *catalogService) GetBusiness(ctx context.Context, id string) (*model.Business, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Business
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	business, err := s.catalog.Business(id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(business); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, businessCacheTTL)
	}
	return business, nil
}

// AddBusiness creates a listing owned by ownerID and persists the
// business record.
func (s *catalogService) AddBusiness(ctx context.Context, in catalog.BusinessInput, ownerID string) (*model.Business, error) {
	business, err := s.catalog.AddBusiness(in, ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.persistBusinesses(ctx, business.ID); err != nil {
		return nil, err
	}
	return business, nil
}

// EditBusiness replaces the descriptive fields of requesterID's listing
// and persists the business record.
func (s *catalogService) EditBusiness(ctx context.Context, businessID string, in catalog.BusinessInput, requesterID string) (*model.Business, error) {
	business, err := s.catalog.EditBusiness(businessID, in, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.persistBusinesses(ctx, businessID); err != nil {
		return nil, err
	}
	return business, nil
}

// AddReview appends a review on behalf of authorID after the submission
// verification word checks out, then persists the business record.
func (s *catalogService) AddReview(ctx context.Context, businessID, authorID string, in ReviewInput) (*model.Review, error) {
	if strings.ToUpper(strings.TrimSpace(in.Verify)) != reviewVerifyWord {
		return nil, errors.NewValidationError("verify", "verification failed: type "+reviewVerifyWord+" to confirm")
	}

	author, err := s.resolveAuthor(authorID)
	if err != nil {
		return nil, err
	}

	review, err := s.catalog.AddReview(businessID, author, in.Rating, in.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.persistBusinesses(ctx, businessID); err != nil {
		return nil, err
	}
	return review, nil
}

// ToggleFavorite flips a favorite and persists the favorites record.
func (s *catalogService) ToggleFavorite(ctx context.Context, userID, businessID string) (bool, error) {
	added, err := s.catalog.ToggleFavorite(userID, businessID)
	if err != nil {
		return false, err
	}
	if err := s.store.SaveFavorites(ctx, s.catalog.FavoritesSnapshot()); err != nil {
		return false, fmt.Errorf("persist favorites: %w", err)
	}
	return added, nil
}

// ListFavorites returns the user's saved listings in catalog order.
func (s *catalogService) ListFavorites(ctx context.Context, userID string) ([]model.Business, error) {
	if userID == model.GuestUser().ID {
		return nil, errors.ErrGuestForbidden
	}
	return s.catalog.FavoriteBusinesses(userID), nil
}

func (s *catalogService) resolveAuthor(authorID string) (model.User, error) {
	if authorID == model.GuestUser().ID {
		return model.GuestUser(), nil
	}
	user := s.catalog.UserByID(authorID)
	if user == nil {
		return model.User{}, errors.ErrUserNotFound
	}
	return *user, nil
}

func (s *catalogService) persistBusinesses(ctx context.Context, invalidatedID string) error {
	if err := s.store.SaveBusinesses(ctx, s.catalog.Businesses()); err != nil {
		return fmt.Errorf("persist businesses: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(invalidatedID))
	return nil
}
