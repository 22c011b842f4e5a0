// Package catalog holds the in-memory directory state: users,
// businesses, and the per-user favorite sets. It owns validation,
// average-rating computation, and all mutation operations. Persistence
// is the caller's responsibility; the catalog never touches the store.
package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"venicelocal/internal/errors"
	"venicelocal/internal/model"
)

// Catalog is the directory state, loaded once from the persistence
// adapter at startup and injected into the services that operate on it.
type Catalog struct {
	mu         sync.RWMutex
	users      []model.User
	businesses []model.Business
	favorites  map[string][]string
}

// New builds a Catalog from a persisted snapshot.
func New(users []model.User, businesses []model.Business, favorites map[string][]string) *Catalog {
	if favorites == nil {
		favorites = map[string][]string{}
	}
	return &Catalog{
		users:      users,
		businesses: businesses,
		favorites:  favorites,
	}
}

// BusinessInput carries the descriptive fields of a listing. All fields
// except SpecialDeals are required.
type BusinessInput struct {
	Name             string
	Category         string
	Address          string
	ShortDescription string
	Hours            string
	SpecialDeals     string
}

func (in *BusinessInput) trim() {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	in.Address = strings.TrimSpace(in.Address)
	in.ShortDescription = strings.TrimSpace(in.ShortDescription)
	in.Hours = strings.TrimSpace(in.Hours)
	in.SpecialDeals = strings.TrimSpace(in.SpecialDeals)
}

func (in *BusinessInput) validate() error {
	in.trim()
	required := []struct{ field, value string }{
		{"name", in.Name},
		{"category", in.Category},
		{"address", in.Address},
		{"shortDescription", in.ShortDescription},
		{"hours", in.Hours},
	}
	for _, r := range required {
		if r.value == "" {
			return errors.NewValidationError(r.field, "this field is required")
		}
	}
	// Crude locality check: listings must be in Venice, FL.
	if !strings.Contains(strings.ToLower(in.Address), "venice") {
		return errors.NewValidationError("address", "address must reference Venice, FL")
	}
	return nil
}

// AddBusiness validates input, resolves the owner, and appends a new
// listing with no reviews and a zero rating.
func (c *Catalog) AddBusiness(input BusinessInput, ownerID string) (*model.Business, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	owner := c.userByID(ownerID)
	if owner == nil {
		if ownerID == model.GuestUser().ID {
			return nil, errors.ErrGuestForbidden
		}
		return nil, errors.ErrUserNotFound
	}
	if !owner.Role.CanContribute() {
		return nil, errors.ErrGuestForbidden
	}

	business := model.Business{
		ID:               uuid.NewString(),
		Name:             input.Name,
		Category:         input.Category,
		Address:          input.Address,
		ShortDescription: input.ShortDescription,
		Hours:            input.Hours,
		SpecialDeals:     input.SpecialDeals,
		OwnerUserID:      owner.ID,
		Reviews:          []model.Review{},
		AverageRating:    0,
	}
	c.businesses = append(c.businesses, business)

	out := business.Clone()
	return &out, nil
}

// EditBusiness replaces the descriptive fields of a listing. Reviews,
// average rating, id, and owner are untouched. Only the owner may edit.
func (c *Catalog) EditBusiness(businessID string, input BusinessInput, requesterID string) (*model.Business, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	business := c.businessByID(businessID)
	if business == nil {
		return nil, errors.ErrBusinessNotFound
	}
	if business.OwnerUserID == "" || business.OwnerUserID != requesterID {
		return nil, errors.ErrNotOwner
	}

	business.Name = input.Name
	business.Category = input.Category
	business.Address = input.Address
	business.ShortDescription = input.ShortDescription
	business.Hours = input.Hours
	business.SpecialDeals = input.SpecialDeals

	out := business.Clone()
	return &out, nil
}

// AddReview appends a review to a business and recomputes its average
// rating. Guests cannot review; owners may review listings they do not
// own.
func (c *Catalog) AddReview(businessID string, author model.User, rating int, comment string) (*model.Review, error) {
	if !author.Role.CanContribute() {
		return nil, errors.ErrGuestForbidden
	}
	if rating < 1 || rating > 5 {
		return nil, errors.NewValidationError("rating", "rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, errors.NewValidationError("comment", "please add a short comment")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	business := c.businessByID(businessID)
	if business == nil {
		return nil, errors.ErrBusinessNotFound
	}

	review := model.Review{
		UserID:   author.ID,
		UserName: author.Name,
		Rating:   rating,
		Comment:  comment,
		Date:     time.Now(),
	}
	business.Reviews = append(business.Reviews, review)
	business.AverageRating = averageRating(business.Reviews)

	return &review, nil
}

// ToggleFavorite flips membership of a business in the user's favorite
// set. It reports whether the business was added. Calling it twice
// returns the set to its prior state.
func (c *Catalog) ToggleFavorite(userID, businessID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	user := c.userByID(userID)
	if user == nil {
		if userID == model.GuestUser().ID {
			return false, errors.ErrGuestForbidden
		}
		return false, errors.ErrUserNotFound
	}
	if !user.Role.CanContribute() {
		return false, errors.ErrGuestForbidden
	}
	if c.businessByID(businessID) == nil {
		return false, errors.ErrBusinessNotFound
	}

	list := c.favorites[userID]
	for i, id := range list {
		if id == businessID {
			c.favorites[userID] = append(list[:i], list[i+1:]...)
			return false, nil
		}
	}
	c.favorites[userID] = append(list, businessID)
	return true, nil
}

// AddUser appends a registered user. Emails are unique, compared
// case-insensitively; callers are expected to store them lower-cased.
func (c *Catalog) AddUser(user model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return errors.NewValidationError("email", "an account with this email already exists")
		}
	}
	c.users = append(c.users, user)
	return nil
}

// SetAvatar updates a user's avatar string.
func (c *Catalog) SetAvatar(userID, avatar string) (*model.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.users {
		if c.users[i].ID == userID {
			c.users[i].Avatar = avatar
			out := c.users[i]
			return &out, nil
		}
	}
	return nil, errors.ErrUserNotFound
}

// UserByID returns a copy of the user, or nil if unknown.
func (c *Catalog) UserByID(id string) *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if u := c.userByID(id); u != nil {
		out := *u
		return &out
	}
	return nil
}

// UserByEmail returns a copy of the user with the given email,
// compared case-insensitively, or nil.
func (c *Catalog) UserByEmail(email string) *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, u := range c.users {
		if strings.EqualFold(u.Email, email) {
			out := u
			return &out
		}
	}
	return nil
}

// Users returns a copy of the user collection.
func (c *Catalog) Users() []model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.User, len(c.users))
	copy(out, c.users)
	return out
}

// Business returns a copy of the listing, or an error if unknown.
func (c *Catalog) Business(id string) (*model.Business, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if b := c.businessByID(id); b != nil {
		out := b.Clone()
		return &out, nil
	}
	return nil, errors.ErrBusinessNotFound
}

// Businesses returns a copy of the catalog in insertion order.
func (c *Catalog) Businesses() []model.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Business, len(c.businesses))
	for i, b := range c.businesses {
		out[i] = b.Clone()
	}
	return out
}

// Favorites returns a copy of the user's favorite business ids in
// insertion order.
func (c *Catalog) Favorites(userID string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := c.favorites[userID]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// FavoritesSnapshot returns a copy of the whole favorites mapping for
// persistence.
func (c *Catalog) FavoritesSnapshot() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string][]string, len(c.favorites))
	for id, list := range c.favorites {
		cp := make([]string, len(list))
		copy(cp, list)
		out[id] = cp
	}
	return out
}

// FavoriteBusinesses returns the user's saved listings in catalog order.
func (c *Catalog) FavoriteBusinesses(userID string) []model.Business {
	c.mu.RLock()
	defer c.mu.RUnlock()
	saved := map[string]bool{}
	for _, id := range c.favorites[userID] {
		saved[id] = true
	}
	out := []model.Business{}
	for _, b := range c.businesses {
		if saved[b.ID] {
			out = append(out, b.Clone())
		}
	}
	return out
}

func (c *Catalog) userByID(id string) *model.User {
	for i := range c.users {
		if c.users[i].ID == id {
			return &c.users[i]
		}
	}
	return nil
}

func (c *Catalog) businessByID(id string) *model.Business {
	for i := range c.businesses {
		if c.businesses[i].ID == id {
			return &c.businesses[i]
		}
	}
	return nil
}

// averageRating is the mean of all review ratings rounded to one
// decimal, or 0 when there are no reviews. Decimal arithmetic keeps the
// rounding exact.
func averageRating(reviews []model.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range reviews {
		sum = sum.Add(decimal.NewFromInt(int64(r.Rating)))
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(reviews)))).Round(1)
	out, _ := avg.Float64()
	return out
}
