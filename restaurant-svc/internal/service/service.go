package service

import (
	"context"
	"strings"
	"unicode"

	"brasserie/restaurant-svc/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type CatalogService struct {
	restaurants RestaurantRepository
	categories  CategoryRepository
	products    ProductRepository
}

func NewCatalogService(restaurants RestaurantRepository, categories CategoryRepository, products ProductRepository) *CatalogService {
	return &CatalogService{restaurants: restaurants, categories: categories, products: products}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	rest.Name = strings.TrimSpace(rest.Name)
	if rest.Name == "" {
		return domain.NewValidationError("invalid restaurant", "name is required")
	}
	if rest.Slug == "" {
		rest.Slug = Slugify(rest.Name)
	}
	if rest.Country == "" {
		rest.Country = "FR"
	}
	return s.restaurants.CreateRestaurant(ctx, rest)
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.restaurants.ListRestaurants(ctx)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id int) (*domain.Restaurant, error) {
	return s.restaurants.GetRestaurant(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, c *domain.Category) error {
	var details []string
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		details = append(details, "name is required")
	}
	if c.RestaurantID <= 0 {
		details = append(details, "restaurantId is required")
	}
	if len(details) > 0 {
		return domain.NewValidationError("invalid category", details...)
	}
	return s.categories.CreateCategory(ctx, c)
}

func (s *CatalogService) ListCategories(ctx context.Context, restaurantID int) ([]domain.Category, error) {
	return s.categories.ListCategories(ctx, restaurantID)
}

func validateProduct(p *domain.Product) error {
	var details []string
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		details = append(details, "name is required")
	}
	if p.Price < 0 {
		details = append(details, "price must not be negative")
	}
	if p.CategoryID <= 0 {
		details = append(details, "categoryId is required")
	}
	if p.PreparationTime < 0 {
		details = append(details, "preparationTime must not be negative")
	}
	if len(details) > 0 {
		return domain.NewValidationError("invalid product", details...)
	}
	if p.Allergens == nil {
		p.Allergens = []string{}
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if p.RestaurantID <= 0 {
		return domain.NewValidationError("invalid product", "restaurantId is required")
	}
	return s.products.CreateProduct(ctx, p)
}

// UpdateProduct rewrites the catalog entry only. Order items keep the price
// they were taken at.
func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.products.UpdateProduct(ctx, p)
}

func (s *CatalogService) SetProductAvailability(ctx context.Context, id int, available bool) (*domain.Product, error) {
	if err := s.products.SetProductAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	return s.products.GetProduct(ctx, id)
}

// ListProducts returns one page of products along with the filter actually
// applied once defaults are filled in.
func (s *CatalogService) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, domain.ProductFilter, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	products, total, err := s.products.ListProducts(ctx, f)
	if err != nil {
		return nil, f, 0, err
	}
	return products, f, total, nil
}

var slugFold = strings.NewReplacer(
	"à", "a", "â", "a", "ä", "a",
	"ç", "c",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"î", "i", "ï", "i",
	"ô", "o", "ö", "o",
	"ù", "u", "û", "u", "ü", "u",
	"œ", "oe", "æ", "ae",
)

// Slugify turns a display name into a lowercase, hyphen separated slug.
func Slugify(name string) string {
	folded := slugFold.Replace(strings.ToLower(name))
	var b strings.Builder
	dash := false
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

var _ CatalogServiceInterface = (*CatalogService)(nil)
