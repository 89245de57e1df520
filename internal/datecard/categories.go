// internal/datecard/categories.go
// Date category templates and the table that holds them

package datecard

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// DateCategory is a template for one kind of date activity.
type DateCategory struct {
	ID          string   `json:"id" validate:"required"`
	Interests   []string `json:"interests" validate:"required,min=1,dive,required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required,url"`
	VenueType   string   `json:"venue_type" validate:"required,venuetype"`
}

// DefaultCategoryID is the template used when nothing scores.
const DefaultCategoryID = "coffee"

var venueTypePattern = regexp.MustCompile(`^[a-z]+(_[a-z]+)*$`)

var categoryValidator = newCategoryValidator()

func newCategoryValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("venuetype", func(fl validator.FieldLevel) bool {
		return venueTypePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("datecard: register venuetype validation: %v", err))
	}
	return v
}

// CategoryTable is an immutable, validated set of templates.
// Iteration order is declaration order.
type CategoryTable struct {
	ordered   []DateCategory
	byID      map[string]int
	defaultID string
}

// NewCategoryTable validates the templates and builds the table.
func NewCategoryTable(categories []DateCategory, defaultID string) (*CategoryTable, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}

	t := &CategoryTable{
		ordered:   make([]DateCategory, 0, len(categories)),
		byID:      make(map[string]int, len(categories)),
		defaultID: defaultID,
	}

	for _, c := range categories {
		if err := categoryValidator.Struct(c); err != nil {
			return nil, fmt.Errorf("invalid category %q: %w", c.ID, err)
		}
		if _, dup := t.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category %q", c.ID)
		}

		// Copy the keyword slice so callers cannot mutate the table.
		c.Interests = append([]string(nil), c.Interests...)
		t.byID[c.ID] = len(t.ordered)
		t.ordered = append(t.ordered, c)
	}

	if _, ok := t.byID[defaultID]; !ok {
		return nil, fmt.Errorf("default category %q is not defined", defaultID)
	}

	return t, nil
}

// MustDefaultCategories returns the built-in table. It panics only if the
// literal configuration below is broken.
func MustDefaultCategories() *CategoryTable {
	t, err := NewCategoryTable(defaultCategories(), DefaultCategoryID)
	if err != nil {
		panic(err)
	}
	return t
}

// Default returns the fallback template.
func (t *CategoryTable) Default() DateCategory {
	return t.ordered[t.byID[t.defaultID]]
}

// Get looks up a template by id.
func (t *CategoryTable) Get(id string) (DateCategory, bool) {
	i, ok := t.byID[id]
	if !ok {
		return DateCategory{}, false
	}
	return t.ordered[i], true
}

// All returns a copy of the templates in declaration order.
func (t *CategoryTable) All() []DateCategory {
	out := make([]DateCategory, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Len returns the number of templates.
func (t *CategoryTable) Len() int {
	return len(t.ordered)
}

func defaultCategories() []DateCategory {
	return []DateCategory{
		{
			ID:          "coffee",
			Interests:   []string{"coffee", "conversation", "relaxing"},
			Title:       "Coffee Date",
			Description: "Enjoy a cozy coffee together and get to know each other better.",
			Image:       "https://images.unsplash.com/photo-1509042239860-f550ce710b93?auto=format&fit=crop&w=1287&q=80",
			VenueType:   "cafe",
		},
		{
			ID:          "dinner",
			Interests:   []string{"food", "dining", "cooking", "wine"},
			Title:       "Dinner Date",
			Description: "Share a delicious meal together at this lovely restaurant.",
			Image:       "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?auto=format&fit=crop&w=1470&q=80",
			VenueType:   "restaurant",
		},
		{
			ID:          "hiking",
			Interests:   []string{"hiking", "outdoors", "fitness", "adventure", "nature"},
			Title:       "Hiking Adventure",
			Description: "Explore the beauty of nature together on this scenic trail.",
			Image:       "https://images.unsplash.com/photo-1551632811-561732d1e306?auto=format&fit=crop&w=1770&q=80",
			VenueType:   "hiking_trail",
		},
		{
			ID:          "museum",
			Interests:   []string{"art", "culture", "history", "learning"},
			Title:       "Museum Visit",
			Description: "Discover art and culture together at this fascinating museum.",
			Image:       "https://images.unsplash.com/photo-1565060169194-3b72aecbe791?auto=format&fit=crop&w=1770&q=80",
			VenueType:   "museum",
		},
		{
			ID:          "movie",
			Interests:   []string{"movies", "cinema", "entertainment"},
			Title:       "Movie Night",
			Description: "Enjoy the latest blockbuster together at this cinema.",
			Image:       "https://images.unsplash.com/photo-1517604931442-7e0c8ed2963c?auto=format&fit=crop&w=1770&q=80",
			VenueType:   "cinema",
		},
		{
			ID:          "concert",
			Interests:   []string{"music", "concerts", "entertainment", "live music"},
			Title:       "Live Music Date",
			Description: "Experience the energy of live music together.",
			Image:       "https://images.unsplash.com/photo-1501281668745-f7f57925c3b4?auto=format&fit=crop&w=1770&q=80",
			VenueType:   "music_venue",
		},
		{
			ID:          "park",
			Interests:   []string{"outdoors", "nature", "walking", "relaxing"},
			Title:       "Park Stroll",
			Description: "Take a relaxing walk through this beautiful park.",
			Image:       "https://images.unsplash.com/photo-1519331379826-f10be5486c6f?auto=format&fit=crop&w=1772&q=80",
			VenueType:   "park",
		},
		{
			ID:          "beach",
			Interests:   []string{"beach", "swimming", "outdoors", "water", "summer"},
			Title:       "Beach Day",
			Description: "Soak up the sun and enjoy the waves together.",
			Image:       "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?auto=format&fit=crop&w=1773&q=80",
			VenueType:   "beach",
		},
		{
			ID:          "bowling",
			Interests:   []string{"games", "fun", "competitive", "sports"},
			Title:       "Bowling Night",
			Description: "Have a blast bowling together!",
			Image:       "https://images.unsplash.com/photo-1538511059235-bc51f972e3bf?auto=format&fit=crop&w=1632&q=80",
			VenueType:   "bowling_alley",
		},
		{
			ID:          "gallery",
			Interests:   []string{"art", "culture", "photography"},
			Title:       "Art Gallery Visit",
			Description: "Appreciate art together at this gallery.",
			Image:       "https://images.unsplash.com/photo-1594733605297-91a1a69c9ee1?auto=format&fit=crop&w=1770&q=80",
			VenueType:   "art_gallery",
		},
	}
}
