package core

import (
	"errors"
	"time"
)

// Field limits enforced by the validation engine.
const (
	TitleMaxLen       = 50
	DescriptionMaxLen = 500
)

type (
	// Category is one member of the fixed expense category set.
	Category string

	Money struct {
		Cents int64
	}

	// Expense is one recorded spending entry. ID is assigned by the store on
	// creation and stays empty on a not-yet-persisted candidate.
	Expense struct {
		ID          string
		Title       string
		Amount      Money
		Category    Category
		Date        time.Time
		Description string
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}
)

const (
	CategoryFood           Category = "Food"
	CategoryTransportation Category = "Transportation"
	CategoryEntertainment  Category = "Entertainment"
	CategoryShopping       Category = "Shopping"
	CategoryUtilities      Category = "Utilities"
	CategoryHousing        Category = "Housing"
	CategoryHealthcare     Category = "Healthcare"
	CategoryPersonal       Category = "Personal"
	CategoryEducation      Category = "Education"
	CategoryOther          Category = "Other"
)

var categories = []Category{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryShopping,
	CategoryUtilities,
	CategoryHousing,
	CategoryHealthcare,
	CategoryPersonal,
	CategoryEducation,
	CategoryOther,
}

// Categories returns the closed category set in presentation order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid reports whether c is a member of the closed category set.
func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

var ErrInvalidAmount = errors.New("invalid amount")

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
