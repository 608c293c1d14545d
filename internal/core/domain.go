package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHousing       Category = "Housing"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

type (
	// Category is one of the six fixed expense categories.
	Category string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	User struct {
		ID           int64
		Username     string
		PasswordHash string
		CreatedAt    time.Time
	}

	Session struct {
		Token     string
		UserID    int64
		ExpiresAt time.Time
	}

	Expense struct {
		ID          int64
		UserID      int64
		Description string
		Amount      Money
		Date        Date
		Category    Category
		CreatedAt   time.Time
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyUsername    = errors.New("empty username")
	ErrEmptyPassword    = errors.New("empty password")
	ErrInvalidCategory  = errors.New("invalid category")
)

// Categories lists all categories in their fixed enum order. This order is
// also the tie-break order for summary rows with equal percentages.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryHousing,
		CategoryHealth,
		CategoryOther,
	}
}

// ParseCategory maps a raw string to a known category. Unknown or empty
// values resolve to CategoryOther, mirroring how stored records with a
// missing category are read back.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// IsValid reports whether c is one of the six fixed categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment,
		CategoryHousing, CategoryHealth, CategoryOther:
		return true
	}
	return false
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// String renders the date in ISO form, or empty for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	return nil
}
