package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryHousing       Category = "housing"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

type (
	Category string

	User struct {
		ID       int64
		Username string
		Password string
	}

	Expense struct {
		ID          int64
		UserID      int64
		Amount      decimal.Decimal
		Category    Category
		Date        time.Time // day the expense occurred
		Description string
		CreatedAt   time.Time // when the record was stored
	}

	Budget struct {
		ID     int64
		UserID int64
		Amount decimal.Decimal
		Month  int // 1-12
		Year   int
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrEmptyUsername    = errors.New("empty username")
	ErrEmptyDescription = errors.New("empty description")
)

// Categories returns the closed set of spending categories, in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryHousing,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryOther,
	}
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryHousing,
		CategoryUtilities, CategoryEntertainment, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	return nil
}

func (e Expense) Validate() error {
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !e.Category.IsValid() {
		return ErrInvalidCategory
	}
	if e.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	return nil
}

func (b Budget) Validate() error {
	if !b.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if b.Month < 1 || b.Month > 12 {
		return ErrInvalidMonth
	}
	return nil
}
