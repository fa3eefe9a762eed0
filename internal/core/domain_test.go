package core

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories() {
		if !c.IsValid() {
			t.Fatalf("%q expected valid", c)
		}
	}
	bads := []Category{"", "groceries", "FOOD", "food "}
	for i, c := range bads {
		if c.IsValid() {
			t.Fatalf("case %d (%q) expected invalid", i, c)
		}
	}
}

func TestUserValidate(t *testing.T) {
	if err := (User{Username: "alice"}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (User{Username: "  "}).Validate(); err == nil {
		t.Fatalf("expected error for blank username")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		UserID:      1,
		Amount:      decimal.NewFromInt(10),
		Category:    CategoryFood,
		Date:        time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		Description: "groceries",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	long := strings.Repeat("x", 201)
	bads := []Expense{
		{UserID: 1, Amount: decimal.Zero, Category: CategoryFood, Date: good.Date, Description: "a"},
		{UserID: 1, Amount: decimal.NewFromInt(-1), Category: CategoryFood, Date: good.Date, Description: "a"},
		{UserID: 1, Amount: decimal.NewFromInt(1), Category: "snacks", Date: good.Date, Description: "a"},
		{UserID: 1, Amount: decimal.NewFromInt(1), Category: CategoryFood, Date: time.Time{}, Description: "a"},
		{UserID: 1, Amount: decimal.NewFromInt(1), Category: CategoryFood, Date: good.Date, Description: " "},
		{UserID: 1, Amount: decimal.NewFromInt(1), Category: CategoryFood, Date: good.Date, Description: long},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{UserID: 1, Amount: decimal.NewFromInt(2000), Month: 6, Year: 2026}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Budget{
		{UserID: 1, Amount: decimal.Zero, Month: 6, Year: 2026},
		{UserID: 1, Amount: decimal.NewFromInt(100), Month: 0, Year: 2026},
		{UserID: 1, Amount: decimal.NewFromInt(100), Month: 13, Year: 2026},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
