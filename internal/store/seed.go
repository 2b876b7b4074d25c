package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/model"
)

// SeedState returns the sample ledger used for new installs and resets.
func SeedState() State {
	return State{
		Expenses:   SeedExpenses(),
		Categories: SeedCategories(),
		Budgets:    SeedBudgets(),
		Settings:   model.DefaultSettings(),
	}
}

// SeedCategories returns the default categories.
func SeedCategories() []model.Category {
	return []model.Category{
		{ID: "cat1", Name: "Food & Dining", Color: "#FF6B6B", Icon: model.IconUtensils, Budget: amount("500")},
		{ID: "cat2", Name: "Shopping", Color: "#4CAF50", Icon: model.IconShoppingCart, Budget: amount("300")},
		{ID: "cat3", Name: "Housing", Color: "#2196F3", Icon: model.IconHome, Budget: amount("1200")},
		{ID: "cat4", Name: "Transportation", Color: "#FF9800", Icon: model.IconCar, Budget: amount("400")},
		{ID: "cat5", Name: "Entertainment", Color: "#9C27B0", Icon: model.IconCreditCard, Budget: amount("200")},
		{ID: "cat6", Name: "Travel", Color: "#00BCD4", Icon: model.IconPlane, Budget: amount("500")},
		{ID: "cat7", Name: "Education", Color: "#607D8B", Icon: model.IconGraduationCap, Budget: amount("300")},
		{ID: "cat8", Name: "Coffee", Color: "#795548", Icon: model.IconCoffee, Budget: amount("100")},
		{ID: "cat9", Name: "Gifts", Color: "#E91E63", Icon: model.IconGift, Budget: amount("150")},
		{ID: "cat10", Name: "Utilities", Color: "#3F51B5", Icon: model.IconZap, Budget: amount("250")},
	}
}

// SeedExpenses returns the sample expenses for May 2023.
func SeedExpenses() []model.Expense {
	may := func(day int) model.Date { return model.NewDate(2023, time.May, day) }
	return []model.Expense{
		{ID: "exp1", Amount: amount("45.99"), Description: "Grocery shopping", CategoryID: "cat1", Date: may(1)},
		{ID: "exp2", Amount: amount("120.50"), Description: "New shoes", CategoryID: "cat2", Date: may(3)},
		{ID: "exp3", Amount: amount("1200"), Description: "Rent payment", CategoryID: "cat3", Date: may(1), Recurring: true},
		{ID: "exp4", Amount: amount("35.40"), Description: "Gas", CategoryID: "cat4", Date: may(4)},
		{ID: "exp5", Amount: amount("86.23"), Description: "Restaurant dinner", CategoryID: "cat1", Date: may(6)},
		{ID: "exp6", Amount: amount("15.99"), Description: "Movie tickets", CategoryID: "cat5", Date: may(7)},
		{ID: "exp7", Amount: amount("550"), Description: "Flight tickets", CategoryID: "cat6", Date: may(10)},
		{ID: "exp8", Amount: amount("42.30"), Description: "Coffee shop", CategoryID: "cat8", Date: may(12)},
		{ID: "exp9", Amount: amount("125.45"), Description: "Textbooks", CategoryID: "cat7", Date: may(15)},
		{ID: "exp10", Amount: amount("75"), Description: "Birthday gift", CategoryID: "cat9", Date: may(18)},
		{ID: "exp11", Amount: amount("32.99"), Description: "Lunch", CategoryID: "cat1", Date: may(20)},
		{ID: "exp12", Amount: amount("230"), Description: "Electricity bill", CategoryID: "cat10", Date: may(22), Recurring: true},
		{ID: "exp13", Amount: amount("22.50"), Description: "Taxi fare", CategoryID: "cat4", Date: may(25)},
		{ID: "exp14", Amount: amount("65.75"), Description: "Online shopping", CategoryID: "cat2", Date: may(27)},
		{ID: "exp15", Amount: amount("18.99"), Description: "Coffee and cake", CategoryID: "cat8", Date: may(29)},
	}
}

// SeedBudgets returns the sample budgets. budget1 is the main monthly budget.
func SeedBudgets() []model.Budget {
	return []model.Budget{
		{ID: "budget1", Name: "Monthly Spending", Amount: amount("3000"), Current: amount("2754.09"), Period: model.PeriodMonthly},
		{ID: "budget2", Name: "Food", Amount: amount("500"), Current: amount("165.21"), Period: model.PeriodMonthly, CategoryID: "cat1"},
		{ID: "budget3", Name: "Shopping", Amount: amount("300"), Current: amount("186.25"), Period: model.PeriodMonthly, CategoryID: "cat2"},
		{ID: "budget4", Name: "Transportation", Amount: amount("400"), Current: amount("57.90"), Period: model.PeriodMonthly, CategoryID: "cat4"},
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
