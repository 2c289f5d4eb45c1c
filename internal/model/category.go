package model

// Category is one label from the fixed spending taxonomy.
type Category string

// The closed category taxonomy. Classification must never produce a label
// outside this list; anything unrecognized is coerced to CategoryOthers.
const (
	CategoryFoodDining     Category = "Food & Dining"
	CategoryGroceries      Category = "Groceries"
	CategoryBeverages      Category = "Beverages"
	CategoryTransport      Category = "Transport"
	CategoryFuel           Category = "Fuel"
	CategoryShopping       Category = "Shopping"
	CategoryOnlineShopping Category = "Online Shopping"
	CategoryBills          Category = "Bills & Utilities"
	CategoryMobileRecharge Category = "Mobile Recharge"
	CategoryInternet       Category = "Internet"
	CategoryMedical        Category = "Medical"
	CategoryPharmacy       Category = "Pharmacy"
	CategoryRent           Category = "Rent"
	CategoryEducation      Category = "Education"
	CategoryInvestments    Category = "Investments"
	CategoryInsurance      Category = "Insurance"
	CategoryPeerTransfer   Category = "Peer Transfer"
	CategorySelfTransfer   Category = "Self Transfer"
	CategoryEntertainment  Category = "Entertainment"
	CategoryTravel         Category = "Travel"
	CategoryCashWithdrawal Category = "Cash Withdrawal"
	CategoryOthers         Category = "Others"
)

// Categories lists the full taxonomy in its canonical order.
func Categories() []Category {
	return []Category{
		CategoryFoodDining,
		CategoryGroceries,
		CategoryBeverages,
		CategoryTransport,
		CategoryFuel,
		CategoryShopping,
		CategoryOnlineShopping,
		CategoryBills,
		CategoryMobileRecharge,
		CategoryInternet,
		CategoryMedical,
		CategoryPharmacy,
		CategoryRent,
		CategoryEducation,
		CategoryInvestments,
		CategoryInsurance,
		CategoryPeerTransfer,
		CategorySelfTransfer,
		CategoryEntertainment,
		CategoryTravel,
		CategoryCashWithdrawal,
		CategoryOthers,
	}
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{})
	for _, c := range Categories() {
		set[c] = struct{}{}
	}
	return set
}()

// Valid reports whether the category is part of the taxonomy.
func (c Category) Valid() bool {
	_, ok := categorySet[c]
	return ok
}

// Normalize coerces an off-taxonomy label to CategoryOthers.
func (c Category) Normalize() Category {
	if c.Valid() {
		return c
	}
	return CategoryOthers
}

// IsTransfer reports whether the category represents internal money
// movement rather than real spending.
func (c Category) IsTransfer() bool {
	return c == CategoryPeerTransfer || c == CategorySelfTransfer
}
