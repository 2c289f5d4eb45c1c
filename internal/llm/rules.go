package llm

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Veraticus/tally/internal/model"
)

// rule maps a description regex onto one taxonomy category. Higher priority
// rules are checked first so narrow merchant matches win over broad keywords.
type rule struct {
	Name     string
	Regex    string
	Category model.Category
	Priority int
}

type compiledRule struct {
	re *regexp.Regexp
	rule
}

// ruleMatcher classifies well-known merchant descriptions without an LLM
// round trip. It only answers when a rule matches; everything else defers
// to the model.
type ruleMatcher struct {
	rules []compiledRule
}

func newRuleMatcher(rules []rule) (*ruleMatcher, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Regex)
		if err != nil {
			return nil, fmt.Errorf("failed to compile rule %s: %w", r.Name, err)
		}
		compiled = append(compiled, compiledRule{re: re, rule: r})
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return compiled[i].Priority > compiled[j].Priority
	})

	return &ruleMatcher{rules: compiled}, nil
}

// match returns the category for the first matching rule, or false when no
// rule applies.
func (m *ruleMatcher) match(description string) (model.Category, bool) {
	for _, r := range m.rules {
		if r.re.MatchString(description) {
			return r.Category, true
		}
	}
	return "", false
}

// defaultRules covers merchants and payment rails common enough that asking
// the model would waste tokens on an answer we already know.
func defaultRules() []rule {
	return []rule{
		// Food delivery and dining.
		{Name: "Food Delivery", Regex: `\b(SWIGGY|ZOMATO|EATSURE|DOMINOS|MCDONALDS|KFC)\b`, Category: model.CategoryFoodDining, Priority: 90},
		{Name: "Restaurants", Regex: `\b(RESTAURANT|CAFE|DHABA|EATERY)\b`, Category: model.CategoryFoodDining, Priority: 70},

		// Groceries and daily essentials.
		{Name: "Grocery Chains", Regex: `\b(BIGBASKET|BLINKIT|ZEPTO|DMART|GROFERS|INSTAMART|RELIANCE\s*FRESH)\b`, Category: model.CategoryGroceries, Priority: 90},
		{Name: "Grocery Keywords", Regex: `\b(GROCERY|SUPERMARKET|KIRANA)\b`, Category: model.CategoryGroceries, Priority: 70},

		// Transport and fuel.
		{Name: "Ride Hailing", Regex: `\b(UBER|OLA\s*CABS?|RAPIDO)\b`, Category: model.CategoryTransport, Priority: 90},
		{Name: "Rail And Metro", Regex: `\b(IRCTC|METRO\s*CARD|RAILWAY)\b`, Category: model.CategoryTransport, Priority: 85},
		{Name: "Fuel Stations", Regex: `\b(PETROL|DIESEL|FUEL|HPCL|BPCL|INDIAN\s*OIL|IOCL|SHELL)\b`, Category: model.CategoryFuel, Priority: 90},

		// Shopping.
		{Name: "Online Marketplaces", Regex: `\b(AMAZON|FLIPKART|MYNTRA|AJIO|MEESHO|NYKAA)\b`, Category: model.CategoryOnlineShopping, Priority: 90},

		// Utilities and connectivity.
		{Name: "Utility Bills", Regex: `\b(ELECTRICITY|WATER\s*BILL|GAS\s*BILL|BESCOM|MSEB|TNEB)\b`, Category: model.CategoryBills, Priority: 85},
		{Name: "Mobile Recharge", Regex: `\b(RECHARGE|AIRTEL\s*PREPAID|JIO\s*PREPAID|VI\s*PREPAID)\b`, Category: model.CategoryMobileRecharge, Priority: 85},
		{Name: "Broadband", Regex: `\b(BROADBAND|FIBER|JIOFIBER|ACT\s*FIBERNET|HATHWAY)\b`, Category: model.CategoryInternet, Priority: 85},

		// Health.
		{Name: "Hospitals", Regex: `\b(HOSPITAL|CLINIC|DIAGNOSTIC|APOLLO|FORTIS)\b`, Category: model.CategoryMedical, Priority: 85},
		{Name: "Pharmacies", Regex: `\b(PHARMACY|PHARMEASY|NETMEDS|MEDPLUS|CHEMIST|1MG)\b`, Category: model.CategoryPharmacy, Priority: 90},

		// Housing and education.
		{Name: "Rent", Regex: `\b(RENT|NOBROKER\s*PAY|LANDLORD)\b`, Category: model.CategoryRent, Priority: 80},
		{Name: "Education", Regex: `\b(TUITION|SCHOOL\s*FEE|COLLEGE\s*FEE|UDEMY|COURSERA|BYJU)\b`, Category: model.CategoryEducation, Priority: 80},

		// Money movement and savings.
		{Name: "Investments", Regex: `\b(ZERODHA|GROWW|UPSTOX|MUTUAL\s*FUND|SIP|NPS|PPF)\b`, Category: model.CategoryInvestments, Priority: 90},
		{Name: "Insurance", Regex: `\b(INSURANCE|LIC\s*PREMIUM|POLICY\s*BAZAAR|PREMIUM\s*PAID)\b`, Category: model.CategoryInsurance, Priority: 85},
		{Name: "Self Transfer", Regex: `\b(SELF\s*TRANSFER|OWN\s*ACCOUNT|SELF)\b`, Category: model.CategorySelfTransfer, Priority: 75},
		{Name: "Cash Withdrawal", Regex: `\b(ATM\s*WDL|ATM\s*WITHDRAWAL|CASH\s*WDL|NWD)\b`, Category: model.CategoryCashWithdrawal, Priority: 90},

		// Leisure.
		{Name: "Streaming And Movies", Regex: `\b(NETFLIX|HOTSTAR|SPOTIFY|PRIME\s*VIDEO|BOOKMYSHOW|PVR|INOX)\b`, Category: model.CategoryEntertainment, Priority: 90},
		{Name: "Travel Booking", Regex: `\b(MAKEMYTRIP|GOIBIBO|CLEARTRIP|INDIGO|AIR\s*INDIA|VISTARA|OYO|AIRBNB)\b`, Category: model.CategoryTravel, Priority: 90},
	}
}
