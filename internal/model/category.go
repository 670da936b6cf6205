package model

// Category groups transactions for budgeting. The value doubles as the
// persistence key.
type Category string

// IsUncategorized reports whether the category is missing: either empty or
// the explicit uncategorized marker.
func (c Category) IsUncategorized() bool {
	return c == "" || c == CategoryUncategorized
}

// Categories an account's transactions can be filed under.
const (
	CategoryUncategorized Category = "uncategorized"

	// Income
	CategorySalary    Category = "salary"
	CategoryTaxCredit Category = "tax_credit"
	CategoryBenefits  Category = "benefits"

	// Housing
	CategoryRent          Category = "rent"
	CategoryHouseLoan     Category = "house_loan"
	CategoryLoanInsurance Category = "loan_insurance"
	CategoryHouseWorks    Category = "house_works"
	CategoryFurniture     Category = "furniture"

	// Investments
	CategorySavings Category = "savings"

	// Insurance
	CategoryCarInsurance   Category = "car_insurance"
	CategoryHouseInsurance Category = "house_insurance"
	CategoryOtherInsurance Category = "other_insurance"

	// Utilities
	CategoryElectricity Category = "electricity"
	CategoryWater       Category = "water"
	CategoryInternet    Category = "internet"
	CategoryPhone       Category = "phone"

	// Daily life
	CategoryGroceries       Category = "groceries"
	CategoryClothing        Category = "clothing"
	CategoryHealthCare      Category = "health_care"
	CategoryPublicTransport Category = "public_transport"
	CategoryCarFuel         Category = "car_fuel"
	CategoryCarMaintenance  Category = "car_maintenance"
	CategoryGifts           Category = "gifts"

	// Leisure
	CategoryEntertainment Category = "entertainment"
	CategoryLeisure       Category = "leisure"
	CategoryHolidays      Category = "holidays"

	// Other
	CategoryOther    Category = "other"
	CategoryCharity  Category = "charity"
	CategoryBankFees Category = "bank_fees"
	CategoryTaxes    Category = "taxes"
)
