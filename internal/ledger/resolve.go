package ledger

import "github.com/dompet-app/dompet-backend/internal/domain"

// Display is the presentation metadata for an account or category
type Display struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Fallback display values used when a reference does not resolve
const (
	FallbackCategoryIcon = "pricetag-outline"
	FallbackAccountIcon  = "wallet-outline"
	IncomeColor          = "#27ae60"
	ExpenseColor         = "#e74c3c"
	NeutralColor         = "#7f8c8d"
)

var accountDisplays = map[domain.AccountType]Display{
	domain.AccountTypeCash: {Icon: "cash-outline", Color: "#27ae60"},
	domain.AccountTypeBank: {Icon: "card-outline", Color: "#3498db"},
}

// ResolveCategory finds the category a transaction reference points at. The
// category type must match. An id match wins; otherwise the first category
// with the same name and type is used.
func ResolveCategory(ref domain.EntityRef, typ domain.TransactionType, categories []domain.Category) (domain.Category, bool) {
	if ref.HasID() {
		for _, c := range categories {
			if c.ID == *ref.ID && c.Type == typ {
				return c, true
			}
		}
	}
	for _, c := range categories {
		if c.Name == ref.Name && c.Type == typ {
			return c, true
		}
	}
	return domain.Category{}, false
}

// CategoryFallback returns the display used for unresolved categories of typ
func CategoryFallback(typ domain.TransactionType) Display {
	switch typ {
	case domain.TransactionTypeIncome:
		return Display{Icon: FallbackCategoryIcon, Color: IncomeColor}
	case domain.TransactionTypeExpense:
		return Display{Icon: FallbackCategoryIcon, Color: ExpenseColor}
	default:
		return Display{Icon: FallbackCategoryIcon, Color: NeutralColor}
	}
}

// ResolveCategoryDisplay returns the icon and color for a transaction's
// category, or the type's fallback when the reference is stale
func ResolveCategoryDisplay(ref domain.EntityRef, typ domain.TransactionType, categories []domain.Category) Display {
	fallback := CategoryFallback(typ)
	c, ok := ResolveCategory(ref, typ, categories)
	if !ok {
		return fallback
	}
	display := Display{Icon: c.Icon, Color: c.Color}
	if display.Icon == "" {
		display.Icon = fallback.Icon
	}
	if display.Color == "" {
		display.Color = fallback.Color
	}
	return display
}

// ResolveAccount finds the account a transaction reference points at. An id
// match wins; otherwise the first account with the same name is used.
func ResolveAccount(ref domain.EntityRef, accounts []domain.Account) (domain.Account, bool) {
	if ref.HasID() {
		for _, a := range accounts {
			if a.ID == *ref.ID {
				return a, true
			}
		}
	}
	for _, a := range accounts {
		if a.Name == ref.Name {
			return a, true
		}
	}
	return domain.Account{}, false
}

// AccountTypeDisplay returns the display for an account type
func AccountTypeDisplay(typ domain.AccountType) Display {
	if d, ok := accountDisplays[typ]; ok {
		return d
	}
	return Display{Icon: FallbackAccountIcon, Color: NeutralColor}
}

// ResolveAccountDisplay returns the icon and color for a transaction's
// account, or the generic wallet display when the reference is stale
func ResolveAccountDisplay(ref domain.EntityRef, accounts []domain.Account) Display {
	a, ok := ResolveAccount(ref, accounts)
	if !ok {
		return Display{Icon: FallbackAccountIcon, Color: NeutralColor}
	}
	return AccountTypeDisplay(a.Type)
}
