package domain

// CurrencyRevenue is paid revenue aggregated per currency.
type CurrencyRevenue struct {
	Currency     string  `db:"currency" json:"currency"`
	TotalRevenue float64 `db:"total_revenue" json:"total_revenue"`
	Count        int     `db:"count" json:"count"`
}

// MonthlyRevenue is paid revenue aggregated per calendar month.
type MonthlyRevenue struct {
	Year    int     `db:"year" json:"year"`
	Month   int     `db:"month" json:"month"`
	Revenue float64 `db:"revenue" json:"revenue"`
	Count   int     `db:"count" json:"count"`
}
