package domain

// DashboardCounts are the pre-counted inputs of the dashboard summary.
type DashboardCounts struct {
	ActiveUsers         int
	ActivePets          int
	ActiveSubscriptions int
	TotalScans          int
}

// DashboardSummary is the headline view of the admin dashboard.
type DashboardSummary struct {
	TotalUsers          int     `json:"totalUsers"`
	TotalPets           int     `json:"totalPets"`
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	TotalScans          int     `json:"totalScans"`
	TotalRevenue        float64 `json:"totalRevenue"`
	Currency            string  `json:"currency"`
}

// CityCount is one row of the top scanning cities.
type CityCount struct {
	City  string `json:"city"`
	Count int    `json:"count"`
}

// ScanAnalytics summarises the scans inside a trailing window.
type ScanAnalytics struct {
	WindowDays     int            `json:"windowDays"`
	TotalScans     int            `json:"totalScans"`
	WhatsAppShares int            `json:"whatsappShares"`
	ScansByDate    map[string]int `json:"scansByDate"`
	TopCities      []CityCount    `json:"topCities"`
	RecentScans    []ScanWithPet  `json:"recentScans"`
}

// MonthRevenue is the revenue booked in one calendar month (YYYY-MM).
type MonthRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// RevenueAnalytics summarises subscription revenue.
// RevenueByMonth covers every subscription regardless of status, while the
// totals only count active ones.
type RevenueAnalytics struct {
	TotalRevenue        float64        `json:"totalRevenue"`
	ActiveSubscriptions int            `json:"activeSubscriptions"`
	AverageRevenue      float64        `json:"averageRevenue"`
	RevenueByMonth      []MonthRevenue `json:"revenueByMonth"`
	Currency            string         `json:"currency"`
}

// ReminderResult reports the outcome of a renewal reminder run.
type ReminderResult struct {
	Considered int     `json:"considered"`
	Sent       int     `json:"sent"`
	Skipped    int     `json:"skipped"`
	Failed     int     `json:"failed"`
	FailedIDs  []int64 `json:"failed_subscription_ids,omitempty"`
}

// ExportResult locates an exported report in object storage.
type ExportResult struct {
	Key          string `json:"key"`
	Location     string `json:"location"`
	DownloadURL  string `json:"download_url"`
	ContentType  string `json:"content_type"`
	RowsExported int    `json:"rows_exported"`
}
