// Package analytics derives the admin dashboard reports from rows already
// fetched from the repositories. Nothing here performs I/O.
package analytics

import (
	"sort"
	"time"

	"pettag/internal/domain"
)

const (
	DefaultScanWindowDays  = 30
	DefaultExpiryDaysAhead = 30

	topCitiesLimit   = 10
	recentScansLimit = 20

	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DashboardSummary combines the pre-counted totals with the revenue of the
// given rows. Only rows whose status is exactly active contribute revenue.
func DashboardSummary(counts domain.DashboardCounts, revenueRows []domain.Subscription) domain.DashboardSummary {
	var revenue float64
	for i := range revenueRows {
		if revenueRows[i].Status == domain.SubscriptionStatusActive {
			revenue += revenueRows[i].Amount
		}
	}
	return domain.DashboardSummary{
		TotalUsers:          counts.ActiveUsers,
		TotalPets:           counts.ActivePets,
		ActiveSubscriptions: counts.ActiveSubscriptions,
		TotalScans:          counts.TotalScans,
		TotalRevenue:        revenue,
		Currency:            domain.CurrencyINR,
	}
}

// ScanAnalytics summarises scans that already fall inside the window.
// The rows must arrive newest first; RecentScans keeps that order.
func ScanAnalytics(scans []domain.ScanWithPet, windowDays int) domain.ScanAnalytics {
	result := domain.ScanAnalytics{
		WindowDays:  windowDays,
		TotalScans:  len(scans),
		ScansByDate: make(map[string]int),
		TopCities:   []domain.CityCount{},
	}

	var cities []domain.CityCount
	cityIndex := make(map[string]int)

	for i := range scans {
		scan := &scans[i]
		result.ScansByDate[scan.ScannedAt.UTC().Format(dayLayout)]++

		if scan.WhatsAppShared {
			result.WhatsAppShares++
		}

		if scan.ScannerCity == nil || *scan.ScannerCity == "" {
			continue
		}
		city := *scan.ScannerCity
		if idx, ok := cityIndex[city]; ok {
			cities[idx].Count++
			continue
		}
		cityIndex[city] = len(cities)
		cities = append(cities, domain.CityCount{City: city, Count: 1})
	}

	// Stable sort keeps first-seen order between equal counts.
	sort.SliceStable(cities, func(a, b int) bool {
		return cities[a].Count > cities[b].Count
	})
	if len(cities) > topCitiesLimit {
		cities = cities[:topCitiesLimit]
	}
	if cities != nil {
		result.TopCities = cities
	}

	recent := scans
	if len(recent) > recentScansLimit {
		recent = recent[:recentScansLimit]
	}
	result.RecentScans = append([]domain.ScanWithPet{}, recent...)

	return result
}

// RevenueAnalytics buckets every subscription's amount into the UTC month it
// was created in, and totals the active ones separately.
func RevenueAnalytics(subs []domain.Subscription) domain.RevenueAnalytics {
	byMonth := make(map[string]float64)
	var total float64
	var active int

	for i := range subs {
		sub := &subs[i]
		byMonth[sub.CreatedAt.UTC().Format(monthLayout)] += sub.Amount

		if sub.Status == domain.SubscriptionStatusActive {
			total += sub.Amount
			active++
		}
	}

	months := make([]domain.MonthRevenue, 0, len(byMonth))
	for month, revenue := range byMonth {
		months = append(months, domain.MonthRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(months, func(a, b int) bool {
		return months[a].Month < months[b].Month
	})

	var average float64
	if active > 0 {
		average = total / float64(active)
	}

	return domain.RevenueAnalytics{
		TotalRevenue:        total,
		ActiveSubscriptions: active,
		AverageRevenue:      average,
		RevenueByMonth:      months,
		Currency:            domain.CurrencyINR,
	}
}

// ExpiringSubscriptions keeps the active subscriptions whose end date is on
// or before now+daysAhead, comparing calendar dates only, ordered by end date.
// A negative horizon selects nothing.
func ExpiringSubscriptions(subs []domain.SubscriptionWithUser, now time.Time, daysAhead int) []domain.SubscriptionWithUser {
	out := []domain.SubscriptionWithUser{}
	if daysAhead < 0 {
		return out
	}

	cutoff := ExpiryCutoff(now, daysAhead)
	for i := range subs {
		if subs[i].Status != domain.SubscriptionStatusActive {
			continue
		}
		if dateOf(subs[i].EndDate).After(cutoff) {
			continue
		}
		out = append(out, subs[i])
	}

	sort.SliceStable(out, func(a, b int) bool {
		return dateOf(out[a].EndDate).Before(dateOf(out[b].EndDate))
	})
	return out
}

// ScanWindowStart returns the instant windowDays before now.
func ScanWindowStart(now time.Time, windowDays int) time.Time {
	return now.UTC().AddDate(0, 0, -windowDays)
}

// ExpiryCutoff returns the last calendar date, at UTC midnight, that counts
// as expiring within daysAhead of now.
func ExpiryCutoff(now time.Time, daysAhead int) time.Time {
	return dateOf(now).AddDate(0, 0, daysAhead)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
