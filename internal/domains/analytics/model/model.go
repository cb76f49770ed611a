package model

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"courtbook/internal/rules"
)

const HoursPerDay = 24

type CourtRevenue struct {
	CourtID string `json:"court_id"`
	Name    string `json:"name"`
	Revenue int    `json:"revenue"`
	Count   int    `json:"count"`
}

type Report struct {
	TotalRevenue   int              `json:"total_revenue"`
	Count          int              `json:"count"`
	AverageBooking int              `json:"average_booking"`
	Courts         []CourtRevenue   `json:"courts"`
	Hours          [HoursPerDay]int `json:"hours"`
	// PeakHour is -1 when there are no bookings.
	PeakHour    int            `json:"peak_hour"`
	Memberships map[string]int `json:"memberships"`
}

// Summarize aggregates revenue and demand over paid, non-cancelled bookings.
// Every court is listed, including ones without bookings.
func Summarize(bookings []rules.Booking, courts []rules.Court) Report {
	report := Report{
		Courts:      make([]CourtRevenue, len(courts)),
		PeakHour:    -1,
		Memberships: map[string]int{},
	}

	index := make(map[string]int, len(courts))
	for i, court := range courts {
		report.Courts[i] = CourtRevenue{CourtID: court.ID, Name: court.Name}
		index[court.ID] = i
	}

	for _, b := range bookings {
		if b.IsEvent || b.Status == rules.StatusCancelled {
			continue
		}

		report.TotalRevenue += b.Cost
		report.Count++

		if i, ok := index[b.CourtID]; ok {
			report.Courts[i].Revenue += b.Cost
			report.Courts[i].Count++
		}

		if hour, ok := startHour(b.Start); ok {
			report.Hours[hour]++
		}

		membership := b.Membership
		if membership == "" {
			membership = rules.MembershipNone
		}

		report.Memberships[membership]++
	}

	if report.Count > 0 {
		report.AverageBooking = int(math.Round(float64(report.TotalRevenue) / float64(report.Count)))
	}

	sort.SliceStable(report.Courts, func(i, j int) bool { return report.Courts[i].Revenue > report.Courts[j].Revenue })

	peak := 0
	for hour, count := range report.Hours {
		if count > peak {
			peak = count
			report.PeakHour = hour
		}
	}

	return report
}

func startHour(clock string) (int, bool) {
	head, _, _ := strings.Cut(clock, ":")

	hour, err := strconv.Atoi(head)
	if err != nil || hour < 0 || hour >= HoursPerDay {
		return 0, false
	}

	return hour, true
}
