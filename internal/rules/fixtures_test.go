package rules_test

import "courtbook/internal/rules"

const testDate = "2026-10-17"

func testSnapshot() rules.Snapshot {
	return rules.Snapshot{
		Courts: []rules.Court{
			{ID: "c1", Name: "Court A", Sport: "badminton", BaseRate: 100, MaxPlayers: 4, Active: true},
			{ID: "c2", Name: "Court B", Sport: "futsal", BaseRate: 250, Active: true},
		},
		Bookings: []rules.Booking{},
		Settings: rules.DefaultSettings(),
	}
}

func booking(id, courtID, start, end string, players int) rules.Booking {
	return rules.Booking{
		ID:         id,
		CourtID:    courtID,
		Date:       testDate,
		Start:      start,
		End:        end,
		Player:     "Player " + id,
		Membership: rules.MembershipNone,
		Players:    players,
		Status:     rules.StatusConfirmed,
	}
}
