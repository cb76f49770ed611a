package rules

const (
	MembershipNone = "none"
	CourtScopeAll  = "all"

	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"

	PromoTypePercent = "percent"
	PromoTypeFixed   = "fixed"

	DefaultSlotDuration = 60
	MinSlotDuration     = 15
	DefaultMaxPlayers   = 99
)

type Court struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Sport      string  `json:"sport"`
	BaseRate   float64 `json:"base_rate"`
	MaxPlayers int     `json:"max_players"`
	TeamSize   int     `json:"team_size"`
	Active     bool    `json:"active"`
}

type Booking struct {
	ID         string `json:"id"`
	CourtID    string `json:"court_id"`
	Date       string `json:"date"`
	Start      string `json:"start"`
	End        string `json:"end"`
	Player     string `json:"player"`
	UserEmail  string `json:"user_email"`
	Membership string `json:"membership"`
	Players    int    `json:"players"`
	Cost       int    `json:"cost"`
	Status     string `json:"status"`
	IsEvent    bool   `json:"is_event"`
}

func (b Booking) active() bool {
	return b.Status != StatusCancelled
}

// headcount treats a missing player count as a single player.
func (b Booking) headcount() int {
	if b.Players <= 0 {
		return 1
	}

	return b.Players
}

type BlockedPeriod struct {
	Label   string `json:"label"`
	CourtID string `json:"court_id"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type TimeSlotConfig struct {
	Open         string          `json:"open"`
	Close        string          `json:"close"`
	SlotDuration int             `json:"slot_duration"`
	Blocked      []BlockedPeriod `json:"blocked"`
}

type PeakRule struct {
	Label      string  `json:"label"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Multiplier float64 `json:"multiplier"`
}

type MembershipTier struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Discount float64 `json:"discount"`
	Priority int     `json:"priority"`
}

type VerifiedMember struct {
	Email        string `json:"email"`
	MembershipID string `json:"membership_id"`
}

type Equipment struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
	Unit  string `json:"unit"`
}

type Bundle struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Items    []string `json:"items"`
	Discount float64  `json:"discount"`
	Price    int      `json:"price"`
}

type PromoCode struct {
	Code     string  `json:"code"`
	Type     string  `json:"type"`
	Value    float64 `json:"value"`
	UsesLeft int     `json:"uses_left"`
	Active   bool    `json:"active"`
}

// Redeemable reports whether the code can still be applied to a booking.
func (p PromoCode) Redeemable() bool {
	return p.Active && p.UsesLeft > 0
}

type Features struct {
	DynamicPricing  bool `json:"dynamic_pricing"`
	Memberships     bool `json:"memberships"`
	Equipment       bool `json:"equipment"`
	Bundles         bool `json:"bundles"`
	Waitlist        bool `json:"waitlist"`
	ConcurrencyLock bool `json:"concurrency_lock"`
	PromoCodes      bool `json:"promo_codes"`
	SlotCapacity    bool `json:"slot_capacity"`
	Notifications   bool `json:"notifications"`
	Events          bool `json:"events"`
}

type Settings struct {
	Features        Features         `json:"features"`
	TimeSlots       TimeSlotConfig   `json:"time_slots"`
	PeakRules       []PeakRule       `json:"peak_rules"`
	Memberships     []MembershipTier `json:"memberships"`
	VerifiedMembers []VerifiedMember `json:"verified_members"`
	Equipment       []Equipment      `json:"equipment"`
	Bundles         []Bundle         `json:"bundles"`
	PromoCodes      []PromoCode      `json:"promo_codes"`
}

func AllFeatures() Features {
	return Features{
		DynamicPricing:  true,
		Memberships:     true,
		Equipment:       true,
		Bundles:         true,
		Waitlist:        true,
		ConcurrencyLock: true,
		PromoCodes:      true,
		SlotCapacity:    true,
		Notifications:   true,
		Events:          true,
	}
}

func NoneTier() MembershipTier {
	return MembershipTier{ID: MembershipNone, Name: "No Membership"}
}

// DefaultSettings is the rule set a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		Features: AllFeatures(),
		TimeSlots: TimeSlotConfig{
			Open:         "06:00",
			Close:        "22:00",
			SlotDuration: DefaultSlotDuration,
			Blocked:      []BlockedPeriod{},
		},
		PeakRules: []PeakRule{
			{Label: "Morning Peak", Start: "07:00", End: "09:00", Multiplier: 1.3},
			{Label: "Evening Peak", Start: "17:00", End: "21:00", Multiplier: 1.5},
		},
		Memberships: []MembershipTier{
			NoneTier(),
			{ID: "Basic", Name: "Basic", Discount: 0.05, Priority: 1},
			{ID: "Premium", Name: "Premium", Discount: 0.15, Priority: 2},
			{ID: "Academy", Name: "Academy", Discount: 0.25, Priority: 3},
		},
		VerifiedMembers: []VerifiedMember{},
		Equipment: []Equipment{
			{ID: "racket", Name: "Racket", Price: 50, Stock: 10, Unit: "per session"},
			{ID: "shuttle", Name: "Shuttlecock", Price: 30, Stock: 20, Unit: "per session"},
			{ID: "ball", Name: "Sports Ball", Price: 40, Stock: 8, Unit: "per session"},
			{ID: "shoes", Name: "Court Shoes", Price: 80, Stock: 6, Unit: "per session"},
			{ID: "knee_pad", Name: "Knee Pads", Price: 60, Stock: 5, Unit: "per session"},
		},
		Bundles: []Bundle{
			{ID: "b1", Name: "Starter Pack", Items: []string{"racket", "shuttle"}, Discount: 10, Price: 70},
			{ID: "b2", Name: "Pro Kit", Items: []string{"racket", "ball", "shoes"}, Discount: 20, Price: 150},
		},
		PromoCodes: []PromoCode{
			{Code: "WELCOME10", Type: PromoTypePercent, Value: 10, UsesLeft: 100, Active: true},
			{Code: "FLAT50", Type: PromoTypeFixed, Value: 50, UsesLeft: 50, Active: true},
		},
	}
}
