package pricing

// Tier is one of the three fixed packages offered per service line.
type Tier struct {
	Monthly      float64 `json:"monthly"`
	Setup        float64 `json:"setup"`
	InternalCost float64 `json:"internal_cost"`
	Description  string  `json:"description"`
}

type Service struct {
	Name  string       `json:"name"`
	Tiers map[int]Tier `json:"tiers"`
}

// AddOnPrices holds the flat/per-unit prices for optional extras.
type AddOnPrices struct {
	LandingPageUnit  float64 `json:"landing_page_unit"`
	FunnelUnit       float64 `json:"funnel_unit"`
	DashboardSetup   float64 `json:"dashboard_setup"`
	DashboardMonthly float64 `json:"dashboard_monthly"`
	WorkshopHalfDay  float64 `json:"workshop_half_day"`
	WorkshopFullDay  float64 `json:"workshop_full_day"`
	VideoPackUnit    float64 `json:"video_pack_unit"`
}

// Catalog is the static price table. It is built once at package init and
// never mutated afterwards; callers treat it as read-only.
type Catalog struct {
	Services map[string]Service `json:"services"`
	AddOns   AddOnPrices        `json:"add_ons"`
}

// Service keys.
const (
	ServiceTraffic   = "traffic"
	ServiceRetention = "retention"
	ServiceCreative  = "creative"
)

// Default is the agency's standard rate card.
var Default = &Catalog{
	Services: map[string]Service{
		ServiceTraffic: {
			Name: "Paid Traffic",
			Tiers: map[int]Tier{
				1: {Monthly: 7500, Setup: 3750, InternalCost: 3000, Description: "Up to 2 channels, weekly optimization"},
				2: {Monthly: 12500, Setup: 6250, InternalCost: 5000, Description: "Up to 4 channels, daily optimization, creative testing"},
				3: {Monthly: 20000, Setup: 10000, InternalCost: 8000, Description: "Full-funnel media buying with dedicated strategist"},
			},
		},
		ServiceRetention: {
			Name: "Retention & Lifecycle",
			Tiers: map[int]Tier{
				1: {Monthly: 3500, Setup: 1750, InternalCost: 1200, Description: "Email flows and monthly campaigns"},
				2: {Monthly: 6500, Setup: 3250, InternalCost: 2300, Description: "Email + SMS, segmentation, A/B program"},
				3: {Monthly: 10000, Setup: 5000, InternalCost: 3600, Description: "Full lifecycle program with loyalty strategy"},
			},
		},
		ServiceCreative: {
			Name: "Creative Studio",
			Tiers: map[int]Tier{
				1: {Monthly: 5000, Setup: 2500, InternalCost: 1900, Description: "Static ad creative, 8 assets per month"},
				2: {Monthly: 8500, Setup: 4250, InternalCost: 3200, Description: "Static + motion, 20 assets per month"},
				3: {Monthly: 14000, Setup: 7000, InternalCost: 5300, Description: "Dedicated creative pod with video production"},
			},
		},
	},
	AddOns: AddOnPrices{
		LandingPageUnit:  750,
		FunnelUnit:       1500,
		DashboardSetup:   2000,
		DashboardMonthly: 500,
		WorkshopHalfDay:  2500,
		WorkshopFullDay:  4500,
		VideoPackUnit:    3000,
	},
}
