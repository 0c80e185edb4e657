// Package pricing implements the quote engine: a pure reduction from a
// service/add-on selection and contract term to monthly, setup and annual
// totals plus an internal margin figure.
//
// Quoting policy: one-time add-ons (landing pages, funnels, video packs)
// are folded into the monthly total, so the 12-month discount and the
// annualization both apply to them. Quotes are expressed as an effective
// monthly rate.
package pricing

import "pitchdesk-backend/utils"

// Contract terms.
const (
	TermSixMonths    = "6"
	TermTwelveMonths = "12"
)

// Workshop choices.
const (
	WorkshopNone    = "none"
	WorkshopHalfDay = "halfDay"
	WorkshopFullDay = "fullDay"
)

// Selection holds the chosen tier per service line. Zero means the service
// is not included.
type Selection struct {
	Traffic   int `json:"traffic" validate:"min=0,max=3"`
	Retention int `json:"retention" validate:"min=0,max=3"`
	Creative  int `json:"creative" validate:"min=0,max=3"`
}

// AddOns holds the optional extras layered on top of the selected tiers.
type AddOns struct {
	LandingPages int    `json:"landing_pages" validate:"min=0"`
	Funnels      int    `json:"funnels" validate:"min=0"`
	Dashboard    bool   `json:"dashboard"`
	Workshop     string `json:"workshop" validate:"omitempty,oneof=none halfDay fullDay"`
	VideoPack    int    `json:"video_pack" validate:"min=0"`
}

// Snapshot is the persisted calculator state on a saved proposal: the
// inputs plus the totals derived from them at save time.
type Snapshot struct {
	Selection Selection `json:"selection"`
	AddOns    AddOns    `json:"add_ons"`
	Term      string    `json:"contract_term"`
	Totals    Totals    `json:"totals"`
}

// Totals is derived state, recomputed from scratch on every input change.
type Totals struct {
	Monthly float64 `json:"monthly_total"`
	Setup   float64 `json:"setup_total"`
	Annual  float64 `json:"annual_total"`
	Margin  float64 `json:"margin"`
}

// ComputeTotals reduces a selection to totals against the given catalog.
// The 5% twelve-month discount is applied after add-ons are folded in, so
// it also reduces add-on-derived revenue. Margin only accounts for
// internal cost on service tiers; add-ons carry no modeled cost.
func ComputeTotals(sel Selection, addOns AddOns, term string, cat *Catalog) Totals {
	var monthly, setup, internal float64

	for key, tierNo := range map[string]int{
		ServiceTraffic:   sel.Traffic,
		ServiceRetention: sel.Retention,
		ServiceCreative:  sel.Creative,
	} {
		if tierNo == 0 {
			continue
		}
		tier, ok := cat.Services[key].Tiers[tierNo]
		if !ok {
			continue
		}
		monthly += tier.Monthly
		setup += tier.Setup
		internal += tier.InternalCost
	}

	monthly += float64(addOns.LandingPages) * cat.AddOns.LandingPageUnit
	monthly += float64(addOns.Funnels) * cat.AddOns.FunnelUnit
	monthly += float64(addOns.VideoPack) * cat.AddOns.VideoPackUnit

	if addOns.Dashboard {
		setup += cat.AddOns.DashboardSetup
		monthly += cat.AddOns.DashboardMonthly
	}

	switch addOns.Workshop {
	case WorkshopHalfDay:
		monthly += cat.AddOns.WorkshopHalfDay
	case WorkshopFullDay:
		monthly += cat.AddOns.WorkshopFullDay
	}

	if term == TermTwelveMonths {
		monthly *= 0.95
	}

	monthly = utils.Round2(monthly)
	setup = utils.Round2(setup)

	var margin float64
	if monthly > 0 {
		margin = (monthly - internal) / monthly * 100
	}

	return Totals{
		Monthly: monthly,
		Setup:   setup,
		Annual:  utils.Round2(monthly*12 + setup),
		Margin:  margin,
	}
}
