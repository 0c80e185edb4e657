package pricing

import (
	"math"
	"testing"
)

func TestComputeTotalsEmptySelection(t *testing.T) {
	got := ComputeTotals(Selection{}, AddOns{}, TermSixMonths, Default)
	if got.Monthly != 0 || got.Setup != 0 || got.Annual != 0 {
		t.Errorf("expected zero totals, got %+v", got)
	}
	if got.Margin != 0 {
		t.Errorf("expected zero margin (not NaN), got %v", got.Margin)
	}
	if math.IsNaN(got.Margin) || math.IsInf(got.Margin, 0) {
		t.Errorf("margin must never be NaN/Inf, got %v", got.Margin)
	}
}

func TestComputeTotalsSampleScenario(t *testing.T) {
	// traffic tier 2 + retention tier 1 on a 12-month term.
	sel := Selection{Traffic: 2, Retention: 1}
	got := ComputeTotals(sel, AddOns{}, TermTwelveMonths, Default)

	if got.Monthly != 15200 {
		t.Errorf("monthly: expected 15200, got %v", got.Monthly)
	}
	if got.Setup != 8000 {
		t.Errorf("setup: expected 8000, got %v", got.Setup)
	}
	if got.Annual != 190400 {
		t.Errorf("annual: expected 190400, got %v", got.Annual)
	}
	wantMargin := (15200.0 - 6200.0) / 15200.0 * 100
	if math.Abs(got.Margin-wantMargin) > 1e-9 {
		t.Errorf("margin: expected %v, got %v", wantMargin, got.Margin)
	}
}

func TestComputeTotalsTwelveMonthDiscount(t *testing.T) {
	selections := []struct {
		sel    Selection
		addOns AddOns
	}{
		{Selection{Traffic: 1}, AddOns{}},
		{Selection{Traffic: 3, Creative: 2}, AddOns{LandingPages: 2, Funnels: 1}},
		{Selection{Retention: 2}, AddOns{Dashboard: true, Workshop: WorkshopFullDay, VideoPack: 1}},
	}
	for i, tc := range selections {
		six := ComputeTotals(tc.sel, tc.addOns, TermSixMonths, Default)
		twelve := ComputeTotals(tc.sel, tc.addOns, TermTwelveMonths, Default)
		want := six.Monthly * 0.95
		if math.Abs(twelve.Monthly-want) > 0.01 {
			t.Errorf("case %d: expected 12-month monthly %v, got %v", i, want, twelve.Monthly)
		}
	}
}

func TestComputeTotalsAnnualInvariant(t *testing.T) {
	for _, term := range []string{TermSixMonths, TermTwelveMonths} {
		got := ComputeTotals(Selection{Traffic: 2, Creative: 3}, AddOns{Funnels: 2, Dashboard: true}, term, Default)
		want := got.Monthly*12 + got.Setup
		if math.Abs(got.Annual-want) > 0.01 {
			t.Errorf("term %s: annual %v != monthly*12+setup %v", term, got.Annual, want)
		}
	}
}

func TestComputeTotalsAddOnsFoldIntoMonthly(t *testing.T) {
	base := ComputeTotals(Selection{Traffic: 1}, AddOns{}, TermSixMonths, Default)
	with := ComputeTotals(Selection{Traffic: 1}, AddOns{LandingPages: 3, VideoPack: 2}, TermSixMonths, Default)

	wantDelta := 3*Default.AddOns.LandingPageUnit + 2*Default.AddOns.VideoPackUnit
	if got := with.Monthly - base.Monthly; math.Abs(got-wantDelta) > 0.01 {
		t.Errorf("expected monthly delta %v, got %v", wantDelta, got)
	}
	if with.Setup != base.Setup {
		t.Errorf("landing pages/video packs must not touch setup: %v vs %v", with.Setup, base.Setup)
	}
}

func TestComputeTotalsDashboardAndWorkshop(t *testing.T) {
	got := ComputeTotals(Selection{}, AddOns{Dashboard: true, Workshop: WorkshopHalfDay}, TermSixMonths, Default)
	if got.Setup != Default.AddOns.DashboardSetup {
		t.Errorf("dashboard setup: expected %v, got %v", Default.AddOns.DashboardSetup, got.Setup)
	}
	wantMonthly := Default.AddOns.DashboardMonthly + Default.AddOns.WorkshopHalfDay
	if got.Monthly != wantMonthly {
		t.Errorf("monthly: expected %v, got %v", wantMonthly, got.Monthly)
	}
	// Add-ons carry no internal cost, so a selection with only add-ons has
	// full margin.
	if got.Margin != 100 {
		t.Errorf("margin: expected 100, got %v", got.Margin)
	}
}

func TestComputeTotalsMarginRange(t *testing.T) {
	for traffic := 0; traffic <= 3; traffic++ {
		for retention := 0; retention <= 3; retention++ {
			got := ComputeTotals(Selection{Traffic: traffic, Retention: retention}, AddOns{}, TermTwelveMonths, Default)
			if got.Margin > 100 {
				t.Errorf("traffic=%d retention=%d: margin %v exceeds 100", traffic, retention, got.Margin)
			}
			if math.IsNaN(got.Margin) || math.IsInf(got.Margin, 0) {
				t.Errorf("traffic=%d retention=%d: margin is NaN/Inf", traffic, retention)
			}
		}
	}
}
