package session

import (
	"errors"
	"testing"

	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/models"
)

func TestTwoTierPricing(t *testing.T) {
	p := TwoTierPricing()
	cases := []struct {
		base int64
		kind string
		want string
	}{
		{50000, constants.ConsultationKindChat, "50000"},
		{50000, constants.ConsultationKindCall, "75000"},
		{35000, constants.ConsultationKindCall, "52500"},
		{45000, constants.ConsultationKindCall, "67500"},
		{33333, constants.ConsultationKindCall, "49999.5"},
	}
	for _, tc := range cases {
		got, err := p.Price(models.NewMoney(tc.base), tc.kind)
		if err != nil {
			t.Fatalf("price %d %s failed: %v", tc.base, tc.kind, err)
		}
		if got.String() != tc.want {
			t.Fatalf("price %d %s want %s got %s", tc.base, tc.kind, tc.want, got)
		}
	}
	if _, err := p.Price(models.NewMoney(1), constants.ConsultationKindVideo); !errors.Is(err, ErrConsultationKindUnsupported) {
		t.Fatalf("video should be unsupported in two-tier, got %v", err)
	}
}

func TestThreeTierPricing(t *testing.T) {
	p := ThreeTierPricing()
	base := models.NewMoney(50000)
	want := map[string]string{
		constants.ConsultationKindChat:  "50000",
		constants.ConsultationKindVoice: "75000",
		constants.ConsultationKindVideo: "100000",
	}
	for kind, w := range want {
		got, err := p.Price(base, kind)
		if err != nil || got.String() != w {
			t.Fatalf("%s want %s got %s (%v)", kind, w, got, err)
		}
	}
	if p.Supports(constants.ConsultationKindCall) {
		t.Fatalf("call is not a three-tier kind")
	}
}

func TestPricingForTier(t *testing.T) {
	for tier, want := range map[string]string{
		"":           constants.PricingTierTwo,
		"two_tier":   constants.PricingTierTwo,
		"THREE_TIER": constants.PricingTierThree,
	} {
		p, err := PricingForTier(tier)
		if err != nil {
			t.Fatalf("tier %q failed: %v", tier, err)
		}
		if p.Tier() != want {
			t.Fatalf("tier %q want %s got %s", tier, want, p.Tier())
		}
	}
	if _, err := PricingForTier("four_tier"); err == nil {
		t.Fatalf("unknown tier should fail")
	}
}

func TestZeroPricingDefaultsToTwoTier(t *testing.T) {
	var p PricingPolicy
	got, err := p.Price(models.NewMoney(50000), constants.ConsultationKindCall)
	if err != nil || got.String() != "75000" {
		t.Fatalf("zero policy should behave as two-tier, got %s %v", got, err)
	}
	quotes := p.Quotes(models.NewMoney(50000))
	if len(quotes) != 2 || !quotes[0].Instant || quotes[1].PriceFormatted != "Rp 75.000" {
		t.Fatalf("unexpected quotes: %+v", quotes)
	}
}
