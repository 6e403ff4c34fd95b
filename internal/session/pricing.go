package session

import (
	"fmt"
	"strings"

	"github.com/halotrubus/internal/constants"
	"github.com/halotrubus/internal/models"

	"github.com/shopspring/decimal"
)

// PricingPolicy 咨询方式与价格倍率
type PricingPolicy struct {
	tier        string
	kinds       []string
	multipliers map[string]decimal.Decimal
}

var (
	multiplierOne      = decimal.NewFromInt(1)
	multiplierOneHalf  = decimal.RequireFromString("1.5")
	multiplierDouble   = decimal.NewFromInt(2)
	defaultPricingTier = constants.PricingTierTwo
)

// TwoTierPricing chat 原价，call 1.5 倍
func TwoTierPricing() PricingPolicy {
	return PricingPolicy{
		tier:  constants.PricingTierTwo,
		kinds: []string{constants.ConsultationKindChat, constants.ConsultationKindCall},
		multipliers: map[string]decimal.Decimal{
			constants.ConsultationKindChat: multiplierOne,
			constants.ConsultationKindCall: multiplierOneHalf,
		},
	}
}

// ThreeTierPricing chat 原价，voice 1.5 倍，video 2 倍
func ThreeTierPricing() PricingPolicy {
	return PricingPolicy{
		tier: constants.PricingTierThree,
		kinds: []string{
			constants.ConsultationKindChat,
			constants.ConsultationKindVoice,
			constants.ConsultationKindVideo,
		},
		multipliers: map[string]decimal.Decimal{
			constants.ConsultationKindChat:  multiplierOne,
			constants.ConsultationKindVoice: multiplierOneHalf,
			constants.ConsultationKindVideo: multiplierDouble,
		},
	}
}

// PricingForTier 按配置名称选择定价策略，空值使用两档
func PricingForTier(tier string) (PricingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "", defaultPricingTier:
		return TwoTierPricing(), nil
	case constants.PricingTierThree:
		return ThreeTierPricing(), nil
	default:
		return PricingPolicy{}, fmt.Errorf("unknown pricing tier %q", tier)
	}
}

// Tier 策略名称
func (p PricingPolicy) Tier() string {
	if p.tier == "" {
		return defaultPricingTier
	}
	return p.tier
}

// Kinds 支持的咨询方式，按展示顺序
func (p PricingPolicy) Kinds() []string {
	if len(p.kinds) == 0 {
		return TwoTierPricing().Kinds()
	}
	out := make([]string, len(p.kinds))
	copy(out, p.kinds)
	return out
}

// Supports 是否支持该咨询方式
func (p PricingPolicy) Supports(kind string) bool {
	_, ok := p.multiplier(kind)
	return ok
}

// Multiplier 返回倍率
func (p PricingPolicy) Multiplier(kind string) (decimal.Decimal, error) {
	m, ok := p.multiplier(kind)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrConsultationKindUnsupported, kind)
	}
	return m, nil
}

// Price 计算咨询价格
func (p PricingPolicy) Price(base models.Money, kind string) (models.Money, error) {
	m, err := p.Multiplier(kind)
	if err != nil {
		return models.Money{}, err
	}
	return base.Mul(m), nil
}

// Quote 每种咨询方式的报价
type Quote struct {
	Kind           string       `json:"kind"`
	Price          models.Money `json:"price"`
	PriceFormatted string       `json:"price_formatted"`
	Instant        bool         `json:"instant"`
}

// Quotes 按展示顺序列出报价
func (p PricingPolicy) Quotes(base models.Money) []Quote {
	kinds := p.Kinds()
	quotes := make([]Quote, 0, len(kinds))
	for _, kind := range kinds {
		price, err := p.Price(base, kind)
		if err != nil {
			continue
		}
		quotes = append(quotes, Quote{
			Kind:           kind,
			Price:          price,
			PriceFormatted: models.FormatPrice(price),
			Instant:        isInstantKind(kind),
		})
	}
	return quotes
}

func (p PricingPolicy) multiplier(kind string) (decimal.Decimal, bool) {
	multipliers := p.multipliers
	if multipliers == nil {
		multipliers = TwoTierPricing().multipliers
	}
	m, ok := multipliers[kind]
	return m, ok
}

// 即时咨询不需要排期
func isInstantKind(kind string) bool {
	return kind == constants.ConsultationKindChat
}
