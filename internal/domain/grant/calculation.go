package grant

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/upg/backend/internal/domain/group"
	"github.com/upg/backend/internal/domain/shared/valueobject"
)

// Seed business grant sizing. Amounts are KES.
var (
	baseSBGrant = valueobject.NewMoneyKESFromInt(15000)
	maxSBGrant  = valueobject.NewMoneyKESFromInt(25000)
	minSBGrant  = valueobject.NewMoneyKESFromInt(10000)

	defaultPRGrant = valueobject.NewMoneyKESFromInt(10000)

	factorNeutral = decimal.NewFromInt(1)
)

// Used when a group's training records are unavailable.
const defaultTrainingCompletionRate = 0.8

// CalculationInput carries the group characteristics the sizing formula
// depends on.
type CalculationInput struct {
	GroupSize              int
	BusinessType           group.BusinessType
	Location               string
	TrainingCompletionRate float64
}

// GrantFactors are the four multipliers applied to the base amount.
type GrantFactors struct {
	GroupSize    decimal.Decimal `gorm:"type:decimal(3,2)"`
	BusinessType decimal.Decimal `gorm:"type:decimal(3,2)"`
	Location     decimal.Decimal `gorm:"type:decimal(3,2)"`
	Performance  decimal.Decimal `gorm:"type:decimal(3,2)"`
}

func NeutralFactors() GrantFactors {
	return GrantFactors{
		GroupSize:    factorNeutral,
		BusinessType: factorNeutral,
		Location:     factorNeutral,
		Performance:  factorNeutral,
	}
}

func (f GrantFactors) Total() decimal.Decimal {
	return f.GroupSize.Mul(f.BusinessType).Mul(f.Location).Mul(f.Performance)
}

// ComputeFactors derives the multipliers from the applicant's profile.
// Larger groups, agricultural businesses, remote locations and strong
// training attendance all raise the award.
func ComputeFactors(in CalculationInput) GrantFactors {
	f := NeutralFactors()

	switch {
	case in.GroupSize >= 20:
		f.GroupSize = decimal.RequireFromString("1.20")
	case in.GroupSize >= 15:
		f.GroupSize = decimal.RequireFromString("1.10")
	case in.GroupSize < 8:
		f.GroupSize = decimal.RequireFromString("0.90")
	}

	switch in.BusinessType {
	case group.BusinessTypeCrop, group.BusinessTypeLivestock:
		f.BusinessType = decimal.RequireFromString("1.15")
	case group.BusinessTypeSkill:
		f.BusinessType = decimal.RequireFromString("1.10")
	}

	loc := strings.ToLower(in.Location)
	if strings.Contains(loc, "remote") || strings.Contains(loc, "rural") {
		f.Location = decimal.RequireFromString("1.05")
	}

	rate := in.TrainingCompletionRate
	if rate <= 0 {
		rate = defaultTrainingCompletionRate
	}
	switch {
	case rate >= 0.9:
		f.Performance = decimal.RequireFromString("1.10")
	case rate < 0.6:
		f.Performance = decimal.RequireFromString("0.95")
	}

	return f
}

// SizeGrant applies the factors to the base amount and clamps the result
// to the program's floor and cap.
func SizeGrant(factors GrantFactors) valueobject.Money {
	raw := baseSBGrant.Multiply(factors.Total()).Round(2)
	clamped, err := raw.Clamp(minSBGrant, maxSBGrant)
	if err != nil {
		return baseSBGrant
	}
	return clamped
}
