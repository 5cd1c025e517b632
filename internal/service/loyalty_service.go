package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"retail-concierge/internal/domain"
)

const (
	// MinRedeemablePoints is the smallest redemption the program allows.
	MinRedeemablePoints = 100

	// MockShippingCost is credited back by free-shipping coupons.
	MockShippingCost = 50.0
)

var (
	ErrMissingLoyaltyFields = errors.New("user id and cart id are required")
	ErrUnknownCoupon        = errors.New("coupon code is invalid or expired")
	ErrNoLoyaltyAccount     = errors.New("user loyalty account not found")
	ErrInsufficientPoints   = errors.New("insufficient loyalty points")
	ErrBelowRedeemMinimum   = errors.New("minimum 100 points required for redemption")
)

// OffersResult aggregates everything the loyalty agent knows about a cart.
type OffersResult struct {
	Account          domain.LoyaltyAccount
	PointsValue      float64
	PointsRedeemable bool
	SegmentOffer     domain.SegmentOffer
	Coupons          []domain.Coupon
	Tips             []string
}

// CouponApplication is the outcome of applying a coupon to a cart.
type CouponApplication struct {
	Coupon           domain.Coupon
	Discount         float64
	ShippingDiscount float64
	OriginalAmount   float64
	FinalAmount      float64
}

// Redemption is the outcome of converting loyalty points to a discount.
type Redemption struct {
	PointsRedeemed  int
	Discount        float64
	OriginalAmount  float64
	FinalAmount     float64
	RemainingPoints int
}

// LoyaltyService defines the interface for offers, coupons and points
type LoyaltyService interface {
	GetApplicableOffers(ctx context.Context, userID, cartID string, cartAmount float64) (*OffersResult, error)
	ApplyCoupon(ctx context.Context, userID, cartID, couponCode string, cartAmount float64) (*CouponApplication, error)
	RedeemPoints(ctx context.Context, userID, cartID string, points int, cartAmount float64) (*Redemption, error)
}

type loyaltyService struct {
	accounts map[string]domain.LoyaltyAccount
	coupons  map[string]domain.Coupon
	segments map[string]domain.SegmentOffer
}

// NewLoyaltyService creates a new instance of LoyaltyService seeded with the
// demo loyalty program.
func NewLoyaltyService() LoyaltyService {
	return &loyaltyService{
		accounts: map[string]domain.LoyaltyAccount{
			"user_12345": {UserID: "user_12345", Points: 1500, PointValue: 0.5, Tier: "gold", MemberSince: "2023-01-15"},
			"user_67890": {UserID: "user_67890", Points: 350, PointValue: 0.5, Tier: "silver", MemberSince: "2024-03-22"},
		},
		coupons: map[string]domain.Coupon{
			"SAVE10":    {Code: "SAVE10", Type: domain.CouponPercentage, Value: 10, Description: "10% off on all items"},
			"SAVE50":    {Code: "SAVE50", Type: domain.CouponFixed, Value: 50, Description: "Flat ₹50 off"},
			"WELCOME20": {Code: "WELCOME20", Type: domain.CouponPercentage, Value: 20, Description: "20% off for new users"},
			"FREESHIP":  {Code: "FREESHIP", Type: domain.CouponFreeShipping, Value: 0, Description: "Free shipping on all orders"},
			"FLAT100":   {Code: "FLAT100", Type: domain.CouponFixed, Value: 100, Description: "Flat ₹100 off on orders above ₹1000"},
		},
		segments: map[string]domain.SegmentOffer{
			"new_customer": {Description: "Welcome! Get 20% off on your first purchase", DiscountType: "percentage", DiscountValue: 20, EligibleCoupons: []string{"WELCOME20", "FREESHIP"}},
			"vip":          {Description: "VIP Discount: 15% off on all items + free shipping", DiscountType: "percentage", DiscountValue: 15, EligibleCoupons: []string{"SAVE10", "SAVE50", "FLAT100", "FREESHIP"}},
			"gold":         {Description: "Gold Member: 10% off + extra loyalty points", DiscountType: "percentage", DiscountValue: 10, EligibleCoupons: []string{"SAVE10", "SAVE50", "FREESHIP"}},
			"silver":       {Description: "Silver Member: 5% off on all orders", DiscountType: "percentage", DiscountValue: 5, EligibleCoupons: []string{"SAVE10", "FREESHIP"}},
			"regular":      {Description: "Check our ongoing promotions for savings!", DiscountType: "none", DiscountValue: 0, EligibleCoupons: []string{"SAVE10"}},
		},
	}
}

// GetApplicableOffers returns the user's loyalty standing, segment offer and
// eligible coupons. Unknown users fall back to the regular segment.
func (s *loyaltyService) GetApplicableOffers(_ context.Context, userID, cartID string, _ float64) (*OffersResult, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(cartID) == "" {
		return nil, ErrMissingLoyaltyFields
	}

	account := s.accountFor(userID)
	segment, ok := s.segments[account.Tier]
	if !ok {
		segment = s.segments["regular"]
	}

	coupons := make([]domain.Coupon, 0, len(segment.EligibleCoupons))
	for _, code := range segment.EligibleCoupons {
		if coupon, ok := s.coupons[code]; ok {
			coupons = append(coupons, coupon)
		}
	}

	pointsValue := round2(float64(account.Points) * account.PointValue)
	return &OffersResult{
		Account:          account,
		PointsValue:      pointsValue,
		PointsRedeemable: account.Points >= MinRedeemablePoints,
		SegmentOffer:     segment,
		Coupons:          coupons,
		Tips: []string{
			fmt.Sprintf("You can save up to ₹%.2f by redeeming your loyalty points", pointsValue),
			fmt.Sprintf("As a %s member, you get %s", account.Tier, segment.Description),
		},
	}, nil
}

// ApplyCoupon validates a coupon code and computes the discounted total.
func (s *loyaltyService) ApplyCoupon(_ context.Context, userID, cartID, couponCode string, cartAmount float64) (*CouponApplication, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(cartID) == "" || strings.TrimSpace(couponCode) == "" {
		return nil, ErrMissingLoyaltyFields
	}

	coupon, ok := s.coupons[strings.ToUpper(couponCode)]
	if !ok {
		return nil, ErrUnknownCoupon
	}

	var discount, shippingDiscount float64
	switch coupon.Type {
	case domain.CouponPercentage:
		discount = cartAmount * coupon.Value / 100
	case domain.CouponFixed:
		discount = coupon.Value
	case domain.CouponFreeShipping:
		shippingDiscount = MockShippingCost
	}

	return &CouponApplication{
		Coupon:           coupon,
		Discount:         round2(discount),
		ShippingDiscount: shippingDiscount,
		OriginalAmount:   cartAmount,
		FinalAmount:      round2(math.Max(cartAmount-discount, 0)),
	}, nil
}

// RedeemPoints converts loyalty points into a cart discount.
func (s *loyaltyService) RedeemPoints(_ context.Context, userID, cartID string, points int, cartAmount float64) (*Redemption, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(cartID) == "" {
		return nil, ErrMissingLoyaltyFields
	}

	account, ok := s.accounts[userID]
	if !ok {
		return nil, ErrNoLoyaltyAccount
	}
	if points > account.Points {
		return nil, fmt.Errorf("%w: %d points available", ErrInsufficientPoints, account.Points)
	}
	if points < MinRedeemablePoints {
		return nil, ErrBelowRedeemMinimum
	}

	discount := round2(float64(points) * account.PointValue)
	return &Redemption{
		PointsRedeemed:  points,
		Discount:        discount,
		OriginalAmount:  cartAmount,
		FinalAmount:     round2(math.Max(cartAmount-discount, 0)),
		RemainingPoints: account.Points - points,
	}, nil
}

func (s *loyaltyService) accountFor(userID string) domain.LoyaltyAccount {
	if account, ok := s.accounts[userID]; ok {
		return account
	}
	return domain.LoyaltyAccount{
		UserID:      userID,
		Points:      0,
		PointValue:  0.5,
		Tier:        "regular",
		MemberSince: "2025-01-01",
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
