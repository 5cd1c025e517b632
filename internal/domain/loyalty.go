package domain

// LoyaltyAccount holds a user's points balance and membership tier
type LoyaltyAccount struct {
	UserID      string  `json:"user_id"`
	Points      int     `json:"loyalty_points"`
	PointValue  float64 `json:"point_value"`
	Tier        string  `json:"tier"`
	MemberSince string  `json:"member_since"`
}

// CouponType distinguishes how a coupon discounts the cart
type CouponType string

const (
	CouponPercentage   CouponType = "percentage"
	CouponFixed        CouponType = "fixed"
	CouponFreeShipping CouponType = "free_shipping"
)

// Coupon is a redeemable discount code
type Coupon struct {
	Code        string     `json:"offer_id"`
	Type        CouponType `json:"type"`
	Value       float64    `json:"value"`
	Description string     `json:"description"`
}

// SegmentOffer is the standing discount attached to a customer segment
type SegmentOffer struct {
	Description     string   `json:"description"`
	DiscountType    string   `json:"discount_type"`
	DiscountValue   float64  `json:"discount_value"`
	EligibleCoupons []string `json:"eligible_coupons"`
}
