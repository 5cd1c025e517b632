package service

import (
	"context"
	"errors"
	"testing"
)

func TestGetApplicableOffers_GoldMember(t *testing.T) {
	svc := NewLoyaltyService()

	offers, err := svc.GetApplicableOffers(context.Background(), "user_12345", "cart_1", 5000)
	if err != nil {
		t.Fatalf("GetApplicableOffers returned error: %v", err)
	}

	if offers.Account.Tier != "gold" {
		t.Errorf("Expected gold tier, got %s", offers.Account.Tier)
	}
	if offers.PointsValue != 750 {
		t.Errorf("Expected points value 750, got %v", offers.PointsValue)
	}
	if !offers.PointsRedeemable {
		t.Error("Expected 1500 points to be redeemable")
	}
	if len(offers.Coupons) != 3 {
		t.Errorf("Expected 3 gold coupons, got %d", len(offers.Coupons))
	}
}

func TestGetApplicableOffers_UnknownUserGetsRegularSegment(t *testing.T) {
	svc := NewLoyaltyService()

	offers, err := svc.GetApplicableOffers(context.Background(), "user_unknown", "cart_1", 500)
	if err != nil {
		t.Fatalf("GetApplicableOffers returned error: %v", err)
	}

	if offers.Account.Tier != "regular" {
		t.Errorf("Expected regular tier fallback, got %s", offers.Account.Tier)
	}
	if offers.PointsRedeemable {
		t.Error("Expected zero points to not be redeemable")
	}
}

func TestGetApplicableOffers_Validation(t *testing.T) {
	svc := NewLoyaltyService()

	if _, err := svc.GetApplicableOffers(context.Background(), "", "cart_1", 0); !errors.Is(err, ErrMissingLoyaltyFields) {
		t.Errorf("Expected ErrMissingLoyaltyFields, got %v", err)
	}
}

func TestApplyCoupon(t *testing.T) {
	svc := NewLoyaltyService()
	ctx := context.Background()

	tests := []struct {
		name         string
		code         string
		cartAmount   float64
		wantDiscount float64
		wantShipping float64
		wantFinal    float64
	}{
		{"percentage coupon", "SAVE10", 1000, 100, 0, 900},
		{"lowercase code accepted", "save10", 1000, 100, 0, 900},
		{"fixed coupon", "FLAT100", 1500, 100, 0, 1400},
		{"free shipping coupon", "FREESHIP", 800, 0, 50, 800},
		{"discount larger than cart clamps to zero", "FLAT100", 40, 100, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := svc.ApplyCoupon(ctx, "user_12345", "cart_1", tt.code, tt.cartAmount)
			if err != nil {
				t.Fatalf("ApplyCoupon returned error: %v", err)
			}
			if app.Discount != tt.wantDiscount {
				t.Errorf("Expected discount %v, got %v", tt.wantDiscount, app.Discount)
			}
			if app.ShippingDiscount != tt.wantShipping {
				t.Errorf("Expected shipping discount %v, got %v", tt.wantShipping, app.ShippingDiscount)
			}
			if app.FinalAmount != tt.wantFinal {
				t.Errorf("Expected final amount %v, got %v", tt.wantFinal, app.FinalAmount)
			}
		})
	}
}

func TestApplyCoupon_Unknown(t *testing.T) {
	svc := NewLoyaltyService()

	_, err := svc.ApplyCoupon(context.Background(), "user_12345", "cart_1", "BOGUS99", 1000)
	if !errors.Is(err, ErrUnknownCoupon) {
		t.Errorf("Expected ErrUnknownCoupon, got %v", err)
	}
}

func TestRedeemPoints(t *testing.T) {
	svc := NewLoyaltyService()

	redemption, err := svc.RedeemPoints(context.Background(), "user_12345", "cart_1", 500, 2000)
	if err != nil {
		t.Fatalf("RedeemPoints returned error: %v", err)
	}

	if redemption.Discount != 250 {
		t.Errorf("Expected discount 250, got %v", redemption.Discount)
	}
	if redemption.FinalAmount != 1750 {
		t.Errorf("Expected final amount 1750, got %v", redemption.FinalAmount)
	}
	if redemption.RemainingPoints != 1000 {
		t.Errorf("Expected 1000 remaining points, got %d", redemption.RemainingPoints)
	}
}

func TestRedeemPoints_Failures(t *testing.T) {
	svc := NewLoyaltyService()
	ctx := context.Background()

	if _, err := svc.RedeemPoints(ctx, "user_unknown", "cart_1", 200, 1000); !errors.Is(err, ErrNoLoyaltyAccount) {
		t.Errorf("Expected ErrNoLoyaltyAccount, got %v", err)
	}
	if _, err := svc.RedeemPoints(ctx, "user_12345", "cart_1", 5000, 1000); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("Expected ErrInsufficientPoints, got %v", err)
	}
	if _, err := svc.RedeemPoints(ctx, "user_12345", "cart_1", 50, 1000); !errors.Is(err, ErrBelowRedeemMinimum) {
		t.Errorf("Expected ErrBelowRedeemMinimum, got %v", err)
	}
}
