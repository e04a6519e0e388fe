package models

import "time"

// PremiumCode is a single-use activation code. A code moves from unused
// to used exactly once; UsedBy and UsedAt are set at redemption time.
type PremiumCode struct {
	Code      string     // Unique code string, BELUX prefix + 8 hex chars
	CreatedAt time.Time  // When the code was minted
	Used      bool       // Redemption flag
	UsedBy    *string    // ID of the redeeming user
	UsedAt    *time.Time // When the code was redeemed
}

// RedeemCodeRequest is the JSON body of the code activation endpoint.
type RedeemCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

// GenerateCodeRequest is the JSON body of the admin code generator.
type GenerateCodeRequest struct {
	AdminPassword string `json:"admin_password" validate:"required"`
}
