package models

import "time"

// FacialAnalysis is the append-only artifact of one AI facial analysis.
type FacialAnalysis struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	SkinType        string    `json:"skin_type"`
	Oiliness        string    `json:"oiliness"`
	Pores           string    `json:"pores"`
	Texture         string    `json:"texture"`
	FineLines       string    `json:"fine_lines"`
	Spots           string    `json:"spots"`
	Acne            string    `json:"acne"`
	Sensitivity     string    `json:"sensitivity"`
	Recommendations string    `json:"recommendations"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProductRecommendation ties a set of recommended products to the
// facial analysis that produced them.
type ProductRecommendation struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	AnalysisID string    `json:"analysis_id"`
	Products   []string  `json:"products"`
	Reasoning  string    `json:"reasoning"`
	CreatedAt  time.Time `json:"created_at"`
}

// FacialAnalysisRequest is the JSON body of POST /analysis/facial.
type FacialAnalysisRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	ImageBase64 string `json:"image_base64" validate:"required"`
}

// ProductImageRequest is the JSON body of the product analysis endpoints.
type ProductImageRequest struct {
	ImageBase64 string `json:"image_base64" validate:"required"`
}
