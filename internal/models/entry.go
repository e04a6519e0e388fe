package models

import "time"

// ChecklistItem is one task of the daily skincare routine.
type ChecklistItem struct {
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
}

// DefaultDailyChecklist returns a fresh copy of the checklist every new
// daily entry starts with.
func DefaultDailyChecklist() []ChecklistItem {
	return []ChecklistItem{
		{Task: "Lavei o rosto"},
		{Task: "Usei tratamento adequado"},
		{Task: "Usei hidratante"},
		{Task: "Usei protetor solar"},
		{Task: "Bebi água"},
	}
}

// DailyEntry is the per-user, per-calendar-day record of the routine.
// Date is truncated to midnight UTC; there is at most one entry per
// user per day. ProductsPhotos and ProductsAnalysis are parallel lists
// and must stay the same length.
type DailyEntry struct {
	ID               string          `json:"id"`
	UserID           string          `json:"user_id"`
	Date             time.Time       `json:"date"`
	FacePhotoBase64  string          `json:"face_photo_base64,omitempty"`
	FaceAnalysis     string          `json:"face_analysis,omitempty"`
	ProductsPhotos   []string        `json:"products_photos"`
	ProductsAnalysis []string        `json:"products_analysis"`
	Checklist        []ChecklistItem `json:"checklist"`
	Observations     string          `json:"observations"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// HasCompletedChecklistItem reports whether at least one checklist task
// is done.
func (e *DailyEntry) HasCompletedChecklistItem() bool {
	for _, item := range e.Checklist {
		if item.Completed {
			return true
		}
	}
	return false
}

// CreateEntryRequest is the JSON body of POST /daily-entries/create.
// Date defaults to today when omitted, format 2006-01-02.
type CreateEntryRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Date   string `json:"date"`
}

// UpdateEntryRequest carries the partial update of a daily entry. Only
// non-nil fields are applied.
type UpdateEntryRequest struct {
	FacePhotoBase64 *string         `json:"face_photo_base64"`
	Observations    *string         `json:"observations"`
	Checklist       []ChecklistItem `json:"checklist"`
}

// DailyRoutine is one day of the seeded 7-day starter routine.
type DailyRoutine struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Day       int             `json:"day"`
	Date      time.Time       `json:"date"`
	Checklist []ChecklistItem `json:"checklist"`
	Completed bool            `json:"completed"`
}

// DayStatus is the calendar gate verdict for a single date.
type DayStatus struct {
	Status       string `json:"status"` // "unlocked" or "blocked"
	EntryExists  bool   `json:"entryExists"`
	IsComplete   bool   `json:"isComplete"`
	HasPhoto     bool   `json:"hasPhoto"`
	HasChecklist bool   `json:"hasChecklist"`
}

// Calendar gate day states.
const (
	DayUnlocked = "unlocked"
	DayBlocked  = "blocked"
)
