package responses

import (
	"time"
)

// Slot is one bookable start time. StaffIDs lists every eligible staff member
// who is free for the window, so the booking step can assign one concretely
// when the caller did not choose.
type Slot struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Available bool      `json:"available"`
	StaffIDs  []string  `json:"staff_ids"`
}
