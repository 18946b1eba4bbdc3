package scoring

import (
	"fmt"
	"math"
)

const NotAvailable = "N/A"

// Bar colours by decision outcome.
const (
	ColorObjectWins = "#2a9d8f"
	ColorAttackWins = "#e76f51"
	ColorUndecided  = "#ff9800"
)

// FormatPercent renders a certainty as "97.3%", or N/A when undefined.
func FormatPercent(c float64) string {
	if math.IsNaN(c) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f%%", c*100)
}

// Bar is the rendered state of one object/attack bar pair.
type Bar struct {
	ObjectText  string  `json:"object_text"`
	AttackText  string  `json:"attack_text"`
	ObjectWidth float64 `json:"object_width"` // percent, 0-100
	AttackWidth float64 `json:"attack_width"`
	ObjectColor string  `json:"object_color"`
	AttackColor string  `json:"attack_color"`
}

// NewBar computes the bar pair for raw similarities. Use NaN for a missing
// score; the bar then reads N/A with zero width.
func NewBar(sObj, sAtk float64) Bar {
	obj, atk := Certainty(sObj, sAtk)
	if math.IsNaN(obj) || math.IsNaN(atk) {
		return Bar{
			ObjectText:  NotAvailable,
			AttackText:  NotAvailable,
			ObjectColor: ColorUndecided,
			AttackColor: ColorUndecided,
		}
	}

	b := Bar{
		ObjectText:  FormatPercent(obj),
		AttackText:  FormatPercent(atk),
		ObjectWidth: obj * 100,
		AttackWidth: atk * 100,
		ObjectColor: ColorUndecided,
		AttackColor: ColorUndecided,
	}
	if obj > atk {
		b.ObjectColor = ColorObjectWins
	}
	if atk > obj {
		b.AttackColor = ColorAttackWins
	}
	return b
}

// MarkerTitle is the hover title of a mean marker.
func MarkerTitle(mean float64) string {
	return fmt.Sprintf("Average (%.2f%%)", mean*100)
}
