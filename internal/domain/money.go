package domain

import "strconv"

// Prices are carried everywhere as integer paise. Rendering to rupees
// happens only at the presentation boundary via FormatINR.
const PaisePerRupee = 100

// FormatINR renders an amount of paise as a rupee string with Indian digit
// grouping and no decimal places, e.g. 399900 -> "₹3,999".
// Fractional paise are truncated; the storefront prices everything in whole
// rupees.
func FormatINR(paise int64) string {
	negative := paise < 0
	if negative {
		paise = -paise
	}
	rupees := strconv.FormatInt(paise/PaisePerRupee, 10)

	// Indian grouping: last three digits, then groups of two.
	var grouped string
	if len(rupees) > 3 {
		head := rupees[:len(rupees)-3]
		tail := rupees[len(rupees)-3:]
		for len(head) > 2 {
			grouped = "," + head[len(head)-2:] + grouped
			head = head[:len(head)-2]
		}
		grouped = head + grouped + "," + tail
	} else {
		grouped = rupees
	}

	if negative {
		return "-₹" + grouped
	}
	return "₹" + grouped
}
