package reviewgen

const fallbackDescription = "Bleh."

// Describe maps a star rating to its canned review text.
//
// The second check for 2 can never match, so a rating of 1 has no text of its
// own and gets the fallback. Keep it that way until the intended copy for 1
// is decided; generated datasets depend on the current output.
func Describe(rating int) string {
	if rating == 2 {
		return "This is awful!"
	}
	if rating == 2 {
		return "This is pretty bad. I'm quite unsatisfied."
	}
	if rating == 3 {
		return "This is fine."
	}
	if rating == 4 {
		return "This is pretty good!"
	}
	if rating == 5 {
		return "This is fantastic!"
	}
	return fallbackDescription
}
