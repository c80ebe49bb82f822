package ethiopic

// Transliterated month names, index 0 = Meskerem.
var monthNames = [MonthsPerYear]string{
	"Meskerem", "Tikimt", "Hidar", "Tahsas", "Tir", "Yekatit",
	"Megabit", "Miyazia", "Ginbot", "Sene", "Hamle", "Nehase", "Pagume",
}

// MonthName returns the transliterated name of a month, or "" when the
// month is out of range.
func MonthName(month int) string {
	if month < 1 || month > MonthsPerYear {
		return ""
	}
	return monthNames[month-1]
}

// MonthName returns the transliterated name of the date's month.
func (d Date) MonthName() string {
	return MonthName(d.Month)
}
