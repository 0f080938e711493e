package presentation

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const nbsp = "\u00a0"

// Distance расстояние, подготовленное для вывода
type Distance struct {
	Value string
	Unit  string
}

func (d Distance) String() string {
	return "~" + d.Value + " " + d.Unit
}

// FormatDistance округляет расстояние в метрах: от 1000 вниз до сотен и выводит в км,
// меньше 1000 вниз до 50 и выводит в метрах. 950 -> "~950 метров", 1260 -> "~1.2 км"
func FormatDistance(meters float64) Distance {
	if meters >= 1000 {
		hundreds := math.Floor(meters / 100)
		return Distance{
			Value: strconv.FormatFloat(hundreds/10, 'f', -1, 64),
			Unit:  "км",
		}
	}
	rounded := math.Floor(meters/50) * 50
	if rounded < 0 {
		rounded = 0
	}
	return Distance{
		Value: strconv.FormatFloat(rounded, 'f', 0, 64),
		Unit:  "метров",
	}
}

// FormatNumber выводит число с группировкой разрядов неразрывным пробелом и десятичной запятой,
// не более двух знаков после запятой. Непустая единица измерения добавляется через пробел
func FormatNumber(v float64, unit string) string {
	negative := v < 0
	fixed := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	digits, frac, _ := strings.Cut(fixed, ".")
	frac = strings.TrimRight(frac, "0")

	var b strings.Builder
	if negative && strings.Trim(fixed, "0.") != "" {
		b.WriteString("-")
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(nbsp)
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteString(",")
		b.WriteString(frac)
	}
	if unit != "" {
		b.WriteString(" ")
		b.WriteString(unit)
	}
	return b.String()
}

// FormatDate выводит дату в формате дд.мм.гггг. Принимает RFC3339 и дату без времени
func FormatDate(value string) (string, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("02.01.2006"), true
		}
	}
	return "", false
}
