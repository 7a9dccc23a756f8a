package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

// DateLayout é o formato das datas "ingênuas" (sem fuso) usadas na agenda.
const DateLayout = "2006-01-02"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

// DateOf devolve a data de calendário de t vista no fuso tz.
func DateOf(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(DateLayout)
}

// ParseDate interpreta YYYY-MM-DD como data sem fuso (meia-noite UTC).
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func IsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

func AddDays(date string, days int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, days).Format(DateLayout), nil
}

// MonthRange devolve [primeiro dia do mês, primeiro dia do mês seguinte).
func MonthRange(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return start.Format(DateLayout), end.Format(DateLayout)
}

// StartOfDay é a meia-noite da data no fuso tz.
func StartOfDay(date string, tz string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(tz))
}
