package domain

import (
	"fmt"
	"strings"
	"time"
)

type ReportPeriod string

const (
	ReportPeriodDaily  ReportPeriod = "daily"
	ReportPeriodWeekly ReportPeriod = "weekly"
)

func ParseReportPeriod(value string) (ReportPeriod, error) {
	switch ReportPeriod(strings.ToLower(strings.TrimSpace(value))) {
	case ReportPeriodDaily:
		return ReportPeriodDaily, nil
	case ReportPeriodWeekly:
		return ReportPeriodWeekly, nil
	}

	return "", fmt.Errorf("unknown report period %q", value)
}

// DateRange é um intervalo de dias de calendário, inclusivo nas duas pontas.
// Since e Until são meia-noite no fuso do relatório.
type DateRange struct {
	Since time.Time `json:"since"`
	Until time.Time `json:"until"`
}

func SingleDay(day time.Time) DateRange {
	start := startOfDay(day)
	return DateRange{Since: start, Until: start}
}

// YesterdayRange retorna o dia de calendário anterior a now no fuso loc
func YesterdayRange(now time.Time, loc *time.Location) DateRange {
	today := startOfDay(now.In(orUTC(loc)))
	return SingleDay(today.AddDate(0, 0, -1))
}

// LastWeekRange retorna a última semana completa, de segunda a domingo, anterior a now
func LastWeekRange(now time.Time, loc *time.Location) DateRange {
	today := startOfDay(now.In(orUTC(loc)))
	sinceMonday := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -sinceMonday-7)

	return DateRange{Since: monday, Until: monday.AddDate(0, 0, 6)}
}

func RangeFor(period ReportPeriod, now time.Time, loc *time.Location) DateRange {
	if period == ReportPeriodWeekly {
		return LastWeekRange(now, loc)
	}

	return YesterdayRange(now, loc)
}

// Days retorna a quantidade de dias cobertos pelo intervalo
func (r DateRange) Days() int {
	since := time.Date(r.Since.Year(), r.Since.Month(), r.Since.Day(), 0, 0, 0, 0, time.UTC)
	until := time.Date(r.Until.Year(), r.Until.Month(), r.Until.Day(), 0, 0, 0, 0, time.UTC)

	return int(until.Sub(since).Hours()/24) + 1
}

// Previous retorna o intervalo de mesmo tamanho imediatamente anterior
func (r DateRange) Previous() DateRange {
	days := r.Days()
	return DateRange{
		Since: r.Since.AddDate(0, 0, -days),
		Until: r.Until.AddDate(0, 0, -days),
	}
}

func (r DateRange) IsSingleDay() bool {
	return r.Days() == 1
}

func (r DateRange) SinceString() string {
	return r.Since.Format(time.DateOnly)
}

func (r DateRange) UntilString() string {
	return r.Until.Format(time.DateOnly)
}

// Label formata o intervalo para o cabeçalho: "17 Oct 2026" ou "5 Oct – 11 Oct 2026"
func (r DateRange) Label() string {
	if r.IsSingleDay() {
		return r.Since.Format("2 Jan 2006")
	}

	return fmt.Sprintf("%s – %s", r.Since.Format("2 Jan"), r.Until.Format("2 Jan 2006"))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
