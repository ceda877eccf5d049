package query

import (
	"slices"
	"time"

	"github.com/jaekwang-park/todo-dashboard/internal/model"
)

// DefaultDateLayout renders chart labels as a US short date (1/2/2006).
const DefaultDateLayout = "1/2/2006"

// DailyMetric counts the todos created and completed on one UTC day.
type DailyMetric struct {
	Date        time.Time
	Creations   int
	Completions int
}

// ChartPoint is a DailyMetric with its date already rendered for display.
type ChartPoint struct {
	Date        string `json:"date"`
	Creations   int    `json:"creations"`
	Completions int    `json:"completions"`
}

type DateFormatter func(day time.Time) string

func LayoutFormatter(layout string) DateFormatter {
	return func(day time.Time) string {
		return day.Format(layout)
	}
}

func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeMetrics buckets todos by creation day and, for completed todos with
// a completion time, by completion day. Days without activity are omitted.
// The result is ordered by day ascending.
func ComputeMetrics(todos []model.Todo) []DailyMetric {
	buckets := make(map[string]*DailyMetric)
	bucket := func(t time.Time) *DailyMetric {
		day := utcDay(t)
		key := day.Format(time.DateOnly)
		m, ok := buckets[key]
		if !ok {
			m = &DailyMetric{Date: day}
			buckets[key] = m
		}
		return m
	}

	for _, t := range todos {
		bucket(t.CreatedAt).Creations++
		if t.Completed && t.CompletedAt != nil {
			bucket(*t.CompletedAt).Completions++
		}
	}

	series := make([]DailyMetric, 0, len(buckets))
	for _, m := range buckets {
		series = append(series, *m)
	}
	slices.SortFunc(series, func(a, b DailyMetric) int {
		return a.Date.Compare(b.Date)
	})
	return series
}

// FormatSeries renders an already sorted series for display.
func FormatSeries(series []DailyMetric, format DateFormatter) []ChartPoint {
	points := make([]ChartPoint, len(series))
	for i, m := range series {
		points[i] = ChartPoint{
			Date:        format(m.Date),
			Creations:   m.Creations,
			Completions: m.Completions,
		}
	}
	return points
}
