package analytics

import (
	"fmt"
	"strconv"
)

// Report carries the rolling engagement metrics for one bot identity.
// DAU/DAG are averages over active days formatted to two decimals ("0"
// when no day in the window was active). NU counts users seen on the
// most recent active day and never before in the window. OU is the
// share of the window's users absent from the recent active days,
// formatted as a percentage.
type Report struct {
	DAU string `json:"DAU"`
	DAG string `json:"DAG"`
	NU  string `json:"NU"`
	OU  string `json:"OU"`
}

type activeDay struct {
	userCount  int
	groupCount int
	users      map[string]struct{}
}

// Analyze derives the engagement report from a most-recent-first window
// of daily records. Days with zero receive and zero send traffic are
// treated as "process not observed" and excluded, so downtime does not
// dilute the averages. recentDays bounds the "recent" user set (active
// days, not calendar days).
func Analyze(window []DayRecord, recentDays int) Report {
	var active []activeDay
	for _, day := range window {
		if day.Record == nil || day.Record.Idle() {
			continue
		}
		users := make(map[string]struct{})
		for _, id := range day.Record.UserIDs() {
			users[id] = struct{}{}
		}
		active = append(active, activeDay{
			userCount:  day.Record.UserCount(),
			groupCount: day.Record.GroupCount(),
			users:      users,
		})
	}

	report := Report{
		DAU: averageOf(active, func(d activeDay) int { return d.userCount }),
		DAG: averageOf(active, func(d activeDay) int { return d.groupCount }),
	}

	recentUsers := unionUsers(active[:min(recentDays, len(active))])
	priorUsers := unionUsers(active[min(1, len(active)):])
	allUsers := unionUsers(active)

	newUsers := 0
	if len(active) > 0 {
		for id := range active[0].users {
			if _, ok := priorUsers[id]; !ok {
				newUsers++
			}
		}
	}
	report.NU = strconv.Itoa(newUsers)

	if len(allUsers) == 0 {
		report.OU = "0.00%"
	} else {
		outUsers := 0
		for id := range allUsers {
			if _, ok := recentUsers[id]; !ok {
				outUsers++
			}
		}
		report.OU = fmt.Sprintf("%.2f%%", float64(outUsers)/float64(len(allUsers))*100)
	}

	return report
}

func averageOf(active []activeDay, pick func(activeDay) int) string {
	if len(active) == 0 {
		return "0"
	}
	sum := 0
	for _, day := range active {
		sum += pick(day)
	}
	return fmt.Sprintf("%.2f", float64(sum)/float64(len(active)))
}

func unionUsers(days []activeDay) map[string]struct{} {
	union := make(map[string]struct{})
	for _, day := range days {
		for id := range day.users {
			union[id] = struct{}{}
		}
	}
	return union
}
