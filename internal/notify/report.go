package notify

import (
	"sort"
	"time"

	"taskboard/internal/model"
)

// NewUserWindowDays 新使用者統計的日曆天範圍（含今天）
const NewUserWindowDays = 7

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type AlertType string

const (
	AlertOverdue       AlertType = "overdueTasks"
	AlertDueToday      AlertType = "tasksDueToday"
	AlertNewUsers      AlertType = "newUsers"
	AlertInactiveUsers AlertType = "inactiveUsers"
)

type Summary struct {
	TotalUsers       int `json:"totalUsers"`
	ActiveUsers      int `json:"activeUsers"`
	InactiveUsers    int `json:"inactiveUsers"`
	TasksTotal       int `json:"tasksTotal"`
	CompletedTasks   int `json:"completedTasks"`
	TasksOverdue     int `json:"tasksOverdue"`
	TasksDueToday    int `json:"tasksDueToday"`
	NewUsersThisWeek int `json:"newUsersThisWeek"`
}

type Alert struct {
	Type     AlertType `json:"type"`
	Message  string    `json:"message"`
	Count    int       `json:"count"`
	Priority Priority  `json:"priority"`
}

// Report 管理員通知
type Report struct {
	Summary Summary `json:"summary"`
	Alerts  []Alert `json:"alerts"`
}

// AdminReport 計算全系統統計與警示，警示依優先度由高到低穩定排序
func AdminReport(users []*model.User, tasks []*model.Task, now time.Time, l *Localizer) Report {
	var s Summary
	for _, u := range users {
		if u == nil {
			continue
		}
		s.TotalUsers++
		if u.IsActive {
			s.ActiveUsers++
		} else {
			s.InactiveUsers++
		}
		if d := dayDiff(u.CreatedAt, now, now.Location()); d >= 0 && d <= NewUserWindowDays {
			s.NewUsersThisWeek++
		}
	}
	for _, t := range tasks {
		if t == nil {
			continue
		}
		s.TasksTotal++
		if t.Completed {
			s.CompletedTasks++
			continue
		}
		switch Classify(t.Date, now) {
		case StatusOverdue:
			s.TasksOverdue++
		case StatusDueToday:
			s.TasksDueToday++
		}
	}

	alerts := make([]Alert, 0, 4)
	add := func(typ AlertType, key string, n int, p Priority) {
		if n > 0 {
			alerts = append(alerts, Alert{Type: typ, Message: l.sprintf(key, n), Count: n, Priority: p})
		}
	}
	add(AlertNewUsers, keyAlertNewUsers, s.NewUsersThisWeek, PriorityLow)
	add(AlertInactiveUsers, keyAlertInactive, s.InactiveUsers, PriorityLow)
	add(AlertDueToday, keyAlertDueToday, s.TasksDueToday, PriorityMedium)
	add(AlertOverdue, keyAlertOverdue, s.TasksOverdue, PriorityHigh)
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Priority.rank() < alerts[j].Priority.rank()
	})

	return Report{Summary: s, Alerts: alerts}
}
