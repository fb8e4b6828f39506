// File: internal/notify/notify.go
//
// notify 由任務與使用者快照計算通知，不存取資料庫
package notify

import (
	"sort"
	"time"

	"taskboard/internal/model"
)

type Status string

const (
	StatusOverdue     Status = "overdue"
	StatusDueToday    Status = "dueToday"
	StatusDueTomorrow Status = "dueTomorrow"
	StatusOK          Status = "ok"
)

// Notification 使用者通知項目
type Notification struct {
	Message     string    `json:"message"`
	Status      Status    `json:"status"`
	TaskID      string    `json:"taskId"`
	DueDate     time.Time `json:"dueDate"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// dayDiff 回傳 to 與 from 之間相差的日曆天數，以 now 的時區截斷到日
func dayDiff(from, to time.Time, loc *time.Location) int {
	f := from.In(loc)
	t := to.In(loc)
	fd := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
	td := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(td.Sub(fd).Hours() / 24)
}

// Classify 依到期日與今天的日曆天差判斷任務狀態
func Classify(due, now time.Time) Status {
	switch diff := dayDiff(now, due, now.Location()); {
	case diff < 0:
		return StatusOverdue
	case diff == 0:
		return StatusDueToday
	case diff == 1:
		return StatusDueTomorrow
	default:
		return StatusOK
	}
}

func taskMessage(l *Localizer, status Status, title string) string {
	switch status {
	case StatusOverdue:
		return l.sprintf(keyOverdue, title)
	case StatusDueToday:
		return l.sprintf(keyDueToday, title)
	case StatusDueTomorrow:
		return l.sprintf(keyDueTomorrow, title)
	default:
		return ""
	}
}

// UserFeed 只處理未完成任務，略過 ok 狀態，依到期日由早到晚排序
func UserFeed(tasks []*model.Task, now time.Time, l *Localizer) []Notification {
	feed := make([]Notification, 0, len(tasks))
	for _, t := range tasks {
		if t == nil || t.Completed {
			continue
		}
		status := Classify(t.Date, now)
		if status == StatusOK {
			continue
		}
		feed = append(feed, Notification{
			Message:     taskMessage(l, status, t.Title),
			Status:      status,
			TaskID:      t.ID,
			DueDate:     t.Date,
			GeneratedAt: now,
		})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].DueDate.Before(feed[j].DueDate)
	})
	return feed
}
