package notify

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

const (
	keyOverdue     = "Task \"%s\" is overdue."
	keyDueToday    = "Task \"%s\" is due today."
	keyDueTomorrow = "Task \"%s\" is due tomorrow."

	keyAlertOverdue  = "%d overdue task(s) in the system"
	keyAlertDueToday = "%d task(s) due today"
	keyAlertNewUsers = "%d new user(s) this week"
	keyAlertInactive = "%d inactive user(s)"
)

// HeaderAcceptLanguage 語系協商使用的請求標頭
const HeaderAcceptLanguage = "Accept-Language"

// Supported 依優先順序排列，第一個為預設語系
var Supported = []language.Tag{language.English, language.Spanish}

var translations = map[language.Tag]map[string]string{
	language.English: {
		keyOverdue:       keyOverdue,
		keyDueToday:      keyDueToday,
		keyDueTomorrow:   keyDueTomorrow,
		keyAlertOverdue:  keyAlertOverdue,
		keyAlertDueToday: keyAlertDueToday,
		keyAlertNewUsers: keyAlertNewUsers,
		keyAlertInactive: keyAlertInactive,
	},
	language.Spanish: {
		keyOverdue:       "La tarea \"%s\" está vencida.",
		keyDueToday:      "La tarea \"%s\" vence hoy.",
		keyDueTomorrow:   "La tarea \"%s\" vence mañana.",
		keyAlertOverdue:  "%d tarea(s) vencida(s) en el sistema",
		keyAlertDueToday: "%d tarea(s) vence(n) hoy",
		keyAlertNewUsers: "%d nuevo(s) usuario(s) esta semana",
		keyAlertInactive: "%d usuario(s) inactivo(s)",
	},
}

var (
	messages = mustBuildCatalog()
	matcher  = language.NewMatcher(Supported)
)

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range translations {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(fmt.Sprintf("notify: register %s message: %v", tag, err))
			}
		}
	}
	return b
}

// Localizer 產生指定語系的通知訊息
type Localizer struct {
	Tag     language.Tag
	printer *message.Printer
}

// NewLocalizer 建立指定語系的 Localizer，不支援的語系退回英文
func NewLocalizer(tag language.Tag) *Localizer {
	_, idx, _ := matcher.Match(tag)
	tag = Supported[idx]
	return &Localizer{Tag: tag, printer: message.NewPrinter(tag, message.Catalog(messages))}
}

// FromAcceptLanguage 依 Accept-Language 標頭選擇語系
func FromAcceptLanguage(header string) *Localizer {
	_, idx := language.MatchStrings(matcher, header)
	return NewLocalizer(Supported[idx])
}

func (l *Localizer) sprintf(key string, args ...any) string {
	if l == nil {
		l = NewLocalizer(language.English)
	}
	return l.printer.Sprintf(key, args...)
}
