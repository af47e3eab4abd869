package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	QuestionsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "questionboard", Name: "questions_submitted_total", Help: "Number of questions accepted from visitors."},
	)
	QuestionStatusUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "questionboard", Name: "question_status_updates_total", Help: "Number of moderation status changes by target status."},
		[]string{"status"},
	)
	QuestionsDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "questionboard", Name: "questions_deleted_total", Help: "Number of questions deleted by the moderator."},
	)
	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "questionboard", Name: "admin_logins_total", Help: "Number of admin login attempts by result."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(QuestionsSubmitted)
	reg.MustRegister(QuestionStatusUpdates)
	reg.MustRegister(QuestionsDeleted)
	reg.MustRegister(AdminLogins)
}
