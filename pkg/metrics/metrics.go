package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	subsystem = "purchasing"

	ordersCancelledTotal     = "orders_cancelled_total"
	orderArchiveTogglesTotal = "order_archive_toggles_total"
	leadTimeRejectedTotal    = "lead_time_rejected_writes_total"
	ruleViolationsTotal      = "rule_violations_total"

	// Labels
	reasonLabel = "reason"
	actionLabel = "action"
	ruleLabel   = "rule"
)

// Rule names used with IncreaseRuleViolations
const (
	RuleArchiveOpenOrder = "archive_open_order"
	RuleArchivedState    = "archived_state_change"
	RuleNothingToCancel  = "nothing_to_cancel"
	RuleReasonInUse      = "cancel_reason_in_use"
	RuleInvalidLeadTime  = "invalid_lead_time"
)

var ordersCancelledMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      ordersCancelledTotal,
		Help:      "number of purchase orders cancelled, by reason",
	},
	[]string{reasonLabel},
)

var orderArchiveTogglesMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      orderArchiveTogglesTotal,
		Help:      "number of purchase orders archived or unarchived",
	},
	[]string{actionLabel},
)

var leadTimeRejectedMetric = prometheus.NewCounter(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      leadTimeRejectedTotal,
		Help:      "number of vendor lead time writes rejected because the delay was below the transport delay",
	},
)

var ruleViolationsMetric = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: subsystem,
		Name:      ruleViolationsTotal,
		Help:      "number of writes refused by a purchasing rule",
	},
	[]string{ruleLabel},
)

func IncreaseOrdersCancelled(reason string) {
	ordersCancelledMetric.With(prometheus.Labels{reasonLabel: reason}).Inc()
}

func IncreaseArchiveToggles(archived bool) {
	action := "unarchive"
	if archived {
		action = "archive"
	}
	orderArchiveTogglesMetric.With(prometheus.Labels{actionLabel: action}).Inc()
}

func IncreaseLeadTimeRejected() {
	leadTimeRejectedMetric.Inc()
	IncreaseRuleViolations(RuleInvalidLeadTime)
}

func IncreaseRuleViolations(rule string) {
	ruleViolationsMetric.With(prometheus.Labels{ruleLabel: rule}).Inc()
}

func init() {
	registerMetrics()
}

func registerMetrics() {
	prometheus.MustRegister(ordersCancelledMetric)
	prometheus.MustRegister(orderArchiveTogglesMetric)
	prometheus.MustRegister(leadTimeRejectedMetric)
	prometheus.MustRegister(ruleViolationsMetric)
}
