// Package metrics defines and registers all custom Prometheus metrics for the
// StackIt Q&A API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "stackit"

// QuestionsCreatedTotal counts newly posted questions.
var QuestionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_created_total",
		Help:      "Total number of questions created.",
	},
)

// AnswersCreatedTotal counts newly posted answers.
// Label:
//   - source: "human" or "ai"
var AnswersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_created_total",
		Help:      "Total number of answers created, by source.",
	},
	[]string{"source"},
)

// VotesCastTotal counts vote mutations.
// Labels:
//   - action: "created", "updated" or "removed"
//   - type: "UPVOTE", "DOWNVOTE" or "none" for removals
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of vote mutations, by action and vote type.",
	},
	[]string{"action", "type"},
)

// AnswersAcceptedTotal counts acceptance workflow runs.
var AnswersAcceptedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_accepted_total",
		Help:      "Total number of answers marked as accepted.",
	},
)

// AIJobsTotal counts deferred AI generation jobs by outcome.
// Label:
//   - result: "succeeded", "failed" or "skipped"
var AIJobsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_jobs_total",
		Help:      "Total number of AI answer generation jobs, by result.",
	},
	[]string{"result"},
)

// AIJobDuration measures how long one generation job takes end-to-end.
var AIJobDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_job_duration_seconds",
		Help:      "Duration of AI answer generation jobs from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// AIQueueDepth tracks the number of fired jobs waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1")
var AIQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ai_queue_depth",
		Help:      "Current number of AI jobs pending in each scheduler worker channel.",
	},
	[]string{"worker_id"},
)
