package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleamarket_login_attempts_total",
		Help: "Number of login attempts grouped by status.",
	}, []string{"status"})

	signupAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleamarket_signup_attempts_total",
		Help: "Number of signup attempts grouped by status.",
	}, []string{"status"})

	itemPosts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleamarket_item_posts_total",
		Help: "Number of item postings grouped by status.",
	}, []string{"status"})

	bidPosts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleamarket_bid_posts_total",
		Help: "Number of bid postings grouped by status.",
	}, []string{"status"})

	uploadRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleamarket_upload_rejections_total",
		Help: "Uploads rejected for a disallowed file extension.",
	})

	retryExhaustions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fleamarket_db_retry_exhaustions_total",
		Help: "Database statements that failed after exhausting the lock-contention retry budget.",
	})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fleamarket_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncLogin increments the login counter.
func IncLogin(status string) {
	loginAttempts.WithLabelValues(status).Inc()
}

// IncSignup increments the signup counter.
func IncSignup(status string) {
	signupAttempts.WithLabelValues(status).Inc()
}

// IncItemPost increments the item posting counter.
func IncItemPost(status string) {
	itemPosts.WithLabelValues(status).Inc()
}

// IncBidPost increments the bid posting counter.
func IncBidPost(status string) {
	bidPosts.WithLabelValues(status).Inc()
}

// IncUploadRejected increments the upload rejection counter.
func IncUploadRejected() {
	uploadRejections.Inc()
}

// IncRetryExhausted increments the retry exhaustion counter.
func IncRetryExhausted() {
	retryExhaustions.Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
