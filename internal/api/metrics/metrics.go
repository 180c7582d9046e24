// Package metrics defines and registers the custom Prometheus metrics for the
// Eventra API. It is the single source of truth for metric names, labels and
// help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation through promauto.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/eventra/eventra-api/internal/core/ports"
)

const namespace = "eventra"

// SignupsTotal counts signup attempts.
// Labels:
//   - role: the requested role when it parses, otherwise "invalid"
//   - result: "success" or a failure reason such as "email_exists"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by requested role and result.",
	},
	[]string{"role", "result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "storage", ...
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer tokens checked by the auth middleware.
// Label:
//   - result: "success", "missing", "token_expired", "token_signature", "token_malformed"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// PasswordHashDuration measures how long one bcrypt hash takes.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "password_hash_seconds",
		Help:      "Duration of password hashing.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// timedHasher records PasswordHashDuration around every Hash call.
type timedHasher struct {
	next ports.PasswordHasher
}

// InstrumentHasher wraps h so that hashing time is observed.
func InstrumentHasher(h ports.PasswordHasher) ports.PasswordHasher {
	return timedHasher{next: h}
}

func (t timedHasher) Hash(plaintext string) (string, error) {
	start := time.Now()
	defer func() { PasswordHashDuration.Observe(time.Since(start).Seconds()) }()
	return t.next.Hash(plaintext)
}

func (t timedHasher) Verify(plaintext, digest string) bool {
	return t.next.Verify(plaintext, digest)
}
