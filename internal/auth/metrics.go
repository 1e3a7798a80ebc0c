package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values of identity_reconcile_total.
const (
	outcomeCreated      = "created"
	outcomeMatched      = "matched"
	outcomeRoleMismatch = "role_mismatch"
	outcomeInvalidRole  = "invalid_role"
	outcomeStoreError   = "store_error"
	outcomeIssueError   = "issue_error"
)

var reconcileCounter = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "identity_reconcile_total",
		Help: "Number of login reconciliations, differentiated by outcome.",
	},
	[]string{"outcome"},
)
