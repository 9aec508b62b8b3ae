package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	consentVerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "consent_verify_total",
		Help: "Consent verify outcomes, labelled accepted or by rejection kind.",
	}, []string{"outcome"})

	consentRevokedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "consent_revoked_records_total",
		Help: "Consent records invalidated through the revoke endpoint.",
	})
)
