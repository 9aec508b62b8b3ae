package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veriform/consent-api/consent"
	"github.com/veriform/consent-api/schema"
)

// verifyConsent accepts a consent submission, runs it through the
// validation pipeline and persists it on approval. Rejections are client
// errors and carry the kind of the first failing stage.
func (s *Server) verifyConsent(c *gin.Context) {
	var sub schema.ConsentSubmission
	if err := c.BindJSON(&sub); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	meta := schema.ClientMeta{
		UserAgent: c.Request.UserAgent(),
		SourceIP:  c.ClientIP(),
	}

	result, err := s.consent.Verify(sub, meta)
	if err != nil {
		if errors.Is(err, consent.ErrServiceUnavailable) {
			abortWithEncoding(c, http.StatusServiceUnavailable, errorServiceUnavailable, err)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	if !result.Accepted {
		consentVerifyTotal.WithLabelValues(string(result.ErrorKind)).Inc()
		c.JSON(http.StatusBadRequest, result)
		return
	}

	consentVerifyTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, result)
}

// checkConsent reports whether a valid consent record exists for the
// fingerprint/version pair. It is a pure read; a storage outage denies
// consent by answering 503, never by answering "no".
func (s *Server) checkConsent(c *gin.Context) {
	fingerprint := c.Query("fingerprint")
	policyVersion := c.Query("policy_version")
	if fingerprint == "" || policyVersion == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	result, err := s.consent.Check(fingerprint, policyVersion)
	if err != nil {
		if errors.Is(err, consent.ErrServiceUnavailable) {
			abortWithEncoding(c, http.StatusServiceUnavailable, errorServiceUnavailable, err)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type revokeParams struct {
	Fingerprint   string `json:"fingerprint"`
	PolicyVersion string `json:"policy_version"`
}

// revokeConsent invalidates every record for the pair and reports the
// count. A second call with nothing left returns a zero count, not an
// error.
func (s *Server) revokeConsent(c *gin.Context) {
	var params revokeParams
	if err := c.BindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}
	if params.Fingerprint == "" || params.PolicyVersion == "" {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters)
		return
	}

	result, err := s.consent.Revoke(params.Fingerprint, params.PolicyVersion)
	if err != nil {
		if errors.Is(err, consent.ErrServiceUnavailable) {
			abortWithEncoding(c, http.StatusServiceUnavailable, errorServiceUnavailable, err)
			return
		}
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	consentRevokedTotal.Add(float64(result.RevokedCount))
	c.JSON(http.StatusOK, result)
}
