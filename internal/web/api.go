package web

import (
	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/gin-gonic/gin"
)

type tokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	Username  string `json:"username"`
	ExpiresIn int    `json:"expires_in"`
}

type assessmentResponse struct {
	Features   map[string]float64 `json:"features"`
	ID         string             `json:"id"`
	Risk       string             `json:"risk"`
	Message    string             `json:"message"`
	Disclaimer string             `json:"disclaimer"`
	Label      model.RiskLabel    `json:"label"`
}

// POST /api/v1/signup
func (s *Server) apiSignUp(c *gin.Context) {
	var req credentialsForm
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, common.NewUserError("username and password are required", common.ErrInvalidInput))
		return
	}

	if err := s.engine.SignUp(c.Request.Context(), req.Username, req.Password, req.Confirm); err != nil {
		fail(c, err)
		return
	}
	created(c, gin.H{"username": req.Username})
}

// POST /api/v1/signin
func (s *Server) apiSignIn(c *gin.Context) {
	var req credentialsForm
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, common.ErrInvalidCredentials)
		return
	}

	sess := engine.NewSession()
	if _, err := s.engine.SignIn(c.Request.Context(), sess, req.Username, req.Password); err != nil {
		fail(c, err)
		return
	}

	token, err := s.tokens.Issue(sess.Username)
	if err != nil {
		fail(c, err)
		return
	}
	s.setSessionCookie(c, token)

	success(c, tokenResponse{
		Token:     token,
		TokenType: "Bearer",
		Username:  sess.Username,
		ExpiresIn: int(s.tokens.TTL().Seconds()),
	})
}

// POST /api/v1/predict
func (s *Server) apiPredict(c *gin.Context) {
	var raw model.RawInput
	if err := c.ShouldBindJSON(&raw); err != nil {
		fail(c, common.NewUserError("request body must be a JSON object of the eleven form fields", common.ErrInvalidInput))
		return
	}
	if err := raw.Validate(); err != nil {
		fail(c, common.NewUserError(err.Error(), err))
		return
	}

	a, err := s.engine.Assess(c.Request.Context(), currentSession(c), raw)
	if err != nil {
		fail(c, err)
		return
	}

	success(c, assessmentResponse{
		ID:         a.Submission.ID,
		Label:      a.Label,
		Risk:       a.Label.String(),
		Message:    a.Label.Message(),
		Disclaimer: model.Disclaimer,
		Features:   a.Vector.Named(),
	})
}

// GET /api/v1/history
func (s *Server) apiHistory(c *gin.Context) {
	subs, err := s.engine.History(c.Request.Context(), currentSession(c), historyLimit)
	if err != nil {
		fail(c, err)
		return
	}
	if subs == nil {
		subs = []model.Submission{}
	}
	success(c, subs)
}

// POST /api/v1/feedback
func (s *Server) apiFeedback(c *gin.Context) {
	var req ratingForm
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, common.ErrInvalidInput)
		return
	}
	if err := s.engine.RecordFeedback(c.Request.Context(), currentSession(c), *req.Rating); err != nil {
		fail(c, err)
		return
	}
	success(c, gin.H{"message": "Thank you for rating the app!"})
}
