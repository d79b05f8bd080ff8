package web

import (
	"net/http"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/Veraticus/healthy-heart/internal/engine"
	"github.com/Veraticus/healthy-heart/internal/model"
	"github.com/gin-gonic/gin"
)

// pageData is what every template receives.
type pageData struct {
	Assessment *engine.Assessment
	Options    formOptions
	Username   string
	Error      string
	Success    string
	Title      string
	About      string
	Disclaimer string
	History    []model.Submission
	Input      model.RawInput
	Captions   captions
}

type formOptions struct {
	Sex       []string
	ChestPain []string
	Angina    []string
	Slope     []string
	Thal      []string
}

type captions struct {
	Age, Sex, ChestPain, RestingBP, Cholesterol, MaxHeartRate string
	Angina, Oldpeak, Slope, Vessels, Thal, Rating             string
}

type credentialsForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
	Confirm  string `form:"confirm" json:"confirm"`
}

type ratingForm struct {
	Rating *int `form:"rating" json:"rating" binding:"required"`
}

// defaultInput mirrors the form's initial selections.
func defaultInput() model.RawInput {
	return model.RawInput{
		Age:            model.MinAge,
		Sex:            model.SexMale,
		ChestPain:      model.ChestPainTypical,
		RestingBP:      model.MinRestingBP,
		Cholesterol:    model.MinCholesterol,
		MaxHeartRate:   model.MinMaxHeartRate,
		ExerciseAngina: model.AnginaYes,
		Slope:          model.SlopeUpsloping,
		Vessels:        model.MinVessels,
		Thal:           model.ThalFixedDefect,
	}
}

func newPage(c *gin.Context) pageData {
	return pageData{
		Title:      model.AppTitle,
		About:      model.About,
		Disclaimer: model.Disclaimer,
		Username:   currentSession(c).Username,
		Input:      defaultInput(),
		Options: formOptions{
			Sex:       model.SexOptions,
			ChestPain: model.ChestPainOptions,
			Angina:    model.AnginaOptions,
			Slope:     model.SlopeOptions,
			Thal:      model.ThalOptions,
		},
		Captions: captions{
			Age:          model.CaptionAge,
			Sex:          model.CaptionSex,
			ChestPain:    model.CaptionChestPain,
			RestingBP:    model.CaptionRestingBP,
			Cholesterol:  model.CaptionCholesterol,
			MaxHeartRate: model.CaptionMaxHeartRate,
			Angina:       model.CaptionAngina,
			Oldpeak:      model.CaptionOldpeak,
			Slope:        model.CaptionSlope,
			Vessels:      model.CaptionVessels,
			Thal:         model.CaptionThal,
			Rating:       model.RatingPrompt,
		},
	}
}

func (s *Server) render(c *gin.Context, status int, name string, data pageData) {
	c.HTML(status, name, data)
}

func (s *Server) renderError(c *gin.Context, name string, data pageData, err error) {
	_ = c.Error(err)
	data.Error = common.UserMessage(err)
	s.render(c, statusFor(err), name, data)
}

func (s *Server) showSignIn(c *gin.Context) {
	if currentSession(c).SignedIn {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	s.render(c, http.StatusOK, "signin.html", newPage(c))
}

func (s *Server) signIn(c *gin.Context) {
	page := newPage(c)

	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, "signin.html", page, common.ErrInvalidCredentials)
		return
	}

	sess := engine.NewSession()
	if _, err := s.engine.SignIn(c.Request.Context(), sess, form.Username, form.Password); err != nil {
		s.renderError(c, "signin.html", page, err)
		return
	}

	token, err := s.tokens.Issue(sess.Username)
	if err != nil {
		s.renderError(c, "signin.html", page, err)
		return
	}
	s.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) showSignUp(c *gin.Context) {
	s.render(c, http.StatusOK, "signup.html", newPage(c))
}

func (s *Server) signUp(c *gin.Context) {
	page := newPage(c)

	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, "signup.html", page, common.ErrInvalidInput)
		return
	}

	if err := s.engine.SignUp(c.Request.Context(), form.Username, form.Password, form.Confirm); err != nil {
		s.renderError(c, "signup.html", page, err)
		return
	}

	page.Success = "Successfully signed up! You can sign in now."
	s.render(c, http.StatusCreated, "signin.html", page)
}

func (s *Server) signOut(c *gin.Context) {
	s.engine.SignOut(currentSession(c))
	s.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/signin")
}

func (s *Server) showForm(c *gin.Context) {
	s.render(c, http.StatusOK, "form.html", newPage(c))
}

func (s *Server) predict(c *gin.Context) {
	page := newPage(c)

	var raw model.RawInput
	if err := c.ShouldBind(&raw); err != nil {
		s.renderError(c, "form.html", page, common.NewUserError("Please fill in every field with a number where one is asked for.", common.ErrInvalidInput))
		return
	}
	page.Input = raw

	if err := raw.Validate(); err != nil {
		s.renderError(c, "form.html", page, common.NewUserError(err.Error(), err))
		return
	}

	assessment, err := s.engine.Assess(c.Request.Context(), currentSession(c), raw)
	if err != nil {
		s.renderError(c, "form.html", page, err)
		return
	}

	page.Assessment = assessment
	s.render(c, http.StatusOK, "form.html", page)
}

func (s *Server) showHistory(c *gin.Context) {
	page := newPage(c)

	subs, err := s.engine.History(c.Request.Context(), currentSession(c), historyLimit)
	if err != nil {
		s.renderError(c, "history.html", page, err)
		return
	}

	page.History = subs
	s.render(c, http.StatusOK, "history.html", page)
}

func (s *Server) feedback(c *gin.Context) {
	page := newPage(c)

	var form ratingForm
	if err := c.ShouldBind(&form); err != nil {
		s.renderError(c, "form.html", page, common.ErrInvalidInput)
		return
	}

	if err := s.engine.RecordFeedback(c.Request.Context(), currentSession(c), *form.Rating); err != nil {
		s.renderError(c, "form.html", page, err)
		return
	}

	page.Success = "Thank you for rating the app!"
	s.render(c, http.StatusOK, "form.html", page)
}
