package model

// AppTitle is the heading shown by every front end.
const AppTitle = "Healthy Heart App"

// About describes the app in the sidebar and help text.
const About = "This app helps you to find out whether you are at a risk of developing a heart disease."

// Field captions as shown on the form.
const (
	CaptionAge          = "Age"
	CaptionSex          = "Select Gender"
	CaptionChestPain    = "Chest Pain Type"
	CaptionRestingBP    = "Resting Blood Sugar"
	CaptionCholesterol  = "Serum Cholestoral in mg/dl"
	CaptionMaxHeartRate = "Maximum Heart Rate Achieved"
	CaptionAngina       = "Exercise Induced Angina"
	CaptionOldpeak      = "Oldpeak"
	CaptionSlope        = "Heart Rate Slope"
	CaptionVessels      = "Number of Major Vessels Colored by Flourosopy"
	CaptionThal         = "Thalium Stress Result"
)

// RatingPrompt asks for app feedback.
const RatingPrompt = "How much would you rate this app?"
