package models

// PredictRequest is the body of POST /api/v1/predict.
type PredictRequest struct {
	RedTeams  []int  `json:"red_teams" validate:"required,len=3,dive,gt=0"`
	BlueTeams []int  `json:"blue_teams" validate:"required,len=3,dive,gt=0"`
	EventKey  string `json:"event_key" validate:"required"`
	CompLevel int    `json:"comp_level" validate:"gte=0,lte=3"`
	EventWeek int    `json:"event_week" validate:"gte=0"`
}

// PredictResponse is the prediction returned to the client.
type PredictResponse struct {
	Winner         string  `json:"winner"`
	WinProbability float64 `json:"win_probability"`
	RedScore       int     `json:"red_score"`
	BlueScore      int     `json:"blue_score"`
	Margin         int     `json:"margin"`
}
