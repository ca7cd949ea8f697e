package model

type NotationRequestBody struct {
	Notation string `json:"notation"`
}

type NotationResponse struct {
	Notation string `json:"notation"`
}

type CompositionRequestBody struct {
	Title    string `json:"title"`
	Notation string `json:"notation"`
	UserID   string `json:"userId"`
	IsPublic bool   `json:"isPublic"`
}

type FrequencyResult struct {
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
	Midi      uint8   `json:"midi"`
	Start     float64 `json:"start"`
	Length    float64 `json:"length"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
