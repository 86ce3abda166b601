package model

type Driver struct {
	Number       int    `json:"number"`
	Abbreviation string `json:"abbreviation"` // three letter code, e.g. VER
	FullName     string `json:"fullName"`
	TeamName     string `json:"teamName"`
	TeamColor    string `json:"teamColor"` // RGB hex without '#', may be empty
}
