package models

// Event is a planned occasion. Date is kept as the text the user entered.
type Event struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Theme    string `json:"theme"`
	Timeline string `json:"timeline"`
}
