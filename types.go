// types.go
package main

type UploadPage struct {
	Message   string
	MaxUpload int64
}

// WinnerPage mirrors lottery.Winner field for field so a winner converts
// directly into the view model.
type WinnerPage struct {
	Name        string
	Number      string
	Amount      string
	TotalAmount string
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type ValidateResult struct {
	FileName     string `json:"fileName"`
	Sheet        string `json:"sheet"`
	Participants int    `json:"participants"`
}
