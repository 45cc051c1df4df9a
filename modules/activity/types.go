package activity

// RecentActivityRequest is the payload of the recent-activity service.
type RecentActivityRequest struct {
	Limit int `json:"limit"`
}

// RecentActivityResponse carries feed entries, newest first.
type RecentActivityResponse struct {
	Entries []Entry `json:"entries"`
}
