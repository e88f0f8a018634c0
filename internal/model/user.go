package model

import "time"

type User struct {
	ID          int64       `json:"id"`
	UID         string      `json:"uid"`
	Email       string      `json:"email"`
	DisplayName string      `json:"displayName"`
	PhotoURL    string      `json:"photoURL"`
	SavedNews   []int64     `json:"savedNews"`
	LikedNews   []int64     `json:"likedNews"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Preferences struct {
	Notifications Notifications `json:"notifications"`
}

type Notifications struct {
	EmailDigest  bool `json:"emailDigest"`
	StockAlerts  bool `json:"stockAlerts"`
	BreakingNews bool `json:"breakingNews"`
	WeeklyReport bool `json:"weeklyReport"`
}

func DefaultNotifications() Notifications {
	return Notifications{
		EmailDigest:  true,
		StockAlerts:  false,
		BreakingNews: true,
		WeeklyReport: true,
	}
}

// NotificationsPatch carries a partial preferences update. Nil fields keep
// their stored value.
type NotificationsPatch struct {
	EmailDigest  *bool `json:"emailDigest"`
	StockAlerts  *bool `json:"stockAlerts"`
	BreakingNews *bool `json:"breakingNews"`
	WeeklyReport *bool `json:"weeklyReport"`
}

func (p NotificationsPatch) Apply(n Notifications) Notifications {
	if p.EmailDigest != nil {
		n.EmailDigest = *p.EmailDigest
	}
	if p.StockAlerts != nil {
		n.StockAlerts = *p.StockAlerts
	}
	if p.BreakingNews != nil {
		n.BreakingNews = *p.BreakingNews
	}
	if p.WeeklyReport != nil {
		n.WeeklyReport = *p.WeeklyReport
	}
	return n
}

type UserInput struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}
