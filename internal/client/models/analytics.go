package models

import "time"

// Shapes below mirror the backend's analytics contract; this client only
// renders them.

type ScanEvent struct {
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"userAgent,omitempty"`
	Location  *struct {
		Country string `json:"country,omitempty"`
		City    string `json:"city,omitempty"`
	} `json:"location,omitempty"`
}

type DailyScans struct {
	Date  string `json:"date"`
	Scans int    `json:"scans"`
}

type DeviceStat struct {
	Device     string  `json:"device"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type LocationStat struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// QRCodeAnalytics is the response of GET /analytics/qr/{id}.
type QRCodeAnalytics struct {
	TotalScans    int            `json:"totalScans"`
	LastScanned   *time.Time     `json:"lastScanned,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	RecentScans   []ScanEvent    `json:"recentScans"`
	DailyScans    []DailyScans   `json:"dailyScans"`
	DeviceStats   []DeviceStat   `json:"deviceStats"`
	LocationStats []LocationStat `json:"locationStats"`
}

// DashboardAnalytics is the response of GET /analytics/overview.
type DashboardAnalytics struct {
	Overview struct {
		TotalQRCodes   int `json:"totalQRCodes"`
		ActiveQRCodes  int `json:"activeQRCodes"`
		TotalScans     int `json:"totalScans"`
		ScansThisMonth int `json:"scansThisMonth"`
	} `json:"overview"`
	RecentActivity []struct {
		QRCodeID  string    `json:"qrCodeId"`
		Title     string    `json:"title"`
		ShortID   string    `json:"shortId"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"recentActivity"`
	TopPerforming []struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		ShortID     string     `json:"shortId"`
		TotalScans  int        `json:"totalScans"`
		LastScanned *time.Time `json:"lastScanned,omitempty"`
	} `json:"topPerforming"`
}
