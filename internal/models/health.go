package models

import "time"

// HealthReport is the GET /health response
type HealthReport struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Service   string         `json:"service"`
	Database  map[string]int `json:"database,omitempty"`
}

// ServiceName identifies this API in logs and health reports
const ServiceName = "news-aggregator-api"
