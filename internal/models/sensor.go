package models

import "time"

// SensorReading is one measurement on the campus sensor dashboard,
// persisted in InfluxDB.
type SensorReading struct {
	SensorID  string    `json:"sensor_id"`
	Metric    string    `json:"metric"` // e.g. temperature, humidity, co2
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateReadingRequest defines the request body for ingesting a reading.
type CreateReadingRequest struct {
	SensorID string  `json:"sensor_id" validate:"required,max=64"`
	Metric   string  `json:"metric" validate:"required,max=64"`
	Value    float64 `json:"value"`
}
