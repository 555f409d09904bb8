package repositories

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/uideverse/hub/backend/internal/models"
)

// SensorRepository defines the interface for the sensor dashboard's
// time-series data
type SensorRepository interface {
	WriteReading(ctx context.Context, reading *models.SensorReading) error
	LatestReadings(ctx context.Context, window time.Duration) ([]models.SensorReading, error)
}

// InfluxSensorRepository implements SensorRepository on InfluxDB
type InfluxSensorRepository struct {
	writeAPI api.WriteAPIBlocking
	queryAPI api.QueryAPI
	bucket   string
}

// NewInfluxSensorRepository creates a new InfluxSensorRepository
func NewInfluxSensorRepository(client influxdb2.Client, org, bucket string) *InfluxSensorRepository {
	return &InfluxSensorRepository{
		writeAPI: client.WriteAPIBlocking(org, bucket),
		queryAPI: client.QueryAPI(org),
		bucket:   bucket,
	}
}

// WriteReading appends one measurement to the sensor_reading series
func (r *InfluxSensorRepository) WriteReading(ctx context.Context, reading *models.SensorReading) error {
	ts := reading.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	point := influxdb2.NewPoint("sensor_reading",
		map[string]string{"sensor_id": reading.SensorID, "metric": reading.Metric},
		map[string]interface{}{"value": reading.Value},
		ts,
	)
	return r.writeAPI.WritePoint(ctx, point)
}

// LatestReadings returns the most recent value per sensor/metric pair within
// the given window
func (r *InfluxSensorRepository) LatestReadings(ctx context.Context, window time.Duration) ([]models.SensorReading, error) {
	flux := fmt.Sprintf(`from(bucket: %q)
  |> range(start: -%s)
  |> filter(fn: (r) => r._measurement == "sensor_reading" and r._field == "value")
  |> last()`, r.bucket, window.String())

	result, err := r.queryAPI.Query(ctx, flux)
	if err != nil {
		return nil, err
	}

	var readings []models.SensorReading
	for result.Next() {
		record := result.Record()
		value, ok := record.Value().(float64)
		if !ok {
			continue
		}
		sensorID, _ := record.ValueByKey("sensor_id").(string)
		metric, _ := record.ValueByKey("metric").(string)
		readings = append(readings, models.SensorReading{
			SensorID:  sensorID,
			Metric:    metric,
			Value:     value,
			Timestamp: record.Time(),
		})
	}
	if result.Err() != nil {
		return nil, result.Err()
	}
	return readings, nil
}
