package pipeline

import (
	"github.com/jengzang/stopdetect-backend-go/internal/models"
	"github.com/jengzang/stopdetect-backend-go/internal/spatial"
)

// BuildFeatures computes kinematic features for every adjacent point pair of a
// trace. A trace with fewer than 2 points yields an empty slice, which is not
// an error. Timestamps must strictly increase; a duplicate or decreasing
// timestamp returns NonMonotonicTimeError instead of a coerced value.
func BuildFeatures(trace models.Trace) ([]models.FeatureRecord, error) {
	if trace.Len() < 2 {
		return nil, nil
	}

	records := make([]models.FeatureRecord, 0, trace.Len()-1)
	for i := 1; i < trace.Len(); i++ {
		prev := trace.Points[i-1]
		curr := trace.Points[i]

		deltaS := curr.Timestamp.Sub(prev.Timestamp).Seconds()
		if deltaS <= 0 {
			return nil, &NonMonotonicTimeError{
				Key:   trace.Key,
				Index: i,
				Prev:  prev.Timestamp,
				Curr:  curr.Timestamp,
			}
		}

		distanceM := spatial.GreatCircleMeters(prev.Latitude, prev.Longitude, curr.Latitude, curr.Longitude)

		records = append(records, models.FeatureRecord{
			Key:       trace.Key,
			Index:     i,
			Timestamp: curr.Timestamp,
			PrevLat:   prev.Latitude,
			PrevLon:   prev.Longitude,
			Lat:       curr.Latitude,
			Lon:       curr.Longitude,
			DistanceM: distanceM,
			DeltaTS:   deltaS,
			SpeedKmh:  spatial.SpeedKmh(distanceM, deltaS),
		})
	}

	return records, nil
}
