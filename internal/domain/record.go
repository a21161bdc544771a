package domain

// Field keys produced by the extraction engine. Keys are present in an
// observation only when extraction succeeded; absence is an expected state,
// not an error.
const (
	FieldWindSpeed     = "wind_speed"
	FieldGustSpeed     = "gust_speed"
	FieldWindDirection = "wind_direction"
	FieldTemperature   = "temperature"
)

// Observation is the raw per-cycle result of the extraction engine: a
// mapping from field key to the raw text found on the page. Created fresh
// each cycle and never mutated afterwards.
type Observation map[string]string

// CheckRecord is the single-slot snapshot persisted after every check
// cycle, overwritten each time. External consumers (dashboards, debugging)
// read it; only the pipeline writes it.
type CheckRecord struct {
	Timestamp       int64    `json:"timestamp"`
	Datetime        string   `json:"datetime"`
	WindSpeed       *float64 `json:"wind_speed"`
	WindGust        *float64 `json:"wind_gust"`
	WindDescription string   `json:"wind_description"`
	BeaufortScale   int      `json:"beaufort_scale"`
	Threshold       float64  `json:"threshold"`
	AboveThreshold  bool     `json:"above_threshold"`
}

// NewCheckRecord builds the snapshot for one completed cycle. Speed and
// gust are nil on a no-data cycle; the threshold comparison is inclusive,
// so a speed exactly at the threshold counts as above it.
func NewCheckRecord(speedKnots, gustKnots *float64, threshold float64) CheckRecord {
	now := clock.Now()
	beaufortNum, description := Beaufort(speedKnots)

	return CheckRecord{
		Timestamp:       now.Unix(),
		Datetime:        now.Format("2006-01-02 15:04:05"),
		WindSpeed:       speedKnots,
		WindGust:        gustKnots,
		WindDescription: description,
		BeaufortScale:   beaufortNum,
		Threshold:       threshold,
		AboveThreshold:  speedKnots != nil && *speedKnots >= threshold,
	}
}
