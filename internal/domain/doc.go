// Package domain models wind observations scraped from a WeatherLink
// embeddable summary page.
//
// # Data Source
//
// Measurements come from a third-party embeddable dashboard whose DOM is
// rendered client-side and carries no structural contract. The extraction
// layer hands this package raw field strings such as "18.5 mph" or
// "22,3 km/h"; everything here is pure text-to-value work.
//
// # Measurement Conventions
//
// Numeric format:
//
//	Both "." and "," are accepted as decimal separators ("22,3" → 22.3)
//	because the dashboard switches locale formatting depending on the
//	embed configuration.
//
// Units:
//
//	Recognized suffixes: mph, km/h (kph), kts/knots/kt, m/s.
//	A number with no recognizable suffix is treated as mph — the default
//	embed renders imperial units and frequently drops the suffix into a
//	separate DOM node that the extractor never sees.
//	An unrecognized suffix is passed through unconverted with a warning;
//	a single odd token must never abort a whole check cycle.
//
// Canonical unit:
//
//	Knots. Conversion factors: 1 km/h = 0.539957 kn, 1 mph = 0.868976 kn,
//	1 m/s = 1.94384 kn.
//
// # Beaufort Classification
//
// Wind speeds map onto the 13-band Beaufort scale (0 Calm … 12 Hurricane
// force). The bands partition [0, ∞) with no gaps: each speed is compared
// against upper bounds in ascending order and the first band that contains
// it wins. A missing speed classifies as band 0 with the distinct
// description "Unknown" rather than being an error.
package domain
