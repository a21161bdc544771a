package extract

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/windwatch/internal/domain"
	"github.com/couchcryptid/windwatch/internal/observability"
)

func testEngine() *Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEngine(logger, observability.NewMetricsForTesting())
}

func TestExtract_LabelAdjacency(t *testing.T) {
	markup := `<html><body>
		<div class="summary">
			<div class="cell"><div class="label">Wind Speed</div><div class="value">19 mph</div></div>
			<div class="cell"><div class="label">Wind Gust</div><div class="value">26 mph</div></div>
			<div class="cell"><div class="label">Wind Direction</div><div class="value">ESE</div></div>
			<div class="cell"><div class="label">Temperature</div><div class="value">21.4 °C</div></div>
		</div>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "19 mph", obs[domain.FieldWindSpeed])
	assert.Equal(t, "26 mph", obs[domain.FieldGustSpeed])
	assert.Equal(t, "ESE", obs[domain.FieldWindDirection])
	assert.Equal(t, "21.4 °C", obs[domain.FieldTemperature])
}

func TestExtract_LabelPriorityOrder(t *testing.T) {
	// "Wind Speed" must win over the lower-priority bare "Wind" label even
	// though the "Wind" cell comes first in document order.
	markup := `<html><body>
		<div><span>Wind</span><span>Rose</span></div>
		<div><span>Wind Speed</span><span>12 kts</span></div>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "12 kts", obs[domain.FieldWindSpeed])
}

func TestExtract_LabelAdjacencySkipsInvalidCandidates(t *testing.T) {
	// The first label occurrence is followed by non-numeric text; the
	// second occurrence carries the value. Document order within a label
	// decides, but only validated candidates count.
	markup := `<html><body>
		<div><span>Wind Speed</span><span>updating...</span></div>
		<div><span>Wind Speed</span><span>14,5 km/h</span></div>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "14,5 km/h", obs[domain.FieldWindSpeed])
}

func TestExtract_ValuePatternWithParentCheck(t *testing.T) {
	// No label precedes the value, so label adjacency fails; the value
	// node matches the pattern directly and its parent's text names the
	// field.
	markup := `<html><body>
		<div class="cell"><span>22 mph</span><span>Wind</span></div>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "22 mph", obs[domain.FieldWindSpeed])
}

func TestExtract_KeywordNodeFallback(t *testing.T) {
	// No structure at all: a flat sentence mentioning gusts. The keyword
	// pass must find it, French wording included.
	markup := `<html><body><p>rafales à 25 km/h attendues ce soir</p></body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "25 km/h", obs[domain.FieldGustSpeed])
}

func TestExtract_ContextRegexBeforeLooseRegex(t *testing.T) {
	// Number and unit split across nodes everywhere, so no single text
	// node validates. The context-qualified regex must anchor on "gust"
	// and pick 30 km/h instead of the earlier unrelated 99 mph.
	markup := `<html><body>
		<div><span>visibility 99</span><span>mph</span></div>
		<div><span>gust: 30</span><span>km/h</span></div>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "30 km/h", obs[domain.FieldGustSpeed])
}

func TestExtract_LooseRegexLastResort(t *testing.T) {
	// No labels, no keywords in the number's own node, number and unit in
	// separate nodes: only the loose anywhere-in-text pattern can stitch
	// this together.
	markup := `<html><body><div><span>19</span><span>mph</span></div></body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "19 mph", obs[domain.FieldWindSpeed])
}

func TestExtract_CommaDecimalNormalizedInFallback(t *testing.T) {
	markup := `<html><body><div><span>gust: 22,5</span><span>km/h</span></div></body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "22.5 km/h", obs[domain.FieldGustSpeed])
}

func TestExtract_DirectionFromFlatText(t *testing.T) {
	// No speed reading anywhere, so the fallback pass runs and the
	// direction is pulled from prose.
	markup := `<html><body><p>light breeze from NNE expected this morning</p></body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "NNE", obs[domain.FieldWindDirection])
	assert.NotContains(t, obs, domain.FieldWindSpeed)
}

func TestExtract_TemperatureFromFlatText(t *testing.T) {
	markup := `<html><body>
		<p>air temp currently 18.3°C at the marina</p>
		<p>wind 12 kts</p>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "18.3°C", obs[domain.FieldTemperature])
}

func TestExtract_UnrelatedNumbersIgnored(t *testing.T) {
	// Numbers without units or wind context must not produce fields.
	markup := `<html><body>
		<div><span>Humidity</span><span>45%</span></div>
		<div><span>Pressure</span><span>1013 hPa</span></div>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.NotContains(t, obs, domain.FieldWindSpeed)
	assert.NotContains(t, obs, domain.FieldGustSpeed)
}

func TestExtract_EmptyPage(t *testing.T) {
	obs := testEngine().ExtractHTML(`<html><body></body></html>`)
	assert.Empty(t, obs)
}

func TestExtract_ScriptContentIgnored(t *testing.T) {
	markup := `<html><body>
		<script>var windSpeed = "99 mph";</script>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.NotContains(t, obs, domain.FieldWindSpeed)
}

func TestExtract_IndependentFieldResolution(t *testing.T) {
	// Gust resolves from a free-form sentence even when wind speed
	// resolved from labeled structure — fields never depend on each other.
	// The sentence node matches the value pattern and its parent's text
	// contains "gust", so the whole raw text is kept; downstream parsing
	// pulls the number out.
	markup := `<html><body>
		<div><span>Wind Speed</span><span>10 kts</span></div>
		<p>morning gust 30 km/h recorded</p>
	</body></html>`

	obs := testEngine().ExtractHTML(markup)

	assert.Equal(t, "10 kts", obs[domain.FieldWindSpeed])
	assert.Equal(t, "morning gust 30 km/h recorded", obs[domain.FieldGustSpeed])
}

func TestExtract_MalformedMarkup(t *testing.T) {
	// The HTML parser is lenient; truncated markup still yields whatever
	// fields it can find and never errors.
	obs := testEngine().ExtractHTML(`<div><span>Wind Speed</span><span>8 kts`)
	assert.Equal(t, "8 kts", obs[domain.FieldWindSpeed])
}
